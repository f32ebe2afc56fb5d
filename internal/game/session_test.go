package game

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestSession(t *testing.T, seed int64, names ...string) *Session {
	t.Helper()
	if len(names) == 0 {
		names = []string{"Aiko", "Benji"}
	}
	sess, err := NewSession(names, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return sess
}

func checkSessionIdentities(t *testing.T, s *Session) {
	t.Helper()
	for _, p := range s.Players {
		checkIdentities(t, p)
	}
}

func TestNewSessionPlayerCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewSession([]string{"solo"}, rng); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("1 player: err = %v, want ErrInvalidPlayerCount", err)
	}
	if _, err := NewSession([]string{"a", "b", "c", "d", "e"}, rng); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("5 players: err = %v, want ErrInvalidPlayerCount", err)
	}
	sess, err := NewSession([]string{"a", "b", "c", "d"}, rng)
	if err != nil {
		t.Fatalf("4 players: %v", err)
	}
	if sess.Turn != 1 || sess.ActiveSeat != 0 || sess.Phase != PhaseAwaitingRoll {
		t.Fatalf("unexpected initial state: turn=%d seat=%d phase=%q",
			sess.Turn, sess.ActiveSeat, sess.Phase)
	}
}

func TestNewSessionBlankNamesGetDefaults(t *testing.T) {
	sess := newTestSession(t, 1, "  ", "Benji")
	if sess.Players[0].Name != "Player 1" {
		t.Fatalf("name = %q, want default", sess.Players[0].Name)
	}
}

func TestRollDiceMovesCyclically(t *testing.T) {
	sess := newTestSession(t, 5)
	p := sess.activePlayer()
	p.Position = 70

	res, err := sess.RollDice()
	if err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if res.Roll < 1 || res.Roll > DieSides {
		t.Fatalf("roll = %d out of range", res.Roll)
	}
	if want := (70 + res.Roll) % BoardCells; res.NewPosition != want || p.Position != want {
		t.Fatalf("position = %d, want %d", res.NewPosition, want)
	}
	if res.Cell != sess.Board[p.Position] {
		t.Fatalf("cell = %q, board says %q", res.Cell, sess.Board[p.Position])
	}
	if len(res.Messages) == 0 {
		t.Fatalf("expected at least one message")
	}
}

func TestRollDiceOnlyOncePerTurn(t *testing.T) {
	sess := newTestSession(t, 5)
	if _, err := sess.RollDice(); err != nil {
		t.Fatalf("first roll: %v", err)
	}
	if _, err := sess.RollDice(); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("second roll: err = %v, want ErrInvalidAction", err)
	}
}

func TestDecideInvestmentDeclined(t *testing.T) {
	sess := newTestSession(t, 9)
	sess.Phase = PhaseOfferPending
	sess.offer = &InvestmentOffer{Kind: AssetProperty, Amount: 2000}

	dec, err := sess.DecideInvestment(false)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if dec.Status != DecisionDeclined {
		t.Fatalf("status = %q", dec.Status)
	}
	p := sess.activePlayer()
	if p.Cash != StartingCash || len(p.History) != 0 {
		t.Fatalf("decline must not mutate the ledger: cash=%d history=%d",
			p.Cash, len(p.History))
	}
	if sess.offer != nil || sess.Phase != PhaseAwaitingTurnEnd {
		t.Fatalf("offer not cleared: offer=%v phase=%q", sess.offer, sess.Phase)
	}
}

func TestDecideInvestmentInsufficientFunds(t *testing.T) {
	sess := newTestSession(t, 9)
	p := sess.activePlayer()
	p.Cash = 1500
	sess.Phase = PhaseOfferPending
	sess.offer = &InvestmentOffer{Kind: AssetInventory, Amount: 2000}

	dec, err := sess.DecideInvestment(true)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if dec.Status != DecisionInsufficientFunds {
		t.Fatalf("status = %q", dec.Status)
	}
	if p.Cash != 1500 || p.Assets[AssetInventory] != 0 || len(p.History) != 0 {
		t.Fatalf("rejected purchase must not mutate: cash=%d asset=%d history=%d",
			p.Cash, p.Assets[AssetInventory], len(p.History))
	}
	if sess.offer != nil || sess.holding != nil || sess.Phase != PhaseAwaitingTurnEnd {
		t.Fatalf("state not cleaned up after rejection")
	}
}

func TestDecideInvestmentAccepted(t *testing.T) {
	sess := newTestSession(t, 9)
	sess.Phase = PhaseOfferPending
	sess.offer = &InvestmentOffer{Kind: AssetProperty, Amount: 2000}

	dec, err := sess.DecideInvestment(true)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if dec.Status != DecisionAccepted {
		t.Fatalf("status = %q", dec.Status)
	}
	p := sess.activePlayer()
	if p.Cash != StartingCash-2000 {
		t.Fatalf("cash = %d, want %d", p.Cash, StartingCash-2000)
	}
	if p.Assets[AssetProperty] != 2000 {
		t.Fatalf("property = %d, want 2000", p.Assets[AssetProperty])
	}
	if len(p.History) != 1 {
		t.Fatalf("history entries = %d, want exactly 1", len(p.History))
	}
	if sess.Phase != PhaseHolding || sess.holding == nil {
		t.Fatalf("expected holding phase")
	}
	if len(sess.holding.Candles) != CandleCount || sess.holding.Cursor != 0 {
		t.Fatalf("candles=%d cursor=%d", len(sess.holding.Candles), sess.holding.Cursor)
	}
	checkSessionIdentities(t, sess)
}

func acceptOffer(t *testing.T, sess *Session, kind AssetKind, amount int64) {
	t.Helper()
	sess.Phase = PhaseOfferPending
	sess.offer = &InvestmentOffer{Kind: kind, Amount: amount}
	if _, err := sess.DecideInvestment(true); err != nil {
		t.Fatalf("accept offer: %v", err)
	}
}

func TestSellAtFirstCandleReturnsInvestment(t *testing.T) {
	sess := newTestSession(t, 11)
	acceptOffer(t, sess, AssetInventory, 2500)

	sale, err := sess.SellHere()
	if err != nil {
		t.Fatalf("SellHere: %v", err)
	}
	if sale.Proceeds != 2500 || sale.ProfitLoss != 0 {
		t.Fatalf("proceeds=%d pl=%d, want 2500/0", sale.Proceeds, sale.ProfitLoss)
	}
	p := sess.activePlayer()
	if p.Cash != StartingCash {
		t.Fatalf("cash = %d, want %d", p.Cash, StartingCash)
	}
	if p.Assets[AssetInventory] != 0 {
		t.Fatalf("inventory = %d, want 0", p.Assets[AssetInventory])
	}
	if sess.holding != nil || sess.Phase != PhaseAwaitingTurnEnd {
		t.Fatalf("holding not cleared")
	}
	checkSessionIdentities(t, sess)
}

func TestAdvanceSkipAndSellAtEnd(t *testing.T) {
	sess := newTestSession(t, 13)
	acceptOffer(t, sess, AssetProperty, 2000)

	view, err := sess.AdvanceCandle()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if view.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", view.Cursor)
	}

	view, err = sess.SkipToEnd()
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if !view.AtEnd || view.Cursor != CandleCount-1 {
		t.Fatalf("cursor = %d, at_end = %v", view.Cursor, view.AtEnd)
	}
	// Skipping only moves the cursor; the holding stays open.
	if sess.holding == nil || sess.Phase != PhaseHolding {
		t.Fatalf("skip must not sell")
	}

	if _, err := sess.AdvanceCandle(); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("advance past end: err = %v, want ErrInvalidAction", err)
	}

	sale, err := sess.SellHere()
	if err != nil {
		t.Fatalf("sell after skip: %v", err)
	}
	h := sale.Proceeds
	if h < 0 {
		t.Fatalf("negative proceeds %d", h)
	}
	checkSessionIdentities(t, sess)
}

func TestEndTurnBlockedByOpenSubgame(t *testing.T) {
	sess := newTestSession(t, 17)
	for _, phase := range []Phase{PhaseAwaitingRoll, PhaseBonus, PhaseOfferPending, PhaseHolding} {
		sess.Phase = phase
		if _, err := sess.EndTurn(); !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("phase %q: err = %v, want ErrInvalidAction", phase, err)
		}
	}
}

func TestResolveBonusShape(t *testing.T) {
	sess := newTestSession(t, 19)
	p := sess.activePlayer()
	sess.Phase = PhaseBonus

	res, err := sess.ResolveBonus()
	if err != nil {
		t.Fatalf("ResolveBonus: %v", err)
	}
	if res.DiceRoll < 1 || res.DiceRoll > DieSides {
		t.Fatalf("dice roll = %d", res.DiceRoll)
	}
	if len(res.Flips) != res.DiceRoll {
		t.Fatalf("%d flips for a roll of %d", len(res.Flips), res.DiceRoll)
	}
	successes := int64(0)
	for _, ok := range res.Flips {
		if ok {
			successes++
		}
	}
	if res.Bonus != successes*FlipBonus {
		t.Fatalf("bonus = %d, want %d", res.Bonus, successes*FlipBonus)
	}
	if p.Cash != StartingCash+res.Bonus {
		t.Fatalf("cash = %d, want %d", p.Cash, StartingCash+res.Bonus)
	}
	if sess.Phase != PhaseAwaitingTurnEnd {
		t.Fatalf("phase = %q", sess.Phase)
	}
	if res.Bonus > 0 && len(p.History) != 1 {
		t.Fatalf("positive bonus should append one history row")
	}
	checkSessionIdentities(t, sess)
}

func TestEndTurnRotationAndTermination(t *testing.T) {
	sess := newTestSession(t, 23, "Aiko", "Benji", "Chie")
	turns := 0
	for !sess.Finished {
		sess.Phase = PhaseAwaitingTurnEnd
		res, err := sess.EndTurn()
		if err != nil {
			t.Fatalf("EndTurn: %v", err)
		}
		turns++
		if !res.Finished && res.NextSeat != turns%3 {
			t.Fatalf("after %d ends seat = %d, want %d", turns, res.NextSeat, turns%3)
		}
	}
	if turns != MaxTurns*3 {
		t.Fatalf("game ran %d player-turns, want %d", turns, MaxTurns*3)
	}
	if _, err := sess.EndTurn(); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("err = %v, want ErrGameFinished", err)
	}
	if _, err := sess.RollDice(); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("roll after finish: err = %v, want ErrGameFinished", err)
	}
}

// TestFullGameRandomPolicy drives a complete 2-player game through the real
// state machine, checking the accounting identities after every action.
func TestFullGameRandomPolicy(t *testing.T) {
	sess := newTestSession(t, 29)
	policy := rand.New(rand.NewSource(31))

	playerTurns := 0
	for !sess.Finished {
		if _, err := sess.RollDice(); err != nil {
			t.Fatalf("turn %d: roll: %v", sess.Turn, err)
		}
		checkSessionIdentities(t, sess)

		switch sess.Phase {
		case PhaseBonus:
			if _, err := sess.ResolveBonus(); err != nil {
				t.Fatalf("turn %d: bonus: %v", sess.Turn, err)
			}
		case PhaseOfferPending:
			_, err := sess.DecideInvestment(policy.Intn(2) == 0)
			if err != nil && !errors.Is(err, ErrInsufficientFunds) {
				t.Fatalf("turn %d: decide: %v", sess.Turn, err)
			}
		}
		checkSessionIdentities(t, sess)

		if sess.Phase == PhaseHolding {
			for steps := policy.Intn(5); steps > 0; steps-- {
				if _, err := sess.AdvanceCandle(); err != nil {
					break
				}
			}
			if policy.Intn(2) == 0 {
				if _, err := sess.SkipToEnd(); err != nil {
					t.Fatalf("turn %d: skip: %v", sess.Turn, err)
				}
			}
			if _, err := sess.SellHere(); err != nil {
				t.Fatalf("turn %d: sell: %v", sess.Turn, err)
			}
		}
		checkSessionIdentities(t, sess)

		if _, err := sess.EndTurn(); err != nil {
			t.Fatalf("turn %d: end: %v", sess.Turn, err)
		}
		playerTurns++
	}

	if playerTurns != MaxTurns*2 {
		t.Fatalf("played %d player-turns, want %d", playerTurns, MaxTurns*2)
	}

	rows := sess.Standings()
	if len(rows) != 2 {
		t.Fatalf("standings rows = %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Equity < rows[i].Equity {
			t.Fatalf("standings not sorted: %d before %d", rows[i-1].Equity, rows[i].Equity)
		}
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Fatalf("rank = %d at index %d", row.Rank, i)
		}
		if row.Equity != sess.Players[row.Seat].Equity() {
			t.Fatalf("standings equity mismatch for seat %d", row.Seat)
		}
	}
}

func TestStandingsOrder(t *testing.T) {
	sess := newTestSession(t, 37, "Aiko", "Benji", "Chie")
	sess.Players[0].Cash = 4000
	sess.Players[1].Cash = 9000
	sess.Players[2].Cash = 6000

	rows := sess.Standings()
	if rows[0].Seat != 1 || rows[1].Seat != 2 || rows[2].Seat != 0 {
		t.Fatalf("unexpected order: %+v", rows)
	}
}
