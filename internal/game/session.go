package game

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseAwaitingRoll    Phase = "awaiting_roll"
	PhaseBonus           Phase = "bonus"
	PhaseOfferPending    Phase = "offer_pending"
	PhaseHolding         Phase = "holding"
	PhaseAwaitingTurnEnd Phase = "awaiting_turn_end"
)

type InvestmentOffer struct {
	Kind     AssetKind
	Amount   int64
	Position int
}

type Holding struct {
	Kind     AssetKind
	Invested int64
	Candles  []Candle
	Cursor   int
}

// Session is one full game. All state lives here; nothing is shared across
// sessions. The mutex is taken by the Service wrappers around every action,
// so the action methods themselves run single-threaded.
type Session struct {
	ID         string
	Turn       int
	ActiveSeat int
	Players    []*Player
	Board      Board
	Phase      Phase
	Finished   bool

	offer   *InvestmentOffer
	holding *Holding

	rng *rand.Rand
	mu  sync.Mutex
}

// NewSession validates the seat names, deals starting cash and generates
// the board. The random source is owned by the session so a fixed seed
// reproduces the whole game.
func NewSession(names []string, rng *rand.Rand) (*Session, error) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, ErrInvalidPlayerCount
	}
	players := make([]*Player, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		players[i] = NewPlayer(name, i)
	}
	return &Session{
		ID:      uuid.NewString(),
		Turn:    1,
		Players: players,
		Board:   GenerateBoard(rng),
		Phase:   PhaseAwaitingRoll,
		rng:     rng,
	}, nil
}

func (s *Session) activePlayer() *Player {
	return s.Players[s.ActiveSeat]
}

// RollDice moves the active player and resolves the landed cell. Only legal
// at the start of a turn.
func (s *Session) RollDice() (RollResult, error) {
	if s.Finished {
		return RollResult{}, ErrGameFinished
	}
	if s.Phase != PhaseAwaitingRoll {
		return RollResult{}, ErrInvalidAction
	}

	p := s.activePlayer()
	roll := s.rng.Intn(DieSides) + 1
	old := p.Position
	p.Position = (p.Position + roll) % BoardCells
	cell := s.Board[p.Position]
	messages := s.applyCellEffect(p, cell)

	return RollResult{
		Roll:        roll,
		OldPosition: old,
		NewPosition: p.Position,
		Cell:        cell,
		Messages:    messages,
		Phase:       s.Phase,
	}, nil
}

// ResolveBonus runs the bottle flip minigame after a bonus-cell landing.
// One invocation per landing; the turn then waits to be ended.
func (s *Session) ResolveBonus() (BonusResult, error) {
	if s.Finished {
		return BonusResult{}, ErrGameFinished
	}
	if s.Phase != PhaseBonus {
		return BonusResult{}, ErrInvalidAction
	}
	result := s.runBonusRound(s.activePlayer())
	s.Phase = PhaseAwaitingTurnEnd
	return result, nil
}

// DecideInvestment settles a pending offer. Declining clears it without
// touching the ledger. Accepting checks affordability first: with cash
// short the offer is cleared, nothing mutates and ErrInsufficientFunds is
// reported; otherwise the purchase is booked and the price path opens.
func (s *Session) DecideInvestment(accept bool) (InvestmentDecision, error) {
	if s.Finished {
		return InvestmentDecision{}, ErrGameFinished
	}
	if s.Phase != PhaseOfferPending || s.offer == nil {
		return InvestmentDecision{}, ErrInvalidAction
	}

	offer := s.offer
	s.offer = nil

	if !accept {
		s.Phase = PhaseAwaitingTurnEnd
		return InvestmentDecision{
			Status:   DecisionDeclined,
			Kind:     offer.Kind,
			Amount:   offer.Amount,
			Messages: []string{"Passed on the investment"},
		}, nil
	}

	p := s.activePlayer()
	if p.Cash < offer.Amount {
		s.Phase = PhaseAwaitingTurnEnd
		return InvestmentDecision{
			Status: DecisionInsufficientFunds,
			Kind:   offer.Kind,
			Amount: offer.Amount,
			Messages: []string{fmt.Sprintf(
				"Not enough cash to invest (needed %s)", FormatYen(offer.Amount))},
		}, ErrInsufficientFunds
	}

	p.RecordAssetPurchase(s.Turn, offer.Kind, offer.Amount,
		fmt.Sprintf("acquired %s", offer.Kind))
	s.holding = &Holding{
		Kind:     offer.Kind,
		Invested: offer.Amount,
		Candles:  generateCandles(s.rng),
	}
	s.Phase = PhaseHolding

	return InvestmentDecision{
		Status: DecisionAccepted,
		Kind:   offer.Kind,
		Amount: offer.Amount,
		Messages: []string{fmt.Sprintf(
			"Invested in %s %s (assets up)", offer.Kind, SignedYen(-offer.Amount))},
	}, nil
}

// AdvanceCandle moves the viewing cursor one step forward. At the final
// candle it is a warning no-op.
func (s *Session) AdvanceCandle() (CandleView, error) {
	if s.Finished {
		return CandleView{}, ErrGameFinished
	}
	if s.Phase != PhaseHolding || s.holding == nil {
		return CandleView{}, ErrInvalidAction
	}
	h := s.holding
	if h.Cursor >= len(h.Candles)-1 {
		return s.candleView(), ErrInvalidAction
	}
	h.Cursor++
	return s.candleView(), nil
}

// SkipToEnd jumps the cursor to the final candle without selling.
func (s *Session) SkipToEnd() (CandleView, error) {
	if s.Finished {
		return CandleView{}, ErrGameFinished
	}
	if s.Phase != PhaseHolding || s.holding == nil {
		return CandleView{}, ErrInvalidAction
	}
	s.holding.Cursor = len(s.holding.Candles) - 1
	return s.candleView(), nil
}

// SellHere realizes the holding at the current cursor: proceeds are the
// floored mark-to-model value, the invested book value leaves the asset
// category and the price path is discarded.
func (s *Session) SellHere() (SaleResult, error) {
	if s.Finished {
		return SaleResult{}, ErrGameFinished
	}
	if s.Phase != PhaseHolding || s.holding == nil {
		return SaleResult{}, ErrInvalidAction
	}

	h := s.holding
	p := s.activePlayer()
	proceeds := int64(math.Floor(markValue(h.Invested, h.Candles, h.Cursor)))
	profitLoss := proceeds - h.Invested

	var reason string
	if profitLoss >= 0 {
		reason = fmt.Sprintf("sold %s (gain %s)", h.Kind, SignedYen(profitLoss))
	} else {
		reason = fmt.Sprintf("sold %s (loss %s)", h.Kind, FormatYen(profitLoss))
	}
	p.RecordAssetSale(s.Turn, h.Kind, proceeds, h.Invested, reason)

	s.holding = nil
	s.Phase = PhaseAwaitingTurnEnd

	return SaleResult{
		Proceeds:   proceeds,
		ProfitLoss: profitLoss,
		Message:    fmt.Sprintf("Sold %s %s", h.Kind, SignedYen(proceeds)),
	}, nil
}

// EndTurn passes play to the next seat. An unresolved bonus, offer or
// holding blocks it: a holding must be sold (at any cursor, including after
// SkipToEnd) before the turn can end. When the last seat finishes the turn
// counter advances, and past MaxTurns the game is over.
func (s *Session) EndTurn() (TurnEndResult, error) {
	if s.Finished {
		return TurnEndResult{}, ErrGameFinished
	}
	if s.Phase != PhaseAwaitingTurnEnd {
		return TurnEndResult{}, ErrInvalidAction
	}

	s.ActiveSeat = (s.ActiveSeat + 1) % len(s.Players)
	if s.ActiveSeat == 0 {
		s.Turn++
	}
	if s.Turn > MaxTurns {
		s.Finished = true
	} else {
		s.Phase = PhaseAwaitingRoll
	}

	return TurnEndResult{
		NextSeat: s.ActiveSeat,
		NextTurn: s.Turn,
		Finished: s.Finished,
	}, nil
}

// Standings ranks players by equity descending; ties keep seat order.
func (s *Session) Standings() []StandingsRow {
	ranked := make([]*Player, len(s.Players))
	copy(ranked, s.Players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Equity() > ranked[j].Equity()
	})

	rows := make([]StandingsRow, len(ranked))
	for i, p := range ranked {
		rows[i] = StandingsRow{
			Rank:   i + 1,
			Seat:   p.Seat,
			Name:   p.Name,
			Equity: p.Equity(),
			Cash:   p.Cash,
			Profit: p.Profit(),
		}
	}
	return rows
}

// View is the wire snapshot of the session.
func (s *Session) View() SessionView {
	view := SessionView{
		ID:         s.ID,
		Turn:       s.Turn,
		ActiveSeat: s.ActiveSeat,
		Phase:      s.Phase,
		Finished:   s.Finished,
		Board:      s.Board,
		Players:    make([]PlayerSummary, len(s.Players)),
	}
	for i, p := range s.Players {
		view.Players[i] = PlayerSummary{
			Seat:     p.Seat,
			Name:     p.Name,
			Position: p.Position,
			Cash:     p.Cash,
			Equity:   p.Equity(),
			Profit:   p.Profit(),
		}
	}
	if s.offer != nil {
		view.Offer = &OfferView{
			Kind:     s.offer.Kind,
			Amount:   s.offer.Amount,
			Position: s.offer.Position,
		}
	}
	if s.holding != nil {
		view.Holding = &HoldingView{
			Kind:     s.holding.Kind,
			Invested: s.holding.Invested,
			Cursor:   s.holding.Cursor,
			Candles:  s.holding.Candles[:s.holding.Cursor+1],
		}
	}
	return view
}

// Statement builds the full financial statements for one seat.
func (s *Session) Statement(seat int) (StatementView, error) {
	if seat < 0 || seat >= len(s.Players) {
		return StatementView{}, fmt.Errorf("seat %d out of range: %w", seat, ErrInvalidAction)
	}
	p := s.Players[seat]
	assets := make(map[AssetKind]int64, len(p.Assets))
	for k, v := range p.Assets {
		assets[k] = v
	}
	liabilities := make(map[string]int64, len(p.Liabilities))
	for k, v := range p.Liabilities {
		liabilities[k] = v
	}
	history := make([]Transaction, len(p.History))
	copy(history, p.History)

	return StatementView{
		Seat:             p.Seat,
		Name:             p.Name,
		Cash:             p.Cash,
		Assets:           assets,
		Liabilities:      liabilities,
		TotalAssets:      p.TotalAssets(),
		TotalLiabilities: p.TotalLiabilities(),
		Equity:           p.Equity(),
		Revenue:          p.Revenue,
		Expenses:         p.Expenses,
		Profit:           p.Profit(),
		CFOperating:      p.CFOperating,
		CFInvesting:      p.CFInvesting,
		CFFinancing:      p.CFFinancing,
		History:          history,
	}, nil
}

func (s *Session) candleView() CandleView {
	h := s.holding
	mark := int64(math.Floor(markValue(h.Invested, h.Candles, h.Cursor)))
	return CandleView{
		Cursor:     h.Cursor,
		Total:      len(h.Candles),
		Candle:     h.Candles[h.Cursor],
		Invested:   h.Invested,
		MarkValue:  mark,
		ProfitLoss: mark - h.Invested,
		AtEnd:      h.Cursor == len(h.Candles)-1,
	}
}
