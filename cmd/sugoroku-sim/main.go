package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sugoroku/internal/config"
	"sugoroku/internal/game"
)

// Self-play driver. Runs full games against the engine with a random
// policy and fails loudly if any bookkeeping identity breaks.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadSimFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	seed := cfg.SeedOverride
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	policy := rand.New(rand.NewSource(seed))
	svc := game.NewServiceWithSeed(logger, seed)

	logger.Info("simulator started", "games", cfg.Games, "seed", seed)

	var totalActions, negativeCash int
	var equitySum int64
	completed := 0
	for i := 0; i < cfg.Games; i++ {
		if ctx.Err() != nil {
			logger.Info("simulator interrupted", "completed", completed)
			break
		}
		id, actions, err := playGame(svc, policy)
		if err != nil {
			logger.Error("invariant violated", "game", i, "err", err)
			os.Exit(1)
		}
		totalActions += actions

		rows, err := svc.Standings(id)
		if err != nil {
			logger.Error("standings read failed", "game", i, "err", err)
			os.Exit(1)
		}
		equitySum += rows[0].Equity
		for _, row := range rows {
			if row.Cash < 0 {
				negativeCash++
			}
		}
		completed++
	}

	if completed > 0 {
		logger.Info("simulator finished",
			"games", completed,
			"actions", totalActions,
			"avg_winner_equity", equitySum/int64(completed),
			"players_ending_negative", negativeCash,
		)
	}
}

func playGame(svc *game.Service, policy *rand.Rand) (string, int, error) {
	playerCount := game.MinPlayers + policy.Intn(game.MaxPlayers-game.MinPlayers+1)
	names := make([]string, playerCount)
	for i := range names {
		names[i] = fmt.Sprintf("bot-%d", i+1)
	}
	view, err := svc.StartGame(names)
	if err != nil {
		return "", 0, err
	}
	id := view.ID

	actions := 0
	for !view.Finished {
		actions++
		if actions > 20_000 {
			return id, actions, fmt.Errorf("game %s did not terminate", id)
		}

		switch view.Phase {
		case game.PhaseAwaitingRoll:
			_, err = svc.RollDice(id)
		case game.PhaseBonus:
			_, err = svc.ResolveBonus(id)
		case game.PhaseOfferPending:
			_, err = svc.DecideInvestment(id, policy.Intn(2) == 0)
			if errors.Is(err, game.ErrInsufficientFunds) {
				err = nil
			}
		case game.PhaseHolding:
			switch policy.Intn(5) {
			case 0:
				_, err = svc.SkipToEnd(id)
			case 1:
				_, err = svc.SellHere(id)
			default:
				var cv game.CandleView
				cv, err = svc.AdvanceCandle(id)
				if errors.Is(err, game.ErrInvalidAction) {
					// Already at the final candle; the only move left is to sell.
					_, err = svc.SellHere(id)
				} else if err == nil && cv.AtEnd {
					_, err = svc.SellHere(id)
				}
			}
		case game.PhaseAwaitingTurnEnd:
			_, err = svc.EndTurn(id)
		default:
			return id, actions, fmt.Errorf("game %s in unknown phase %q", id, view.Phase)
		}
		if err != nil {
			return id, actions, err
		}

		view, err = svc.View(id)
		if err != nil {
			return id, actions, err
		}
		if err := checkInvariants(svc, view); err != nil {
			return id, actions, err
		}
	}
	return id, actions, nil
}

func checkInvariants(svc *game.Service, view game.SessionView) error {
	if len(view.Board) != game.BoardCells {
		return fmt.Errorf("board has %d cells", len(view.Board))
	}
	// The finishing turn end leaves the counter one past the limit.
	maxTurn := game.MaxTurns
	if view.Finished {
		maxTurn++
	}
	if view.Turn < 1 || view.Turn > maxTurn {
		return fmt.Errorf("turn %d out of range", view.Turn)
	}
	for _, p := range view.Players {
		if p.Position < 0 || p.Position >= game.BoardCells {
			return fmt.Errorf("seat %d at impossible cell %d", p.Seat, p.Position)
		}
		stmt, err := svc.Statement(view.ID, p.Seat)
		if err != nil {
			return err
		}
		if stmt.Equity != stmt.TotalAssets-stmt.TotalLiabilities {
			return fmt.Errorf("seat %d equity %d != assets %d - liabilities %d",
				p.Seat, stmt.Equity, stmt.TotalAssets, stmt.TotalLiabilities)
		}
		if stmt.Profit != stmt.Revenue-stmt.Expenses {
			return fmt.Errorf("seat %d profit %d != revenue %d - expenses %d",
				p.Seat, stmt.Profit, stmt.Revenue, stmt.Expenses)
		}
		if n := len(stmt.History); n > 0 && stmt.History[n-1].CashAfter != stmt.Cash {
			return fmt.Errorf("seat %d cash %d disagrees with ledger tail %d",
				p.Seat, stmt.Cash, stmt.History[n-1].CashAfter)
		}
	}
	return nil
}
