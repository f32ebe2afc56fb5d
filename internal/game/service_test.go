package game

import (
	"errors"
	"testing"
)

func TestServiceStartGameValidation(t *testing.T) {
	svc := NewServiceWithSeed(nil, 1)
	if _, err := svc.StartGame([]string{"solo"}); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("err = %v, want ErrInvalidPlayerCount", err)
	}

	view, err := svc.StartGame([]string{"Aiko", "Benji"})
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if view.ID == "" {
		t.Fatalf("expected a session id")
	}
	if view.Turn != 1 || view.Phase != PhaseAwaitingRoll || view.Finished {
		t.Fatalf("unexpected initial view: %+v", view)
	}
	if len(view.Players) != 2 || view.Players[0].Cash != StartingCash {
		t.Fatalf("unexpected players: %+v", view.Players)
	}
	if len(view.Board) != BoardCells {
		t.Fatalf("board cells = %d", len(view.Board))
	}
}

func TestServiceUnknownGame(t *testing.T) {
	svc := NewServiceWithSeed(nil, 1)
	if _, err := svc.RollDice("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
	if _, err := svc.View("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

func TestServiceSeededGamesReproduce(t *testing.T) {
	a, err := NewServiceWithSeed(nil, 99).StartGame([]string{"Aiko", "Benji"})
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	b, err := NewServiceWithSeed(nil, 99).StartGame([]string{"Aiko", "Benji"})
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	for i := range a.Board {
		if a.Board[i] != b.Board[i] {
			t.Fatalf("seeded boards diverge at cell %d", i)
		}
	}
}

func TestServiceActionRoundTrip(t *testing.T) {
	svc := NewServiceWithSeed(nil, 7)
	view, err := svc.StartGame([]string{"Aiko", "Benji"})
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	roll, err := svc.RollDice(view.ID)
	if err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if roll.Roll < 1 || roll.Roll > DieSides {
		t.Fatalf("roll = %d", roll.Roll)
	}

	got, err := svc.View(view.ID)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if got.Players[0].Position != roll.NewPosition {
		t.Fatalf("view position = %d, roll said %d",
			got.Players[0].Position, roll.NewPosition)
	}

	if _, err := svc.Statement(view.ID, 0); err != nil {
		t.Fatalf("Statement: %v", err)
	}
	if _, err := svc.Statement(view.ID, 9); err == nil {
		t.Fatalf("expected out-of-range seat to fail")
	}
	if _, err := svc.Standings(view.ID); err != nil {
		t.Fatalf("Standings: %v", err)
	}
}
