package game

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Service owns the in-process session registry. Each session carries its
// own lock and random source; the registry lock only guards the map, so
// concurrent games never contend with each other.
type Service struct {
	log      *slog.Logger
	mu       sync.Mutex
	sessions map[string]*Session
	seed     func() int64
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		log:      logger,
		sessions: make(map[string]*Session),
		seed:     func() int64 { return time.Now().UnixNano() },
	}
}

// NewServiceWithSeed builds a service whose games are reproducible: the
// n-th game started uses seed+n as its random seed.
func NewServiceWithSeed(logger *slog.Logger, seed int64) *Service {
	s := NewService(logger)
	var n int64
	var mu sync.Mutex
	s.seed = func() int64 {
		mu.Lock()
		defer mu.Unlock()
		n++
		return seed + n - 1
	}
	return s
}

// StartGame creates an isolated session with 2..4 seated players.
func (s *Service) StartGame(names []string) (SessionView, error) {
	rng := rand.New(rand.NewSource(s.seed()))
	sess, err := NewSession(names, rng)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Info("game started", "game_id", sess.ID, "players", len(names))
	return sess.View(), nil
}

func (s *Service) lookup(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return sess, nil
}

// withSession runs fn with the session's lock held.
func (s *Service) withSession(id string, fn func(*Session) error) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

func (s *Service) View(id string) (SessionView, error) {
	var view SessionView
	err := s.withSession(id, func(sess *Session) error {
		view = sess.View()
		return nil
	})
	return view, err
}

func (s *Service) RollDice(id string) (RollResult, error) {
	var result RollResult
	err := s.withSession(id, func(sess *Session) error {
		var err error
		result, err = sess.RollDice()
		if err == nil {
			s.log.Info("dice rolled", "game_id", id,
				"seat", sess.ActiveSeat, "roll", result.Roll, "cell", result.Cell)
		}
		return err
	})
	return result, err
}

func (s *Service) ResolveBonus(id string) (BonusResult, error) {
	var result BonusResult
	err := s.withSession(id, func(sess *Session) error {
		var err error
		result, err = sess.ResolveBonus()
		if err == nil {
			s.log.Info("bonus resolved", "game_id", id,
				"seat", sess.ActiveSeat, "bonus", result.Bonus)
		}
		return err
	})
	return result, err
}

func (s *Service) DecideInvestment(id string, accept bool) (InvestmentDecision, error) {
	var result InvestmentDecision
	err := s.withSession(id, func(sess *Session) error {
		var err error
		result, err = sess.DecideInvestment(accept)
		if result.Status != "" {
			s.log.Info("investment decided", "game_id", id,
				"seat", sess.ActiveSeat, "status", result.Status)
		}
		return err
	})
	return result, err
}

func (s *Service) AdvanceCandle(id string) (CandleView, error) {
	var result CandleView
	err := s.withSession(id, func(sess *Session) error {
		var err error
		result, err = sess.AdvanceCandle()
		return err
	})
	return result, err
}

func (s *Service) SkipToEnd(id string) (CandleView, error) {
	var result CandleView
	err := s.withSession(id, func(sess *Session) error {
		var err error
		result, err = sess.SkipToEnd()
		return err
	})
	return result, err
}

func (s *Service) SellHere(id string) (SaleResult, error) {
	var result SaleResult
	err := s.withSession(id, func(sess *Session) error {
		var err error
		result, err = sess.SellHere()
		if err == nil {
			s.log.Info("holding sold", "game_id", id,
				"seat", sess.ActiveSeat, "proceeds", result.Proceeds,
				"profit_loss", result.ProfitLoss)
		}
		return err
	})
	return result, err
}

func (s *Service) EndTurn(id string) (TurnEndResult, error) {
	var result TurnEndResult
	err := s.withSession(id, func(sess *Session) error {
		var err error
		result, err = sess.EndTurn()
		if err == nil {
			s.log.Info("turn ended", "game_id", id,
				"next_seat", result.NextSeat, "next_turn", result.NextTurn,
				"finished", result.Finished)
		}
		return err
	})
	return result, err
}

func (s *Service) Standings(id string) ([]StandingsRow, error) {
	var rows []StandingsRow
	err := s.withSession(id, func(sess *Session) error {
		rows = sess.Standings()
		return nil
	})
	return rows, err
}

func (s *Service) Statement(id string, seat int) (StatementView, error) {
	var view StatementView
	err := s.withSession(id, func(sess *Session) error {
		var err error
		view, err = sess.Statement(seat)
		return err
	})
	return view, err
}
