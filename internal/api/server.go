package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sugoroku/internal/config"
	"sugoroku/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/games", s.handleStartGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.handleGameState)
			r.Post("/roll", s.handleRoll)
			r.Post("/bonus", s.handleBonus)
			r.Post("/investment", s.handleInvestment)
			r.Post("/candles/advance", s.handleAdvanceCandle)
			r.Post("/candles/skip", s.handleSkipToEnd)
			r.Post("/sell", s.handleSell)
			r.Post("/end-turn", s.handleEndTurn)
			r.Get("/standings", s.handleStandings)
			r.Get("/players/{seat}", s.handleStatement)
		})
	})
}

func gameID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PlayerNames []string `json:"player_names"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := s.game.StartGame(in.PlayerNames)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	view, err := s.game.View(gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.RollDice(gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBonus(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.ResolveBonus(gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInvestment(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Accept bool `json:"accept"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := s.game.DecideInvestment(gameID(r), in.Accept)
	if errors.Is(err, game.ErrInsufficientFunds) {
		// Recoverable game outcome: the offer is cleared and the decision
		// payload says so. Still a 400 so naive clients notice.
		writeJSON(w, http.StatusBadRequest, result)
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAdvanceCandle(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.AdvanceCandle(gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSkipToEnd(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.SkipToEnd(gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.SellHere(gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.EndTurn(gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := s.game.Standings(gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": rows})
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	seat, err := strconv.Atoi(chi.URLParam(r, "seat"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid seat")
		return
	}
	view, err := s.game.Statement(gameID(r), seat)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidPlayerCount),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrGameFinished):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
