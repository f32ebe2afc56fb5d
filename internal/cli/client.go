package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sugoroku/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) StartGame(ctx context.Context, playerNames []string) (game.SessionView, error) {
	var out game.SessionView
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games", map[string]any{
		"player_names": playerNames,
	}, &out)
	return out, err
}

func (c *Client) GameState(ctx context.Context, gameID string) (game.SessionView, error) {
	var out game.SessionView
	err := c.jsonRequest(ctx, http.MethodGet, c.gamePath(gameID, ""), nil, &out)
	return out, err
}

func (c *Client) Roll(ctx context.Context, gameID string) (game.RollResult, error) {
	var out game.RollResult
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/roll"), nil, &out)
	return out, err
}

func (c *Client) Bonus(ctx context.Context, gameID string) (game.BonusResult, error) {
	var out game.BonusResult
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/bonus"), nil, &out)
	return out, err
}

// DecideInvestment reports a declined-for-funds outcome through the
// decision payload rather than an error, so callers can render it.
func (c *Client) DecideInvestment(ctx context.Context, gameID string, accept bool) (game.InvestmentDecision, error) {
	var out game.InvestmentDecision
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/investment"), map[string]any{
		"accept": accept,
	}, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			var decision game.InvestmentDecision
			if json.Unmarshal(apiErr.Body, &decision) == nil &&
				decision.Status == game.DecisionInsufficientFunds {
				return decision, nil
			}
		}
		return game.InvestmentDecision{}, err
	}
	return out, nil
}

func (c *Client) AdvanceCandle(ctx context.Context, gameID string) (game.CandleView, error) {
	var out game.CandleView
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/candles/advance"), nil, &out)
	return out, err
}

func (c *Client) SkipToEnd(ctx context.Context, gameID string) (game.CandleView, error) {
	var out game.CandleView
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/candles/skip"), nil, &out)
	return out, err
}

func (c *Client) Sell(ctx context.Context, gameID string) (game.SaleResult, error) {
	var out game.SaleResult
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/sell"), nil, &out)
	return out, err
}

func (c *Client) EndTurn(ctx context.Context, gameID string) (game.TurnEndResult, error) {
	var out game.TurnEndResult
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/end-turn"), nil, &out)
	return out, err
}

func (c *Client) Standings(ctx context.Context, gameID string) ([]game.StandingsRow, error) {
	var out struct {
		Standings []game.StandingsRow `json:"standings"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, c.gamePath(gameID, "/standings"), nil, &out)
	return out.Standings, err
}

func (c *Client) Statement(ctx context.Context, gameID string, seat int) (game.StatementView, error) {
	var out game.StatementView
	err := c.jsonRequest(ctx, http.MethodGet, c.gamePath(gameID, fmt.Sprintf("/players/%d", seat)), nil, &out)
	return out, err
}

func (c *Client) gamePath(gameID, suffix string) string {
	return "/v1/games/" + url.PathEscape(gameID) + suffix
}

// APIError carries the status and raw body of a non-2xx response.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(string(e.Body))
	var wrapped struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(e.Body, &wrapped) == nil && wrapped.Error != "" {
		msg = wrapped.Error
	}
	return fmt.Sprintf("api status %d: %s", e.Status, msg)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: raw}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
