package game

type RollResult struct {
	Roll        int      `json:"roll"`
	OldPosition int      `json:"old_position"`
	NewPosition int      `json:"new_position"`
	Cell        CellType `json:"cell_type"`
	Messages    []string `json:"messages"`
	Phase       Phase    `json:"phase"`
}

type BonusResult struct {
	DiceRoll int      `json:"dice_roll"`
	Flips    []bool   `json:"flips"`
	Bonus    int64    `json:"bonus"`
	Messages []string `json:"messages"`
}

type DecisionStatus string

const (
	DecisionAccepted          DecisionStatus = "accepted"
	DecisionDeclined          DecisionStatus = "declined"
	DecisionInsufficientFunds DecisionStatus = "insufficient_funds"
)

type InvestmentDecision struct {
	Status   DecisionStatus `json:"status"`
	Kind     AssetKind      `json:"kind,omitempty"`
	Amount   int64          `json:"amount,omitempty"`
	Messages []string       `json:"messages"`
}

type CandleView struct {
	Cursor     int    `json:"cursor"`
	Total      int    `json:"total"`
	Candle     Candle `json:"candle"`
	Invested   int64  `json:"invested"`
	MarkValue  int64  `json:"mark_value"`
	ProfitLoss int64  `json:"profit_loss"`
	AtEnd      bool   `json:"at_end"`
}

type SaleResult struct {
	Proceeds   int64  `json:"proceeds"`
	ProfitLoss int64  `json:"profit_loss"`
	Message    string `json:"message"`
}

type TurnEndResult struct {
	NextSeat int  `json:"next_seat"`
	NextTurn int  `json:"next_turn"`
	Finished bool `json:"finished"`
}

type StandingsRow struct {
	Rank   int    `json:"rank"`
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Equity int64  `json:"equity"`
	Cash   int64  `json:"cash"`
	Profit int64  `json:"profit"`
}

type PlayerSummary struct {
	Seat     int    `json:"seat"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Cash     int64  `json:"cash"`
	Equity   int64  `json:"equity"`
	Profit   int64  `json:"profit"`
}

type OfferView struct {
	Kind     AssetKind `json:"kind"`
	Amount   int64     `json:"amount"`
	Position int       `json:"position"`
}

type HoldingView struct {
	Kind     AssetKind `json:"kind"`
	Invested int64     `json:"invested"`
	Cursor   int       `json:"cursor"`
	Candles  []Candle  `json:"candles"`
}

type SessionView struct {
	ID         string          `json:"id"`
	Turn       int             `json:"turn"`
	ActiveSeat int             `json:"active_seat"`
	Phase      Phase           `json:"phase"`
	Finished   bool            `json:"finished"`
	Board      Board           `json:"board"`
	Players    []PlayerSummary `json:"players"`
	Offer      *OfferView      `json:"offer,omitempty"`
	Holding    *HoldingView    `json:"holding,omitempty"`
}

type StatementView struct {
	Seat             int                 `json:"seat"`
	Name             string              `json:"name"`
	Cash             int64               `json:"cash"`
	Assets           map[AssetKind]int64 `json:"assets"`
	Liabilities      map[string]int64    `json:"liabilities"`
	TotalAssets      int64               `json:"total_assets"`
	TotalLiabilities int64               `json:"total_liabilities"`
	Equity           int64               `json:"equity"`
	Revenue          int64               `json:"revenue"`
	Expenses         int64               `json:"expenses"`
	Profit           int64               `json:"profit"`
	CFOperating      int64               `json:"cf_operating"`
	CFInvesting      int64               `json:"cf_investing"`
	CFFinancing      int64               `json:"cf_financing"`
	History          []Transaction       `json:"history"`
}
