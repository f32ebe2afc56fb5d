package game

import (
	"errors"
	"strconv"
)

const (
	BoardCells = 72
	MaxTurns   = 12

	MinPlayers = 2
	MaxPlayers = 4

	StartingCash = int64(5000)

	InvestmentCells = 5
	BonusCells      = 2

	DieSides    = 6
	FlipBonus   = int64(500)
	CandleCount = 50
)

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameFinished       = errors.New("game is finished")
	ErrInvalidPlayerCount = errors.New("player count must be between 2 and 4")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidAction      = errors.New("action not allowed in current phase")
)

type CellType string

const (
	CellNothing    CellType = "nothing"
	CellProfit     CellType = "profit"
	CellLoss       CellType = "loss"
	CellDebt       CellType = "debt"
	CellInvestment CellType = "investment"
	CellBonus      CellType = "bonus"
)

type AssetKind string

const (
	AssetProperty  AssetKind = "property"
	AssetInventory AssetKind = "inventory"
)

// FormatYen renders an amount with thousands separators, e.g. -12,500.
func FormatYen(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	out := make([]byte, 0, len(s)+len(s)/3+1)
	if neg {
		out = append(out, '-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

// SignedYen is FormatYen with an explicit plus for non-negative amounts.
func SignedYen(v int64) string {
	if v >= 0 {
		return "+" + FormatYen(v)
	}
	return FormatYen(v)
}
