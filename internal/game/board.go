package game

import "math/rand"

type Board []CellType

// cellWeights is the proportional fill for the random part of the board.
// Investment and bonus counts are forced afterwards, so their weights only
// shape the pre-override layout. The weights sum to BoardCells.
var cellWeights = []struct {
	cell   CellType
	weight int
}{
	{CellNothing, 20},
	{CellProfit, 15},
	{CellLoss, 15},
	{CellDebt, 10},
	{CellInvestment, 10},
	{CellBonus, 2},
}

// GenerateBoard builds the 72-cell track: a shuffled weighted bag, backfilled
// with nothing-cells, then exactly InvestmentCells positions forced to
// investment and exactly BonusCells of the remaining positions forced to
// bonus. The override order (investment before bonus) is deliberate and
// load-bearing for the resulting distribution. Investment and bonus cells
// left over from the weighted fill are demoted so the forced counts are
// exact.
func GenerateBoard(rng *rand.Rand) Board {
	bag := make([]CellType, 0, BoardCells)
	for _, w := range cellWeights {
		for i := 0; i < w.weight; i++ {
			bag = append(bag, w.cell)
		}
	}
	rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})

	board := make(Board, BoardCells)
	for i := range board {
		if i < len(bag) {
			board[i] = bag[i]
		} else {
			board[i] = CellNothing
		}
	}

	forced := make(map[int]bool, InvestmentCells+BonusCells)
	for _, pos := range rng.Perm(BoardCells)[:InvestmentCells] {
		board[pos] = CellInvestment
		forced[pos] = true
	}

	open := make([]int, 0, BoardCells)
	for i, cell := range board {
		if cell != CellInvestment {
			open = append(open, i)
		}
	}
	for _, idx := range rng.Perm(len(open))[:BonusCells] {
		board[open[idx]] = CellBonus
		forced[open[idx]] = true
	}

	for i, cell := range board {
		if !forced[i] && (cell == CellInvestment || cell == CellBonus) {
			board[i] = CellNothing
		}
	}

	return board
}

// Count returns how many cells on the board have the given type.
func (b Board) Count(cell CellType) int {
	n := 0
	for _, c := range b {
		if c == cell {
			n++
		}
	}
	return n
}
