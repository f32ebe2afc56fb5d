package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"sugoroku/internal/game"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

const boardCols = 12

var cellStyles = map[game.CellType]lipgloss.Style{
	game.CellNothing:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	game.CellProfit:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	game.CellLoss:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	game.CellDebt:       lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	game.CellInvestment: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	game.CellBonus:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
}

var cellGlyphs = map[game.CellType]string{
	game.CellNothing:    ".",
	game.CellProfit:     "P",
	game.CellLoss:       "L",
	game.CellDebt:       "D",
	game.CellInvestment: "I",
	game.CellBonus:      "B",
}

var (
	cellBox   = lipgloss.NewStyle().Width(6).Align(lipgloss.Center)
	activeBox = lipgloss.NewStyle().Width(6).Align(lipgloss.Center).Reverse(true)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptPlayerNames() ([]string, error) {
	for {
		fmt.Print("Player names (comma separated, 2-4): ")
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, game.MaxPlayers)
		for _, part := range strings.Split(text, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				names = append(names, part)
			}
		}
		if len(names) >= game.MinPlayers && len(names) <= game.MaxPlayers {
			return names, nil
		}
		printWarn(fmt.Sprintf("Enter %d to %d names.", game.MinPlayers, game.MaxPlayers))
	}
}

func renderSession(view game.SessionView) {
	accent.Printf("\n== TURN %d/%d ==\n", view.Turn, game.MaxTurns)
	if view.Finished {
		printInfo("The game is over. Run `sgr standings` for the result.")
	} else {
		active := view.Players[view.ActiveSeat]
		fmt.Printf("Up now: %s (seat %d), phase %s\n", active.Name, active.Seat, phaseLabel(view.Phase))
	}

	fmt.Printf("%-4s %-14s %8s %12s %12s %12s\n", "SEAT", "NAME", "CELL", "CASH", "EQUITY", "PROFIT")
	for _, p := range view.Players {
		fmt.Printf("%-4d %-14s %8d %12s %12s %12s\n",
			p.Seat,
			truncate(p.Name, 14),
			p.Position,
			game.FormatYen(p.Cash),
			game.FormatYen(p.Equity),
			colorizeYen(p.Profit),
		)
	}

	if view.Offer != nil {
		warn.Printf("Offer on the table: %s for %s. Run `sgr buy` or `sgr pass`.\n",
			view.Offer.Kind, game.FormatYen(view.Offer.Amount))
	}
	if view.Holding != nil {
		cur := view.Holding.Candles[view.Holding.Cursor]
		fmt.Printf("Holding %s, invested %s, candle %d/%d closing at %.2f\n",
			view.Holding.Kind,
			game.FormatYen(view.Holding.Invested),
			view.Holding.Cursor+1, game.CandleCount,
			cur.Close,
		)
	}
	fmt.Println()
}

func phaseLabel(p game.Phase) string {
	switch p {
	case game.PhaseAwaitingRoll:
		return "roll the die"
	case game.PhaseBonus:
		return "bonus round"
	case game.PhaseOfferPending:
		return "investment offer"
	case game.PhaseHolding:
		return "watching the chart"
	case game.PhaseAwaitingTurnEnd:
		return "end the turn"
	default:
		return string(p)
	}
}

func renderRoll(out game.RollResult) {
	accent.Printf("\nRolled a %d: cell %d -> %d (%s)\n", out.Roll, out.OldPosition, out.NewPosition, out.Cell)
	for _, msg := range out.Messages {
		fmt.Println("  " + msg)
	}
	fmt.Println()
}

func renderBonus(out game.BonusResult) {
	accent.Printf("\n== BOTTLE FLIP x%d ==\n", out.DiceRoll)
	for _, msg := range out.Messages {
		fmt.Println("  " + msg)
	}
	if out.Bonus > 0 {
		printSuccess(fmt.Sprintf("Bonus earned: %s", game.FormatYen(out.Bonus)))
	} else {
		printInfo("No flips landed. No bonus this time.")
	}
	fmt.Println()
}

func renderDecision(out game.InvestmentDecision) {
	fmt.Println()
	for _, msg := range out.Messages {
		fmt.Println("  " + msg)
	}
	switch out.Status {
	case game.DecisionAccepted:
		printSuccess(fmt.Sprintf("Bought %s for %s. Run `sgr next` to watch the chart.", out.Kind, game.FormatYen(out.Amount)))
	case game.DecisionDeclined:
		printInfo("Offer declined.")
	case game.DecisionInsufficientFunds:
		printWarn("Not enough cash for that offer. It is gone.")
	}
	fmt.Println()
}

func renderCandle(out game.CandleView) {
	c := out.Candle
	accent.Printf("\nCandle %d/%d\n", out.Cursor+1, out.Total)
	fmt.Printf("O %.2f  H %.2f  L %.2f  C %.2f\n", c.Open, c.High, c.Low, c.Close)
	fmt.Printf("Invested: %s  Mark: %s  P/L: %s\n",
		game.FormatYen(out.Invested),
		game.FormatYen(out.MarkValue),
		colorizeYen(out.ProfitLoss),
	)
	if out.AtEnd {
		printWarn("Final candle. Sell to close out the position.")
	}
	fmt.Println()
}

func renderSale(out game.SaleResult) {
	fmt.Println()
	fmt.Println("  " + out.Message)
	if out.ProfitLoss >= 0 {
		printSuccess(fmt.Sprintf("Sold for %s (%s)", game.FormatYen(out.Proceeds), game.SignedYen(out.ProfitLoss)))
	} else {
		danger.Printf("Sold for %s (%s)\n", game.FormatYen(out.Proceeds), game.SignedYen(out.ProfitLoss))
	}
	fmt.Println()
}

func renderStandings(rows []game.StandingsRow) {
	accent.Println("\n== STANDINGS ==")
	fmt.Printf("%-5s %-4s %-14s %12s %12s %12s\n", "RANK", "SEAT", "NAME", "EQUITY", "CASH", "PROFIT")
	for _, row := range rows {
		fmt.Printf("%-5d %-4d %-14s %12s %12s %12s\n",
			row.Rank,
			row.Seat,
			truncate(row.Name, 14),
			game.FormatYen(row.Equity),
			game.FormatYen(row.Cash),
			colorizeYen(row.Profit),
		)
	}
	fmt.Println()
}

func renderSheet(out game.StatementView) {
	accent.Printf("\n== %s (seat %d) ==\n", out.Name, out.Seat)

	accent.Println("Balance Sheet")
	fmt.Printf("  Cash:              %12s\n", game.FormatYen(out.Cash))
	for kind, v := range out.Assets {
		fmt.Printf("  %-18s %12s\n", titleCase(string(kind))+":", game.FormatYen(v))
	}
	fmt.Printf("  Total assets:      %12s\n", game.FormatYen(out.TotalAssets))
	for name, v := range out.Liabilities {
		fmt.Printf("  %-18s %12s\n", titleCase(name)+":", game.FormatYen(v))
	}
	fmt.Printf("  Total liabilities: %12s\n", game.FormatYen(out.TotalLiabilities))
	fmt.Printf("  Equity:            %12s\n", colorizeYen(out.Equity))

	accent.Println("Profit & Loss")
	fmt.Printf("  Revenue:           %12s\n", game.FormatYen(out.Revenue))
	fmt.Printf("  Expenses:          %12s\n", game.FormatYen(out.Expenses))
	fmt.Printf("  Profit:            %12s\n", colorizeYen(out.Profit))

	accent.Println("Cash Flow")
	fmt.Printf("  Operating:         %12s\n", colorizeYen(out.CFOperating))
	fmt.Printf("  Investing:         %12s\n", colorizeYen(out.CFInvesting))
	fmt.Printf("  Financing:         %12s\n", colorizeYen(out.CFFinancing))

	if len(out.History) > 0 {
		accent.Println("History")
		fmt.Printf("  %-4s %-10s %10s %12s  %s\n", "TURN", "TYPE", "AMOUNT", "CASH AFTER", "REASON")
		for _, tx := range out.History {
			fmt.Printf("  %-4d %-10s %10s %12s  %s\n",
				tx.Turn,
				tx.Type,
				game.FormatYen(tx.Amount),
				game.FormatYen(tx.CashAfter),
				tx.Reason,
			)
		}
	}
	fmt.Println()
}

// renderBoard draws the 72 cells as a 6x12 serpentine grid so adjacent
// indices stay adjacent on screen.
func renderBoard(view game.SessionView) {
	occupants := make(map[int]string, len(view.Players))
	for _, p := range view.Players {
		occupants[p.Position] += fmt.Sprintf("%d", p.Seat+1)
	}
	activePos := -1
	if !view.Finished {
		activePos = view.Players[view.ActiveSeat].Position
	}

	rows := make([]string, 0, len(view.Board)/boardCols)
	for row := 0; row*boardCols < len(view.Board); row++ {
		cells := make([]string, 0, boardCols)
		for col := 0; col < boardCols; col++ {
			idx := serpentineIndex(row, col)
			cell := view.Board[idx]
			label := cellGlyphs[cell]
			if who := occupants[idx]; who != "" {
				label += " " + who
			}
			box := cellBox
			if idx == activePos {
				box = activeBox
			}
			cells = append(cells, box.Render(cellStyles[cell].Render(label)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	fmt.Println(lipgloss.JoinVertical(lipgloss.Left, rows...))
	printInfo("P profit  L loss  D debt  I investment  B bonus  . nothing")
	fmt.Println()
}

// serpentineIndex maps a grid position to a board cell: even rows run
// left to right, odd rows run right to left.
func serpentineIndex(row, col int) int {
	if row%2 == 0 {
		return row*boardCols + col
	}
	return row*boardCols + (boardCols - 1 - col)
}

func colorizeYen(v int64) string {
	text := game.SignedYen(v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
