package game

import "fmt"

// applyCellEffect resolves the landed cell against the active player's
// ledger and sets the phase the turn moves into. Profit, loss and debt
// cells settle immediately; investment opens a pending offer and bonus
// defers to the minigame.
func (s *Session) applyCellEffect(p *Player, cell CellType) []string {
	switch cell {
	case CellNothing:
		s.Phase = PhaseAwaitingTurnEnd
		return []string{"Nothing happened."}

	case CellProfit:
		event := profitEvents[s.rng.Intn(len(profitEvents))]
		amount := event.draw(s.rng)
		p.RecordRevenue(s.Turn, amount, event.Reason)
		s.Phase = PhaseAwaitingTurnEnd
		return []string{fmt.Sprintf("%s %s", event.Reason, SignedYen(amount))}

	case CellLoss:
		event := lossEvents[s.rng.Intn(len(lossEvents))]
		amount := event.draw(s.rng)
		p.RecordExpense(s.Turn, amount, event.Reason)
		s.Phase = PhaseAwaitingTurnEnd
		return []string{fmt.Sprintf("%s %s", event.Reason, SignedYen(-amount))}

	case CellDebt:
		amount := drawAmount(s.rng, debtMin, debtMax)
		p.RecordBorrowing(s.Turn, amount, "working capital loan")
		s.Phase = PhaseAwaitingTurnEnd
		return []string{fmt.Sprintf("Took out a loan %s (liabilities up)", SignedYen(amount))}

	case CellInvestment:
		kind := offerKinds[s.rng.Intn(len(offerKinds))]
		amount := drawAmount(s.rng, offerMin, offerMax)
		s.offer = &InvestmentOffer{
			Kind:     kind,
			Amount:   amount,
			Position: p.Position,
		}
		s.Phase = PhaseOfferPending
		return []string{fmt.Sprintf("Invest in %s? Offer amount: %s", kind, FormatYen(amount))}

	case CellBonus:
		s.Phase = PhaseBonus
		return []string{"Bonus time! Take the bottle flip challenge."}
	}

	s.Phase = PhaseAwaitingTurnEnd
	return []string{fmt.Sprintf("unknown cell type %q", cell)}
}
