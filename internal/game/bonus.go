package game

import "fmt"

// runBonusRound rolls one die and performs that many fair bottle flips.
// Every success pays FlipBonus; the combined payout is booked as revenue.
func (s *Session) runBonusRound(p *Player) BonusResult {
	roll := s.rng.Intn(DieSides) + 1
	flips := make([]bool, roll)
	successes := 0
	for i := range flips {
		flips[i] = s.rng.Intn(2) == 0
		if flips[i] {
			successes++
		}
	}

	bonus := int64(successes) * FlipBonus
	messages := []string{fmt.Sprintf("Die shows %d: %d bottle flip attempts", roll, roll)}
	for i, ok := range flips {
		if ok {
			messages = append(messages, fmt.Sprintf("Flip %d: landed", i+1))
		} else {
			messages = append(messages, fmt.Sprintf("Flip %d: tipped over", i+1))
		}
	}
	if bonus > 0 {
		p.RecordRevenue(s.Turn, bonus, "bottle flip success")
		messages = append(messages, fmt.Sprintf("Bonus earned %s", SignedYen(bonus)))
	} else {
		messages = append(messages, "No luck, no bonus this time")
	}

	return BonusResult{
		DiceRoll: roll,
		Flips:    flips,
		Bonus:    bonus,
		Messages: messages,
	}
}
