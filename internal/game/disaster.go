package game

import (
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/hldx/internal/log"
)

// assignDisaster picks the player holding the lowest played card. A tie
// goes to sudden death: tied players keep playing point cards until one
// is strictly lowest or everyone has run out of point cards.
func (g *Game) assignDisaster() error {
	g.setPhase(PhaseAssignDisaster)
	gs := g.State
	gs.Loser = nil

	if gs.Disaster == nil {
		return nil
	}
	losers := lowestPlayed(gs.InPlay())
	if len(losers) > 1 {
		names := make([]string, len(losers))
		for i, p := range losers {
			names[i] = p.Name
		}
		g.log(log.NewSuddenDeathEvent(gs.Round, gs.Phase.String(), names))
	}

	for rounds := 1; len(losers) > 1; rounds++ {
		var remaining []*Player
		for _, p := range losers {
			if p.HasPointCard() {
				remaining = append(remaining, p)
			} else {
				g.log(log.NewTiebreakEscapeEvent(gs.Round, gs.Phase.String(), p.Name))
			}
		}
		losers = remaining
		if len(losers) <= 1 {
			break
		}

		for _, p := range losers {
			card, err := g.playFromHand(p, "Sudden death! Choose a point card to play")
			if err != nil {
				return err
			}
			gs.Deck.Discard(p.PlayedCard)
			p.PlayedCard = card
			g.log(log.NewRevealEvent(gs.Round, gs.Phase.String(), p.Name, card.Title, card.Points))
		}
		losers = lowestPlayed(losers)
		g.diag.WithFields(logrus.Fields{"round": gs.Round, "tiebreak": rounds, "tied": len(losers)}).Debug("sudden death")
	}

	if len(losers) == 1 {
		gs.Loser = losers[0]
	}
	return nil
}

// lowestPlayed returns the players tied for the lowest played card, in seat order.
func lowestPlayed(players []*Player) []*Player {
	if len(players) == 0 {
		return nil
	}
	low := players[0].PlayedCard.Points
	for _, p := range players[1:] {
		low = min(low, p.PlayedCard.Points)
	}
	var result []*Player
	for _, p := range players {
		if p.PlayedCard.Points == low {
			result = append(result, p)
		}
	}
	return result
}

// rewardDisaster hands the pending disaster to the loser unless they
// hold Disaster Insurance, which is spent instead.
func (g *Game) rewardDisaster() error {
	g.setPhase(PhaseRewardDisaster)
	gs := g.State
	dc := gs.Disaster
	if dc == nil {
		return nil
	}
	gs.Disaster = nil

	loser := gs.Loser
	if loser == nil {
		gs.Deck.DiscardDisaster(dc)
		g.log(log.NewDisasterDiscardedEvent(gs.Round, gs.Phase.String(), dc.String()))
		return nil
	}

	if i := loser.FindEffect(EffectDisasterInsurance); i >= 0 {
		gs.Deck.Discard(loser.RemoveAt(i))
		gs.Deck.DiscardDisaster(dc)
		g.log(log.NewDisasterInsuredEvent(gs.Round, gs.Phase.String(), loser.Name, dc.String()))
		return nil
	}

	loser.Disasters = append(loser.Disasters, dc)
	g.log(log.NewDisasterAssignedEvent(gs.Round, gs.Phase.String(), loser.Name, dc.String(), loser.DisasterCount()))
	return nil
}
