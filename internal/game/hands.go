package game

import (
	"errors"

	"github.com/peterkuimelis/hldx/internal/log"
)

// refillHands tops every active hand up to the hand size. A hand of nothing
// but instants is thrown away and redrawn while a point card is still in supply.
func (g *Game) refillHands() error {
	g.setPhase(PhaseRefillHands)
	gs := g.State

	for _, p := range gs.Active() {
		g.fillHand(p)
		for p.AllInstants() && gs.Deck.HasPointCardInSupply() {
			g.log(log.NewHandRedrawEvent(gs.Round, gs.Phase.String(), p.Name))
			gs.Deck.Discard(p.Hand...)
			p.Hand = nil
			g.fillHand(p)
		}
	}
	return nil
}

func (g *Game) fillHand(p *Player) {
	if need := g.Rules.HandSize - len(p.Hand); need > 0 {
		g.draw(p, need)
	}
}

// draw gives p up to n cards and returns how many it got.
func (g *Game) draw(p *Player, n int) int {
	gs := g.State
	got := 0
	for ; got < n; got++ {
		card, err := gs.Deck.DrawCard()
		if errors.Is(err, ErrDeckExhausted) {
			g.diag.WithField("player", p.Name).Debug("deck exhausted")
			g.log(log.NewDeckExhaustedEvent(gs.Round, gs.Phase.String(), p.Name))
			break
		}
		p.Hand = append(p.Hand, card)
	}
	if got > 0 {
		g.log(log.NewDrawEvent(gs.Round, gs.Phase.String(), p.Name, got))
	}
	return got
}

// drawDisaster holds this round's disaster until assignment.
func (g *Game) drawDisaster() error {
	g.setPhase(PhaseDrawDisaster)
	gs := g.State

	dc, err := gs.Deck.DrawDisaster()
	if errors.Is(err, ErrDeckExhausted) {
		g.diag.WithField("round", gs.Round).Debug("no disaster cards left")
		return nil
	}
	gs.Disaster = dc
	g.log(log.NewDisasterDrawnEvent(gs.Round, gs.Phase.String(), dc.String()))
	return nil
}

// playPointCards has every active player put one point card face down.
func (g *Game) playPointCards() error {
	g.setPhase(PhasePlayPointCards)
	gs := g.State

	for _, p := range gs.Active() {
		if !p.HasPointCard() {
			g.diag.WithField("player", p.Name).Warn("no point card to play")
			continue
		}
		card, err := g.playFromHand(p, "Choose a point card to play")
		if err != nil {
			return err
		}
		p.PlayedCard = card
		g.log(log.NewPlayCardEvent(gs.Round, gs.Phase.String(), p.Name))
	}
	return nil
}

// playFromHand removes a point card chosen by p from its hand.
func (g *Game) playFromHand(p *Player, text string) (*Card, error) {
	idx, err := g.chooseCard(p, text, p.Hand, (*Card).IsPoint)
	if err != nil {
		return nil, err
	}
	return p.RemoveAt(idx), nil
}

// loserDiscard lets the disaster loser trade one card for a fresh draw.
func (g *Game) loserDiscard() error {
	gs := g.State
	loser := gs.Loser
	if loser == nil || loser.Eliminated || len(loser.Hand) == 0 {
		return nil
	}
	g.setPhase(PhaseLoserDiscard)

	ok, err := g.confirm(loser, "Discard a card for a new one?")
	if err != nil || !ok {
		return err
	}
	idx, err := g.chooseCard(loser, "Which card?", loser.Hand, nil)
	if err != nil {
		return err
	}
	card := loser.RemoveAt(idx)
	gs.Deck.Discard(card)
	g.log(log.NewDiscardEvent(gs.Round, gs.Phase.String(), loser.Name, card.Title))
	g.draw(loser, 1)
	return nil
}
