package game

import (
	"fmt"

	"github.com/peterkuimelis/hldx/internal/log"
)

// instantHandler executes an instant card that p just played.
type instantHandler func(g *Game, p *Player, card *Card) error

var instantHandlers = map[Effect]instantHandler{
	EffectScoreSwapper: (*Game).scoreSwapper,
	EffectScoreSapper:  (*Game).scoreSapper,
	EffectScoreAdder:   (*Game).scoreAdder,
}

// playableInstant reports whether a card can be played during instant
// resolution. Disaster Insurance only works from the hand.
func playableInstant(c *Card) bool {
	if !c.IsInstant() {
		return false
	}
	_, ok := instantHandlers[c.Effect]
	return ok
}

func hasPlayableInstant(p *Player) bool {
	for _, c := range p.Hand {
		if playableInstant(c) {
			return true
		}
	}
	return false
}

// resolveInstants sweeps the active players, lowest score first, until a
// whole sweep goes by without anyone playing an instant.
func (g *Game) resolveInstants() error {
	g.setPhase(PhaseResolveInstants)
	gs := g.State

	for sweep, played := 1, true; played; sweep++ {
		played = false
		for _, p := range ByScore(gs.Active()) {
			for hasPlayableInstant(p) {
				ok, err := g.confirm(p, "Play an instant card?")
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				idx, err := g.chooseCard(p, "Choose an instant card to play", p.Hand, playableInstant)
				if err != nil {
					return err
				}
				card := p.RemoveAt(idx)
				gs.Deck.Discard(card)
				g.log(log.NewInstantEvent(gs.Round, gs.Phase.String(), p.Name, card.Title))
				if err := instantHandlers[card.Effect](g, p, card); err != nil {
					return fmt.Errorf("%s: %w", card.Title, err)
				}
				played = true
			}
		}
		g.diag.WithField("round", gs.Round).WithField("sweep", sweep).Debug("instant sweep done")
	}
	return nil
}

func (g *Game) skipInstant(p *Player, card *Card, reason string) {
	g.log(log.NewEffectSkippedEvent(g.State.Round, g.State.Phase.String(), p.Name, card.Title, reason))
}

// scoreSwapper exchanges the highest and lowest played cards. Ties go to
// whichever comes first in seat order.
func (g *Game) scoreSwapper(p *Player, card *Card) error {
	players := g.State.InPlay()
	if len(players) < 2 {
		g.skipInstant(p, card, "not enough cards in play")
		return nil
	}
	hi, lo := players[0], players[0]
	for _, o := range players[1:] {
		if o.PlayedCard.Points > hi.PlayedCard.Points {
			hi = o
		}
		if o.PlayedCard.Points < lo.PlayedCard.Points {
			lo = o
		}
	}
	if hi == lo {
		g.skipInstant(p, card, "all cards are equal")
		return nil
	}
	g.swapPoints(p, hi, lo)
	return nil
}

func (g *Game) opponentsInPlay(p *Player) []*Player {
	var targets []*Player
	for _, o := range g.State.InPlay() {
		if o != p {
			targets = append(targets, o)
		}
	}
	return targets
}

// scoreSapper takes 2 off an opponent's played card. The card may go
// negative; the owner's score is clamped at zero.
func (g *Game) scoreSapper(p *Player, card *Card) error {
	targets := g.opponentsInPlay(p)
	if len(targets) == 0 {
		g.skipInstant(p, card, "no opponent has a card in play")
		return nil
	}
	target, err := g.choosePlayer(p, "Choose a player to sap 2 points from", targets)
	if err != nil {
		return err
	}
	g.changePoints(target, -2, card.Title)
	target.ClampScore()
	return nil
}

// scoreAdder adds 2 to an opponent's played card.
func (g *Game) scoreAdder(p *Player, card *Card) error {
	targets := g.opponentsInPlay(p)
	if len(targets) == 0 {
		g.skipInstant(p, card, "no opponent has a card in play")
		return nil
	}
	target, err := g.choosePlayer(p, "Choose a player to add 2 points to", targets)
	if err != nil {
		return err
	}
	g.changePoints(target, 2, card.Title)
	return nil
}
