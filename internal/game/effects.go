package game

import (
	"fmt"

	"github.com/peterkuimelis/hldx/internal/log"
)

// effectHandler resolves one played card's ability for its owner. Handlers
// mutate the shared state in place; later handlers see earlier results.
type effectHandler func(g *Game, p *Player) error

var effectHandlers = map[Effect]effectHandler{
	EffectPetRock:           (*Game).petRock,
	EffectDinoGrabber:       (*Game).dinoGrabber,
	EffectGrapplingSnake:    (*Game).grapplingSnake,
	EffectDeliciousSmoothie: (*Game).deliciousSmoothie,
	EffectFireSpray:         (*Game).fireSpray,
	EffectMouthTrap:         (*Game).mouthTrap,
	EffectTreenoculars:      (*Game).treenoculars,
	EffectHungryPlant:       (*Game).hungryPlant,
}

// resolveEffects runs every played ability, lowest score first. A Flaming
// Chainsaw anywhere on the table cancels all of them.
func (g *Game) resolveEffects() error {
	g.setPhase(PhaseResolveEffects)
	gs := g.State

	for _, p := range gs.InPlay() {
		if p.PlayedCard.Effect == EffectFlamingChainsaw {
			g.log(log.NewEffectsCancelledEvent(gs.Round, gs.Phase.String(), p.Name, p.PlayedCard.Title))
			return nil
		}
	}

	var owners []*Player
	for _, p := range gs.InPlay() {
		if p.PlayedCard.HasAbility() {
			owners = append(owners, p)
		}
	}

	for _, p := range ByScore(owners) {
		if !p.InPlay() {
			continue
		}
		handler, ok := effectHandlers[p.PlayedCard.Effect]
		if !ok {
			g.diag.WithField("effect", p.PlayedCard.Effect.String()).Warn("no handler for effect")
			continue
		}
		g.log(log.NewActivateEvent(gs.Round, gs.Phase.String(), p.Name, p.PlayedCard.Title))
		if err := handler(g, p); err != nil {
			return fmt.Errorf("%s: %w", p.PlayedCard.Title, err)
		}
	}
	return nil
}

func (g *Game) skipEffect(p *Player, reason string) {
	g.diag.WithField("player", p.Name).WithField("reason", reason).Debug("ability skipped")
	g.log(log.NewEffectSkippedEvent(g.State.Round, g.State.Phase.String(), p.Name, p.PlayedCard.Title, reason))
}

func (g *Game) changePoints(owner *Player, delta int, reason string) {
	card := owner.PlayedCard
	old := card.Points
	card.Points += delta
	g.log(log.NewPointsChangeEvent(g.State.Round, g.State.Phase.String(), owner.Name, card.Title, old, card.Points, reason))
}

// swapPoints exchanges the point values of two played cards. The cards stay where they are.
func (g *Game) swapPoints(actor, a, b *Player) {
	a.PlayedCard.Points, b.PlayedCard.Points = b.PlayedCard.Points, a.PlayedCard.Points
	g.log(log.NewSwapEvent(g.State.Round, g.State.Phase.String(), actor.Name,
		a.Name, a.PlayedCard.Points, b.Name, b.PlayedCard.Points))
}

func (g *Game) discardFromHand(p *Player, idx int) *Card {
	card := p.RemoveAt(idx)
	g.State.Deck.Discard(card)
	g.log(log.NewDiscardEvent(g.State.Round, g.State.Phase.String(), p.Name, card.Title))
	return card
}

// petRock: optionally discard another point card and add its points.
func (g *Game) petRock(p *Player) error {
	if !p.HasPointCard() {
		g.skipEffect(p, "no point card in hand")
		return nil
	}
	ok, err := g.confirm(p, fmt.Sprintf("Use %s?", p.PlayedCard.Title))
	if err != nil || !ok {
		return err
	}
	idx, err := g.chooseCard(p, "Choose a point card to add", p.Hand, (*Card).IsPoint)
	if err != nil {
		return err
	}
	card := g.discardFromHand(p, idx)
	g.changePoints(p, card.Points, card.Title)
	return nil
}

// dinoGrabber: steal a chosen card from a chosen opponent.
func (g *Game) dinoGrabber(p *Player) error {
	var targets []*Player
	for _, o := range g.State.Active() {
		if o != p && len(o.Hand) > 0 {
			targets = append(targets, o)
		}
	}
	if len(targets) == 0 {
		g.skipEffect(p, "no opponent has cards")
		return nil
	}
	target, err := g.choosePlayer(p, "Choose a player to steal from", targets)
	if err != nil {
		return err
	}
	idx, err := g.chooseCard(p, fmt.Sprintf("Choose a card to steal from %s", target.Name), target.Hand, nil)
	if err != nil {
		return err
	}
	p.Hand = append(p.Hand, target.RemoveAt(idx))
	g.log(log.NewStealEvent(g.State.Round, g.State.Phase.String(), p.Name, target.Name))
	return nil
}

// grapplingSnake: optionally swap points with another played card that has an ability.
func (g *Game) grapplingSnake(p *Player) error {
	var targets []*Player
	for _, o := range g.State.InPlay() {
		if o != p && o.PlayedCard.HasAbility() {
			targets = append(targets, o)
		}
	}
	if len(targets) == 0 {
		g.skipEffect(p, "no other effect cards in play")
		return nil
	}
	ok, err := g.confirm(p, fmt.Sprintf("Use %s?", p.PlayedCard.Title))
	if err != nil || !ok {
		return err
	}
	target, err := g.choosePlayer(p, "Choose a player to swap points with", targets)
	if err != nil {
		return err
	}
	g.swapPoints(p, p, target)
	return nil
}

// deliciousSmoothie: discard a point card with an ability and add its points.
func (g *Game) deliciousSmoothie(p *Player) error {
	valid := func(c *Card) bool { return c.IsPoint() && c.HasAbility() }
	found := false
	for _, c := range p.Hand {
		if valid(c) {
			found = true
			break
		}
	}
	if !found {
		g.skipEffect(p, "no effect card in hand")
		return nil
	}
	idx, err := g.chooseCard(p, "Choose an effect card to add", p.Hand, valid)
	if err != nil {
		return err
	}
	card := g.discardFromHand(p, idx)
	g.changePoints(p, card.Points, card.Title)
	return nil
}

// fireSpray: discard up to three point cards, stopping on the first decline.
func (g *Game) fireSpray(p *Player) error {
	for left := 3; left > 0 && p.HasPointCard(); left-- {
		ok, err := g.confirm(p, fmt.Sprintf("Discard a point card? (%d left)", left))
		if err != nil || !ok {
			return err
		}
		idx, err := g.chooseCard(p, "Choose a point card to discard", p.Hand, (*Card).IsPoint)
		if err != nil {
			return err
		}
		g.discardFromHand(p, idx)
	}
	return nil
}

// mouthTrap: every played card at the top value takes the bottom value and vice versa.
func (g *Game) mouthTrap(p *Player) error {
	players := g.State.InPlay()
	hi, lo := players[0].PlayedCard.Points, players[0].PlayedCard.Points
	for _, o := range players {
		hi = max(hi, o.PlayedCard.Points)
		lo = min(lo, o.PlayedCard.Points)
	}
	if hi == lo {
		g.skipEffect(p, "all cards are equal")
		return nil
	}
	for _, o := range players {
		switch o.PlayedCard.Points {
		case hi:
			g.changePoints(o, lo-hi, p.PlayedCard.Title)
		case lo:
			g.changePoints(o, hi-lo, p.PlayedCard.Title)
		}
	}
	return nil
}

// treenoculars: draw two, keep one and discard the other.
func (g *Game) treenoculars(p *Player) error {
	gs := g.State
	var drawn []*Card
	for i := 0; i < 2; i++ {
		card, err := gs.Deck.DrawCard()
		if err != nil {
			g.log(log.NewDeckExhaustedEvent(gs.Round, gs.Phase.String(), p.Name))
			break
		}
		drawn = append(drawn, card)
	}

	switch len(drawn) {
	case 0:
		g.skipEffect(p, "deck is empty")
		return nil
	case 1:
		p.Hand = append(p.Hand, drawn[0])
		g.log(log.NewAddToHandEvent(gs.Round, gs.Phase.String(), p.Name, drawn[0].Title, p.PlayedCard.Title))
		return nil
	}

	idx, err := g.chooseCard(p, "Choose a card to keep", drawn, nil)
	if err != nil {
		return err
	}
	p.Hand = append(p.Hand, drawn[idx])
	g.log(log.NewAddToHandEvent(gs.Round, gs.Phase.String(), p.Name, drawn[idx].Title, p.PlayedCard.Title))
	other := drawn[1-idx]
	gs.Deck.Discard(other)
	g.log(log.NewDiscardEvent(gs.Round, gs.Phase.String(), p.Name, other.Title))
	return nil
}

// hungryPlant: swap the points of any two played cards, own included.
func (g *Game) hungryPlant(p *Player) error {
	candidates := g.State.InPlay()
	if len(candidates) < 2 {
		g.skipEffect(p, "not enough cards in play")
		return nil
	}
	first, err := g.choosePlayer(p, "Choose the first player to swap", candidates)
	if err != nil {
		return err
	}
	var rest []*Player
	for _, c := range candidates {
		if c != first {
			rest = append(rest, c)
		}
	}
	second, err := g.choosePlayer(p, "Choose the second player to swap", rest)
	if err != nil {
		return err
	}
	g.swapPoints(p, first, second)
	return nil
}
