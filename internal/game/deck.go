package game

import "math/rand"

// Pile names used in reshuffle notifications.
const (
	PilePlayer   = "player"
	PileDisaster = "disaster"
)

// Deck owns the shared piles. The top of each draw pile is the last element.
type Deck struct {
	DrawPile    []*Card
	DiscardPile []*Card

	DisasterDrawPile    []*DisasterCard
	DisasterDiscardPile []*DisasterCard

	catalog   *Catalog
	rng       *rand.Rand
	noShuffle bool

	// OnReshuffle is called after a discard pile is turned into a draw pile.
	OnReshuffle func(pile string, size int)
}

// NewDeck creates an empty deck bound to a catalog for point restoration.
func NewDeck(catalog *Catalog, rng *rand.Rand, noShuffle bool) *Deck {
	return &Deck{catalog: catalog, rng: rng, noShuffle: noShuffle}
}

// DrawCard pops the top card, reshuffling the discard pile in first if the
// draw pile is empty. Reshuffled point cards get their catalog value back.
func (d *Deck) DrawCard() (*Card, error) {
	if len(d.DrawPile) == 0 {
		if len(d.DiscardPile) == 0 {
			return nil, ErrDeckExhausted
		}
		d.reshuffle()
	}
	card := d.DrawPile[len(d.DrawPile)-1]
	d.DrawPile = d.DrawPile[:len(d.DrawPile)-1]
	return card, nil
}

func (d *Deck) reshuffle() {
	d.DrawPile = append(d.DrawPile, d.DiscardPile...)
	d.DiscardPile = nil
	d.shuffleCards(d.DrawPile)

	for _, c := range d.DrawPile {
		if !c.IsPoint() {
			continue
		}
		if pts, ok := d.catalog.CanonicalPoints(c.Title); ok {
			c.Points = pts
		}
	}

	if d.OnReshuffle != nil {
		d.OnReshuffle(PilePlayer, len(d.DrawPile))
	}
}

// DrawDisaster pops the top disaster card with the same reshuffle rule.
func (d *Deck) DrawDisaster() (*DisasterCard, error) {
	if len(d.DisasterDrawPile) == 0 {
		if len(d.DisasterDiscardPile) == 0 {
			return nil, ErrDeckExhausted
		}
		d.DisasterDrawPile = append(d.DisasterDrawPile, d.DisasterDiscardPile...)
		d.DisasterDiscardPile = nil
		if !d.noShuffle {
			d.rng.Shuffle(len(d.DisasterDrawPile), func(i, j int) {
				d.DisasterDrawPile[i], d.DisasterDrawPile[j] = d.DisasterDrawPile[j], d.DisasterDrawPile[i]
			})
		}
		if d.OnReshuffle != nil {
			d.OnReshuffle(PileDisaster, len(d.DisasterDrawPile))
		}
	}
	dc := d.DisasterDrawPile[len(d.DisasterDrawPile)-1]
	d.DisasterDrawPile = d.DisasterDrawPile[:len(d.DisasterDrawPile)-1]
	return dc, nil
}

// Discard puts cards on the discard pile.
func (d *Deck) Discard(cards ...*Card) {
	for _, c := range cards {
		if c != nil {
			d.DiscardPile = append(d.DiscardPile, c)
		}
	}
}

// DiscardDisaster puts a disaster on the disaster discard pile.
func (d *Deck) DiscardDisaster(dc *DisasterCard) {
	if dc != nil {
		d.DisasterDiscardPile = append(d.DisasterDiscardPile, dc)
	}
}

// Shuffle randomizes the player draw pile (no-op when shuffling is disabled).
func (d *Deck) Shuffle() {
	d.shuffleCards(d.DrawPile)
}

func (d *Deck) shuffleCards(cards []*Card) {
	if d.noShuffle {
		return
	}
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// HasPointCardInSupply reports whether any point card is left in the draw or discard pile.
func (d *Deck) HasPointCardInSupply() bool {
	for _, c := range d.DrawPile {
		if c.IsPoint() {
			return true
		}
	}
	for _, c := range d.DiscardPile {
		if c.IsPoint() {
			return true
		}
	}
	return false
}

// Size returns the number of player cards in the draw pile.
func (d *Deck) Size() int {
	return len(d.DrawPile)
}
