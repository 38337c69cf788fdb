package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSmallDeck(t *testing.T, noShuffle bool) (*Deck, []*Card) {
	t.Helper()
	c, err := ParseCatalog([]byte(smallCatalog))
	require.NoError(t, err)
	id := 0
	cards := c.Build(func() int { id++; return id })
	d := NewDeck(c, rand.New(rand.NewSource(7)), noShuffle)
	return d, cards
}

func TestDrawTakesFromTop(t *testing.T) {
	d, cards := newSmallDeck(t, true)
	d.DrawPile = append(d.DrawPile, cards...)

	card, err := d.DrawCard()
	require.NoError(t, err)
	assert.Same(t, cards[len(cards)-1], card)
	assert.Equal(t, len(cards)-1, d.Size())
}

func TestReshuffleRestoresCanonicalPoints(t *testing.T) {
	d, cards := newSmallDeck(t, false)

	var reshuffled []string
	d.OnReshuffle = func(pile string, size int) {
		reshuffled = append(reshuffled, pile)
		assert.Equal(t, len(cards), size)
	}

	// Mutate every point card as abilities would, then discard everything.
	for i, c := range cards {
		if c.IsPoint() {
			c.Points = 40 + i
		}
	}
	cards[0].Points = -3
	d.Discard(cards...)

	seen := make(map[*Card]bool)
	for range cards {
		card, err := d.DrawCard()
		require.NoError(t, err)
		seen[card] = true
		switch card.Title {
		case "Leaf Pile":
			assert.Equal(t, 1, card.Points)
		case "Pet Rock":
			assert.Equal(t, 2, card.Points)
		}
	}
	assert.Len(t, seen, len(cards), "the same card objects come back")
	assert.Equal(t, []string{PilePlayer}, reshuffled)
	assert.Empty(t, d.DiscardPile)

	_, err := d.DrawCard()
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestDrawExhausted(t *testing.T) {
	d, _ := newSmallDeck(t, true)
	_, err := d.DrawCard()
	assert.ErrorIs(t, err, ErrDeckExhausted)
	_, err = d.DrawDisaster()
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestDisasterReshuffle(t *testing.T) {
	d, _ := newSmallDeck(t, true)
	var piles []string
	d.OnReshuffle = func(pile string, size int) { piles = append(piles, pile) }

	a := &DisasterCard{ID: 1, Kind: DisasterMeteor}
	b := &DisasterCard{ID: 2, Kind: DisasterPredator}
	d.DisasterDrawPile = []*DisasterCard{a}

	got, err := d.DrawDisaster()
	require.NoError(t, err)
	assert.Same(t, a, got)

	d.DiscardDisaster(a)
	d.DiscardDisaster(b)
	d.DiscardDisaster(nil)
	got, err = d.DrawDisaster()
	require.NoError(t, err)
	assert.Same(t, b, got)
	assert.Equal(t, []string{PileDisaster}, piles)
	assert.Equal(t, []*DisasterCard{a}, d.DisasterDrawPile)
	assert.Empty(t, d.DisasterDiscardPile)
}

func TestHasPointCardInSupply(t *testing.T) {
	d, cards := newSmallDeck(t, true)
	assert.False(t, d.HasPointCardInSupply())

	instant := cards[3]
	d.DrawPile = []*Card{instant}
	assert.False(t, d.HasPointCardInSupply())

	d.Discard(cards[0])
	assert.True(t, d.HasPointCardInSupply())
}
