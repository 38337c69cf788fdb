package game

import (
	"sort"

	"github.com/google/uuid"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Player represents one competitor's entire state.
type Player struct {
	Index      int // seat in the roster
	Name       string
	Score      int
	Hand       []*Card
	Disasters  []*DisasterCard
	PlayedCard *Card
	Eliminated bool
	WonRound   bool
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// DisasterCount returns the number of collected disasters.
func (p *Player) DisasterCount() int {
	return len(p.Disasters)
}

// HasPointCard reports whether the hand holds at least one point card.
func (p *Player) HasPointCard() bool {
	for _, c := range p.Hand {
		if c.IsPoint() {
			return true
		}
	}
	return false
}

// AllInstants reports whether a non-empty hand holds nothing but instants.
func (p *Player) AllInstants() bool {
	if len(p.Hand) == 0 {
		return false
	}
	for _, c := range p.Hand {
		if !c.IsInstant() {
			return false
		}
	}
	return true
}

// RemoveAt takes the card at index i out of the hand.
func (p *Player) RemoveAt(i int) *Card {
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return card
}

// RemoveFromHand removes a card from the hand by identity.
func (p *Player) RemoveFromHand(card *Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.RemoveAt(i)
			return true
		}
	}
	return false
}

// FindEffect returns the index of the first hand card with the given effect, or -1.
func (p *Player) FindEffect(e Effect) int {
	for i, c := range p.Hand {
		if c.Effect == e {
			return i
		}
	}
	return -1
}

// AddScore changes the score, never going below zero.
func (p *Player) AddScore(delta int) {
	p.Score += delta
	p.ClampScore()
}

// ClampScore restores the non-negative score invariant.
func (p *Player) ClampScore() {
	if p.Score < 0 {
		p.Score = 0
	}
}

// Eliminate marks the player out. There is no way back.
func (p *Player) Eliminate() {
	p.Eliminated = true
}

// InPlay reports whether the player is still in the game and has a revealed card.
func (p *Player) InPlay() bool {
	return !p.Eliminated && p.PlayedCard != nil
}

// GameState holds everything that changes during a game. Resolvers work on
// it in place; nothing is copied between phases.
type GameState struct {
	ID       uuid.UUID
	Round    int
	Phase    Phase
	Players  []*Player
	Deck     *Deck
	Disaster *DisasterCard // drawn this round, not yet assigned
	Loser    *Player       // disaster loser of the current round

	Over   bool
	Winner *Player
	Result string

	nextID int
}

// NewGameState creates a state with a fresh game ID.
func NewGameState() *GameState {
	return &GameState{ID: uuid.New()}
}

// NextID returns a new unique card ID.
func (gs *GameState) NextID() int {
	gs.nextID++
	return gs.nextID
}

// Active returns the non-eliminated players in roster order.
func (gs *GameState) Active() []*Player {
	var result []*Player
	for _, p := range gs.Players {
		if !p.Eliminated {
			result = append(result, p)
		}
	}
	return result
}

// InPlay returns the non-eliminated players that revealed a card, in roster order.
func (gs *GameState) InPlay() []*Player {
	var result []*Player
	for _, p := range gs.Players {
		if p.InPlay() {
			result = append(result, p)
		}
	}
	return result
}

// ByScore returns players sorted ascending by score. Ties keep roster order.
func ByScore(players []*Player) []*Player {
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	return sorted
}

// PlayerByName looks up a player in the roster.
func (gs *GameState) PlayerByName(name string) *Player {
	for _, p := range gs.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Standings returns all players sorted by descending score, ties in roster order.
func (gs *GameState) Standings() []*Player {
	sorted := make([]*Player, len(gs.Players))
	copy(sorted, gs.Players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}
