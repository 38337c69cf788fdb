// Package view turns engine state into JSON-friendly snapshots for
// frontends. A snapshot is built from one player's seat: other players'
// hands are only counted, and face-down cards stay hidden.
package view

import (
	"github.com/peterkuimelis/hldx/internal/game"
	"github.com/peterkuimelis/hldx/internal/log"
)

// EventView is a simplified game event for clients.
type EventView struct {
	Seq     int    `json:"seq"`
	Round   int    `json:"round"`
	Phase   string `json:"phase"`
	Player  string `json:"player,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Value   int    `json:"value,omitempty"`
	Details string `json:"details"`
}

// CardView describes a single card.
type CardView struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Kind   string `json:"kind"`
	Points int    `json:"points"`
	Effect string `json:"effect,omitempty"`
	Text   string `json:"text,omitempty"`
}

// PlayerView shows one seat at the table.
type PlayerView struct {
	Name       string     `json:"name"`
	Score      int        `json:"score"`
	HandCount  int        `json:"hand_count"`
	Hand       []CardView `json:"hand,omitempty"` // only for the viewer
	Disasters  []string   `json:"disasters"`
	Played     *CardView  `json:"played,omitempty"`
	FaceDown   bool       `json:"face_down,omitempty"` // played but not yet revealed
	Eliminated bool       `json:"eliminated,omitempty"`
}

// StateView is the game state from one seat's perspective.
type StateView struct {
	GameID       string       `json:"game_id"`
	Round        int          `json:"round"`
	Phase        string       `json:"phase"`
	You          string       `json:"you,omitempty"`
	Players      []PlayerView `json:"players"`
	Disaster     string       `json:"disaster,omitempty"`
	DeckCount    int          `json:"deck_count"`
	DiscardCount int          `json:"discard_count"`
	Over         bool         `json:"over,omitempty"`
	Winner       string       `json:"winner,omitempty"`
	Result       string       `json:"result,omitempty"`
}

// Event converts a logged event.
func Event(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Round:   e.Round,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Value:   e.Value,
		Details: e.Details,
	}
}

// Events converts a slice of logged events. The result is never nil.
func Events(events []log.GameEvent) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, Event(e))
	}
	return views
}

// Card converts a card.
func Card(c *game.Card) CardView {
	cv := CardView{
		ID:     c.ID,
		Title:  c.Title,
		Kind:   c.Kind.String(),
		Points: c.Points,
		Text:   c.Text,
	}
	if c.HasAbility() {
		cv.Effect = c.Effect.String()
	}
	return cv
}

// Cards converts a slice of cards.
func Cards(cards []*game.Card) []CardView {
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, Card(c))
	}
	return views
}

// Build creates a snapshot for viewer. A nil viewer gets the spectator
// view: no hands at all.
func Build(state *game.GameState, viewer *game.Player) *StateView {
	sv := &StateView{
		GameID: state.ID.String(),
		Round:  state.Round,
		Phase:  state.Phase.String(),
		Over:   state.Over,
		Result: state.Result,
	}
	if viewer != nil {
		sv.You = viewer.Name
	}
	if state.Disaster != nil {
		sv.Disaster = state.Disaster.String()
	}
	if state.Deck != nil {
		sv.DeckCount = len(state.Deck.DrawPile)
		sv.DiscardCount = len(state.Deck.DiscardPile)
	}
	if state.Winner != nil {
		sv.Winner = state.Winner.Name
	}

	// Cards are face down until everyone has played.
	hidden := state.Phase == game.PhasePlayPointCards

	for _, p := range state.Players {
		pv := PlayerView{
			Name:       p.Name,
			Score:      p.Score,
			HandCount:  len(p.Hand),
			Disasters:  make([]string, 0, len(p.Disasters)),
			Eliminated: p.Eliminated,
		}
		for _, d := range p.Disasters {
			pv.Disasters = append(pv.Disasters, d.String())
		}
		if p == viewer {
			pv.Hand = Cards(p.Hand)
		}
		if p.PlayedCard != nil {
			if hidden && p != viewer {
				pv.FaceDown = true
			} else {
				cv := Card(p.PlayedCard)
				pv.Played = &cv
			}
		}
		sv.Players = append(sv.Players, pv)
	}
	return sv
}
