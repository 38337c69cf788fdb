package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseRefillHands
	PhaseDrawDisaster
	PhasePlayPointCards
	PhaseReveal
	PhaseResolveEffects
	PhaseRevealEffects
	PhaseResolveInstants
	PhaseAssignDisaster
	PhaseRewardDisaster
	PhaseRewardPoints
	PhaseDisasterBonus
	PhaseCheckEliminations
	PhaseCheckWinner
	PhaseLoserDiscard
)

func (p Phase) String() string {
	switch p {
	case PhaseRefillHands:
		return "Refill Hands"
	case PhaseDrawDisaster:
		return "Draw Disaster"
	case PhasePlayPointCards:
		return "Play Point Cards"
	case PhaseReveal:
		return "Reveal"
	case PhaseResolveEffects:
		return "Resolve Effects"
	case PhaseRevealEffects:
		return "Reveal Effects"
	case PhaseResolveInstants:
		return "Resolve Instants"
	case PhaseAssignDisaster:
		return "Assign Disaster"
	case PhaseRewardDisaster:
		return "Reward Disaster"
	case PhaseRewardPoints:
		return "Reward Points"
	case PhaseDisasterBonus:
		return "Disaster Bonus"
	case PhaseCheckEliminations:
		return "Eliminations"
	case PhaseCheckWinner:
		return "Check Winner"
	case PhaseLoserDiscard:
		return "Loser Discard"
	default:
		return "None"
	}
}

type CardKind int

const (
	CardKindPoint CardKind = iota
	CardKindInstant
)

func (k CardKind) String() string {
	switch k {
	case CardKindPoint:
		return "Point"
	case CardKindInstant:
		return "Instant"
	default:
		return "Unknown"
	}
}

// Effect identifies the ability a card triggers. Point-card effects fire
// during effect resolution, instant effects when the card is played.
type Effect int

const (
	EffectNone Effect = iota

	// point cards
	EffectPetRock
	EffectDinoGrabber
	EffectGrapplingSnake
	EffectDeliciousSmoothie
	EffectFireSpray
	EffectMouthTrap
	EffectTreenoculars
	EffectHungryPlant
	EffectFlamingChainsaw

	// instants
	EffectScoreSwapper
	EffectScoreSapper
	EffectScoreAdder
	EffectDisasterInsurance
)

var effectNames = map[Effect]string{
	EffectNone:              "none",
	EffectPetRock:           "pet_rock",
	EffectDinoGrabber:       "dino_grabber",
	EffectGrapplingSnake:    "grappling_snake",
	EffectDeliciousSmoothie: "delicious_smoothie",
	EffectFireSpray:         "fire_spray",
	EffectMouthTrap:         "mouth_trap",
	EffectTreenoculars:      "treenoculars",
	EffectHungryPlant:       "hungry_plant",
	EffectFlamingChainsaw:   "flaming_chainsaw",
	EffectScoreSwapper:      "score_swapper",
	EffectScoreSapper:       "score_sapper",
	EffectScoreAdder:        "score_adder",
	EffectDisasterInsurance: "disaster_insurance",
}

func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return "unknown"
}

// IsInstant reports whether the effect belongs on an instant card.
func (e Effect) IsInstant() bool {
	return e >= EffectScoreSwapper
}

// ParseEffect resolves a catalog effect tag.
func ParseEffect(s string) (Effect, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return EffectNone, nil
	}
	for e, name := range effectNames {
		if name == s {
			return e, nil
		}
	}
	return EffectNone, fmt.Errorf("%w: %q", ErrUnknownEffect, s)
}

type DisasterKind int

const (
	DisasterMeteor DisasterKind = iota
	DisasterNatural
	DisasterPredator
	DisasterEmotional
)

// DisasterKinds lists every kind in deck-building order.
var DisasterKinds = []DisasterKind{DisasterMeteor, DisasterNatural, DisasterPredator, DisasterEmotional}

func (k DisasterKind) String() string {
	switch k {
	case DisasterMeteor:
		return "Meteor"
	case DisasterNatural:
		return "Natural"
	case DisasterPredator:
		return "Predator"
	case DisasterEmotional:
		return "Emotional"
	default:
		return "Unknown"
	}
}

// --- Cards ---

// Card is a single physical point or instant card. Cards are created once
// from the catalog and move between piles and hands by pointer; abilities
// mutate Points in place, so two references to the same card always agree.
type Card struct {
	ID     int
	Title  string
	Kind   CardKind
	Points int // meaningless for instants
	Effect Effect
	Text   string
}

func (c *Card) String() string {
	if c == nil {
		return "(none)"
	}
	if c.Kind == CardKindInstant {
		return fmt.Sprintf("%s (Instant)", c.Title)
	}
	return fmt.Sprintf("%s (%d)", c.Title, c.Points)
}

// IsPoint reports whether the card can be played as a scoring card.
func (c *Card) IsPoint() bool {
	return c != nil && c.Kind == CardKindPoint
}

// IsInstant reports whether the card is an instant.
func (c *Card) IsInstant() bool {
	return c != nil && c.Kind == CardKindInstant
}

// HasAbility reports whether the card carries an effect other than none.
func (c *Card) HasAbility() bool {
	return c != nil && c.Effect != EffectNone
}

// DisplayString returns the card with its rules text, for hand listings.
func (c *Card) DisplayString() string {
	if c == nil {
		return "(none)"
	}
	if c.Text == "" {
		return c.String()
	}
	return fmt.Sprintf("%s: %s", c.String(), c.Text)
}

// DisasterCard is a penalty token. Kind carries no rules of its own.
type DisasterCard struct {
	ID   int
	Kind DisasterKind
}

func (d *DisasterCard) String() string {
	if d == nil {
		return "(none)"
	}
	return fmt.Sprintf("%s Disaster", d.Kind)
}
