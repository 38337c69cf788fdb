package game

import (
	"context"
	"fmt"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/hldx/internal/log"
)

func TestNewGameValidatesSeats(t *testing.T) {
	sc := NewScriptedController(t, "x")
	tests := []struct {
		name  string
		seats []Seat
	}{
		{"one player", []Seat{{"Ann", sc}}},
		{"five players", []Seat{{"A", sc}, {"B", sc}, {"C", sc}, {"D", sc}, {"E", sc}}},
		{"duplicate names", []Seat{{"Ann", sc}, {" Ann ", sc}}},
		{"empty name", []Seat{{"Ann", sc}, {"", sc}}},
		{"missing controller", []Seat{{"Ann", sc}, {"Ben", nil}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGame(GameConfig{}, tc.seats...)
			assert.ErrorIs(t, err, ErrInvalidPlayers)
		})
	}
}

func TestNewGameSetup(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben", "Cat", "Dan")
	gs := tt.game.State

	assert.Len(t, gs.Players, 4)
	assert.Equal(t, 3, gs.Players[3].Index)
	assert.Len(t, gs.Deck.DisasterDrawPile, 20)
	kinds := make(map[DisasterKind]bool)
	for _, dc := range gs.Deck.DisasterDrawPile {
		kinds[dc.Kind] = true
	}
	assert.Len(t, kinds, 4)

	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Len(t, gs.Deck.DrawPile, len(c.Build(func() int { return 0 })))
	assert.Equal(t, DefaultRules(), tt.game.Rules)
}

func TestRulesDefaults(t *testing.T) {
	r := Rules{WinScore: 10, DisasterCards: -1}.withDefaults()
	assert.Equal(t, 10, r.WinScore)
	assert.Equal(t, 5, r.HandSize)
	assert.Zero(t, r.DisasterCards)
	assert.Equal(t, 500, r.MaxRounds)
}

// countCards returns every player card in the game, wherever it is.
func countCards(gs *GameState) int {
	n := len(gs.Deck.DrawPile) + len(gs.Deck.DiscardPile)
	for _, p := range gs.Players {
		n += len(p.Hand)
		if p.PlayedCard != nil {
			n++
		}
	}
	return n
}

// watchInvariants checks the game's standing guarantees at every phase change.
func watchInvariants(t *testing.T, g *Game, sc *ScriptedController) {
	total := countCards(g.State)
	eliminated := make(map[string]bool)

	sc.OnNotify = func(e log.GameEvent) {
		gs := g.State
		for _, p := range gs.Players {
			if p.Score < 0 {
				t.Errorf("round %d: %s has negative score %d", gs.Round, p.Name, p.Score)
			}
			if eliminated[p.Name] && !p.Eliminated {
				t.Errorf("round %d: %s came back from elimination", gs.Round, p.Name)
			}
			eliminated[p.Name] = p.Eliminated
			if p.Eliminated != (p.DisasterCount() >= g.Rules.DisasterLimit) && e.Type == log.EventNewRound {
				t.Errorf("round %d: %s eliminated=%v with %d disasters", gs.Round, p.Name, p.Eliminated, p.DisasterCount())
			}
		}
		if e.Type != log.EventPhaseChange {
			return
		}
		if got := countCards(gs); got != total {
			t.Errorf("round %d %s: %d cards in the game, want %d", gs.Round, e.Phase, got, total)
		}
		if e.Phase == PhaseDrawDisaster.String() {
			for _, p := range gs.Active() {
				if len(p.Hand) < g.Rules.HandSize || !p.HasPointCard() {
					t.Errorf("round %d: %s refilled to %v", gs.Round, p.Name, p.Hand)
				}
			}
		}
	}
}

func runGame(t *testing.T, seed int64, yes bool, names ...string) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	diag, _ := logtest.NewNullLogger()

	var seats []Seat
	var first *ScriptedController
	for _, n := range names {
		sc := NewScriptedController(t, n)
		sc.DefaultYes = yes
		if first == nil {
			first = sc
		}
		seats = append(seats, Seat{Name: n, Controller: sc})
	}
	g, err := NewGame(GameConfig{Logger: logger, Diag: diag, Seed: seed}, seats...)
	require.NoError(t, err)
	watchInvariants(t, g, first)

	winner, err := g.Run(context.Background())
	require.NoError(t, err)
	require.True(t, g.State.Over)
	assert.Same(t, g.State.Winner, winner)
	return g, logger
}

func TestFullGames(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		for _, yes := range []bool{false, true} {
			names := []string{"Ann", "Ben", "Cat", "Dan"}[:2+int(seed)%3]
			t.Run(fmt.Sprintf("seed%d/yes=%v/%dp", seed, yes, len(names)), func(t *testing.T) {
				g, logger := runGame(t, seed, yes, names...)
				gs := g.State

				last := logger.LastEvent()
				assert.Equal(t, log.EventGameOver, last.Type)
				assert.Contains(t, last.Details, "Final standings")

				if gs.Winner == nil {
					return
				}
				active := gs.Active()
				assert.False(t, gs.Winner.Eliminated)
				assert.True(t, len(active) == 1 || gs.Winner.Score >= g.Rules.WinScore,
					"winner %s with %d points among %d active", gs.Winner.Name, gs.Winner.Score, len(active))
				require.Len(t, logger.EventsOfType(log.EventWin), 1)
			})
		}
	}
}

func TestSameSeedSameGame(t *testing.T) {
	g1, _ := runGame(t, 99, true, "Ann", "Ben", "Cat")
	g2, _ := runGame(t, 99, true, "Ann", "Ben", "Cat")

	assert.Equal(t, g1.State.Round, g2.State.Round)
	for i := range g1.State.Players {
		assert.Equal(t, g1.State.Players[i].Score, g2.State.Players[i].Score)
	}
}

func TestRoundLimit(t *testing.T) {
	sc := NewScriptedController(t, "both")
	logger := log.NewMemoryLogger()
	diag, _ := logtest.NewNullLogger()
	g, err := NewGame(GameConfig{
		Logger: logger,
		Diag:   diag,
		Seed:   3,
		Rules:  Rules{MaxRounds: 2, WinScore: 1000},
	}, Seat{"Ann", sc}, Seat{"Ben", sc})
	require.NoError(t, err)

	winner, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Nil(t, winner)
	assert.Equal(t, 2, g.State.Round)
	assert.Contains(t, g.State.Result, "Round limit")
	assert.Len(t, logger.EventsOfType(log.EventNewRound), 2)
	// One controller for both seats hears each event once.
	assert.Len(t, sc.Events, len(logger.Events()))
}

func TestRunStopsOnControllerError(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tt.game.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRoundStartDiscardsPlayedCards(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben")
	played := tt.play("Ann", tt.vanilla("Hollow Log", 3)).PlayedCard
	tt.player("Ann").WonRound = true

	tt.game.startRound()

	assert.Nil(t, tt.player("Ann").PlayedCard)
	assert.False(t, tt.player("Ann").WonRound)
	assert.Contains(t, tt.game.State.Deck.DiscardPile, played)
}

func TestRefillRedrawsAllInstantHand(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben")
	d := tt.game.State.Deck
	point := tt.vanilla("Hollow Log", 3)
	var pile []*Card
	pile = append(pile, point)
	for i := 0; i < 9; i++ {
		pile = append(pile, tt.vanilla(fmt.Sprintf("Filler %d", i), 1))
	}
	for i := 0; i < 5; i++ {
		pile = append(pile, tt.instant("Score Adder", EffectScoreAdder))
	}
	d.DrawPile = pile // Ann draws the five instants first
	d.DiscardPile = nil

	require.NoError(t, tt.game.refillHands())

	ann := tt.player("Ann")
	assert.Len(t, ann.Hand, 5)
	assert.True(t, ann.HasPointCard())
	assert.Len(t, d.DiscardPile, 5)
	assert.Len(t, tt.logger.EventsOfType(log.EventHandRedraw), 1)
	assert.Len(t, tt.player("Ben").Hand, 5)
}

func TestRefillWithoutSupply(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben")
	d := tt.game.State.Deck
	d.DrawPile = []*Card{tt.instant("Score Adder", EffectScoreAdder), tt.vanilla("Leaf Pile", 1)}
	d.DiscardPile = nil

	require.NoError(t, tt.game.refillHands())

	assert.Len(t, tt.player("Ann").Hand, 2)
	assert.Empty(t, tt.player("Ben").Hand)
	assert.NotEmpty(t, tt.logger.EventsOfType(log.EventDeckExhausted))
}

func TestLoserDiscard(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben")
	ann := tt.hand("Ann", tt.vanilla("Leaf Pile", 1), tt.vanilla("Hollow Log", 3))
	tt.game.State.Loser = ann
	top := tt.vanilla("Rocket Backpack", 8)
	tt.game.State.Deck.DrawPile = append(tt.game.State.Deck.DrawPile, top)
	tt.ctrl["Ann"].AddYesNo(true).AddPick("Leaf Pile")

	require.NoError(t, tt.game.loserDiscard())

	require.Len(t, ann.Hand, 2)
	assert.Equal(t, "Hollow Log", ann.Hand[0].Title)
	assert.Same(t, top, ann.Hand[1])
	assert.Equal(t, "Leaf Pile", tt.game.State.Deck.DiscardPile[0].Title)
}
