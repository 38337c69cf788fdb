package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/hldx/internal/log"
)

// Rules holds the tunable numbers of the game.
type Rules struct {
	HandSize      int // cards each hand is refilled to
	WinScore      int // score that wins the game
	DisasterLimit int // disasters that eliminate a player
	DisasterCards int // disaster cards created at setup
	MaxRounds     int // stop after this many rounds without a winner
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{
		HandSize:      5,
		WinScore:      50,
		DisasterLimit: 3,
		DisasterCards: 20,
		MaxRounds:     500, // safety limit
	}
}

func (r Rules) withDefaults() Rules {
	def := DefaultRules()
	if r.HandSize <= 0 {
		r.HandSize = def.HandSize
	}
	if r.WinScore <= 0 {
		r.WinScore = def.WinScore
	}
	if r.DisasterLimit <= 0 {
		r.DisasterLimit = def.DisasterLimit
	}
	if r.DisasterCards < 0 {
		r.DisasterCards = 0
	} else if r.DisasterCards == 0 {
		r.DisasterCards = def.DisasterCards
	}
	if r.MaxRounds <= 0 {
		r.MaxRounds = def.MaxRounds
	}
	return r
}

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Catalog   *Catalog // nil for the built-in catalog
	Rules     Rules    // zero fields take DefaultRules values
	Logger    log.EventLogger
	Diag      logrus.FieldLogger // operational diagnostics (nil for the standard logger)
	Seed      int64              // RNG seed (0 for random)
	NoShuffle bool               // keep catalog order in the deck (for deterministic tests)
}

// Game orchestrates an entire game between 2 to 4 players.
type Game struct {
	State  *GameState
	Logger log.EventLogger
	Rules  Rules

	controllers []PlayerController
	notify      []PlayerController // controllers without duplicates
	diag        logrus.FieldLogger
	rng         *rand.Rand
	ctx         context.Context
}

// NewGame creates a game from the config and one seat per player, in turn order.
func NewGame(cfg GameConfig, seats ...Seat) (*Game, error) {
	if len(seats) < MinPlayers || len(seats) > MaxPlayers {
		return nil, fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalidPlayers, MinPlayers, MaxPlayers, len(seats))
	}
	seen := make(map[string]bool)
	for _, s := range seats {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty player name", ErrInvalidPlayers)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrInvalidPlayers, name)
		}
		if s.Controller == nil {
			return nil, fmt.Errorf("%w: player %q has no controller", ErrInvalidPlayers, name)
		}
		seen[name] = true
	}

	catalog := cfg.Catalog
	if catalog == nil {
		var err error
		if catalog, err = DefaultCatalog(); err != nil {
			return nil, fmt.Errorf("default catalog: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	diag := cfg.Diag
	if diag == nil {
		diag = logrus.StandardLogger()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	gs := NewGameState()
	g := &Game{
		State:  gs,
		Logger: logger,
		Rules:  cfg.Rules.withDefaults(),
		diag:   diag.WithField("game", gs.ID.String()),
		rng:    rng,
		ctx:    context.Background(),
	}

	for i, s := range seats {
		gs.Players = append(gs.Players, &Player{Index: i, Name: strings.TrimSpace(s.Name)})
		g.controllers = append(g.controllers, s.Controller)
		dup := false
		for _, c := range g.notify {
			if c == s.Controller {
				dup = true
				break
			}
		}
		if !dup {
			g.notify = append(g.notify, s.Controller)
		}
	}

	deck := NewDeck(catalog, rng, cfg.NoShuffle)
	deck.DrawPile = catalog.Build(gs.NextID)
	deck.Shuffle()
	for i := 0; i < g.Rules.DisasterCards; i++ {
		kind := DisasterKinds[i%len(DisasterKinds)]
		if !cfg.NoShuffle {
			kind = DisasterKinds[rng.Intn(len(DisasterKinds))]
		}
		deck.DisasterDrawPile = append(deck.DisasterDrawPile, &DisasterCard{ID: gs.NextID(), Kind: kind})
	}
	deck.OnReshuffle = func(pile string, size int) {
		g.diag.WithFields(logrus.Fields{"pile": pile, "size": size}).Debug("reshuffled discard pile")
		g.log(log.NewReshuffleEvent(gs.Round, gs.Phase.String(), pile, size))
	}
	gs.Deck = deck

	return g, nil
}

// Run plays rounds until someone wins or the round limit is reached.
// Returns the winner, or nil when the game ended without one.
func (g *Game) Run(ctx context.Context) (*Player, error) {
	gs := g.State
	for !gs.Over {
		if gs.Round >= g.Rules.MaxRounds {
			g.finish(nil, fmt.Sprintf("Round limit reached (%d rounds)", g.Rules.MaxRounds))
			break
		}
		if _, err := g.PlayRound(ctx); err != nil {
			return gs.Winner, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return gs.Winner, nil
}

// PlayRound runs one full round. It returns the winner if the round ended the game.
func (g *Game) PlayRound(ctx context.Context) (*Player, error) {
	g.ctx = ctx
	gs := g.State
	if gs.Over {
		return gs.Winner, nil
	}

	gs.Round++
	gs.Phase = PhaseNone
	g.log(log.NewRoundEvent(gs.Round))
	g.startRound()

	steps := []func() error{
		g.refillHands,
		g.drawDisaster,
		g.playPointCards,
		func() error { g.reveal(PhaseReveal); return nil },
		g.resolveEffects,
		func() error { g.reveal(PhaseRevealEffects); return nil },
		g.resolveInstants,
		g.assignDisaster,
		g.rewardDisaster,
		g.rewardPoints,
		g.disasterBonus,
		g.checkEliminations,
		g.checkWinner,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
		if gs.Over {
			return gs.Winner, nil
		}
	}

	if err := g.loserDiscard(); err != nil {
		return nil, err
	}
	return nil, nil
}

// startRound returns last round's played cards to the discard pile.
func (g *Game) startRound() {
	gs := g.State
	for _, p := range gs.Players {
		if p.PlayedCard != nil {
			gs.Deck.Discard(p.PlayedCard)
			p.PlayedCard = nil
		}
		p.WonRound = false
	}
	gs.Loser = nil
	gs.Disaster = nil
}

func (g *Game) setPhase(ph Phase) {
	g.State.Phase = ph
	g.log(log.NewPhaseChangeEvent(g.State.Round, ph.String()))
}

// reveal announces every played card.
func (g *Game) reveal(ph Phase) {
	g.setPhase(ph)
	for _, p := range g.State.InPlay() {
		g.log(log.NewRevealEvent(g.State.Round, ph.String(), p.Name, p.PlayedCard.Title, p.PlayedCard.Points))
	}
}

// finish ends the game. winner may be nil.
func (g *Game) finish(winner *Player, reason string) {
	gs := g.State
	gs.Over = true
	gs.Winner = winner
	if winner != nil {
		gs.Result = fmt.Sprintf("%s wins (%s)", winner.Name, reason)
		g.log(log.NewWinEvent(gs.Round, gs.Phase.String(), winner.Name, reason))
	} else {
		gs.Result = fmt.Sprintf("No winner (%s)", reason)
	}
	g.log(log.NewGameOverEvent(gs.Round, gs.Phase.String(), gs.Result+"\n"+FormatStandings(gs)))
	g.diag.WithFields(logrus.Fields{"round": gs.Round, "result": gs.Result}).Info("game over")
}

// FormatStandings lists the players by descending score.
func FormatStandings(gs *GameState) string {
	var sb strings.Builder
	sb.WriteString("Final standings:")
	for i, p := range gs.Standings() {
		fmt.Fprintf(&sb, "\n  %d. %s: %d points, %d disasters", i+1, p.Name, p.Score, p.DisasterCount())
		if p.Eliminated {
			sb.WriteString(" (eliminated)")
		}
	}
	return sb.String()
}

func (g *Game) log(event log.GameEvent) {
	g.Logger.Log(event)
	// Notify controllers (ignore errors for notifications)
	for _, c := range g.notify {
		_ = c.Notify(g.ctx, event)
	}
}
