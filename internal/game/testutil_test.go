package game

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/hldx/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script of answers.
// Used in tests to deterministically drive the game.
type ScriptedController struct {
	t    *testing.T
	name string

	// Picks are matched against option labels by prefix, in order.
	picks   []string
	pickPos int

	yesNo    []bool
	yesNoPos int

	// DefaultYes answers unscripted yes/no questions.
	DefaultYes bool

	// OnNotify, if set, sees every event as it is announced.
	OnNotify func(log.GameEvent)

	fallback  int
	Prompts   []Prompt
	Questions []string
	Events    []log.GameEvent
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

// AddPick queues a choice: the first option whose label starts with label.
func (sc *ScriptedController) AddPick(labels ...string) *ScriptedController {
	sc.picks = append(sc.picks, labels...)
	return sc
}

func (sc *ScriptedController) AddYesNo(answers ...bool) *ScriptedController {
	sc.yesNo = append(sc.yesNo, answers...)
	return sc
}

func (sc *ScriptedController) ChooseIndex(ctx context.Context, state *GameState, prompt Prompt) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	sc.Prompts = append(sc.Prompts, prompt)

	if sc.pickPos < len(sc.picks) {
		label := sc.picks[sc.pickPos]
		for i, opt := range prompt.Options {
			if strings.HasPrefix(opt, label) {
				sc.pickPos++
				return i, nil
			}
		}
		sc.t.Fatalf("%s: no option starting with %q in %q (%v)", sc.name, label, prompt.Text, prompt.Options)
	}

	// Unscripted: cycle through indexes. The engine re-asks until one is legal.
	idx := sc.fallback % len(prompt.Options)
	sc.fallback++
	return idx, nil
}

func (sc *ScriptedController) ChooseYesNo(ctx context.Context, state *GameState, player *Player, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	sc.Questions = append(sc.Questions, question)
	if sc.yesNoPos < len(sc.yesNo) {
		answer := sc.yesNo[sc.yesNoPos]
		sc.yesNoPos++
		return answer, nil
	}
	return sc.DefaultYes, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.Events = append(sc.Events, event)
	if sc.OnNotify != nil {
		sc.OnNotify(event)
	}
	return nil
}

// Remaining reports how many scripted picks were never used.
func (sc *ScriptedController) Remaining() int {
	return len(sc.picks) - sc.pickPos
}

// --- Table helpers ---

type testTable struct {
	t      *testing.T
	game   *Game
	logger *log.MemoryLogger
	diag   *logtest.Hook
	ctrl   map[string]*ScriptedController
	nextID int
}

// newTestTable seats the named players with scripted controllers and an
// unshuffled default deck.
func newTestTable(t *testing.T, names ...string) *testTable {
	t.Helper()
	logger := log.NewMemoryLogger()
	diag, hook := logtest.NewNullLogger()
	diag.SetLevel(logrus.DebugLevel)

	tt := &testTable{t: t, logger: logger, diag: hook, ctrl: make(map[string]*ScriptedController), nextID: 1000}
	var seats []Seat
	for _, n := range names {
		sc := NewScriptedController(t, n)
		tt.ctrl[n] = sc
		seats = append(seats, Seat{Name: n, Controller: sc})
	}

	g, err := NewGame(GameConfig{Logger: logger, Diag: diag, Seed: 1, NoShuffle: true}, seats...)
	require.NoError(t, err)
	tt.game = g
	return tt
}

func (tt *testTable) player(name string) *Player {
	tt.t.Helper()
	p := tt.game.State.PlayerByName(name)
	require.NotNil(tt.t, p, "no player %q", name)
	return p
}

func (tt *testTable) point(title string, pts int, eff Effect) *Card {
	tt.nextID++
	return &Card{ID: tt.nextID, Title: title, Kind: CardKindPoint, Points: pts, Effect: eff}
}

func (tt *testTable) vanilla(title string, pts int) *Card {
	return tt.point(title, pts, EffectNone)
}

func (tt *testTable) instant(title string, eff Effect) *Card {
	tt.nextID++
	return &Card{ID: tt.nextID, Title: title, Kind: CardKindInstant, Effect: eff}
}

// play puts card on the table for the named player.
func (tt *testTable) play(name string, card *Card) *Player {
	p := tt.player(name)
	p.PlayedCard = card
	return p
}

func (tt *testTable) hand(name string, cards ...*Card) *Player {
	p := tt.player(name)
	p.Hand = cards
	return p
}

// pendingDisaster puts a disaster up for assignment this round.
func (tt *testTable) pendingDisaster() *DisasterCard {
	dc := &DisasterCard{ID: 999, Kind: DisasterMeteor}
	tt.game.State.Disaster = dc
	return dc
}

func (tt *testTable) emptyDeck() {
	d := tt.game.State.Deck
	d.DrawPile = nil
	d.DiscardPile = nil
}
