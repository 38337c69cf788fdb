package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/hldx/internal/game"
	"github.com/peterkuimelis/hldx/internal/log"
	"github.com/peterkuimelis/hldx/internal/view"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseOption DecisionType = "choose_option"
	DecisionAnswerYesNo  DecisionType = "answer_yes_no"
	DecisionGameOver     DecisionType = "game_over"
)

// OptionView is one numbered choice in a pending decision.
type OptionView struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type    DecisionType    `json:"type"`
	Player  string          `json:"player"`
	State   *view.StateView `json:"state"`
	Prompt  string          `json:"prompt,omitempty"`
	Options []OptionView    `json:"options,omitempty"`
}

// Response types sent back from MCP tools to the controller.

type OptionResponse struct {
	Index int
}

type YesNoResponse struct {
	Answer bool
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string           `json:"game_id,omitempty"`
	Events   []view.EventView `json:"events"`
	State    *view.StateView  `json:"state,omitempty"`
	Pending  *PendingView     `json:"pending,omitempty"`
	GameOver bool             `json:"game_over"`
	Winner   string           `json:"winner,omitempty"`
	Result   string           `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type      DecisionType `json:"type"`
	ForPlayer string       `json:"for_player"`
	Prompt    string       `json:"prompt,omitempty"`
	Options   []OptionView `json:"options,omitempty"`
}

// GameSession holds the state of a single MCP game session. The agent
// answers for every seat; each pending decision names the player it is for.
type GameSession struct {
	game   *game.Game
	ctrl   *MCPController
	cancel context.CancelFunc
	diag   logrus.FieldLogger

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []view.EventView
	gameOver bool
	winner   string
	result   string
}

// NewGameSession seats the named players, all driven by one MCP controller,
// and starts the game in the background.
func NewGameSession(cfg game.GameConfig, names []string) (*GameSession, error) {
	diag := cfg.Diag
	if diag == nil {
		diag = logrus.StandardLogger()
	}
	sess := &GameSession{
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.ctrl = NewMCPController(sess)

	seats := make([]game.Seat, 0, len(names))
	for _, n := range names {
		seats = append(seats, game.Seat{Name: n, Controller: sess.ctrl})
	}

	cfg.Logger = log.NewMemoryLogger()
	g, err := game.NewGame(cfg, seats...)
	if err != nil {
		return nil, err
	}
	sess.game = g
	sess.diag = diag.WithField("game", g.State.ID.String())

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel

	go func() {
		winner, err := g.Run(ctx)

		result := g.State.Result
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
			sess.diag.WithError(err).Warn("mcp game aborted")
		}

		sess.mu.Lock()
		sess.gameOver = true
		if winner != nil {
			sess.winner = winner.Name
		}
		sess.result = result
		sess.mu.Unlock()

		over := &PendingDecision{
			Type:  DecisionGameOver,
			State: view.Build(g.State, nil),
		}
		select {
		case sess.pendingCh <- over:
		case <-ctx.Done():
		}
	}()

	sess.diag.WithField("players", names).Info("mcp game started")
	return sess, nil
}

// Close stops the game goroutine.
func (s *GameSession) Close() {
	s.cancel()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev view.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []view.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []view.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending
	return s.response(), nil
}

// response describes the session as of the current pending decision.
func (s *GameSession) response() *ToolResponse {
	resp := &ToolResponse{
		GameID: s.game.State.ID.String(),
		Events: s.drainEvents(),
	}

	s.mu.Lock()
	resp.GameOver = s.gameOver
	resp.Winner = s.winner
	resp.Result = s.result
	s.mu.Unlock()

	pending := s.currentPending
	if pending == nil {
		return resp
	}
	resp.State = pending.State
	if pending.Type != DecisionGameOver {
		resp.Pending = &PendingView{
			Type:      pending.Type,
			ForPlayer: pending.Player,
			Prompt:    pending.Prompt,
			Options:   pending.Options,
		}
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
