package mcp

import (
	"context"

	"github.com/peterkuimelis/hldx/internal/game"
	"github.com/peterkuimelis/hldx/internal/log"
	"github.com/peterkuimelis/hldx/internal/view"
)

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	session    *GameSession
	responseCh chan any
}

// NewMCPController creates a controller bound to session.
func NewMCPController(session *GameSession) *MCPController {
	return &MCPController{
		session:    session,
		responseCh: make(chan any),
	}
}

// ChooseIndex implements game.PlayerController.
func (c *MCPController) ChooseIndex(ctx context.Context, state *game.GameState, prompt game.Prompt) (int, error) {
	options := make([]OptionView, 0, len(prompt.Options))
	for i, o := range prompt.Options {
		options = append(options, OptionView{Index: i, Label: o})
	}

	resp, err := c.ask(ctx, &PendingDecision{
		Type:    DecisionChooseOption,
		Player:  prompt.Player.Name,
		State:   view.Build(state, prompt.Player),
		Prompt:  prompt.Text,
		Options: options,
	})
	if err != nil {
		return 0, err
	}
	return resp.(OptionResponse).Index, nil
}

// ChooseYesNo implements game.PlayerController.
func (c *MCPController) ChooseYesNo(ctx context.Context, state *game.GameState, p *game.Player, question string) (bool, error) {
	resp, err := c.ask(ctx, &PendingDecision{
		Type:   DecisionAnswerYesNo,
		Player: p.Name,
		State:  view.Build(state, p),
		Prompt: question,
	})
	if err != nil {
		return false, err
	}
	return resp.(YesNoResponse).Answer, nil
}

// Notify implements game.PlayerController. The engine notifies each
// distinct controller once, so every event is recorded exactly once.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(view.Event(event))
	return nil
}

func (c *MCPController) ask(ctx context.Context, pending *PendingDecision) (any, error) {
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-c.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
