// Package terminal is the hot-seat frontend: every player shares one
// keyboard and the table is redrawn from the deciding player's seat.
package terminal

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/peterkuimelis/hldx/internal/game"
	"github.com/peterkuimelis/hldx/internal/log"
	"github.com/peterkuimelis/hldx/internal/view"
)

// Controller implements game.PlayerController for every seat at once.
type Controller struct {
	in     Input
	render *Renderer
	out    io.Writer
	seat   string // player whose view is on screen
}

// NewController creates a controller reading from in and drawing to out.
func NewController(in Input, out io.Writer) *Controller {
	return &Controller{in: in, render: NewRenderer(out), out: out}
}

// ChooseIndex implements game.PlayerController.
func (c *Controller) ChooseIndex(ctx context.Context, state *game.GameState, prompt game.Prompt) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	c.showSeat(state, prompt.Player)
	return c.in.Select(fmt.Sprintf("%s: %s", prompt.Player.Name, prompt.Text), prompt.Options)
}

// ChooseYesNo implements game.PlayerController.
func (c *Controller) ChooseYesNo(ctx context.Context, state *game.GameState, p *game.Player, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.showSeat(state, p)
	return c.in.Confirm(fmt.Sprintf("%s: %s", p.Name, question))
}

// Notify implements game.PlayerController.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	if event.Type == log.EventNewRound {
		c.seat = ""
	}
	c.render.Event(event)
	return nil
}

// showSeat redraws the table when the keyboard passes to another player.
func (c *Controller) showSeat(state *game.GameState, p *game.Player) {
	if c.seat == p.Name {
		return
	}
	c.seat = p.Name
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, pterm.Info.Sprintf("Pass the keyboard to %s", p.Name))
	c.render.Table(view.Build(state, p))
}
