package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/hldx/internal/log"
)

// PlayerController is the interface that terminal, MCP and scripted players implement.
// Answers are validated by the engine; an out-of-range or illegal index is
// simply asked again, so implementations only need to parse a single value.
type PlayerController interface {
	// ChooseIndex asks a player to pick one of the prompt's options (0-based).
	ChooseIndex(ctx context.Context, state *GameState, prompt Prompt) (int, error)

	// ChooseYesNo asks a player a yes/no question (e.g., "use Pet Rock?").
	ChooseYesNo(ctx context.Context, state *GameState, player *Player, question string) (bool, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// Prompt describes a bounded choice for one player.
type Prompt struct {
	Player  *Player
	Text    string
	Options []string
}

// Seat binds a player name to the controller that decides for it.
type Seat struct {
	Name       string
	Controller PlayerController
}

// chooseIndex asks until the answer is in range and accepted by valid (nil accepts all).
func (g *Game) chooseIndex(p *Player, text string, options []string, valid func(int) bool) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("%s: no options for %q", p.Name, text)
	}
	prompt := Prompt{Player: p, Text: text, Options: options}
	for {
		idx, err := g.controllers[p.Index].ChooseIndex(g.ctx, g.State, prompt)
		if err != nil {
			return -1, fmt.Errorf("%s: %w", p.Name, err)
		}
		if idx >= 0 && idx < len(options) && (valid == nil || valid(idx)) {
			return idx, nil
		}
		g.diag.WithField("player", p.Name).WithField("answer", idx).Debug("rejected choice, asking again")
		if err := g.ctx.Err(); err != nil {
			return -1, err
		}
	}
}

func (g *Game) confirm(p *Player, question string) (bool, error) {
	ok, err := g.controllers[p.Index].ChooseYesNo(g.ctx, g.State, p, question)
	if err != nil {
		return false, fmt.Errorf("%s: %w", p.Name, err)
	}
	return ok, nil
}

// choosePlayer asks p to pick one of the candidates.
func (g *Game) choosePlayer(p *Player, text string, candidates []*Player) (*Player, error) {
	options := make([]string, len(candidates))
	for i, c := range candidates {
		options[i] = playerLabel(c)
	}
	idx, err := g.chooseIndex(p, text, options, nil)
	if err != nil {
		return nil, err
	}
	return candidates[idx], nil
}

// chooseCard asks p to pick a card from cards, accepting only those matching valid.
func (g *Game) chooseCard(p *Player, text string, cards []*Card, valid func(*Card) bool) (int, error) {
	options := make([]string, len(cards))
	for i, c := range cards {
		options[i] = c.DisplayString()
	}
	var check func(int) bool
	if valid != nil {
		check = func(i int) bool { return valid(cards[i]) }
	}
	return g.chooseIndex(p, text, options, check)
}

func playerLabel(p *Player) string {
	if p.PlayedCard != nil {
		return fmt.Sprintf("%s (score %d, played %s)", p.Name, p.Score, p.PlayedCard)
	}
	return fmt.Sprintf("%s (score %d)", p.Name, p.Score)
}
