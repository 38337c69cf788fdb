package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/peterkuimelis/hldx/internal/log"
	"github.com/peterkuimelis/hldx/internal/view"
)

// Renderer draws events and table snapshots with pterm.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Event prints one event line, highlighting the ones that matter.
func (r *Renderer) Event(e log.GameEvent) {
	switch e.Type {
	case log.EventNewRound:
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, pterm.LightYellow(e.Details))
	case log.EventPhaseChange:
		// The phase column of every line already shows it.
	case log.EventRoundWin, log.EventWin:
		fmt.Fprintln(r.out, pterm.LightGreen(log.FormatEvent(e)))
	case log.EventDisasterAssigned, log.EventEliminated:
		fmt.Fprintln(r.out, pterm.LightRed(log.FormatEvent(e)))
	case log.EventGameOver:
		r.gameOver(e.Details)
	default:
		fmt.Fprintln(r.out, log.FormatEvent(e))
	}
}

func (r *Renderer) gameOver(result string) {
	box := pterm.DefaultBox.WithTitle(pterm.LightGreen("|GAME OVER|")).WithTitleTopCenter().
		WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	fmt.Fprintln(r.out, box.Sprint(result))
}

// Table prints the scoreboard and the viewer's hand.
func (r *Renderer) Table(sv *view.StateView) {
	data := [][]string{{"Player", "Score", "Hand", "Disasters", "Played"}}
	for _, p := range sv.Players {
		name := p.Name
		if p.Name == sv.You {
			name = pterm.LightCyan(p.Name + " (you)")
		}
		if p.Eliminated {
			name += pterm.LightRed(" [out]")
		}
		played := "-"
		switch {
		case p.FaceDown:
			played = "face down"
		case p.Played != nil:
			played = fmt.Sprintf("%s (%d)", p.Played.Title, p.Played.Points)
		}
		data = append(data, []string{
			name,
			fmt.Sprint(p.Score),
			fmt.Sprint(p.HandCount),
			strings.Join(p.Disasters, ", "),
			played,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		fmt.Fprintln(r.out, pterm.Error.Sprint(err))
		return
	}

	header := fmt.Sprintf("Round %d | %s", sv.Round, sv.Phase)
	if sv.Disaster != "" {
		header += " | At stake: " + sv.Disaster
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, pterm.LightYellow(header))
	fmt.Fprintln(r.out, table)

	for _, p := range sv.Players {
		if p.Name != sv.You || len(p.Hand) == 0 {
			continue
		}
		var lines []string
		for _, c := range p.Hand {
			line := c.Title
			if c.Kind == "Instant" {
				line += " (Instant)"
			} else {
				line += fmt.Sprintf(" (%d)", c.Points)
			}
			if c.Text != "" {
				line += ": " + c.Text
			}
			lines = append(lines, line)
		}
		box := pterm.DefaultBox.WithTitle(p.Name + "'s hand").WithTitleTopLeft()
		fmt.Fprintln(r.out, box.Sprint(strings.Join(lines, "\n")))
	}
}
