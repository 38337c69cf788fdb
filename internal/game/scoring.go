package game

import (
	"fmt"

	"github.com/peterkuimelis/hldx/internal/log"
)

// rewardPoints scores the round: everyone tied for the highest played card
// adds its points to their score.
func (g *Game) rewardPoints() error {
	g.setPhase(PhaseRewardPoints)
	gs := g.State

	players := gs.InPlay()
	if len(players) == 0 {
		return nil
	}
	high := players[0].PlayedCard.Points
	for _, p := range players[1:] {
		high = max(high, p.PlayedCard.Points)
	}
	for _, p := range players {
		p.WonRound = p.PlayedCard.Points == high
	}

	for _, p := range players {
		if !p.WonRound {
			continue
		}
		g.log(log.NewRoundWinEvent(gs.Round, gs.Phase.String(), p.Name, p.PlayedCard.Points))
		g.addScore(p, p.PlayedCard.Points, "round win")
		p.WonRound = false
	}
	return nil
}

// disasterBonus moves every active player up by the number of disasters they hold.
func (g *Game) disasterBonus() error {
	g.setPhase(PhaseDisasterBonus)
	for _, p := range g.State.Active() {
		if n := p.DisasterCount(); n > 0 {
			g.addScore(p, n, "disaster bonus")
		}
	}
	return nil
}

func (g *Game) addScore(p *Player, delta int, reason string) {
	old := p.Score
	p.AddScore(delta)
	g.log(log.NewScoreChangeEvent(g.State.Round, g.State.Phase.String(), p.Name, old, p.Score, reason))
}

// checkEliminations knocks out everyone at the disaster limit.
func (g *Game) checkEliminations() error {
	g.setPhase(PhaseCheckEliminations)
	gs := g.State
	for _, p := range gs.Players {
		if !p.Eliminated && p.DisasterCount() >= g.Rules.DisasterLimit {
			p.Eliminate()
			g.log(log.NewEliminatedEvent(gs.Round, gs.Phase.String(), p.Name, p.DisasterCount()))
			g.diag.WithField("player", p.Name).Info("player eliminated")
		}
	}
	return nil
}

// checkWinner ends the game for the last player standing, or else for the
// first player in seat order at or above the win score.
func (g *Game) checkWinner() error {
	g.setPhase(PhaseCheckWinner)
	active := g.State.Active()

	switch len(active) {
	case 0:
		g.finish(nil, "every player was eliminated")
		return nil
	case 1:
		g.finish(active[0], "last player standing")
		return nil
	}
	for _, p := range active {
		if p.Score >= g.Rules.WinScore {
			g.finish(p, fmt.Sprintf("%d points", p.Score))
			return nil
		}
	}
	return nil
}
