package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/hldx/internal/log"
)

func scoreRound(t *testing.T, tt *testTable) {
	t.Helper()
	g := tt.game
	for _, step := range []func() error{g.rewardPoints, g.disasterBonus, g.checkEliminations, g.checkWinner} {
		require.NoError(t, step())
	}
}

func TestHighestCardWinsRound(t *testing.T) {
	tt := newTestTable(t, "P1", "P2")
	p1 := tt.play("P1", tt.vanilla("Boulder Fort", 5))
	p2 := tt.play("P2", tt.vanilla("Hollow Log", 3))

	require.NoError(t, tt.game.assignDisaster())
	scoreRound(t, tt)

	assert.Equal(t, 5, p1.Score)
	assert.Zero(t, p2.Score)
	assert.False(t, p1.WonRound, "the flag only lives until the score is applied")
	assert.False(t, p1.Eliminated)
	assert.False(t, p2.Eliminated)
	assert.False(t, tt.game.State.Over)

	wins := tt.logger.EventsOfType(log.EventRoundWin)
	require.Len(t, wins, 1)
	assert.Equal(t, "P1", wins[0].Player)
}

func TestTiedRoundWinnersAllScore(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben", "Cat")
	ann := tt.play("Ann", tt.vanilla("Fern Thicket", 4))
	ben := tt.play("Ben", tt.vanilla("Fern Thicket", 4))
	cat := tt.play("Cat", tt.vanilla("Leaf Pile", 1))

	scoreRound(t, tt)

	assert.Equal(t, 4, ann.Score)
	assert.Equal(t, 4, ben.Score)
	assert.Zero(t, cat.Score)
}

func TestNegativeRoundWinKeepsScoreAtZero(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben")
	ann := tt.play("Ann", tt.vanilla("Leaf Pile", -3))

	scoreRound(t, tt)

	assert.Zero(t, ann.Score)
}

func TestDisasterBonusEveryRound(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben")
	ann := tt.player("Ann")
	ann.Disasters = []*DisasterCard{{ID: 1}, {ID: 2}}

	scoreRound(t, tt)
	scoreRound(t, tt)

	assert.Equal(t, 4, ann.Score)
	assert.Zero(t, tt.player("Ben").Score)
}

// A third disaster arrives this round: bonus first, then elimination, and
// the player sits out every later round.
func TestThirdDisasterEliminates(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben", "Cat")
	ann := tt.play("Ann", tt.vanilla("Leaf Pile", 1))
	tt.play("Ben", tt.vanilla("Boulder Fort", 5))
	tt.play("Cat", tt.vanilla("Hollow Log", 3))
	ann.Disasters = []*DisasterCard{{ID: 1}, {ID: 2}}
	tt.pendingDisaster()

	require.NoError(t, tt.game.assignDisaster())
	require.NoError(t, tt.game.rewardDisaster())
	scoreRound(t, tt)

	assert.True(t, ann.Eliminated)
	assert.Equal(t, 3, ann.Score, "the bonus is paid before elimination")
	assert.False(t, tt.game.State.Over)

	hand := len(ann.Hand)
	_, err := tt.game.PlayRound(context.Background())
	require.NoError(t, err)

	assert.True(t, ann.Eliminated)
	assert.Nil(t, ann.PlayedCard)
	assert.Len(t, ann.Hand, hand)
	assert.Empty(t, tt.ctrl["Ann"].Prompts)
	assert.Empty(t, tt.ctrl["Ann"].Questions)
	assert.Equal(t, 3, ann.Score)
}

func TestEliminationIsPermanent(t *testing.T) {
	tt := newTestTable(t, "Ann", "Ben", "Cat")
	ann := tt.player("Ann")
	ann.Eliminate()

	scoreRound(t, tt)

	assert.True(t, ann.Eliminated)
}

func TestCheckWinner(t *testing.T) {
	t.Run("last standing", func(t *testing.T) {
		tt := newTestTable(t, "Ann", "Ben", "Cat")
		tt.player("Ann").Eliminate()
		tt.player("Cat").Eliminate()

		require.NoError(t, tt.game.checkWinner())

		assert.True(t, tt.game.State.Over)
		assert.Same(t, tt.player("Ben"), tt.game.State.Winner)
		assert.Len(t, tt.logger.EventsOfType(log.EventWin), 1)
	})

	t.Run("first in seat order at threshold", func(t *testing.T) {
		tt := newTestTable(t, "Ann", "Ben")
		tt.player("Ann").Score = 50
		tt.player("Ben").Score = 61

		require.NoError(t, tt.game.checkWinner())

		assert.Same(t, tt.player("Ann"), tt.game.State.Winner)
	})

	t.Run("below threshold", func(t *testing.T) {
		tt := newTestTable(t, "Ann", "Ben")
		tt.player("Ann").Score = 49

		require.NoError(t, tt.game.checkWinner())

		assert.False(t, tt.game.State.Over)
	})

	t.Run("everyone eliminated", func(t *testing.T) {
		tt := newTestTable(t, "Ann", "Ben")
		tt.player("Ann").Eliminate()
		tt.player("Ben").Eliminate()

		require.NoError(t, tt.game.checkWinner())

		assert.True(t, tt.game.State.Over)
		assert.Nil(t, tt.game.State.Winner)
		over := tt.logger.EventsOfType(log.EventGameOver)
		require.Len(t, over, 1)
		assert.Contains(t, over[0].Details, "Final standings")
	})
}
