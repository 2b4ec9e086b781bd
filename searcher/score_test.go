package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreOrdering(t *testing.T) {
	t.Run("outcomes rank loss below draw below any heuristic below win", func(t *testing.T) {
		ordered := []Score{
			{Outcome: minusInf},
			LossScore(),
			DrawScore(),
			HeuristicScore(-1_000_000),
			HeuristicScore(0),
			HeuristicScore(42),
			WinScore(),
			{Outcome: plusInf},
		}
		for i := 0; i < len(ordered)-1; i++ {
			require.True(t, ordered[i].Less(ordered[i+1]), "%s should rank below %s", ordered[i], ordered[i+1])
			require.Equal(t, 1, ordered[i+1].Compare(ordered[i]))
		}
	})

	t.Run("equal scores compare equal", func(t *testing.T) {
		require.Equal(t, 0, HeuristicScore(7).Compare(HeuristicScore(7)))
		require.Equal(t, 0, WinScore().Compare(WinScore()))
		require.False(t, DrawScore().Less(DrawScore()))
	})

	t.Run("min and max keep the first of equal scores", func(t *testing.T) {
		require.Equal(t, HeuristicScore(3), maxScore(HeuristicScore(3), HeuristicScore(-3)))
		require.Equal(t, LossScore(), minScore(DrawScore(), LossScore()))
	})

	t.Run("renders outcomes", func(t *testing.T) {
		require.Equal(t, "win", WinScore().String())
		require.Equal(t, "-12", HeuristicScore(-12).String())
		require.Equal(t, "+inf", Score{Outcome: plusInf}.String())
	})
}
