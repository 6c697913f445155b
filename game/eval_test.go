package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluationOrder(t *testing.T) {
	t.Run("winning dominates everything", func(t *testing.T) {
		require.Equal(t, 0, Winning().Compare(Winning()), "Two wins should be equal")
		require.Equal(t, 1, Winning().Compare(Estimate(5.0)), "Win should beat any estimate")
		require.Equal(t, 1, Winning().Compare(Estimate(math.MaxFloat64)), "Win should beat even a huge estimate")
		require.Equal(t, 1, Winning().Compare(Losing()), "Win should beat a loss")
		require.Equal(t, -1, Estimate(5.0).Compare(Winning()), "Estimate should lose to a win")
	})

	t.Run("losing is dominated by everything", func(t *testing.T) {
		require.Equal(t, 0, Losing().Compare(Losing()), "Two losses should be equal")
		require.Equal(t, -1, Losing().Compare(Winning()), "Loss should lose to a win")
		require.Equal(t, -1, Losing().Compare(Estimate(0.0)), "Loss should lose to any estimate")
		require.Equal(t, -1, Losing().Compare(Estimate(-math.MaxFloat64)), "Loss should lose to even a tiny estimate")
		require.Equal(t, 1, Estimate(5.0).Compare(Losing()), "Estimate should beat a loss")
	})

	t.Run("estimates compare by score", func(t *testing.T) {
		require.Equal(t, 1, Estimate(5.0).Compare(Estimate(-5.0)))
		require.Equal(t, 0, Estimate(5.0).Compare(Estimate(5.0)))
		require.Equal(t, -1, Estimate(5.0).Compare(Estimate(10.0)))
	})

	t.Run("estimate chain for any x < y", func(t *testing.T) {
		pairs := [][2]float64{{-1, 0}, {0, 0.5}, {-100, 100}, {1e-9, 2e-9}}
		for _, p := range pairs {
			x, y := Estimate(p[0]), Estimate(p[1])
			require.True(t, x.Less(y), "%v should be less than %v", x, y)
			require.True(t, y.Less(Winning()), "%v should be less than Winning", y)
			require.True(t, Losing().Less(x), "Losing should be less than %v", x)
		}
	})

	t.Run("strict comparisons are irreflexive", func(t *testing.T) {
		for _, e := range []Evaluation{Winning(), Losing(), Estimate(0), Estimate(-3)} {
			require.False(t, e.Greater(e), "%v should not be greater than itself", e)
			require.False(t, e.Less(e), "%v should not be less than itself", e)
			require.True(t, e.Equal(e), "%v should equal itself", e)
		}
	})

	t.Run("NaN estimates are never strictly ordered against estimates", func(t *testing.T) {
		nan := Estimate(math.NaN())
		require.False(t, nan.Greater(Estimate(0)))
		require.False(t, nan.Less(Estimate(0)))
		require.True(t, nan.Less(Winning()), "Win still dominates a NaN estimate")
		require.True(t, nan.Greater(Losing()), "A NaN estimate still beats a loss")
		require.Equal(t, 0, nan.Compare(Estimate(0)))
	})

	t.Run("NaN estimates equal nothing", func(t *testing.T) {
		nan := Estimate(math.NaN())
		require.False(t, nan.Equal(Estimate(0)))
		require.False(t, Estimate(1).Equal(nan))
		require.False(t, nan.Equal(nan), "NaN should not even equal itself")
		require.True(t, Estimate(0).Equal(Estimate(0)))
		require.False(t, Estimate(0).Equal(Estimate(1)))
		require.False(t, Winning().Equal(Estimate(0)))
	})
}

func TestEvaluationAccessors(t *testing.T) {
	t.Run("zero value is a neutral estimate", func(t *testing.T) {
		var e Evaluation
		score, ok := e.Score()
		require.True(t, ok)
		require.Equal(t, 0.0, score)
		require.True(t, e.Equal(Estimate(0)))
	})

	t.Run("decided evaluations carry no score", func(t *testing.T) {
		_, ok := Winning().Score()
		require.False(t, ok)
		_, ok = Losing().Score()
		require.False(t, ok)
		require.True(t, Winning().IsWinning())
		require.True(t, Losing().IsLosing())
		require.False(t, Estimate(1).IsWinning())
	})

	t.Run("string forms", func(t *testing.T) {
		require.Equal(t, "Winning", Winning().String())
		require.Equal(t, "Losing", Losing().String())
		require.Equal(t, "Estimate(0.5)", Estimate(0.5).String())
	})
}

func TestSide(t *testing.T) {
	require.Equal(t, Second, First.Other())
	require.Equal(t, First, Second.Other())
	require.True(t, First.Valid())
	require.False(t, Side(2).Valid())
	require.False(t, Side(-1).Valid())
}
