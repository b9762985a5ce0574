package absence

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxHours(t *testing.T) {
	tests := []struct {
		total, rate, want int
	}{
		{30, 20, 6},
		{45, 30, 13},
		{14, 30, 4},
		{0, 30, 0},
		{30, 0, 0},
		{-5, 30, 0},
		{10, 150, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxHours(tt.total, tt.rate), "MaxHours(%d, %d)", tt.total, tt.rate)
	}
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 3, Remaining(Counter{Current: 3, Max: 6}))
	assert.Equal(t, 0, Remaining(Counter{Current: 6, Max: 6}))
	assert.Equal(t, 0, Remaining(Counter{Current: 0, Max: 0}))
}

func TestUsageRatioZeroMax(t *testing.T) {
	_, ok := UsageRatio(Counter{Current: 0, Max: 0})
	assert.False(t, ok, "ratio must be undefined without an allowance")

	ratio, ok := UsageRatio(Counter{Current: 3, Max: 6})
	require.True(t, ok)
	assert.InDelta(t, 0.5, ratio, 1e-9)
}

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		c    Counter
		want Status
	}{
		{Counter{Current: 95, Max: 100}, Danger},
		{Counter{Current: 90, Max: 100}, Danger},
		{Counter{Current: 75, Max: 100}, Warning},
		{Counter{Current: 70, Max: 100}, Warning},
		{Counter{Current: 50, Max: 100}, Safe},
		{Counter{Current: 0, Max: 0}, Safe},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, th.Classify(tt.c), "Classify(%+v)", tt.c)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "safe", Safe.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "danger", Danger.String())
}

func TestIsCritical(t *testing.T) {
	th := DefaultThresholds()
	assert.True(t, th.IsCritical(Counter{Current: 8, Max: 10}))
	assert.False(t, th.IsCritical(Counter{Current: 7, Max: 10}))
	assert.False(t, th.IsCritical(Counter{Current: 0, Max: 0}))
}

func TestThresholdsIndependent(t *testing.T) {
	th := Thresholds{Warning: 0.5, Danger: 0.6, Critical: 0.95}
	c := Counter{Current: 9, Max: 10}
	assert.Equal(t, Danger, th.Classify(c))
	assert.False(t, th.IsCritical(c))
}

func TestAdjustClamps(t *testing.T) {
	c := Counter{Current: 6, Max: 6}
	assert.Equal(t, 6, Adjust(c, 1).Current, "ceiling must hold")
	assert.Equal(t, 6, Adjust(Adjust(c, 1), 1).Current)

	c = Counter{Current: 0, Max: 6}
	assert.Equal(t, 0, Adjust(c, -1).Current, "floor must hold")
	assert.Equal(t, 6, Adjust(c, 100).Current)
	assert.Equal(t, 0, Adjust(Counter{Current: 4, Max: 6}, -100).Current)
}

func TestAdjustInvariantUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		c := Counter{Max: rng.Intn(20)}
		for i := 0; i < 200; i++ {
			c = Adjust(c, rng.Intn(7)-3)
			require.GreaterOrEqual(t, c.Current, 0)
			require.LessOrEqual(t, c.Current, c.Max)
		}
	}
}

func TestScenarioSimpleLesson(t *testing.T) {
	th := DefaultThresholds()
	c := Counter{Max: MaxHours(30, 20)}
	require.Equal(t, 6, c.Max)

	for i := 0; i < 3; i++ {
		c = Adjust(c, 1)
	}
	assert.Equal(t, 3, c.Current)
	assert.Equal(t, 3, Remaining(c))
	assert.Equal(t, Safe, th.Classify(c))

	c = Adjust(Adjust(c, 1), 1)
	assert.Equal(t, 5, c.Current)
	assert.Equal(t, Warning, th.Classify(c))
	assert.True(t, th.IsCritical(c))
}

func TestFold(t *testing.T) {
	th := DefaultThresholds()
	units := []Counter{
		{Current: 19, Max: 20},
		{Current: 4, Max: 10},
	}
	s := th.Fold(units)
	assert.Equal(t, 2, s.Units)
	assert.Equal(t, 23, s.TotalAbsence)
	assert.Equal(t, 30, s.TotalMax)
	assert.Equal(t, 1, s.Critical)
	assert.InDelta(t, 76.666, s.AverageUsage(), 0.01)
}

func TestFoldEmpty(t *testing.T) {
	s := DefaultThresholds().Fold(nil)
	assert.Zero(t, s.Units)
	assert.Zero(t, s.AverageUsage())
}
