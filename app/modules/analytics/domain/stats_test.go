package analyticsdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviceFor(t *testing.T) {
	tests := []struct {
		mean float64
		want Tier
	}{
		{0, TierFormImprovement},
		{199.9, TierFormImprovement},
		{200, TierAccuracyDrill},
		{299.9, TierAccuracyDrill},
		{300, TierCommunitySharing},
		{512, TierCommunitySharing},
	}
	for _, tt := range tests {
		got := AdviceFor(tt.mean)
		assert.Equal(t, tt.want, got.Tier, "mean %v", tt.mean)
		assert.NotEmpty(t, got.Message)
	}
	assert.Equal(t, "Tip: Solid! Focus on accuracy drills to shave strokes.", AdviceFor(250).Message)
}

func binCounts(bins []Bin) []int {
	out := make([]int, len(bins))
	for i, b := range bins {
		out[i] = b.Count
	}
	return out
}

func TestCompute(t *testing.T) {
	t.Run("mean and range", func(t *testing.T) {
		s := Compute([]float64{100, 200, 300})
		assert.Equal(t, 3, s.Count)
		assert.InDelta(t, 200, s.Mean, 1e-9)
		assert.Equal(t, TierAccuracyDrill, AdviceFor(s.Mean).Tier)

		require.Len(t, s.Histogram, HistogramBins)
		assert.Equal(t, 100.0, s.Histogram[0].Lower)
		assert.Equal(t, 300.0, s.Histogram[HistogramBins-1].Upper)
		assert.Equal(t, []int{1, 0, 0, 0, 0, 1, 0, 0, 0, 1}, binCounts(s.Histogram))
	})

	t.Run("identical distances", func(t *testing.T) {
		s := Compute([]float64{250, 250})
		assert.Equal(t, 250.0, s.Min)
		assert.Equal(t, 249.5, s.Histogram[0].Lower)
		assert.Equal(t, 250.5, s.Histogram[HistogramBins-1].Upper)
		assert.Equal(t, 2, s.Histogram[5].Count)
	})

	t.Run("empty", func(t *testing.T) {
		s := Compute(nil)
		assert.Zero(t, s.Count)
		assert.NotNil(t, s.Histogram)
		assert.Empty(t, s.Histogram)
	})

	t.Run("every distance lands in a bin", func(t *testing.T) {
		distances := []float64{12.5, 88, 143.2, 143.2, 199.99, 250, 318.7, 402, 402.0001, 611}
		total := 0
		for _, c := range binCounts(Compute(distances).Histogram) {
			total += c
		}
		assert.Equal(t, len(distances), total)
	})
}
