// Package analyticsdomain computes throw-distance statistics and the advice
// tier shown to players.
package analyticsdomain

import "math"

// HistogramBins is the number of equal-width histogram bins.
const HistogramBins = 10

// Tier is an advice bucket keyed on mean throw distance.
type Tier string

const (
	TierFormImprovement  Tier = "form-improvement"
	TierAccuracyDrill    Tier = "accuracy-drill"
	TierCommunitySharing Tier = "community-sharing"
)

// Display messages
const (
	MsgNoRounds = "Track some rounds first!"
	MsgNoThrows = "Track rounds with throws to see stats."
)

var tierMessages = map[Tier]string{
	TierFormImprovement:  "Tip: Work on form, aim for 250+ ft drives with field practice.",
	TierAccuracyDrill:    "Tip: Solid! Focus on accuracy drills to shave strokes.",
	TierCommunitySharing: "Tip: Pro level, share tips in reviews to help the community!",
}

// Advice is a tier and its tip.
type Advice struct {
	Tier    Tier   `json:"tier"`
	Message string `json:"message"`
}

// AdviceFor classifies a mean throw distance in feet.
func AdviceFor(mean float64) Advice {
	tier := TierCommunitySharing
	switch {
	case mean < 200:
		tier = TierFormImprovement
	case mean < 300:
		tier = TierAccuracyDrill
	}
	return Advice{Tier: tier, Message: tierMessages[tier]}
}

// Bin is one histogram bucket. Each bin covers [Lower, Upper) except the
// last, which includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Stats summarizes throw distances.
type Stats struct {
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Histogram []Bin   `json:"histogram"`
}

// Compute returns count, mean and a HistogramBins-bin histogram spanning
// the observed range. Identical distances are binned over a one-foot
// range centered on the value.
func Compute(distances []float64) Stats {
	if len(distances) == 0 {
		return Stats{Histogram: []Bin{}}
	}

	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, d := range distances {
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
		sum += d
	}
	stats := Stats{
		Count: len(distances),
		Mean:  sum / float64(len(distances)),
		Min:   lo,
		Max:   hi,
	}

	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / HistogramBins
	bins := make([]Bin, HistogramBins)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	bins[HistogramBins-1].Upper = hi

	for _, d := range distances {
		i := int((d - lo) / width)
		if i >= HistogramBins {
			i = HistogramBins - 1
		}
		bins[i].Count++
	}
	stats.Histogram = bins
	return stats
}
