package analyticsservice

import (
	"bytes"
	"fmt"

	analyticsdomain "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the histogram colors.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	TextColor  drawing.Color
}

// DefaultPalette is fairway green on white.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	Bar:        drawing.Color{R: 46, G: 125, B: 50, A: 255},
	TextColor:  drawing.Color{R: 33, G: 33, B: 33, A: 255},
}

// RenderHistogram produces a PNG bar chart of the distance histogram.
func RenderHistogram(stats analyticsdomain.Stats, palette ChartPalette) ([]byte, error) {
	if stats.Count == 0 {
		return renderNoDataPlaceholder(palette)
	}

	peak := 0
	bars := make([]chart.Value, len(stats.Histogram))
	for i, bin := range stats.Histogram {
		peak = max(peak, bin.Count)
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%.0f", bin.Lower),
			Value: float64(bin.Count),
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		}
	}

	graph := chart.BarChart{
		Title:  fmt.Sprintf("Throw Distance (ft), mean %.0f", stats.Mean),
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		TitleStyle: chart.Style{
			FontColor: palette.TextColor,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			// Fixed from zero so uniform counts still have a range
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak + 1)},
		},
		BarWidth: 60,
		Bars:     bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = analyticsdomain.MsgNoThrows
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		// Render needs one visible series; this one draws nothing.
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: drawing.ColorTransparent,
					FillColor:   drawing.ColorTransparent,
				},
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
