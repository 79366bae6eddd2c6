package chart

import (
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

// RenderPNG draws a static snapshot of one panel. Days run left to right and
// faster completions sit higher, as in the interactive chart.
func RenderPNG(w io.Writer, p *Panel, width, height int) error {
	series := make([]gochart.Series, 0, len(p.Columns))
	minDay, maxDay := math.MaxFloat64, -math.MaxFloat64
	maxSecs := 0.0

	for i, col := range p.Columns {
		xs := make([]float64, 0, len(p.Rows))
		ys := make([]float64, 0, len(p.Rows))
		for _, r := range p.Rows {
			c := r.Cells[i]
			if c.Seconds == nil {
				continue
			}
			x := float64(r.Day)
			y := float64(*c.Seconds)
			xs = append(xs, x)
			ys = append(ys, y)
			minDay = math.Min(minDay, x)
			maxDay = math.Max(maxDay, x)
			maxSecs = math.Max(maxSecs, y)
		}
		if len(xs) == 0 {
			continue
		}
		stroke := hexColor(col.Color)
		series = append(series, gochart.ContinuousSeries{
			Name:    col.Label,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: stroke,
				StrokeWidth: 3,
				DotColor:    stroke,
				DotWidth:    5,
			},
		})
	}
	if len(series) == 0 {
		return ErrNoData
	}
	if maxSecs <= 0 {
		maxSecs = 1
	}

	ticks := make([]gochart.Tick, 0, len(p.Rows))
	for _, r := range p.Rows {
		if d := float64(r.Day); d >= minDay && d <= maxDay {
			ticks = append(ticks, gochart.Tick{Value: d, Label: r.Label})
		}
	}

	bg := hexColor(backgroundColor)
	fg := hexColor(textColor)
	ch := gochart.Chart{
		Title:      p.Title,
		TitleStyle: gochart.Style{FontColor: fg},
		Width:      width,
		Height:     height,
		Background: gochart.Style{
			FillColor: bg,
			Padding:   gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: gochart.Style{FillColor: bg},
		XAxis: gochart.XAxis{
			Style: gochart.Style{FontColor: fg, StrokeColor: fg},
			Range: &gochart.ContinuousRange{Min: minDay - 0.5, Max: maxDay + 0.5},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  p.Axis,
			Style: gochart.Style{FontColor: fg, StrokeColor: fg},
			Range: &gochart.ContinuousRange{Min: 0, Max: maxSecs * 1.05, Descending: true},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return ch.Render(gochart.PNG, w)
}
