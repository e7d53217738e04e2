package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoPoints is returned when every series is empty.
var ErrNoPoints = errors.New("no points to render")

// RenderPNG draws c as a static scatter plot. The y range is the union of
// the series domains and runs top-down when any series is reversed.
func RenderPNG(w io.Writer, c *Chart, width, height int) error {
	colors := Palette(len(c.Series))
	alpha := uint8(math.Round(c.Opacity * 255))
	xr := Domain{Min: math.Inf(1), Max: math.Inf(-1)}
	yr := xr
	reverse := false

	var series []gochart.Series
	for i, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = p.X, p.Y
			xr = widen(xr, p.X)
			if s.YDomain == nil {
				yr = widen(yr, p.Y)
			}
		}
		if s.YDomain != nil {
			yr = widen(widen(yr, s.YDomain.Min), s.YDomain.Max)
		}
		reverse = reverse || s.ReverseY
		r, g, b := colors[i].RGB255()
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    dotRadius(c.CircleSize),
				DotColor:    drawing.Color{R: r, G: g, B: b, A: alpha},
			},
		})
	}
	if len(series) == 0 {
		return ErrNoPoints
	}
	xr, yr = padDegenerate(xr), padDegenerate(yr)

	graph := gochart.Chart{
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  c.XField,
			Range: &gochart.ContinuousRange{Min: xr.Min, Max: xr.Max},
		},
		YAxis: gochart.YAxis{
			Name:  c.YField,
			Range: &gochart.ContinuousRange{Min: yr.Min, Max: yr.Max, Descending: reverse},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

func widen(d Domain, v float64) Domain {
	d.Min = math.Min(d.Min, v)
	d.Max = math.Max(d.Max, v)
	return d
}

// padDegenerate opens a zero-width range, which the renderer rejects.
func padDegenerate(d Domain) Domain {
	if d.Max-d.Min == 0 {
		d.Min -= 0.5
		d.Max += 0.5
	}
	return d
}

// dotRadius converts a marker area in square pixels to a radius.
func dotRadius(area float64) float64 {
	return math.Max(1, math.Sqrt(area/math.Pi))
}
