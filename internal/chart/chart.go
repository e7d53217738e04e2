package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/lcexplorer/internal/dataset"
)

// ErrEmptySelection is returned when no dataset is selected for plotting.
var ErrEmptySelection = errors.New("no dataset selected")

const (
	// TagField is the literal per-series column used as the colour key.
	TagField = "Archivo"
	// Scheme is the sequential palette used for the colour key.
	Scheme = "plasma"
	// Opacity is applied to every marker.
	Opacity = 0.5
)

// Lookup resolves loaded datasets by name.
type Lookup interface {
	Get(name string) (*dataset.Dataset, bool)
}

// Options controls chart composition.
type Options struct {
	// CircleSize is the marker area shared by every series.
	CircleSize float64
	// FixedDomain pins each series' y-domain to its own [min, max] of the
	// magnitude column and reverses the axis so brighter points read higher.
	FixedDomain bool
}

type Point struct {
	X, Y float64
}

type Domain struct {
	Min, Max float64
}

// Series is one dataset rendered as a single coloured layer.
type Series struct {
	Name     string
	Points   []Point
	YDomain  *Domain
	ReverseY bool
}

// Chart is a declarative description of the combined scatter plot. It is
// rendered by VegaLite for the browser and by RenderPNG for static export.
type Chart struct {
	XField      string
	YField      string
	TagField    string
	Scheme      string
	CircleSize  float64
	Opacity     float64
	Filled      bool
	Interactive bool
	Series      []Series
}

// Compose builds one series per distinct selected dataset found in lookup.
// Names that are not loaded are skipped.
func Compose(selected []string, lookup Lookup, opt Options) (*Chart, error) {
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}
	c := &Chart{
		XField:      dataset.TimeColumn,
		YField:      dataset.MagnitudeColumn,
		TagField:    TagField,
		Scheme:      Scheme,
		CircleSize:  opt.CircleSize,
		Opacity:     Opacity,
		Interactive: true,
	}
	seen := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		d, ok := lookup.Get(name)
		if !ok {
			continue
		}
		s, err := buildSeries(d, opt)
		if err != nil {
			return nil, err
		}
		c.Series = append(c.Series, s)
	}
	return c, nil
}

func buildSeries(d *dataset.Dataset, opt Options) (Series, error) {
	xs, err := d.Column(dataset.TimeColumn)
	if err != nil {
		return Series{}, fmt.Errorf("compose series: %w", err)
	}
	ys, err := d.Column(dataset.MagnitudeColumn)
	if err != nil {
		return Series{}, fmt.Errorf("compose series: %w", err)
	}
	s := Series{Name: d.Name, Points: make([]Point, len(xs))}
	for i := range xs {
		s.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	if opt.FixedDomain {
		s.ReverseY = true
		if dom, ok := domainOf(ys); ok {
			s.YDomain = &dom
		}
	}
	return s, nil
}

func domainOf(vals []float64) (Domain, bool) {
	if len(vals) == 0 {
		return Domain{}, false
	}
	d := Domain{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range vals {
		d.Min = math.Min(d.Min, v)
		d.Max = math.Max(d.Max, v)
	}
	return d, true
}

// Names returns the series names in layer order.
func (c *Chart) Names() []string {
	out := make([]string, len(c.Series))
	for i, s := range c.Series {
		out[i] = s.Name
	}
	return out
}
