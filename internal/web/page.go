package web

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/KaramelBytes/lcexplorer/internal/chart"
	"github.com/KaramelBytes/lcexplorer/internal/explorer"
	"github.com/KaramelBytes/lcexplorer/internal/source"
)

// pageData is the template model of one rendered pass.
type pageData struct {
	Title      string
	Subtitle   string
	Conclusion string
	Upload     bool
	MinSize    float64
	MaxSize    float64

	View  *explorer.View
	Fatal string
	// SpecJSON is the Vega-Lite spec, or null when no chart is shown.
	SpecJSON template.JS

	StatsHeader []string
	StatsRows   [][]string
}

func (s *Server) pageData(view *explorer.View, err error) pageData {
	d := pageData{
		Title:      s.opts.Title,
		Subtitle:   s.opts.Subtitle,
		Conclusion: s.opts.Conclusion,
		Upload:     s.opts.Mode == source.ModeUpload,
		MinSize:    s.opts.Explorer.MinCircleSize,
		MaxSize:    s.opts.Explorer.MaxCircleSize,
		View:       view,
		SpecJSON:   template.JS("null"),
	}
	if d.View == nil {
		d.View = &explorer.View{Mode: s.opts.Mode}
	}
	if err != nil {
		d.Fatal = err.Error()
		return d
	}
	if view.Chart != nil {
		spec, serr := chart.VegaLite(view.Chart, s.opts.ChartHeight)
		if serr == nil {
			if b, jerr := spec.JSON(); jerr == nil {
				d.SpecJSON = template.JS(b)
			}
		}
		if d.SpecJSON == "null" {
			d.Fatal = fmt.Sprintf("build chart: %v", serr)
		}
	}
	if view.Inspection != nil && view.Inspection.Stats != nil {
		d.StatsHeader, d.StatsRows = view.Inspection.Stats.Table()
	}
	return d
}

// IsSelected reports whether name is part of the current selection.
func (d pageData) IsSelected(name string) bool {
	for _, n := range d.View.State.Selected {
		if n == name {
			return true
		}
	}
	return false
}

var funcMap = template.FuncMap{
	"fmtNum": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
}
