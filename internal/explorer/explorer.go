package explorer

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/lcexplorer/internal/analysis"
	"github.com/KaramelBytes/lcexplorer/internal/chart"
	"github.com/KaramelBytes/lcexplorer/internal/dataset"
	"github.com/KaramelBytes/lcexplorer/internal/source"
	"github.com/google/uuid"
)

// User-facing messages for the "no valid selection" state.
const (
	MsgNoFiles        = "Please select at least one file."
	MsgEmptySelection = "Please select at least one dataset to view the chart."
)

// State is the widget state of one interaction.
type State struct {
	Selected   []string
	CircleSize float64
	Inspect    string
}

// Options configures a render pass.
type Options struct {
	Dataset           dataset.Options
	MinCircleSize     float64
	MaxCircleSize     float64
	DefaultCircleSize float64
}

// DefaultOptions mirrors the dashboard's slider range.
func DefaultOptions() Options {
	return Options{
		Dataset:           dataset.DefaultOptions(),
		MinCircleSize:     1,
		MaxCircleSize:     100,
		DefaultCircleSize: 1,
	}
}

// View is everything one render pass shows.
type View struct {
	RenderID  string
	Mode      source.Mode
	Available []string
	State     State
	Warnings  []string
	// Error is set in the "no valid selection" state; Chart and
	// Inspection are nil then.
	Error      string
	Chart      *chart.Chart
	Inspection *Inspection
}

// Inspection is the raw-data and statistics projection of one dataset.
type Inspection struct {
	Name    string
	Header  []string
	Rows    [][]string
	Dropped int
	Stats   *analysis.Summary
}

// Render runs one full pass: enumerate, load, compose, inspect. It returns
// the normalized widget state alongside the view. A returned error is
// fatal for the pass; the view then holds whatever was known before it.
func Render(st State, src source.Source, opt Options) (State, *View, error) {
	v := &View{RenderID: uuid.NewString(), Mode: src.Mode()}
	cands, err := src.Candidates()
	if err != nil {
		return st, v, fmt.Errorf("enumerate datasets: %w", err)
	}
	if u, ok := src.(*source.Upload); ok {
		for _, name := range u.Skipped() {
			v.Warnings = append(v.Warnings, fmt.Sprintf("The file '%s' is not a CSV file and was ignored.", name))
		}
	}
	if len(cands) == 0 {
		v.State = normalize(State{CircleSize: st.CircleSize}, nil, opt)
		v.Error = noInputMessage(src)
		return v.State, v, nil
	}

	v.Available = source.Names(cands)
	st = normalize(st, v.Available, opt)
	v.State = st

	sess, warnings, err := Load(cands, st.Selected, opt.Dataset)
	v.Warnings = append(v.Warnings, warnings...)
	if err != nil {
		return st, v, err
	}

	c, err := chart.Compose(st.Selected, sess, chart.Options{
		CircleSize:  st.CircleSize,
		FixedDomain: src.Mode() == source.ModeFolder,
	})
	if errors.Is(err, chart.ErrEmptySelection) {
		v.Error = MsgEmptySelection
		return st, v, nil
	}
	if err != nil {
		return st, v, err
	}
	v.Chart = c
	if d, ok := sess.Get(st.Inspect); ok {
		v.Inspection = Inspect(d)
	}
	return st, v, nil
}

// Load parses the selected candidates into a fresh session. Every repeated
// name is skipped with a warning, whether selected or not; only selected
// candidates are parsed. Parse failures abort the pass.
func Load(cands []source.Candidate, selected []string, opt dataset.Options) (*dataset.Session, []string, error) {
	want := make(map[string]struct{}, len(selected))
	for _, n := range selected {
		want[n] = struct{}{}
	}
	sess := dataset.NewSession()
	var warnings []string
	for _, c := range cands {
		if !sess.Claim(c.Name) {
			warnings = append(warnings, dataset.DuplicateWarning(c.Name))
			continue
		}
		if _, ok := want[c.Name]; !ok {
			continue
		}
		d, err := loadCandidate(c, opt)
		if err != nil {
			return sess, warnings, err
		}
		if err := sess.Add(d); err != nil {
			return sess, warnings, err
		}
	}
	return sess, warnings, nil
}

func loadCandidate(c source.Candidate, opt dataset.Options) (*dataset.Dataset, error) {
	rc, err := c.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Name, err)
	}
	defer rc.Close()
	return dataset.Parse(c.Name, rc, opt)
}

// Inspect projects d into the raw-data and statistics tables.
func Inspect(d *dataset.Dataset) *Inspection {
	return &Inspection{
		Name:    d.Name,
		Header:  d.Header,
		Rows:    d.Rows,
		Dropped: d.Dropped,
		Stats:   analysis.Describe(d),
	}
}

func normalize(st State, available []string, opt Options) State {
	avail := make(map[string]struct{}, len(available))
	for _, n := range available {
		avail[n] = struct{}{}
	}
	out := State{CircleSize: ClampSize(st.CircleSize, opt)}
	seen := make(map[string]struct{}, len(st.Selected))
	for _, n := range st.Selected {
		if _, ok := avail[n]; !ok {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out.Selected = append(out.Selected, n)
	}
	if _, ok := seen[st.Inspect]; ok {
		out.Inspect = st.Inspect
	} else if len(out.Selected) > 0 {
		out.Inspect = out.Selected[0]
	}
	return out
}

// ClampSize replaces an unset or invalid size with the default and bounds it
// to the slider range.
func ClampSize(v float64, opt Options) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		v = opt.DefaultCircleSize
	}
	if opt.MinCircleSize > 0 && v < opt.MinCircleSize {
		v = opt.MinCircleSize
	}
	if opt.MaxCircleSize > 0 && v > opt.MaxCircleSize {
		v = opt.MaxCircleSize
	}
	return v
}

func noInputMessage(src source.Source) string {
	if f, ok := src.(source.Folder); ok {
		return fmt.Sprintf("No CSV files found in %s.", f.Dir)
	}
	return MsgNoFiles
}
