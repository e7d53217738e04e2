package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/lcexplorer/internal/dataset"
)

// Statistic labels in describe() order.
var StatLabels = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Summary holds descriptive statistics for the numeric columns of a dataset.
type Summary struct {
	Name    string
	Rows    int
	Dropped int
	Cols    []ColumnStats
}

// ColumnStats captures describe() statistics for one numeric column.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	// Std is the sample standard deviation; NaN when Count < 2.
	Std float64
	Min float64
	Q25 float64
	Q50 float64
	Q75 float64
	Max float64
}

// Values returns the statistics in StatLabels order.
func (c ColumnStats) Values() []float64 {
	return []float64{float64(c.Count), c.Mean, c.Std, c.Min, c.Q25, c.Q50, c.Q75, c.Max}
}

// Describe computes count, mean, std, min, quartiles and max for every
// numeric column of d, in header order.
func Describe(d *dataset.Dataset) *Summary {
	s := &Summary{Name: d.Name, Rows: d.Len(), Dropped: d.Dropped}
	for _, name := range d.NumericColumns() {
		vals, err := d.Column(name)
		if err != nil {
			continue
		}
		s.Cols = append(s.Cols, describeColumn(name, vals))
	}
	return s
}

func describeColumn(name string, vals []float64) ColumnStats {
	c := ColumnStats{Name: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		c.Mean, c.Std, c.Min, c.Q25, c.Q50, c.Q75, c.Max = nan, nan, nan, nan, nan, nan, nan
		return c
	}
	// Welford update
	var n int
	var mean, m2 float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range vals {
		n++
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	c.Mean = mean
	c.Min = lo
	c.Max = hi
	c.Std = math.NaN()
	if n > 1 {
		c.Std = math.Sqrt(m2 / float64(n-1))
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	c.Q25 = quantile(sorted, 0.25)
	c.Q50 = quantile(sorted, 0.5)
	c.Q75 = quantile(sorted, 0.75)
	return c
}

// Table returns the summary shaped like describe(): one row per statistic,
// one column per numeric column. The header's first cell is empty.
func (s *Summary) Table() (header []string, rows [][]string) {
	header = make([]string, 0, len(s.Cols)+1)
	header = append(header, "")
	for _, c := range s.Cols {
		header = append(header, c.Name)
	}
	for i, label := range StatLabels {
		row := make([]string, 0, len(s.Cols)+1)
		row = append(row, label)
		for _, c := range s.Cols {
			row = append(row, FormatStat(c.Values()[i]))
		}
		rows = append(rows, row)
	}
	return header, rows
}

// FormatStat renders a statistic with six decimals, "NaN" when undefined.
func FormatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// Markdown renders a compact report for standalone docs.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d", s.Rows))
	if s.Dropped > 0 {
		b.WriteString(fmt.Sprintf(" (dropped %d with missing values)", s.Dropped))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Numeric columns: %d\n", len(s.Cols)))
	if len(s.Cols) == 0 {
		return b.String()
	}
	b.WriteString("\n[STATISTICS]\n")
	header, rows := s.Table()
	b.WriteString("| ")
	b.WriteString(strings.Join(mapStrings(header, safeName), " | "))
	b.WriteString(" |\n|")
	for range header {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("| ")
		b.WriteString(strings.Join(row, " | "))
		b.WriteString(" |\n")
	}
	return b.String()
}

func mapStrings(in []string, f func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = f(s)
	}
	return out
}

func safeName(s string) string { return strings.ReplaceAll(strings.TrimSpace(s), "|", "/") }

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
