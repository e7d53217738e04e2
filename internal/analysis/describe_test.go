package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/lcexplorer/internal/dataset"
)

const curve = "Tiempo desde erupcion (d);Magnitud;Filtro\n" +
	"1;10,0;V\n" +
	"2;11,0;V\n" +
	"3;;V\n" +
	"4;12,0;B\n" +
	"5;13,0;B\n"

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDescribe_MatchesDirectComputation(t *testing.T) {
	d, err := dataset.Parse("nova.csv", strings.NewReader(curve), dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := Describe(d)
	if s.Rows != 4 || s.Dropped != 1 {
		t.Fatalf("unexpected rows/dropped: %d/%d", s.Rows, s.Dropped)
	}
	if len(s.Cols) != 2 {
		t.Fatalf("expected 2 numeric columns, got %d", len(s.Cols))
	}
	mag := s.Cols[1]
	if mag.Name != dataset.MagnitudeColumn {
		t.Fatalf("unexpected column order: %v", mag.Name)
	}
	// values 10, 11, 12, 13
	if mag.Count != 4 || !approx(mag.Mean, 11.5) || mag.Min != 10 || mag.Max != 13 {
		t.Fatalf("unexpected basic stats: %+v", mag)
	}
	if !approx(mag.Std, math.Sqrt(5.0/3.0)) {
		t.Fatalf("unexpected sample std: %v", mag.Std)
	}
	if !approx(mag.Q25, 10.75) || !approx(mag.Q50, 11.5) || !approx(mag.Q75, 12.25) {
		t.Fatalf("unexpected quartiles: %v %v %v", mag.Q25, mag.Q50, mag.Q75)
	}
}

func TestDescribe_SingleValueHasNaNStd(t *testing.T) {
	d, err := dataset.Parse("one.csv", strings.NewReader("Magnitud\n9,5\n"), dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := Describe(d)
	if len(s.Cols) != 1 {
		t.Fatalf("expected one column, got %d", len(s.Cols))
	}
	c := s.Cols[0]
	if !math.IsNaN(c.Std) {
		t.Fatalf("expected NaN std, got %v", c.Std)
	}
	if c.Q25 != 9.5 || c.Q75 != 9.5 {
		t.Fatalf("quartiles of a single value should equal it: %+v", c)
	}
}

func TestSummaryTable_Shape(t *testing.T) {
	d, err := dataset.Parse("nova.csv", strings.NewReader(curve), dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	header, rows := Describe(d).Table()
	if len(header) != 3 || header[0] != "" || header[2] != dataset.MagnitudeColumn {
		t.Fatalf("unexpected header: %v", header)
	}
	if len(rows) != len(StatLabels) {
		t.Fatalf("expected %d rows, got %d", len(StatLabels), len(rows))
	}
	for i, label := range StatLabels {
		if rows[i][0] != label {
			t.Fatalf("row %d label = %q, want %q", i, rows[i][0], label)
		}
	}
	if rows[0][2] != "4.000000" || rows[1][2] != "11.500000" {
		t.Fatalf("unexpected count/mean cells: %v %v", rows[0], rows[1])
	}
}

func TestSummaryMarkdown(t *testing.T) {
	d, err := dataset.Parse("nova.csv", strings.NewReader(curve), dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	md := Describe(d).Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: nova.csv",
		"Rows: 4 (dropped 1 with missing values)",
		"Numeric columns: 2",
		"[STATISTICS]",
		"| 50% |",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestQuantile(t *testing.T) {
	if !math.IsNaN(quantile(nil, 0.5)) {
		t.Fatalf("expected NaN for empty input")
	}
	s := []float64{1, 2, 3, 4, 5}
	if quantile(s, 0.25) != 2 || quantile(s, 0.5) != 3 || quantile(s, 1) != 5 {
		t.Fatalf("unexpected quantiles")
	}
	if FormatStat(math.NaN()) != "NaN" {
		t.Fatalf("NaN must render as NaN")
	}
}
