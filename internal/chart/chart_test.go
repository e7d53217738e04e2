package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/lcexplorer/internal/dataset"
)

func loadSession(t *testing.T, files map[string]string, order ...string) *dataset.Session {
	t.Helper()
	s := dataset.NewSession()
	for _, name := range order {
		d, err := dataset.Parse(name, strings.NewReader(files[name]), dataset.DefaultOptions())
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if err := s.Add(d); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	return s
}

var curves = map[string]string{
	"a.csv": "Tiempo desde erupcion (d);Magnitud\n1;10,2\n2;15,7\n3;12\n",
	"b.csv": "Tiempo desde erupcion (d);Magnitud\n1;8\n2;9\n",
	"c.csv": "Tiempo;Brillo\n1;2\n",
}

func TestCompose_OneSeriesPerSelectedDataset(t *testing.T) {
	s := loadSession(t, curves, "a.csv", "b.csv")
	c, err := Compose([]string{"b.csv", "a.csv", "b.csv", "missing.csv"}, s, Options{CircleSize: 30})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	names := c.Names()
	if len(names) != 2 || names[0] != "b.csv" || names[1] != "a.csv" {
		t.Fatalf("unexpected series: %v", names)
	}
	if c.Filled || c.Opacity != 0.5 || c.Scheme != "plasma" || c.TagField != "Archivo" || c.CircleSize != 30 {
		t.Fatalf("unexpected encoding: %+v", c)
	}
	for _, sr := range c.Series {
		if sr.YDomain != nil || sr.ReverseY {
			t.Fatalf("upload charts must not fix or reverse the axis")
		}
	}
}

func TestCompose_FixedDomainReversed(t *testing.T) {
	s := loadSession(t, curves, "a.csv")
	c, err := Compose([]string{"a.csv"}, s, Options{CircleSize: 1, FixedDomain: true})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	sr := c.Series[0]
	if sr.YDomain == nil || sr.YDomain.Min != 10.2 || sr.YDomain.Max != 15.7 {
		t.Fatalf("expected domain [10.2, 15.7], got %+v", sr.YDomain)
	}
	if !sr.ReverseY {
		t.Fatalf("expected reversed y axis")
	}
}

func TestCompose_Errors(t *testing.T) {
	s := loadSession(t, curves, "c.csv")
	if _, err := Compose(nil, s, Options{}); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if _, err := Compose([]string{"c.csv"}, s, Options{}); !errors.Is(err, dataset.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestVegaLite_Encoding(t *testing.T) {
	s := loadSession(t, curves, "a.csv", "b.csv")
	c, err := Compose([]string{"a.csv", "b.csv"}, s, Options{CircleSize: 12, FixedDomain: true})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	spec, err := VegaLite(c, 400)
	if err != nil {
		t.Fatalf("vega-lite: %v", err)
	}
	b, err := spec.JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var doc struct {
		Layer []struct {
			Data struct{ Values []map[string]float64 } `json:"data"`
			Mark struct {
				Type   string
				Filled bool
			} `json:"mark"`
			Transform []struct{ Calculate, As string } `json:"transform"`
			Encoding  struct {
				Y struct {
					Scale struct {
						Domain  []float64
						Reverse bool
					}
				}
				Color struct {
					Field string
					Scale struct{ Scheme string }
				}
				Size    struct{ Value float64 }
				Opacity struct{ Value float64 }
				Tooltip []struct{ Field string }
			} `json:"encoding"`
			Params []struct{ Name, Bind string } `json:"params"`
		} `json:"layer"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Layer) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(doc.Layer))
	}
	l := doc.Layer[0]
	if l.Mark.Type != "point" || l.Mark.Filled {
		t.Fatalf("expected unfilled points, got %+v", l.Mark)
	}
	if len(l.Transform) != 1 || l.Transform[0].As != "Archivo" || l.Transform[0].Calculate != `"a.csv"` {
		t.Fatalf("unexpected tag transform: %+v", l.Transform)
	}
	if l.Encoding.Color.Field != "Archivo" || l.Encoding.Color.Scale.Scheme != "plasma" {
		t.Fatalf("unexpected colour encoding: %+v", l.Encoding.Color)
	}
	if l.Encoding.Size.Value != 12 || l.Encoding.Opacity.Value != 0.5 {
		t.Fatalf("unexpected size/opacity: %+v %+v", l.Encoding.Size, l.Encoding.Opacity)
	}
	if d := l.Encoding.Y.Scale.Domain; len(d) != 2 || d[0] != 10.2 || d[1] != 15.7 || !l.Encoding.Y.Scale.Reverse {
		t.Fatalf("unexpected y scale: %+v", l.Encoding.Y.Scale)
	}
	if len(l.Encoding.Tooltip) != 2 {
		t.Fatalf("expected two tooltip fields, got %+v", l.Encoding.Tooltip)
	}
	if len(l.Params) != 1 || l.Params[0].Bind != "scales" {
		t.Fatalf("expected pan/zoom param on first layer, got %+v", l.Params)
	}
	if len(doc.Layer[1].Params) != 0 {
		t.Fatalf("pan/zoom must be declared once")
	}
	if v := l.Data.Values[0]; v[dataset.TimeColumn] != 1 || v[dataset.MagnitudeColumn] != 10.2 {
		t.Fatalf("unexpected first point: %v", v)
	}
}

func TestRenderPNG(t *testing.T) {
	s := loadSession(t, curves, "a.csv", "b.csv")
	c, err := Compose([]string{"a.csv", "b.csv"}, s, Options{CircleSize: 20, FixedDomain: true})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderPNG(&buf, c, 640, 360); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}
	if err := RenderPNG(&buf, &Chart{}, 640, 360); !errors.Is(err, ErrNoPoints) {
		t.Fatalf("expected ErrNoPoints, got %v", err)
	}
}

func TestPalette(t *testing.T) {
	p := Palette(3)
	if len(p) != 3 {
		t.Fatalf("expected 3 colours, got %d", len(p))
	}
	if p[0].Hex() != "#0d0887" || p[2].Hex() != "#f0f921" {
		t.Fatalf("palette must span plasma ends: %s .. %s", p[0].Hex(), p[2].Hex())
	}
	if Palette(0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}
