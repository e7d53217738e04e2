package chart

import (
	"encoding/json"
	"fmt"
	"strings"
)

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is a Vega-Lite layered chart specification.
type Spec struct {
	Schema string  `json:"$schema"`
	Width  any     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Layer  []Layer `json:"layer"`
}

type Layer struct {
	Data      InlineData  `json:"data"`
	Mark      Mark        `json:"mark"`
	Transform []Transform `json:"transform,omitempty"`
	Encoding  Encoding    `json:"encoding"`
	Params    []Param     `json:"params,omitempty"`
}

type InlineData struct {
	Values []map[string]float64 `json:"values"`
}

type Mark struct {
	Type   string `json:"type"`
	Filled bool   `json:"filled"`
}

type Transform struct {
	Calculate string `json:"calculate"`
	As        string `json:"as"`
}

type Encoding struct {
	X       FieldDef   `json:"x"`
	Y       FieldDef   `json:"y"`
	Color   FieldDef   `json:"color"`
	Size    ValueDef   `json:"size"`
	Opacity ValueDef   `json:"opacity"`
	Tooltip []FieldDef `json:"tooltip"`
}

type FieldDef struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Scale *Scale `json:"scale,omitempty"`
}

type Scale struct {
	Domain  []float64 `json:"domain,omitempty"`
	Reverse bool      `json:"reverse,omitempty"`
	Scheme  string    `json:"scheme,omitempty"`
}

type ValueDef struct {
	Value float64 `json:"value"`
}

type Param struct {
	Name   string    `json:"name"`
	Select Selection `json:"select"`
	Bind   string    `json:"bind"`
}

type Selection struct {
	Type      string   `json:"type"`
	Encodings []string `json:"encodings"`
}

// VegaLite renders c as a layered Vega-Lite spec, one layer per series.
// Pan and zoom are attached to the first layer, as layered specs require.
func VegaLite(c *Chart, height int) (*Spec, error) {
	spec := &Spec{Schema: vegaLiteSchema, Width: "container", Height: height, Layer: []Layer{}}
	for i, s := range c.Series {
		tag, err := json.Marshal(s.Name)
		if err != nil {
			return nil, fmt.Errorf("quote series name: %w", err)
		}
		values := make([]map[string]float64, len(s.Points))
		for j, p := range s.Points {
			values[j] = map[string]float64{c.XField: p.X, c.YField: p.Y}
		}
		x := FieldDef{Field: escapeField(c.XField), Type: "quantitative"}
		y := FieldDef{Field: escapeField(c.YField), Type: "quantitative"}
		if s.YDomain != nil || s.ReverseY {
			y.Scale = &Scale{Reverse: s.ReverseY}
			if s.YDomain != nil {
				y.Scale.Domain = []float64{s.YDomain.Min, s.YDomain.Max}
			}
		}
		layer := Layer{
			Data:      InlineData{Values: values},
			Mark:      Mark{Type: "point", Filled: c.Filled},
			Transform: []Transform{{Calculate: string(tag), As: c.TagField}},
			Encoding: Encoding{
				X:       x,
				Y:       y,
				Color:   FieldDef{Field: c.TagField, Type: "nominal", Scale: &Scale{Scheme: c.Scheme}},
				Size:    ValueDef{Value: c.CircleSize},
				Opacity: ValueDef{Value: c.Opacity},
				Tooltip: []FieldDef{x, {Field: y.Field, Type: "quantitative"}},
			},
		}
		if i == 0 && c.Interactive {
			layer.Params = []Param{{
				Name:   "zoom",
				Select: Selection{Type: "interval", Encodings: []string{"x", "y"}},
				Bind:   "scales",
			}}
		}
		spec.Layer = append(spec.Layer, layer)
	}
	return spec, nil
}

// JSON marshals the spec.
func (s *Spec) JSON() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal vega-lite spec: %w", err)
	}
	return b, nil
}

// escapeField protects characters Vega-Lite reads as nested field access.
func escapeField(f string) string {
	r := strings.NewReplacer(".", `\.`, "[", `\[`, "]", `\]`)
	return r.Replace(f)
}
