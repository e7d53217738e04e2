package chart

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// plasma control points, evenly spaced over [0, 1].
var plasmaStops = []string{"#0d0887", "#6a00a8", "#b12a90", "#e16462", "#fca636", "#f0f921"}

// Palette samples n colours evenly across the plasma scheme.
func Palette(n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	stops := make([]colorful.Color, len(plasmaStops))
	for i, h := range plasmaStops {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		stops[i] = c
	}
	out := make([]colorful.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = plasmaAt(stops, t)
	}
	return out
}

func plasmaAt(stops []colorful.Color, t float64) colorful.Color {
	seg := t * float64(len(stops)-1)
	i := int(seg)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return stops[i].BlendRgb(stops[i+1], seg-float64(i))
}
