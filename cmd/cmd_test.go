package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

const novaCSV = "Tiempo desde erupcion (d);Magnitud;Filtro\n" +
	"0,5;10,2;V\n" +
	"1,0;;V\n" +
	"2,5;12,4;B\n" +
	"4,0;15,7;V\n"

func runCmd(t *testing.T, args ...string) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	for _, c := range []*pflag.FlagSet{plotCmd.Flags(), describeCmd.Flags(), listCmd.Flags(), serveCmd.Flags()} {
		c.VisitAll(func(fl *pflag.Flag) {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		})
	}
	cfgFile = ""
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeCurve(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(novaCSV), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestDescribe_WritesMarkdown(t *testing.T) {
	home := setupHome(t)
	p := writeCurve(t, home, "nova.csv")
	out := filepath.Join(home, "reports", "nova.md")
	runCmd(t, "describe", p, "--output", out)

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(b)
	for _, want := range []string{"File: nova.csv", "Rows: 3 (dropped 1 with missing values)", "Numeric columns: 2", "| count |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}
}

func TestPlot_PNGAndVegaLite(t *testing.T) {
	home := setupHome(t)
	a := writeCurve(t, filepath.Join(home, "d1"), "a.csv")
	b := writeCurve(t, filepath.Join(home, "d2"), "b.csv")

	png := filepath.Join(home, "out", "chart.png")
	runCmd(t, "plot", a, b, "--output", png, "--size", "25")
	data, err := os.ReadFile(png)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Fatalf("output is not a PNG")
	}

	js := filepath.Join(home, "out", "chart.json")
	runCmd(t, "plot", a, b, "--output", js, "--reverse")
	raw, err := os.ReadFile(js)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var spec struct {
		Layer []struct {
			Encoding struct {
				Y    struct{ Scale struct{ Reverse bool } }
				Size struct{ Value float64 }
			}
		}
	}
	if err := json.Unmarshal(raw, &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(spec.Layer) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(spec.Layer))
	}
	if !spec.Layer[0].Encoding.Y.Scale.Reverse {
		t.Fatalf("--reverse must reverse the magnitude axis")
	}
	// --size reset to default between runs
	if spec.Layer[0].Encoding.Size.Value != 1 {
		t.Fatalf("expected default circle size, got %v", spec.Layer[0].Encoding.Size.Value)
	}
}

func TestPlot_DuplicateBaseNames(t *testing.T) {
	home := setupHome(t)
	a := writeCurve(t, filepath.Join(home, "d1"), "same.csv")
	b := writeCurve(t, filepath.Join(home, "d2"), "same.csv")
	js := filepath.Join(home, "chart.json")
	runCmd(t, "plot", a, b, "--output", js)
	raw, err := os.ReadFile(js)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var spec struct{ Layer []json.RawMessage }
	if err := json.Unmarshal(raw, &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(spec.Layer) != 1 {
		t.Fatalf("second file with the same name must be skipped, got %d layers", len(spec.Layer))
	}
}

func TestPlot_RejectsUnknownExtension(t *testing.T) {
	home := setupHome(t)
	p := writeCurve(t, home, "a.csv")
	rootCmd.SetArgs([]string{"plot", p, "--output", filepath.Join(home, "chart.svg")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error for .svg output")
	}
}

func TestConfigSetAndList(t *testing.T) {
	home := setupHome(t)
	data := filepath.Join(home, "curves")
	writeCurve(t, data, "a.csv")
	writeCurve(t, data, "b.csv")

	runCmd(t, "config", "set", "data_dir", data)
	runCmd(t, "config", "set", "mode", "folder")

	b, err := os.ReadFile(filepath.Join(home, ".lcexplorer", "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(b), "mode: folder") || !strings.Contains(string(b), data) {
		t.Fatalf("config not saved: %s", b)
	}
	runCmd(t, "config", "show")
	runCmd(t, "list")
	if cfg == nil || cfg.DataDir != data {
		t.Fatalf("saved data_dir not loaded: %+v", cfg)
	}

	rootCmd.SetArgs([]string{"config", "set", "decimal_separator", ";"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected validation error")
	}
}

// captureStdout runs fn with os.Stdout redirected and returns what it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	old := os.Stdout
	os.Stdout = w
	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(r)
		done <- string(b)
	}()
	defer func() { os.Stdout = old }()
	fn()
	_ = w.Close()
	os.Stdout = old
	return <-done
}

func TestList_DataDir(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, "curves")
	writeCurve(t, dir, "nova.csv")
	if err := os.WriteFile(filepath.Join(dir, "flux.csv"), []byte("Tiempo;Flujo\n1;2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.csv"), []byte("a;b\n1;2;3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := captureStdout(t, func() { runCmd(t, "list", "--data-dir", dir) })
	if strings.Contains(out, "notes.txt") {
		t.Fatalf("non-CSV files must not be listed:\n%s", out)
	}
	var novaLine, fluxLine, brokenLine string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "nova.csv"):
			novaLine = line
		case strings.Contains(line, "flux.csv"):
			fluxLine = line
		case strings.Contains(line, "broken.csv"):
			brokenLine = line
		}
	}
	if !strings.Contains(novaLine, " 3 ") || !strings.Contains(novaLine, " 1 ") || !strings.Contains(novaLine, "ok") {
		t.Fatalf("expected 3 rows, 1 dropped, ok for nova.csv: %q", novaLine)
	}
	if !strings.Contains(fluxLine, "not plottable") {
		t.Fatalf("expected flux.csv to be reported as not plottable: %q", fluxLine)
	}
	if !strings.Contains(brokenLine, "expected 2 fields") {
		t.Fatalf("expected the parse error for broken.csv: %q", brokenLine)
	}

	empty := filepath.Join(home, "empty")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	out = captureStdout(t, func() { runCmd(t, "list", "--data-dir", empty) })
	if !strings.Contains(out, "(no CSV files in") {
		t.Fatalf("expected empty-folder notice, got %q", out)
	}
}
