package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Options controls how a delimited light-curve file is read.
type Options struct {
	// Delimiter separates fields. Defaults to ';'.
	Delimiter rune
	// DecimalSeparator is used by numeric fields. Defaults to ','.
	DecimalSeparator rune
	// NaNValues are the tokens treated as missing, in addition to empty fields.
	NaNValues []string
}

// DefaultOptions matches the light-curve export format: ';' fields, ',' decimals.
func DefaultOptions() Options {
	nan := make([]string, len(defaultNaNValues))
	copy(nan, defaultNaNValues)
	return Options{
		Delimiter:        ';',
		DecimalSeparator: ',',
		NaNValues:        nan,
	}
}

// Dataset is one loaded, cleaned CSV table keyed by its source name.
type Dataset struct {
	Name   string
	Header []string
	// Rows holds the records that survived the missing-value filter, in
	// source order. Numeric fields are rewritten with '.' decimals.
	Rows [][]string
	// Frame is the typed view of Rows.
	Frame dataframe.DataFrame
	// Dropped counts records removed because a field was missing.
	Dropped int
}

// LoadFile parses the CSV at path, naming the dataset after its base name.
func LoadFile(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Parse(filepath.Base(path), f, opt)
}

// Parse reads delimited text and drops every record that has a missing
// value in any column.
func Parse(name string, r io.Reader, opt Options) (*Dataset, error) {
	if opt.Delimiter == 0 {
		opt.Delimiter = ';'
	}
	if opt.DecimalSeparator == 0 {
		opt.DecimalSeparator = ','
	}
	if opt.Delimiter == opt.DecimalSeparator {
		return nil, fmt.Errorf("parse %s: delimiter and decimal separator are both %q", name, opt.Delimiter)
	}
	nan := make(map[string]struct{}, len(opt.NaNValues))
	for _, v := range opt.NaNValues {
		nan[v] = struct{}{}
	}

	cr := csv.NewReader(r)
	cr.Comma = opt.Delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Name: name, Err: ErrNoHeader}
		}
		return nil, &ParseError{Name: name, Row: 1, Err: err}
	}
	header = append([]string(nil), header...)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	header = dedupeHeader(header)
	ncol := len(header)

	// numeric[j] holds while every kept value of column j parsed as a number.
	numeric := make([]bool, ncol)
	for j := range numeric {
		numeric[j] = true
	}
	ds := &Dataset{Name: name, Header: header}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Name: name, Err: err}
		}
		if len(rec) > ncol {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{Name: name, Row: line, Err: fmt.Errorf("expected %d fields, saw %d", ncol, len(rec))}
		}
		// Short records are padded with missing values, so they are dropped.
		missing := len(rec) < ncol
		row := make([]string, ncol)
		isNum := make([]bool, ncol)
		for j := 0; j < len(rec) && !missing; j++ {
			v := strings.TrimSpace(rec[j])
			if isMissing(v, nan) {
				missing = true
				break
			}
			if x, ok := ParseNumber(v, opt.DecimalSeparator); ok {
				v = strconv.FormatFloat(x, 'f', -1, 64)
				isNum[j] = true
			}
			row[j] = v
		}
		if missing {
			ds.Dropped++
			continue
		}
		for j := range numeric {
			numeric[j] = numeric[j] && isNum[j]
		}
		ds.Rows = append(ds.Rows, row)
	}

	ds.Frame = buildFrame(header, ds.Rows, numeric)
	if ds.Frame.Err != nil {
		return nil, &ParseError{Name: name, Err: ds.Frame.Err}
	}
	return ds, nil
}

// buildFrame types columns from what Parse saw: a column is Float only when
// every kept value parsed with the configured decimal separator. Type
// detection is left off so gota never reinterprets text such as "1.234".
func buildFrame(header []string, rows [][]string, numeric []bool) dataframe.DataFrame {
	if len(rows) == 0 {
		cols := make([]series.Series, len(header))
		for i, h := range header {
			cols[i] = series.New([]string{}, series.String, h)
		}
		return dataframe.New(cols...)
	}
	types := make(map[string]series.Type, len(header))
	for i, h := range header {
		types[h] = series.String
		if numeric[i] {
			types[h] = series.Float
		}
	}
	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	records = append(records, rows...)
	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
		dataframe.NaNValues(nil),
	)
}

// dedupeHeader renames repeated and blank column names so every frame
// column keeps the name shown in the raw table: the second "Magnitud"
// becomes "Magnitud.1", a blank name at index 3 becomes "Unnamed: 3".
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	taken := make(map[string]struct{}, len(header))
	for _, h := range header {
		taken[h] = struct{}{}
	}
	counts := make(map[string]int, len(header))
	used := make(map[string]struct{}, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		if _, dup := used[name]; dup {
			for {
				counts[h]++
				name = fmt.Sprintf("%s.%d", h, counts[h])
				_, inUse := used[name]
				_, inHeader := taken[name]
				if !inUse && !inHeader {
					break
				}
			}
		}
		used[name] = struct{}{}
		out[i] = name
	}
	return out
}

// Len returns the number of rows kept after cleaning.
func (d *Dataset) Len() int { return len(d.Rows) }

// Column returns the values of a numeric column. The name is resolved
// with ResolveColumn, so accent and case variants are accepted.
func (d *Dataset) Column(name string) ([]float64, error) {
	col, ok := ResolveColumn(d.Header, name)
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", d.Name, name, ErrMissingColumn)
	}
	if len(d.Rows) == 0 {
		return []float64{}, nil
	}
	s := d.Frame.Col(col)
	if s.Err != nil {
		return nil, fmt.Errorf("%s: %q: %w", d.Name, col, s.Err)
	}
	if !isNumericType(s.Type()) {
		return nil, fmt.Errorf("%s: %q: %w", d.Name, col, ErrNotNumeric)
	}
	return s.Float(), nil
}

// NumericColumns lists the columns detected as numeric, in header order.
func (d *Dataset) NumericColumns() []string {
	if len(d.Rows) == 0 {
		return nil
	}
	names := d.Frame.Names()
	types := d.Frame.Types()
	var out []string
	for i, n := range names {
		if i < len(types) && isNumericType(types[i]) {
			out = append(out, n)
		}
	}
	return out
}

func isNumericType(t series.Type) bool {
	return t == series.Float || t == series.Int
}
