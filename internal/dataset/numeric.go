package dataset

import (
	"strconv"
	"strings"
)

// Tokens read as missing, besides the empty field.
var defaultNaNValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// ParseNumber parses s using dec as the decimal separator. Thousands
// separators are not accepted, so "1.5" is not a number when dec is ','.
func ParseNumber(s string, dec rune) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" {
		return 0, false
	}
	if dec == 0 {
		dec = '.'
	}
	if dec != '.' {
		if strings.ContainsRune(raw, '.') {
			return 0, false
		}
		if strings.Count(raw, string(dec)) > 1 {
			return 0, false
		}
		raw = strings.Replace(raw, string(dec), ".", 1)
	}
	// Reject forms strconv accepts but a CSV number never uses.
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isMissing(v string, nan map[string]struct{}) bool {
	if v == "" {
		return true
	}
	_, ok := nan[v]
	return ok
}
