// Package coerce converts raw cell values to canonical numeric, boolean,
// and date representations. Every conversion degrades to a missing
// sentinel rather than an error: dirty input never aborts a cleaning run.
package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/inferloop/tabclean/pkg/models"
)

// dateLayouts are tried in order when parsing a textual date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123,
	time.RFC1123Z,
}

var boolTokens = map[string]bool{
	"true":  true,
	"yes":   true,
	"y":     true,
	"1":     true,
	"false": false,
	"no":    false,
	"n":     false,
	"0":     false,
}

// ToNumber coerces a cell to a finite float64. Already-numeric cells
// pass through if finite. Absent and empty cells are missing. Anything
// else is parsed from its text form after stripping thousands
// separators; a non-finite or unparseable result is missing.
func ToNumber(v models.Value) (float64, bool) {
	switch v.Kind() {
	case models.KindNumber:
		n := v.NumberValue()
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case models.KindAbsent:
		return 0, false
	}

	text := strings.TrimSpace(strings.ReplaceAll(v.Text(), ",", ""))
	if text == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ToBool coerces a cell to a boolean. Already-boolean cells pass
// through. Absent and empty cells are missing. Text is trimmed,
// lowercased, and matched against the accepted true/false tokens;
// anything unrecognized is missing, not an error.
func ToBool(v models.Value) (bool, bool) {
	switch v.Kind() {
	case models.KindBool:
		return v.BoolValue(), true
	case models.KindAbsent:
		return false, false
	}

	text := strings.ToLower(strings.TrimSpace(v.Text()))
	if text == "" {
		return false, false
	}
	b, ok := boolTokens[text]
	return b, ok
}

// ToDateString coerces a cell to a canonical UTC date string. Exact
// midnight renders date-only ("2006-01-02"); any other time of day
// renders as a full RFC 3339 timestamp. Numeric cells are read as Unix
// epoch milliseconds. Unparseable cells are missing; callers preserve
// the raw value in that case instead of imputing.
func ToDateString(v models.Value) (string, bool) {
	var t time.Time
	switch v.Kind() {
	case models.KindTime:
		t = v.TimeValue()
	case models.KindNumber:
		n := v.NumberValue()
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "", false
		}
		t = time.UnixMilli(int64(n))
	case models.KindString:
		text := strings.TrimSpace(v.StringValue())
		if text == "" {
			return "", false
		}
		parsed, ok := parseDate(text)
		if !ok {
			return "", false
		}
		t = parsed
	default:
		return "", false
	}

	t = t.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02"), true
	}
	return t.Format(time.RFC3339), true
}

func parseDate(text string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
