package coerce

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inferloop/tabclean/pkg/models"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   models.Value
		want    float64
		wantOK  bool
	}{
		{"number passes through", models.Number(42.5), 42.5, true},
		{"absent is missing", models.Absent(), 0, false},
		{"empty text is missing", models.String(""), 0, false},
		{"plain text parses", models.String("123.75"), 123.75, true},
		{"thousands separators stripped", models.String("1,234,567.5"), 1234567.5, true},
		{"surrounding whitespace tolerated", models.String("  12 "), 12, true},
		{"negative parses", models.String("-3.5"), -3.5, true},
		{"garbage is missing", models.String("abc"), 0, false},
		{"nan is missing", models.Number(math.NaN()), 0, false},
		{"infinity is missing", models.Number(math.Inf(1)), 0, false},
		{"boolean text is missing", models.Bool(true), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		name   string
		input  models.Value
		want   bool
		wantOK bool
	}{
		{"bool passes through", models.Bool(true), true, true},
		{"absent is missing", models.Absent(), false, false},
		{"empty text is missing", models.String(""), false, false},
		{"yes", models.String("yes"), true, true},
		{"upper NO", models.String("NO"), false, true},
		{"y", models.String("y"), true, true},
		{"n", models.String("n"), false, true},
		{"one", models.String("1"), true, true},
		{"zero", models.String("0"), false, true},
		{"padded TRUE", models.String("  TRUE "), true, true},
		{"ambiguous text is missing", models.String("maybe"), false, false},
		{"number one maps via text form", models.Number(1), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToBool(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestToDateString(t *testing.T) {
	tests := []struct {
		name   string
		input  models.Value
		want   string
		wantOK bool
	}{
		{"midnight collapses to date only", models.String("2023-01-01T00:00:00.000Z"), "2023-01-01", true},
		{"afternoon keeps full timestamp", models.String("2023-01-01T15:30:00Z"), "2023-01-01T15:30:00Z", true},
		{"bare date", models.String("2024-06-15"), "2024-06-15", true},
		{"slash date", models.String("2024/06/15"), "2024-06-15", true},
		{"time value normalized to UTC", models.Time(time.Date(2023, 5, 1, 2, 0, 0, 0, time.FixedZone("X", 7200))), "2023-05-01", true},
		{"epoch milliseconds", models.Number(1672531200000), "2023-01-01", true},
		{"unparseable is missing", models.String("not-a-date"), "", false},
		{"absent is missing", models.Absent(), "", false},
		{"empty text is missing", models.String(""), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToDateString(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDateStringIdempotent(t *testing.T) {
	// Canonical outputs must re-normalize to themselves.
	for _, s := range []string{"2023-01-01", "2023-01-01T15:30:00Z"} {
		got, ok := ToDateString(models.String(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
}
