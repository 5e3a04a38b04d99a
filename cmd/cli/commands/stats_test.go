package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferloop/tabclean/internal/cleaner"
	"github.com/inferloop/tabclean/pkg/models"
)

func TestPrintColumnStatsNumeric(t *testing.T) {
	rows := []models.Row{
		{"amount": models.Number(10)},
		{"amount": models.String("not a number")},
		{"amount": models.Number(30)},
	}

	var buf bytes.Buffer
	printColumnStats(&buf, rows, models.ColumnDescriptor{Name: "amount", Type: models.ColumnTypeNumeric})

	assert.Equal(t, "amount (numeric): valid=2 q1=15.00 median=20.00 q3=25.00 iqr=10.00\n", buf.String())
}

func TestPrintColumnStatsTextModeTrims(t *testing.T) {
	rows := []models.Row{
		{"city": models.String(" Paris")},
		{"city": models.String("Paris ")},
		{"city": models.String("Lyon")},
	}

	var buf bytes.Buffer
	printColumnStats(&buf, rows, models.ColumnDescriptor{Name: "city", Type: models.ColumnTypeText})

	// " Paris" and "Paris " are the same value once trimmed, so the
	// mode is "Paris" with all three cells counted as valid.
	assert.Equal(t, "city (text): valid=3 mode=\"Paris\"\n", buf.String())
}

func TestPrintColumnStatsTextModeMatchesEngineFill(t *testing.T) {
	rows := []models.Row{
		{"city": models.String(" Paris")},
		{"city": models.String("Paris ")},
		{"city": models.String("Lyon")},
		{"city": models.Absent()},
	}
	profile := &models.DatasetProfile{Columns: []models.ColumnDescriptor{
		{Name: "city", Type: models.ColumnTypeText},
	}}

	var buf bytes.Buffer
	printColumnStats(&buf, rows, profile.Columns[0])
	assert.Contains(t, buf.String(), "mode=\"Paris\"")

	engine := cleaner.NewEngine(nil, nil)
	result, err := engine.Clean(context.Background(), rows, profile)
	require.NoError(t, err)

	// The missing cell is filled with the same mode stats reports.
	assert.Equal(t, models.String("Paris"), result.Rows[3]["city"])
}

func TestPrintColumnStatsWhitespaceOnlyNotCounted(t *testing.T) {
	rows := []models.Row{
		{"note": models.String("   ")},
		{"note": models.String("ok")},
	}

	var buf bytes.Buffer
	printColumnStats(&buf, rows, models.ColumnDescriptor{Name: "note", Type: models.ColumnTypeText})

	assert.Equal(t, "note (text): valid=1 mode=\"ok\"\n", buf.String())
}

func TestPrintColumnStatsUnsupportedType(t *testing.T) {
	rows := []models.Row{{"blob": models.String("x")}}

	var buf bytes.Buffer
	printColumnStats(&buf, rows, models.ColumnDescriptor{Name: "blob", Type: "binary"})

	assert.Contains(t, buf.String(), "unsupported type")
}
