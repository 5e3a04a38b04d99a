package export

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferloop/tabclean/pkg/models"
)

func sampleResult() (*models.CleaningResult, *models.DatasetProfile) {
	profile := &models.DatasetProfile{Columns: []models.ColumnDescriptor{
		{Name: "name", Type: models.ColumnTypeText},
		{Name: "amount", Type: models.ColumnTypeNumeric},
	}}
	result := &models.CleaningResult{
		Rows: []models.Row{
			{"name": models.String("Alice"), "amount": models.Number(1200), "extra": models.String("z")},
			{"name": models.String("Bob"), "amount": models.Number(900), "extra": models.Absent()},
		},
		Report: []string{
			"name: trimmed text and filled missing with 'Alice'",
			"amount: converted to number, imputed median 1050.00, winsorized outliers",
		},
	}
	return result, profile
}

func TestCSVExporter(t *testing.T) {
	result, profile := sampleResult()
	var buf bytes.Buffer

	err := (&CSVExporter{}).Export(context.Background(), &buf, result, profile)
	require.NoError(t, err)

	want := "name,amount,extra\nAlice,1200,z\nBob,900,\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVExporterCustomDelimiter(t *testing.T) {
	result, profile := sampleResult()
	var buf bytes.Buffer

	err := (&CSVExporter{Delimiter: ';'}).Export(context.Background(), &buf, result, profile)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "name;amount;extra")
}

func TestJSONExporterRoundTrips(t *testing.T) {
	result, profile := sampleResult()
	var buf bytes.Buffer

	err := (&JSONExporter{}).Export(context.Background(), &buf, result, profile)
	require.NoError(t, err)

	var decoded models.CleaningResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, result.Report, decoded.Report)
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, models.Number(1200), decoded.Rows[0]["amount"])
	assert.Equal(t, models.Absent(), decoded.Rows[1]["extra"])
}

func TestColumnOrderProfileFirstThenSortedExtras(t *testing.T) {
	result, profile := sampleResult()
	result.Rows[0]["aaa"] = models.Number(1)

	order := columnOrder(result, profile)
	assert.Equal(t, []string{"name", "amount", "aaa", "extra"}, order)
}
