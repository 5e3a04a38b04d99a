package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferloop/tabclean/cmd/cli/commands"
)

// Integration tests for CLI commands
// These tests run the actual CLI commands and verify their behavior

func TestCLIIntegrationClean(t *testing.T) {
	tempDir := t.TempDir()

	inputFile := filepath.Join(tempDir, "raw.csv")
	require.NoError(t, os.WriteFile(inputFile, []byte(
		"amount,active,name\n1,yes, Alice\n2,no,\n3,,alice\n4,1,Bob\n100,true,Cara\n"), 0o644))

	profileFile := filepath.Join(tempDir, "profile.yaml")
	require.NoError(t, os.WriteFile(profileFile, []byte(
		"columns:\n  - name: amount\n    type: numeric\n  - name: active\n    type: boolean\n  - name: name\n    type: text\n"), 0o644))

	outputFile := filepath.Join(tempDir, "cleaned.csv")
	reportFile := filepath.Join(tempDir, "report.txt")

	cmd := commands.NewCleanCmd()
	cmd.SetArgs([]string{
		"--input", inputFile,
		"--profile", profileFile,
		"--output", outputFile,
		"--report", reportFile,
	})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	output, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "amount,active,name", lines[0])
	// 100 clips to q3 + 1.5*IQR = 4 + 1.5*2 = 7.
	assert.Equal(t, "7,true,Cara", lines[5])
	// Missing boolean fills with the column mode (true).
	assert.Equal(t, "3,true,alice", lines[3])

	report, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Contains(t, string(report), "amount: converted to number, imputed median 3.00, winsorized outliers")
	assert.Contains(t, string(report), "active: normalized booleans and filled missing with mode")
	assert.Contains(t, string(report), "name: trimmed text and filled missing with 'Alice'")
}

func TestCLIIntegrationCleanJSONOutput(t *testing.T) {
	tempDir := t.TempDir()

	inputFile := filepath.Join(tempDir, "raw.json")
	require.NoError(t, os.WriteFile(inputFile, []byte(
		`[{"amount":"1,200","signup":"2023-01-01T00:00:00.000Z"},{"amount":null,"signup":"not-a-date"}]`), 0o644))

	profileFile := filepath.Join(tempDir, "profile.json")
	require.NoError(t, os.WriteFile(profileFile, []byte(
		`{"columns":[{"name":"amount","type":"numeric"},{"name":"signup","type":"datetime"}]}`), 0o644))

	outputFile := filepath.Join(tempDir, "cleaned.json")

	cmd := commands.NewCleanCmd()
	cmd.SetArgs([]string{
		"--input", inputFile,
		"--profile", profileFile,
		"--output", outputFile,
		"--format", "json",
		"--report", filepath.Join(tempDir, "report.txt"),
	})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	output, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(output), `"2023-01-01"`)
	assert.Contains(t, string(output), `"not-a-date"`)
	assert.Contains(t, string(output), "1200")
}

func TestCLIIntegrationCleanMissingProfile(t *testing.T) {
	cmd := commands.NewCleanCmd()
	cmd.SetArgs([]string{"--input", "whatever.csv"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
