package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inferloop/tabclean/internal/coerce"
	"github.com/inferloop/tabclean/internal/ingest"
	"github.com/inferloop/tabclean/internal/stats"
	"github.com/inferloop/tabclean/pkg/models"
)

type StatsOptions struct {
	SourceOptions
	ProfileFile string
}

func NewStatsCmd() *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize profiled columns without transforming the data",
		Long: `Compute the per-column statistics the cleaning engine would use:
quartiles and valid sample counts for numeric columns, modes for boolean
and text columns. Nothing is transformed or written.`,
		Example: `  # Summarize a CSV file
  tabclean stats --input raw.csv --profile profile.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), opts)
		},
	}

	addSourceFlags(cmd, &opts.SourceOptions)
	cmd.Flags().StringVarP(&opts.ProfileFile, "profile", "p", "", "Dataset profile file, YAML or JSON (required)")
	cmd.MarkFlagRequired("profile")

	return cmd
}

func runStats(ctx context.Context, opts *StatsOptions) error {
	logger := newCLILogger()

	profile, err := ingest.LoadProfile(opts.ProfileFile)
	if err != nil {
		return err
	}

	source, err := newSource(&opts.SourceOptions, logger)
	if err != nil {
		return err
	}
	defer source.Close()

	rows, err := source.Read(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Rows: %d\n", len(rows))
	for _, col := range profile.Columns {
		printColumnStats(os.Stdout, rows, col)
	}

	return nil
}

func printColumnStats(w io.Writer, rows []models.Row, col models.ColumnDescriptor) {
	switch col.Type {
	case models.ColumnTypeNumeric:
		var valid []float64
		for _, row := range rows {
			if n, ok := coerce.ToNumber(row[col.Name]); ok {
				valid = append(valid, n)
			}
		}
		q := stats.Quantiles(valid)
		fmt.Fprintf(w, "%s (numeric): valid=%d q1=%.2f median=%.2f q3=%.2f iqr=%.2f\n",
			col.Name, len(valid), q.Q1, q.Q2, q.Q3, q.IQR())

	case models.ColumnTypeBoolean:
		var valid []bool
		for _, row := range rows {
			if b, ok := coerce.ToBool(row[col.Name]); ok {
				valid = append(valid, b)
			}
		}
		if mode, ok := stats.Mode(valid); ok {
			fmt.Fprintf(w, "%s (boolean): valid=%d mode=%t\n", col.Name, len(valid), mode)
		} else {
			fmt.Fprintf(w, "%s (boolean): valid=0 mode=n/a\n", col.Name)
		}

	case models.ColumnTypeCategorical, models.ColumnTypeText:
		// Trim before counting so the reported mode is the value the
		// engine would impute for the same column.
		var valid []string
		for _, row := range rows {
			v := row[col.Name]
			if v.IsAbsent() {
				continue
			}
			if s := strings.TrimSpace(v.Text()); s != "" {
				valid = append(valid, s)
			}
		}
		if mode, ok := stats.Mode(valid); ok {
			fmt.Fprintf(w, "%s (%s): valid=%d mode=%q\n", col.Name, col.Type, len(valid), mode)
		} else {
			fmt.Fprintf(w, "%s (%s): valid=0 mode=n/a\n", col.Name, col.Type)
		}

	case models.ColumnTypeDatetime:
		parseable := 0
		for _, row := range rows {
			if _, ok := coerce.ToDateString(row[col.Name]); ok {
				parseable++
			}
		}
		fmt.Fprintf(w, "%s (datetime): parseable=%d of %d\n", col.Name, parseable, len(rows))

	default:
		fmt.Fprintf(w, "%s (%s): unsupported type, ignored by cleaning\n", col.Name, col.Type)
	}
}
