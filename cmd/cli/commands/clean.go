package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inferloop/tabclean/cmd/cli/config"
	"github.com/inferloop/tabclean/internal/cleaner"
	"github.com/inferloop/tabclean/internal/export"
	"github.com/inferloop/tabclean/internal/ingest"
	"github.com/inferloop/tabclean/pkg/interfaces"
	"github.com/inferloop/tabclean/pkg/models"
)

type CleanOptions struct {
	SourceOptions
	ProfileFile  string
	OutputFile   string
	OutputFormat string
	ReportFile   string
	Workers      int
}

func NewCleanCmd() *cobra.Command {
	opts := &CleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean a tabular dataset using a column type profile",
		Long: `Clean a tabular dataset: coerce cell values to their profiled types,
impute missing values (median, mode, or a fallback), winsorize numeric
outliers, and normalize dates, producing cleaned rows plus a per-column
report of what was done.`,
		Example: `  # Clean a CSV file
  tabclean clean --input raw.csv --profile profile.yaml --output cleaned.csv

  # Clean straight out of Postgres and emit JSON
  tabclean clean --source postgres --pg-database shop --pg-table orders \
    --profile profile.yaml --format json --output cleaned.json

  # Clean an S3 object and keep the report
  tabclean clean --source s3 --s3-bucket data --s3-key raw/orders.csv \
    --profile profile.yaml --report report.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd.Context(), opts)
		},
	}

	addSourceFlags(cmd, opts.sourceOptions())
	cmd.Flags().StringVarP(&opts.ProfileFile, "profile", "p", "", "Dataset profile file, YAML or JSON (required)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().StringVar(&opts.OutputFormat, "format", "csv", "Output format (csv, json)")
	cmd.Flags().StringVar(&opts.ReportFile, "report", "", "Write the cleaning report to this file (default stderr)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent column cleaning workers (0 uses config)")

	cmd.MarkFlagRequired("profile")

	return cmd
}

func (o *CleanOptions) sourceOptions() *SourceOptions {
	return &o.SourceOptions
}

func runClean(ctx context.Context, opts *CleanOptions) error {
	logger := newCLILogger()

	cliConfig, err := config.LoadConfig()
	if err != nil {
		return err
	}

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

	engineConfig := &cleaner.Config{
		WinsorizeMinSamples: cliConfig.Cleaning.WinsorizeMinSamples,
		IQRMultiplier:       cliConfig.Cleaning.IQRMultiplier,
		TextFill:            cliConfig.Cleaning.TextFill,
		ParallelWorkers:     cliConfig.Cleaning.ParallelWorkers,
	}
	if opts.Workers > 0 {
		engineConfig.ParallelWorkers = opts.Workers
	}

	engine := cleaner.NewEngine(engineConfig, logger)
	result, err := engine.Clean(ctx, rows, profile)
	if err != nil {
		return err
	}

	if err := writeResult(ctx, opts, result, profile); err != nil {
		return err
	}

	return writeReport(opts.ReportFile, result.Report)
}

func writeResult(ctx context.Context, opts *CleanOptions, result *models.CleaningResult, profile *models.DatasetProfile) error {
	var exporter interfaces.Exporter
	switch strings.ToLower(opts.OutputFormat) {
	case "csv":
		exporter = &export.CSVExporter{}
	case "json":
		exporter = &export.JSONExporter{Indent: true}
	default:
		return fmt.Errorf("unknown output format %q (expected csv or json)", opts.OutputFormat)
	}

	var w io.Writer = os.Stdout
	if opts.OutputFile != "" && opts.OutputFile != "-" {
		f, err := os.Create(opts.OutputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return exporter.Export(ctx, w, result, profile)
}

func writeReport(path string, report []string) error {
	var w io.Writer = os.Stderr
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	for _, line := range report {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newCLILogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}
