package commands

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inferloop/tabclean/internal/ingest"
	"github.com/inferloop/tabclean/pkg/errors"
	"github.com/inferloop/tabclean/pkg/interfaces"
)

// SourceOptions selects and configures a row source shared by the
// clean and stats commands.
type SourceOptions struct {
	Source    string
	InputFile string
	Delimiter string

	PGHost     string
	PGPort     int
	PGDatabase string
	PGUser     string
	PGPassword string
	PGSSLMode  string
	PGTable    string

	S3Bucket string
	S3Key    string
	S3Region string
}

func newSource(opts *SourceOptions, logger *logrus.Logger) (interfaces.DataSource, error) {
	switch opts.Source {
	case "", "file":
		if strings.EqualFold(filepath.Ext(opts.InputFile), ".json") {
			return ingest.NewJSONSource(&ingest.JSONConfig{Path: opts.InputFile}, logger)
		}
		return ingest.NewCSVSource(&ingest.CSVConfig{Path: opts.InputFile, Delimiter: opts.Delimiter}, logger)
	case "postgres":
		return ingest.NewPostgresSource(&ingest.PostgresConfig{
			Host:     opts.PGHost,
			Port:     opts.PGPort,
			Database: opts.PGDatabase,
			Username: opts.PGUser,
			Password: opts.PGPassword,
			SSLMode:  opts.PGSSLMode,
			Table:    opts.PGTable,
		}, logger)
	case "s3":
		return ingest.NewS3Source(&ingest.S3Config{
			Bucket:    opts.S3Bucket,
			Key:       opts.S3Key,
			Region:    opts.S3Region,
			Delimiter: opts.Delimiter,
		}, logger)
	default:
		return nil, errors.NewValidationError(errors.CodeInvalidInput, "Unknown source type (expected file, postgres, or s3)")
	}
}

func addSourceFlags(cmd *cobra.Command, opts *SourceOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.Source, "source", "file", "Input source (file, postgres, s3)")
	flags.StringVarP(&opts.InputFile, "input", "i", "", "Input file (.csv or .json)")
	flags.StringVar(&opts.Delimiter, "delimiter", ",", "CSV delimiter")
	flags.StringVar(&opts.PGHost, "pg-host", "localhost", "Postgres host")
	flags.IntVar(&opts.PGPort, "pg-port", 5432, "Postgres port")
	flags.StringVar(&opts.PGDatabase, "pg-database", "", "Postgres database")
	flags.StringVar(&opts.PGUser, "pg-user", "", "Postgres user")
	flags.StringVar(&opts.PGPassword, "pg-password", "", "Postgres password")
	flags.StringVar(&opts.PGSSLMode, "pg-sslmode", "require", "Postgres SSL mode")
	flags.StringVar(&opts.PGTable, "pg-table", "", "Postgres table to read")
	flags.StringVar(&opts.S3Bucket, "s3-bucket", "", "S3 bucket")
	flags.StringVar(&opts.S3Key, "s3-key", "", "S3 object key (.csv or .json)")
	flags.StringVar(&opts.S3Region, "s3-region", "us-east-1", "S3 region")
}
