package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabclean/pkg/constants"
	"github.com/inferloop/tabclean/pkg/errors"
	"github.com/inferloop/tabclean/pkg/models"
)

// PostgresConfig holds configuration for the PostgreSQL table source.
type PostgresConfig struct {
	Host           string        `json:"host" yaml:"host"`
	Port           int           `json:"port" yaml:"port"`
	Database       string        `json:"database" yaml:"database"`
	Username       string        `json:"username" yaml:"username"`
	Password       string        `json:"password" yaml:"password"`
	SSLMode        string        `json:"ssl_mode" yaml:"ssl_mode"`
	Table          string        `json:"table" yaml:"table"`
	Query          string        `json:"query,omitempty" yaml:"query,omitempty"`
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`
}

// PostgresSource reads raw rows from a PostgreSQL table or query.
type PostgresSource struct {
	config *PostgresConfig
	db     *sql.DB
	logger *logrus.Logger
	mu     sync.Mutex
}

// NewPostgresSource creates a new PostgreSQL source.
func NewPostgresSource(config *PostgresConfig, logger *logrus.Logger) (*PostgresSource, error) {
	if config == nil {
		return nil, errors.NewIngestError("INVALID_CONFIG", "Postgres config cannot be nil")
	}
	if config.Table == "" && config.Query == "" {
		return nil, errors.NewIngestError("INVALID_CONFIG", "Postgres table or query is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &PostgresSource{config: config, logger: logger}, nil
}

// Name returns the source type.
func (s *PostgresSource) Name() string {
	return "postgres"
}

// Connect establishes the database connection.
func (s *PostgresSource) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	sslMode := s.config.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	timeout := s.config.ConnectTimeout
	if timeout == 0 {
		timeout = constants.DefaultConnectionTimeout
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s connect_timeout=%d",
		s.config.Host, s.config.Port, s.config.Database, s.config.Username, s.config.Password,
		sslMode, int(timeout.Seconds()))

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeConnectionFailed, "Failed to open Postgres connection")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeConnectionFailed, "Failed to ping Postgres")
	}

	s.db = db
	s.logger.WithFields(logrus.Fields{
		"host":     s.config.Host,
		"database": s.config.Database,
		"table":    s.config.Table,
	}).Info("Connected to Postgres")

	return nil
}

// Read loads every row of the configured table or query.
func (s *PostgresSource) Read(ctx context.Context) ([]models.Row, error) {
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}

	query := s.config.Query
	if query == "" {
		query = fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(s.config.Table))
	}

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeReadFailed, "Postgres query failed")
	}
	defer result.Close()

	columns, err := result.Columns()
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeReadFailed, "Failed to read result columns")
	}

	var rows []models.Row
	for result.Next() {
		cells := make([]interface{}, len(columns))
		targets := make([]interface{}, len(columns))
		for i := range cells {
			targets[i] = &cells[i]
		}
		if err := result.Scan(targets...); err != nil {
			return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeReadFailed, "Failed to scan result row")
		}

		row := make(models.Row, len(columns))
		for i, name := range columns {
			row[name] = cellValue(cells[i])
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeReadFailed, "Postgres result iteration failed")
	}

	s.logger.WithFields(logrus.Fields{
		"table": s.config.Table,
		"rows":  len(rows),
	}).Debug("Postgres dataset loaded")

	return rows, nil
}

// Close closes the database connection.
func (s *PostgresSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// cellValue maps a database/sql scan result onto the cell variant.
func cellValue(v interface{}) models.Value {
	switch x := v.(type) {
	case nil:
		return models.Absent()
	case bool:
		return models.Bool(x)
	case int64:
		return models.Number(float64(x))
	case float64:
		return models.Number(x)
	case []byte:
		return models.String(string(x))
	case string:
		return models.String(x)
	case time.Time:
		return models.Time(x)
	default:
		return models.String(fmt.Sprintf("%v", x))
	}
}
