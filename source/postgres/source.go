package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/AirHelp/samplestats/source"
)

const dsnEnv = "POSTGRES_DSN"

type Config struct {
	DSN   string `yaml:"dsn"`
	Query string `yaml:"query"`
}

type Source struct {
	db     *sql.DB
	query  string
	logger *zap.SugaredLogger
}

var (
	ErrNoDSNSpecified   = errors.New("no dsn provided")
	ErrNoQuerySpecified = errors.New("no query provided")
	ErrNoColumns        = errors.New("query returned no columns")
)

// New opens and pings the database. An empty DSN falls back to $POSTGRES_DSN.
func New(ctx context.Context, config *Config, logger *zap.SugaredLogger) (*Source, error) {
	if config.Query == "" {
		return &Source{}, ErrNoQuerySpecified
	}

	dsn := config.DSN
	if dsn == "" {
		dsn = os.Getenv(dsnEnv)
	}

	if dsn == "" {
		return &Source{}, ErrNoDSNSpecified
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return &Source{}, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &Source{}, fmt.Errorf("database not reachable: %w", err)
	}

	return NewWithDB(db, config.Query, logger), nil
}

// NewWithDB wraps an already opened pool. The source takes ownership of db.
func NewWithDB(db *sql.DB, query string, logger *zap.SugaredLogger) *Source {
	return &Source{
		db:     db,
		query:  query,
		logger: logger,
	}
}

func (s *Source) Kind() string {
	return "postgres"
}

// Load runs the query and reads the first column of every row. Remaining
// columns are ignored.
func (s *Source) Load(ctx context.Context) ([]uint8, error) {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	var (
		values []uint8
		n      int64
	)

	dest := make([]any, len(columns))
	dest[0] = &n

	for i := 1; i < len(dest); i++ {
		dest[i] = new(sql.RawBytes)
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("column %v: %w", columns[0], err)
		}

		v, err := toValue(n)
		if err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Debugf("loaded %d values from query", len(values))

	return values, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

func toValue(n int64) (uint8, error) {
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("%w: %d", source.ErrInvalidValue, n)
	}

	return uint8(n), nil
}
