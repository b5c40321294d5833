package testing

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const defaultPostgresImage = "postgres:17.5"

// Postgres is a disposable reference database with every db/migrations
// up script applied.
type Postgres struct {
	Container  *postgres.PostgresContainer
	ConnString string
}

type PostgresConfig struct {
	Image    string
	Database string
	Username string
	Password string
}

func (c PostgresConfig) withDefaults() PostgresConfig {
	if c.Image == "" {
		c.Image = defaultPostgresImage
	}
	if c.Database == "" {
		c.Database = "labeleval_test"
	}
	if c.Username == "" {
		c.Username = "test"
	}
	if c.Password == "" {
		c.Password = "test"
	}
	return c
}

// NewPostgres starts a database for tb and terminates it on cleanup.
func NewPostgres(ctx context.Context, tb testing.TB) *Postgres {
	tb.Helper()

	pg, err := StartPostgres(ctx, PostgresConfig{})
	if err != nil {
		tb.Fatalf("start postgres: %v", err)
	}
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pg.Container); err != nil {
			tb.Logf("terminate postgres: %v", err)
		}
	})
	return pg
}

func StartPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	cfg = cfg.withDefaults()

	scripts, err := MigrationScripts(migrationsDir())
	if err != nil {
		return nil, err
	}

	c, err := postgres.Run(ctx, cfg.Image,
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		postgres.WithInitScripts(scripts...),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("run postgres container: %w", err)
	}

	conn, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(c)
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}
	return &Postgres{Container: c, ConnString: conn}, nil
}

// MigrationScripts lists the *.up.sql files of dir in apply order.
func MigrationScripts(dir string) ([]string, error) {
	scripts, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	if len(scripts) == 0 {
		return nil, fmt.Errorf("no migrations in %s", dir)
	}
	sort.Strings(scripts)
	return scripts, nil
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "db", "migrations")
}
