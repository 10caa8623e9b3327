// Command geotwin-migrate applies the embedded postgres schema migrations
//
// usage:
//
//	geotwin-migrate [up|down|version|force N]
//
// up is the default and applies everything pending
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"geotwin/db"
	"geotwin/internal/platform/config"
	"geotwin/internal/platform/logger"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_") // pg settings live under SERVICE_PGSQL_*

	l := logger.Named("migrate")

	m, err := newMigrate(pgCfg.MustString("DBURL"))
	if err != nil {
		l.Panic().Err(err).Msg("migrate setup failed")
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			l.Panic().Err(err).Msg("migrate up failed")
		}
		logVersion(m)
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			l.Panic().Err(err).Msg("migrate down failed")
		}
		logVersion(m)
	case "version":
		logVersion(m)
	case "force":
		if len(os.Args) < 3 {
			l.Panic().Msg("force requires a version argument")
		}
		v, err := strconv.Atoi(os.Args[2])
		if err != nil {
			l.Panic().Err(err).Msg("force version must be an integer")
		}
		if err := m.Force(v); err != nil {
			l.Panic().Err(err).Int("version", v).Msg("migrate force failed")
		}
		logVersion(m)
	default:
		l.Panic().Str("cmd", cmd).Msg("unknown command, want up, down, version, or force")
	}
}

// newMigrate builds a migrate instance over the embedded sources
// the pgx v5 database driver registers under the pgx5 scheme, so the
// conventional postgres:// URL is rewritten before handing it over
func newMigrate(dburl string) (*migrate.Migrate, error) {
	src, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	switch {
	case strings.HasPrefix(dburl, "postgresql://"):
		dburl = "pgx5://" + strings.TrimPrefix(dburl, "postgresql://")
	case strings.HasPrefix(dburl, "postgres://"):
		dburl = "pgx5://" + strings.TrimPrefix(dburl, "postgres://")
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dburl)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func logVersion(m *migrate.Migrate) {
	l := logger.Named("migrate")
	v, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		l.Panic().Err(err).Msg("read schema version failed")
	}
	l.Info().Uint("version", v).Bool("dirty", dirty).Msg("schema version")
}
