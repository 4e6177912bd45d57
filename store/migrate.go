package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed migrations
var migrations embed.FS

// migrateUp runs every pending migration for driver on a dedicated handle so
// that closing the migrator does not close the application pool.
func migrateUp(driver, dsn string, log zerolog.Logger) error {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return err
	}

	var dbDriver database.Driver
	switch driver {
	case DriverSQLite:
		dbDriver, err = sqlite.WithInstance(conn, &sqlite.Config{})
	case DriverPostgres:
		dbDriver, err = postgres.WithInstance(conn, &postgres.Config{})
	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		conn.Close()
		return err
	}

	src, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		dbDriver.Close()
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		src.Close()
		dbDriver.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
	return nil
}
