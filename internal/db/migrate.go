package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/diewo77/go-commandes/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// registers the postgres database driver for golang-migrate
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// requiredTables must exist after any migration path.
var requiredTables = []string{"profiles", "magasins", "commande_magasin_produits"}

// Migrate brings the schema up to date. With sqlMigrations set it runs the
// embedded SQL files through golang-migrate (postgres only); otherwise it
// falls back to gorm AutoMigrate.
func Migrate(conn *gorm.DB, dsn string, sqlMigrations bool) error {
	if sqlMigrations {
		if conn.Dialector.Name() != "postgres" {
			return fmt.Errorf("sql migrations need postgres, got %s", conn.Dialector.Name())
		}
		if err := runSQLMigrations(ToURLDSN(dsn)); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range models.All() {
			if err := conn.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}

	for _, table := range requiredTables {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

func runSQLMigrations(dsn string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
