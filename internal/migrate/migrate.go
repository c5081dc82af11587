package sqlite3

import (
	"database/sql"
	"errors"
	"io/fs"

	embedded "cinerank"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func UpServerDB(db *sql.DB) error {
	return up(db, embedded.ServerMigrations, "migrations", "cinerank")
}

func UpAuthDB(db *sql.DB) error {
	return up(db, embedded.AuthMigrations, "auth/migrations", "auth")
}

func UpBotDB(db *sql.DB) error {
	return up(db, embedded.BotMigrations, "bot/migrations", "bot")
}

func up(db *sql.DB, src fs.FS, path string, name string) error {
	sourceDriver, err := iofs.New(src, path)
	if err != nil {
		return err
	}
	databaseDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs",
		sourceDriver,
		name, databaseDriver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
