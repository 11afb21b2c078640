package testdb

import (
	"errors"
	"os"

	"github.com/Pjt727/odautofill/data"
	"github.com/Pjt727/odautofill/projectpath"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Available reports whether a test database is configured
func Available() bool {
	data.LoadEnv()
	return os.Getenv("TEST_DB_CONN") != ""
}

// SetupTestDb resets the test database by applying the down then up migrations
func SetupTestDb() error {
	data.LoadEnv()
	testDb := os.Getenv("TEST_DB_CONN")
	if testDb == "" {
		return errors.New("TEST_DB_CONN is not set")
	}

	m, err := migrate.New("file://"+projectpath.Root+"/migrations", testDb)
	if err != nil {
		return err
	}
	defer m.Close()
	err = m.Down()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
