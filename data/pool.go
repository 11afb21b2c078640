package data

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Pjt727/odautofill/projectpath"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	dbPool     *pgxpool.Pool
	pgOnce     sync.Once
	dbTestPool *pgxpool.Pool
	pgTestOnce sync.Once
	envOnce    sync.Once
)

// LoadEnv reads the project .env once. A missing file is fine, the environment may
// already be set.
func LoadEnv() {
	envOnce.Do(func() {
		err := godotenv.Load(filepath.Join(projectpath.Root, ".env"))
		if err != nil && !os.IsNotExist(err) {
			log.Warn(fmt.Errorf("Could not load .env file: %w", err))
		}
	})
}

// NewPool shares one pool per database, isTest picks TEST_DB_CONN over DB_CONN
func NewPool(ctx context.Context, isTest bool) (*pgxpool.Pool, error) {
	LoadEnv()
	if isTest {
		return newPool(ctx, &pgTestOnce, &dbTestPool, os.Getenv("TEST_DB_CONN"))
	}
	return newPool(ctx, &pgOnce, &dbPool, os.Getenv("DB_CONN"))
}

func newPool(ctx context.Context, once *sync.Once, pool **pgxpool.Pool, connString string) (*pgxpool.Pool, error) {
	var poolErr error
	once.Do(func() {
		if connString == "" {
			poolErr = fmt.Errorf("no database connection string set")
			return
		}
		pgPool, err := pgxpool.New(ctx, connString)
		if err != nil {
			log.Error(fmt.Errorf("Unable to create connection pool: %w", err))
			poolErr = err
			return
		}
		*pool = pgPool
	})
	if poolErr != nil {
		return nil, poolErr
	}
	if *pool == nil {
		return nil, fmt.Errorf("database pool was not created")
	}
	return *pool, nil
}
