package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned by point lookups when no matching row exists.
var ErrNotFound = errors.New("not found")

//go:embed migrations/*.sql
var embedMigrations embed.FS

type RosterDB struct {
	DB  *sql.DB
	Log *zerolog.Logger
}

// NewRosterDB is a constructor that initializes RosterDB with DB and Log
func NewRosterDB(log *zerolog.Logger) (*RosterDB, error) {
	// Get the database connection string from the environment
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Error().Msg("DATABASE_URL environment variable is not set")
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	// Open the database connection
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database connection")
		return nil, err
	}

	// Check we are actually connected
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Database connection failed during ping")
		return nil, err
	}

	return &RosterDB{
		DB:  db,
		Log: log,
	}, nil
}

func (r *RosterDB) Close() error {
	if err := r.DB.Close(); err != nil {
		return err
	}
	r.Log.Info().Msg("database connection closed")
	r.DB = nil

	return nil
}

// InitTables creates the roster schema if it does not exist yet. Used by the
// migration job and the integration tests.
func (r *RosterDB) InitTables() error {

	err := r.DB.Ping()
	if err != nil {
		r.Log.Error().Err(err).Msg("Database connection ping failed")
		return fmt.Errorf("database connection ping failed: %v", err)
	}

	r.Log.Debug().Msg("Database connection is healthy, starting table initialization")

	tx, err := r.DB.Begin()
	if err != nil {
		r.Log.Error().Err(err).Msg("error starting transaction")
		return fmt.Errorf("error starting transaction: %v", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(100) UNIQUE NOT NULL,
			display_name VARCHAR(254) NOT NULL,
			email VARCHAR(254) NOT NULL
		);
	`)
	if err != nil {
		r.Log.Error().Err(err).Msg("error creating table users")

		tx.Rollback()
		return err
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS courses (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			name VARCHAR(254) NOT NULL,
			short_name VARCHAR(100) UNIQUE NOT NULL,
			id_number VARCHAR(100)
		);
	`)
	if err != nil {
		r.Log.Error().Err(err).Msg("error creating table courses")

		tx.Rollback()
		return err
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS enrolments (
			course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_name VARCHAR(50) NOT NULL,
			time_created TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (course_id, user_id)
		);
	`)
	if err != nil {
		r.Log.Error().Err(err).Msg("error creating table enrolments")

		tx.Rollback()
		return err
	}

	// visibility holds the numeric level: 0 all, 1 members, 2 own, 3 none
	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS groups (
			id UUID PRIMARY KEY,
			course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL,
			name VARCHAR(254) NOT NULL,
			id_number VARCHAR(100),
			description TEXT,
			visibility SMALLINT NOT NULL DEFAULT 0,
			participation BOOLEAN NOT NULL DEFAULT TRUE,
			UNIQUE (course_id, name)
		);
	`)
	if err != nil {
		r.Log.Error().Err(err).Msg("error creating table groups")

		tx.Rollback()
		return err
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS group_members (
			group_id UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			time_added TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (group_id, user_id)
		);
	`)
	if err != nil {
		r.Log.Error().Err(err).Msg("error creating table group_members")

		tx.Rollback()
		return err
	}

	// Commit the transaction to persist changes
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	r.Log.Info().Msg("Tables initialized successfully")
	return nil
}

// Migrate applies the embedded goose migrations.
func (r *RosterDB) Migrate() error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting goose dialect: %w", err)
	}

	if err := goose.Up(r.DB, "migrations"); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	return nil
}

func (r *RosterDB) execQuery(tx *sql.Tx, query string, args ...interface{}) error {

	if r.DB == nil {
		return fmt.Errorf("database connection is not established")
	}

	_, err := tx.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %v", err)
	}
	return nil
}

// CommitTransaction commits the given transaction, rolling back on failure.
func (r *RosterDB) CommitTransaction(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}
