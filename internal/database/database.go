package database

import (
	"database/sql"
	"fmt"
	"os"

	"farmstock_backend/internal/config"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// InitDB initializes the database connection pool and optionally applies the
// schema file referenced by cfg.SchemaPath.
func InitDB(cfg config.DBConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err = applySchema(db, cfg.SchemaPath); err != nil {
		return nil, err
	}

	return db, nil
}

// applySchema reads and executes the schema file. A blank path skips
// application entirely (schema managed out of band).
func applySchema(db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	if _, err = db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	return nil
}
