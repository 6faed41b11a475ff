package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/scansec/scansec/internal/config"
)

// NewMySQL connects to the MySQL history database described by cfg.DSN,
// e.g. "user:pass@tcp(localhost:3306)/scansec?parseTime=true".
func NewMySQL(cfg config.DatabaseConfig) (*SQLStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("mysql driver selected but database.dsn is empty")
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening mysql database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &SQLStore{db: db, driver: "mysql"}
	if err := s.Ping(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging mysql: %w", err)
	}
	return s, nil
}
