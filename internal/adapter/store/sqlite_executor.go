package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sqlgate/internal/domain/entity"
)

// OpenSQLite opens (or creates) the target SQLite database and applies
// PRAGMAs. The handle is created once at startup and held for the
// process lifetime.
func OpenSQLite(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	return db, nil
}

// SQLiteExecutor runs generated SQL against the financial database and
// materializes results as ordered field-to-value maps.
type SQLiteExecutor struct {
	db *gorm.DB
}

func NewSQLiteExecutor(db *gorm.DB) *SQLiteExecutor {
	return &SQLiteExecutor{db: db}
}

// Run executes the statement and scans every row into a column-keyed
// map. Database failures come back as *entity.ExecutionError with the
// driver message intact; SQL errors are domain-meaningful feedback.
func (e *SQLiteExecutor) Run(ctx context.Context, sqlText string) ([]map[string]any, error) {
	rows, err := e.db.WithContext(ctx).Raw(sqlText).Rows()
	if err != nil {
		return nil, &entity.ExecutionError{Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &entity.ExecutionError{Err: err}
	}

	out := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &entity.ExecutionError{Err: err}
		}

		record := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
				continue
			}
			record[col] = values[i]
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &entity.ExecutionError{Err: err}
	}

	return out, nil
}
