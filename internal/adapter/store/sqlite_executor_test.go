package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlgate/internal/domain/entity"
)

func newTestDB(t *testing.T) *SQLiteExecutor {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, db.Exec("CREATE TABLE client (client_id INT, gender TEXT)").Error)
	require.NoError(t, db.Exec("INSERT INTO client VALUES (1, 'F'), (2, 'M'), (3, 'F')").Error)

	return NewSQLiteExecutor(db)
}

func TestRunReturnsRowsAsMaps(t *testing.T) {
	exec := newTestDB(t)

	rows, err := exec.Run(context.Background(), "SELECT client_id, gender FROM client ORDER BY client_id")

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.EqualValues(t, 1, rows[0]["client_id"])
	assert.Equal(t, "F", rows[0]["gender"])
	assert.Equal(t, "M", rows[1]["gender"])
}

func TestRunAggregates(t *testing.T) {
	exec := newTestDB(t)

	rows, err := exec.Run(context.Background(), "SELECT COUNT(client_id) AS total FROM client")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 3, rows[0]["total"])
}

func TestRunNoRows(t *testing.T) {
	exec := newTestDB(t)

	rows, err := exec.Run(context.Background(), "SELECT 1 WHERE 1=0")

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRunBadSQLIsExecutionError(t *testing.T) {
	exec := newTestDB(t)

	_, err := exec.Run(context.Background(), "SELECT * FROM nonexistent_table")

	require.Error(t, err)
	var execErr *entity.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Contains(t, execErr.Error(), "nonexistent_table")
}
