package store

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sqlgate/internal/domain/entity"
)

func sampleRow(id, question string) entity.AuditRow {
	in, out := 100, 50
	cost := 0.00045
	return entity.AuditRow{
		RequestID:    id,
		Question:     question,
		Prompt:       "(system) instructions\n(user) " + question,
		InputTokens:  &in,
		OutputTokens: &out,
		Cost:         &cost,
		SQLGenTime:   1.25,
		SQLQuery:     "SELECT 1;",
	}
}

func TestAppendCreatesWorkbookWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query_log.xlsx")
	l := NewExcelLog(path)

	require.NoError(t, l.Append(context.Background(), sampleRow("req-1", "how many clients?")))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(auditSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, auditColumns, rows[0][:len(auditColumns)])
	assert.Equal(t, "how many clients?", rows[1][0])
	assert.Equal(t, "100", rows[1][2])
	assert.Equal(t, "50", rows[1][3])
	assert.Equal(t, "SELECT 1;", rows[1][6])
}

func TestAppendPreservesCreationOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query_log.xlsx")
	l := NewExcelLog(path)

	require.NoError(t, l.Append(context.Background(), sampleRow("req-1", "first")))
	require.NoError(t, l.Append(context.Background(), sampleRow("req-2", "second")))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(auditSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "first", rows[1][0])
	assert.Equal(t, "second", rows[2][0])
}

func TestRecordFetchUpdatesMatchingRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query_log.xlsx")
	l := NewExcelLog(path)

	require.NoError(t, l.Append(context.Background(), sampleRow("req-1", "first")))
	require.NoError(t, l.Append(context.Background(), sampleRow("req-2", "second")))

	// fetch for the first request must not touch the second row
	require.NoError(t, l.RecordFetch(context.Background(), "req-1", 0.5, `[{"n":1}]`))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	fetchTime, err := f.GetCellValue(auditSheet, "H2")
	require.NoError(t, err)
	parsed, err := strconv.ParseFloat(fetchTime, 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, parsed, 1e-9)

	result, err := f.GetCellValue(auditSheet, "I2")
	require.NoError(t, err)
	assert.Equal(t, `[{"n":1}]`, result)

	secondFetch, err := f.GetCellValue(auditSheet, "I3")
	require.NoError(t, err)
	assert.Empty(t, secondFetch)
}

func TestRecordFetchUnknownIDFallsBackToLastRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query_log.xlsx")
	l := NewExcelLog(path)

	require.NoError(t, l.Append(context.Background(), sampleRow("req-1", "first")))
	require.NoError(t, l.Append(context.Background(), sampleRow("req-2", "second")))

	require.NoError(t, l.RecordFetch(context.Background(), "", 0.1, "done"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	result, err := f.GetCellValue(auditSheet, "I3")
	require.NoError(t, err)
	assert.Equal(t, "done", result)
}

func TestRecordFetchMissingWorkbook(t *testing.T) {
	l := NewExcelLog(filepath.Join(t.TempDir(), "query_log.xlsx"))

	err := l.RecordFetch(context.Background(), "req-1", 0.1, "done")

	require.Error(t, err)
	var logErr *entity.LogWriteError
	assert.ErrorAs(t, err, &logErr)
}

func TestAppendBlankTokenColumnsWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query_log.xlsx")
	l := NewExcelLog(path)

	row := sampleRow("req-1", "q")
	row.InputTokens = nil
	row.OutputTokens = nil
	row.Cost = nil
	require.NoError(t, l.Append(context.Background(), row))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, cell := range []string{"C2", "D2", "E2"} {
		v, err := f.GetCellValue(auditSheet, cell)
		require.NoError(t, err)
		assert.Empty(t, v)
	}
}
