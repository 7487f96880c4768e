package store

import (
	"context"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"sqlgate/internal/domain/entity"
)

const auditSheet = "Sheet1"

// auditColumns is the fixed column order of the audit workbook.
var auditColumns = []string{
	"question",
	"prompt",
	"llm_input_tokens",
	"llm_output_tokens",
	"llm_cost",
	"sql_gen_time",
	"sql_query",
	"fetch_time",
	"fetch_result",
}

// ExcelLog persists one audit row per question lifecycle to an xlsx
// workbook. Rows are appended in creation order; the fetch columns are
// filled in later by the execution stage.
//
// Correlation between the two stages goes through the request id: the
// logger remembers which workbook row each id landed on and updates
// that row. A fetch for an unknown id falls back to updating the last
// row, which keeps old callers working but is racy under concurrent
// generations.
type ExcelLog struct {
	mu      sync.Mutex
	path    string
	rowByID map[string]int
}

func NewExcelLog(path string) *ExcelLog {
	return &ExcelLog{
		path:    path,
		rowByID: make(map[string]int),
	}
}

// Append writes the generation-time fields as a new row, creating the
// workbook with its header when absent. The fetch columns stay empty.
func (l *ExcelLog) Append(ctx context.Context, row entity.AuditRow) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, created, err := l.open()
	if err != nil {
		return &entity.LogWriteError{Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(auditSheet)
	if err != nil {
		return &entity.LogWriteError{Err: err}
	}
	rowIdx := len(rows) + 1

	values := []any{
		row.Question,
		row.Prompt,
		intOrBlank(row.InputTokens),
		intOrBlank(row.OutputTokens),
		floatOrBlank(row.Cost),
		row.SQLGenTime,
		row.SQLQuery,
		"",
		"",
	}
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return &entity.LogWriteError{Err: err}
	}
	if err := f.SetSheetRow(auditSheet, cell, &values); err != nil {
		return &entity.LogWriteError{Err: err}
	}

	if err := l.save(f, created); err != nil {
		return &entity.LogWriteError{Err: err}
	}
	l.rowByID[row.RequestID] = rowIdx
	return nil
}

// RecordFetch fills in the fetch_time and fetch_result columns of the
// row the request id was appended at, or of the last row when the id is
// unknown.
func (l *ExcelLog) RecordFetch(ctx context.Context, requestID string, fetchSeconds float64, result string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, created, err := l.open()
	if err != nil {
		return &entity.LogWriteError{Err: err}
	}
	defer f.Close()
	if created {
		return &entity.LogWriteError{Err: os.ErrNotExist}
	}

	rowIdx, ok := l.rowByID[requestID]
	if !ok {
		rows, err := f.GetRows(auditSheet)
		if err != nil {
			return &entity.LogWriteError{Err: err}
		}
		if len(rows) < 2 {
			return &entity.LogWriteError{Err: os.ErrNotExist}
		}
		rowIdx = len(rows)
	}

	timeCell, err := excelize.CoordinatesToCellName(8, rowIdx)
	if err != nil {
		return &entity.LogWriteError{Err: err}
	}
	resultCell, err := excelize.CoordinatesToCellName(9, rowIdx)
	if err != nil {
		return &entity.LogWriteError{Err: err}
	}
	if err := f.SetCellValue(auditSheet, timeCell, fetchSeconds); err != nil {
		return &entity.LogWriteError{Err: err}
	}
	if err := f.SetCellValue(auditSheet, resultCell, result); err != nil {
		return &entity.LogWriteError{Err: err}
	}

	if err := f.Save(); err != nil {
		return &entity.LogWriteError{Err: err}
	}
	return nil
}

// open returns the workbook, creating a fresh one with the header row
// when the file does not exist yet.
func (l *ExcelLog) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(l.path); err != nil {
		if !os.IsNotExist(err) {
			return nil, false, err
		}
		f := excelize.NewFile()
		header := make([]any, len(auditColumns))
		for i, col := range auditColumns {
			header[i] = col
		}
		if err := f.SetSheetRow(auditSheet, "A1", &header); err != nil {
			f.Close()
			return nil, false, err
		}
		return f, true, nil
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, false, err
	}
	return f, false, nil
}

func (l *ExcelLog) save(f *excelize.File, created bool) error {
	if created {
		return f.SaveAs(l.path)
	}
	return f.Save()
}

func intOrBlank(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func floatOrBlank(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
