// Package source loads the tabular record set from an XLSX workbook.
package source

import (
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/kobo-uploader/internal/common"
)

// Load reads the first sheet of the workbook at path into an ordered record
// set. Row 1 is the header; every following row becomes one Record in input
// order. Any failure here is a fatal SOURCE_ERROR: without a readable source
// there is nothing to submit.
func Load(path string, logger *slog.Logger) ([]Record, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, common.NewAppError(common.CodeSourceError, "open workbook", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("source.close_error", "path", path, "error", cerr)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, common.NewAppError(common.CodeSourceError, "workbook has no sheets", common.ErrNotFound)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, common.NewAppError(common.CodeSourceError, "read rows", err)
	}
	if len(rows) == 0 {
		return nil, common.NewAppError(common.CodeSourceError, "sheet is empty", common.ErrInvalidInput)
	}

	header := rows[0]
	if len(header) == 0 {
		return nil, common.NewAppError(common.CodeSourceError, "missing header row", common.ErrInvalidInput)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, NewRecord(header, row))
	}

	logger.Info("source.loaded",
		"path", path,
		"sheet", sheet,
		"columns", len(header),
		"records", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}
