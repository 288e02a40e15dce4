// Package loader reads a household-expense spreadsheet into a Dataset.
// It performs no validation or normalization of cell values; that is the
// cleaner's job.
package loader

import (
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "expensecli/internal/errors"
	"expensecli/internal/expense"
)

// Load opens the workbook at path and converts its first sheet into a
// Dataset: the first row is the header, every following row becomes one
// record of raw cell text. A missing or unreadable file is an IO error;
// a file that is not a valid workbook, or a sheet without a header row,
// is a format error.
func Load(path string, logger *slog.Logger) (*expense.Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewIOError("input file not accessible", err).
			WithContext("path", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewFormatError("file is not a valid spreadsheet", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewFormatError("workbook has no sheets", nil).
			WithContext("path", path)
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, apperrors.NewFormatError("failed to read sheet rows", err).
			WithContext("sheet", sheetName)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewFormatError("sheet has no header row", nil).
			WithContext("sheet", sheetName)
	}

	header := rows[0]
	columnMap := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		canonical := expense.NormalizeColumn(name)
		if canonical == "" {
			continue
		}
		columns = append(columns, canonical)
		if _, seen := columnMap[canonical]; !seen {
			columnMap[canonical] = i
		}
	}
	if len(columns) == 0 {
		return nil, apperrors.NewFormatError("header row is empty", nil).
			WithContext("sheet", sheetName)
	}

	cell := func(row []string, column string) string {
		idx, ok := columnMap[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	records := make([]expense.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells; a fully empty row carries
		// no data and is skipped.
		empty := true
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		records = append(records, expense.Record{
			RawDate:     cell(row, expense.ColDate),
			Category:    cell(row, expense.ColCategory),
			Item:        cell(row, expense.ColItem),
			RawAmount:   cell(row, expense.ColAmount),
			PaymentMode: cell(row, expense.ColPaymentMode),
			Notes:       cell(row, expense.ColNotes),
		})
	}

	logger.Info("loaded dataset",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("columns", len(columns)),
		slog.Int("records", len(records)))

	return expense.NewDataset(columns, records), nil
}
