// Package report serializes analysis results into a multi-sheet Excel
// workbook and embeds the chart images into it.
//
// Writing is a two-phase protocol: Export creates the workbook on disk,
// EmbedCharts re-opens it and inserts the images. The phases stay separate
// because embedding needs an already-serialized document, and a report is
// valid without charts when embedding fails.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"expensecli/internal/charts"
	apperrors "expensecli/internal/errors"
	"expensecli/internal/expense"
)

const chartsSheet = "Charts"

// chartRowStride is how many sheet rows each embedded image occupies.
const chartRowStride = 20

// Export creates (or overwrites) the workbook at path with one sheet per
// analysis view plus a placeholder Charts sheet.
func Export(path string, res *expense.AnalysisResults, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the Summary sheet.
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return apperrors.NewIOError("failed to prepare summary sheet", err)
	}
	if err := setRow(f, "Summary", 1, []interface{}{"Average Expense", "Max Expense", "Min Expense"}); err != nil {
		return err
	}
	if err := setRow(f, "Summary", 2, []interface{}{res.AverageExpense, res.MaxExpense, res.MinExpense}); err != nil {
		return err
	}

	grouped := []struct {
		sheet       string
		keyHeader   string
		valueHeader string
		entries     []expense.GroupEntry
		integer     bool
	}{
		{"Category Totals", "Category", "Total Amount", res.CategoryTotals, true},
		{"Category Averages", "Category", "Avg Amount", res.CategoryAverages, false},
		{"Payment Modes", "Payment Mode", "Count", res.PaymentCounts, true},
		{"Monthly Totals", "Month", "Total Amount", res.MonthlyTotals, true},
	}
	for _, g := range grouped {
		if err := writeGroupSheet(f, g.sheet, g.keyHeader, g.valueHeader, g.entries, g.integer); err != nil {
			return err
		}
	}

	recordSheets := []struct {
		sheet   string
		records []expense.Record
	}{
		{"Top 5 Items", res.Top5Items},
		{"Above 5000", res.Above5000},
		{"Sorted Expenses", res.SortedExpenses},
	}
	for _, s := range recordSheets {
		if err := writeRecordSheet(f, s.sheet, res.RecordColumns, s.records); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(chartsSheet); err != nil {
		return apperrors.NewIOError("failed to create charts sheet", err)
	}
	if err := setRow(f, chartsSheet, 1, []interface{}{"Charts"}); err != nil {
		return err
	}
	if err := setRow(f, chartsSheet, 2, []interface{}{"See embedded images"}); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewIOError("failed to write report file", err).
			WithContext("path", path)
	}

	logger.Info("report exported",
		slog.String("path", path),
		slog.Int("sorted_records", len(res.SortedExpenses)))

	return nil
}

// EmbedCharts re-opens the workbook at path, makes sure the Charts sheet
// exists, and inserts each available chart image stacked vertically in
// column A. Chart paths that do not exist on disk are skipped silently.
func EmbedCharts(path string, chartPaths map[string]string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); err != nil {
		return apperrors.NewIOError("report file not accessible", err).
			WithContext("path", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return apperrors.NewFormatError("report file is not a valid workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(chartsSheet); err != nil || idx == -1 {
		if _, err := f.NewSheet(chartsSheet); err != nil {
			return apperrors.NewIOError("failed to create charts sheet", err)
		}
	}

	row := 1
	embedded := 0
	for _, key := range chartKeyOrder(chartPaths) {
		imagePath := chartPaths[key]
		if _, err := os.Stat(imagePath); err != nil {
			continue
		}
		cell := fmt.Sprintf("A%d", row)
		if err := f.AddPicture(chartsSheet, cell, imagePath, nil); err != nil {
			return apperrors.NewIOError("failed to embed chart image", err).
				WithContext("chart", key).
				WithContext("image", imagePath)
		}
		row += chartRowStride
		embedded++
	}

	if err := f.Save(); err != nil {
		return apperrors.NewIOError("failed to save report file", err).
			WithContext("path", path)
	}

	logger.Info("charts embedded",
		slog.String("path", path),
		slog.Int("charts", embedded))

	return nil
}

// chartKeyOrder returns the mapping's keys in deterministic order: the
// well-known chart keys first, any others sorted after them.
func chartKeyOrder(chartPaths map[string]string) []string {
	keys := make([]string, 0, len(chartPaths))
	known := make(map[string]bool, len(charts.Order))
	for _, key := range charts.Order {
		known[key] = true
		if _, ok := chartPaths[key]; ok {
			keys = append(keys, key)
		}
	}
	extra := make([]string, 0)
	for key := range chartPaths {
		if !known[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell := fmt.Sprintf("A%d", row)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return apperrors.NewIOError("failed to write sheet row", err).
			WithContext("sheet", sheet).
			WithContext("cell", cell)
	}
	return nil
}

func writeGroupSheet(f *excelize.File, sheet, keyHeader, valueHeader string, entries []expense.GroupEntry, integer bool) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.NewIOError("failed to create sheet", err).
			WithContext("sheet", sheet)
	}
	if err := setRow(f, sheet, 1, []interface{}{keyHeader, valueHeader}); err != nil {
		return err
	}
	for i, entry := range entries {
		value := interface{}(entry.Value)
		if integer {
			value = int(entry.Value)
		}
		if err := setRow(f, sheet, i+2, []interface{}{entry.Key, value}); err != nil {
			return err
		}
	}
	return nil
}

func writeRecordSheet(f *excelize.File, sheet string, columns []string, records []expense.Record) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.NewIOError("failed to create sheet", err).
			WithContext("sheet", sheet)
	}

	header := make([]interface{}, 0, len(columns))
	for _, c := range columns {
		header = append(header, c)
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, rec := range records {
		row := make([]interface{}, 0, len(columns))
		for _, c := range columns {
			row = append(row, recordCell(rec, c))
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// recordCell maps one record field onto its sheet cell value.
func recordCell(rec expense.Record, column string) interface{} {
	switch column {
	case expense.ColDate:
		if rec.Date == nil {
			return ""
		}
		return rec.Date.Format(time.DateOnly)
	case expense.ColCategory:
		return rec.Category
	case expense.ColItem:
		return rec.Item
	case expense.ColAmount:
		return rec.Amount
	case expense.ColPaymentMode:
		return rec.PaymentMode
	case expense.ColNotes:
		return rec.Notes
	case expense.ColAmountValid:
		return rec.AmountValid
	case expense.ColPaymentModeValid:
		return rec.PaymentModeValid
	default:
		return ""
	}
}
