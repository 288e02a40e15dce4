// Package cleaner transforms a raw Dataset into a valid, analysis-ready
// one. Its policy is deliberate permissiveness: a malformed individual
// value is never an error, it degrades to a fixed default and a validity
// flag. Only structural problems (a required column absent from the
// source) propagate as errors.
package cleaner

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	apperrors "expensecli/internal/errors"
	"expensecli/internal/expense"
)

const (
	defaultNotes       = "No Notes"
	defaultPaymentMode = "Unknown"
	defaultCategory    = "Misc"
)

// dateLayouts are tried in order when coercing the date column. Excel
// renders dates differently depending on cell style, so several layouts
// are accepted.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
	"02 Jan 2006",
	time.RFC3339,
}

// Clean returns a cleaned copy of ds. The input dataset is not modified.
//
// The step order is part of the contract: column normalization, default
// filling, duplicate removal, amount coercion, date coercion, validity
// flagging. Defaults are filled before coercion so pre-existing empty
// amounts are already "0" when coercion runs; malformed non-numeric
// strings are caught by coercion itself.
func Clean(ds *expense.Dataset, logger *slog.Logger) (*expense.Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	out := ds.Clone()

	// 1. Column names to canonical form. Datasets built by the loader are
	// already canonical; hand-built ones become so here.
	for i, c := range out.Columns {
		out.Columns[i] = expense.NormalizeColumn(c)
	}

	if !out.HasColumn(expense.ColAmount) {
		return nil, apperrors.NewFormatError("required column missing", nil).
			WithContext("column", expense.ColAmount)
	}

	// 2. Fixed defaults for values missing in the source. Columns the
	// source never had are not synthesized.
	for i := range out.Records {
		rec := &out.Records[i]
		if out.HasColumn(expense.ColNotes) && strings.TrimSpace(rec.Notes) == "" {
			rec.Notes = defaultNotes
		}
		if strings.TrimSpace(rec.RawAmount) == "" {
			rec.RawAmount = "0"
		}
		if out.HasColumn(expense.ColPaymentMode) && strings.TrimSpace(rec.PaymentMode) == "" {
			rec.PaymentMode = defaultPaymentMode
		}
		if out.HasColumn(expense.ColCategory) && strings.TrimSpace(rec.Category) == "" {
			rec.Category = defaultCategory
		}
	}

	// 3. Exact duplicates collapse to their first occurrence.
	before := len(out.Records)
	seen := make(map[string]bool, len(out.Records))
	deduped := out.Records[:0]
	for _, rec := range out.Records {
		key := rec.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, rec)
	}
	out.Records = deduped

	// 4.–6. Coercion and validity flags, per record.
	hasDate := out.HasColumn(expense.ColDate)
	for i := range out.Records {
		rec := &out.Records[i]

		amount, _ := CoerceAmount(rec.RawAmount)
		rec.Amount = amount
		rec.RawAmount = strconv.Itoa(amount)

		if hasDate {
			rec.Date = CoerceDate(rec.RawDate)
		}

		rec.AmountValid = AmountValid(rec.Amount)
		rec.PaymentModeValid = PaymentModeValid(rec.PaymentMode)
	}

	for _, c := range []string{expense.ColAmountValid, expense.ColPaymentModeValid} {
		if !out.HasColumn(c) {
			out.Columns = append(out.Columns, c)
		}
	}

	logger.Info("cleaned dataset",
		slog.Int("records_in", before),
		slog.Int("records_out", len(out.Records)),
		slog.Int("duplicates_removed", before-len(out.Records)))

	return out, nil
}

// CoerceAmount parses a raw amount cell into a non-negative integer.
// Thousands separators are tolerated and fractional values truncate toward
// zero. Anything unparseable, and any negative value, silently becomes 0
// with ok=false; cleaned amounts are never negative.
func CoerceAmount(raw string) (int, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, false
		}
		v = int(f)
	}
	if v < 0 {
		return 0, false
	}
	return v, true
}

// CoerceDate parses a raw date cell into a calendar date, or nil when the
// value is empty or matches no accepted layout.
func CoerceDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
