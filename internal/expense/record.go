package expense

import (
	"strconv"
	"strings"
	"time"
)

// Canonical column names after normalization.
const (
	ColDate        = "date"
	ColCategory    = "category"
	ColItem        = "item"
	ColAmount      = "amount"
	ColPaymentMode = "payment_mode"
	ColNotes       = "notes"

	// Derived validity columns appended by the cleaner.
	ColAmountValid      = "amount_valid"
	ColPaymentModeValid = "payment_mode_valid"
)

// Record is a single expense entry. The Raw* fields hold the cell text as
// loaded from the source sheet; Amount and Date are the typed values the
// cleaner derives from them. The validity flags are advisory annotations,
// never filters.
type Record struct {
	RawDate     string
	Category    string
	Item        string
	RawAmount   string
	PaymentMode string
	Notes       string

	// Set by the cleaner.
	Amount           int
	Date             *time.Time
	AmountValid      bool
	PaymentModeValid bool
}

// DedupKey returns a deduplication key built from every user-visible field.
// Two records are exact duplicates when all fields compare equal.
func (r Record) DedupKey() string {
	return strings.Join([]string{
		r.RawDate,
		r.Category,
		r.Item,
		r.RawAmount,
		r.PaymentMode,
		r.Notes,
		strconv.Itoa(r.Amount),
	}, "\x1f")
}

// MonthKey returns the calendar year-month of the record as "2006-01",
// or "" when the record has no parsed date.
func (r Record) MonthKey() string {
	if r.Date == nil {
		return ""
	}
	return r.Date.Format("2006-01")
}
