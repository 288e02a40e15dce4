// Package analyzer computes every aggregate view the report is built from.
// Analyze is a pure function of the cleaned dataset: the same dataset
// always yields the same AnalysisResults, and nothing is mutated.
//
// Validity flags do not filter anything here. Flagged-invalid records take
// part in every aggregate; the flags are advisory columns in the report.
package analyzer

import (
	"log/slog"
	"sort"

	"expensecli/internal/expense"
)

const above5000Threshold = 5000

// Analyze computes all aggregate views from a cleaned dataset.
func Analyze(ds *expense.Dataset, logger *slog.Logger) *expense.AnalysisResults {
	if logger == nil {
		logger = slog.Default()
	}

	res := &expense.AnalysisResults{
		RecordColumns: append([]string(nil), ds.Columns...),
	}

	var sum int
	for i, rec := range ds.Records {
		sum += rec.Amount
		if i == 0 || rec.Amount > res.MaxExpense {
			res.MaxExpense = rec.Amount
		}
		if i == 0 || rec.Amount < res.MinExpense {
			res.MinExpense = rec.Amount
		}
	}
	if len(ds.Records) > 0 {
		res.AverageExpense = float64(sum) / float64(len(ds.Records))
	}

	byCategory := func(r expense.Record) (string, bool) { return r.Category, true }
	byPaymentMode := func(r expense.Record) (string, bool) { return r.PaymentMode, true }
	byMonth := func(r expense.Record) (string, bool) {
		key := r.MonthKey()
		return key, key != ""
	}

	res.CategoryTotals = groupReduce(ds.Records, byCategory, reduceSum, orderByValueDesc)
	res.CategoryAverages = groupReduce(ds.Records, byCategory, reduceMean, orderByValueDesc)
	res.PaymentCounts = groupReduce(ds.Records, byPaymentMode, reduceCount, orderByValueDesc)
	if ds.HasColumn(expense.ColDate) {
		res.MonthlyTotals = groupReduce(ds.Records, byMonth, reduceSum, orderByKeyAsc)
	}

	res.SortedExpenses = sortedByAmountDesc(ds.Records)
	top := len(res.SortedExpenses)
	if top > 5 {
		top = 5
	}
	res.Top5Items = append([]expense.Record(nil), res.SortedExpenses[:top]...)

	for _, rec := range ds.Records {
		if rec.Amount > above5000Threshold {
			res.Above5000 = append(res.Above5000, rec)
		}
	}

	logger.Info("analysis complete",
		slog.Int("records", len(ds.Records)),
		slog.Int("categories", len(res.CategoryTotals)),
		slog.Int("payment_modes", len(res.PaymentCounts)),
		slog.Int("months", len(res.MonthlyTotals)))

	return res
}

// sortedByAmountDesc returns a copy of records sorted descending by amount.
// The sort is stable so ties keep their original insertion order.
func sortedByAmountDesc(records []expense.Record) []expense.Record {
	out := append([]expense.Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}
