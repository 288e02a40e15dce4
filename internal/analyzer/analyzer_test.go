package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensecli/internal/expense"
)

func cleanedRecord(category string, amount int) expense.Record {
	return expense.Record{
		Category:    category,
		Amount:      amount,
		PaymentMode: "Cash",
	}
}

func datedRecord(category string, amount int, date string) expense.Record {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	rec := cleanedRecord(category, amount)
	rec.Date = &t
	return rec
}

func TestAnalyze_ScalarAggregates(t *testing.T) {
	ds := expense.NewDataset([]string{"category", "amount"}, []expense.Record{
		cleanedRecord("Food", 200),
		cleanedRecord("Food", 300),
		cleanedRecord("Rent", 1000),
	})

	res := Analyze(ds, nil)

	assert.InDelta(t, 500.0, res.AverageExpense, 1e-9)
	assert.Equal(t, 1000, res.MaxExpense)
	assert.Equal(t, 200, res.MinExpense)
}

func TestAnalyze_ScalarsIncludeFlaggedInvalidRecords(t *testing.T) {
	// Validity flags are advisory: a record flagged invalid still takes
	// part in every aggregate.
	invalid := cleanedRecord("Misc", 0)
	invalid.AmountValid = false

	ds := expense.NewDataset([]string{"category", "amount"}, []expense.Record{
		cleanedRecord("Food", 300),
		invalid,
	})

	res := Analyze(ds, nil)

	assert.InDelta(t, 150.0, res.AverageExpense, 1e-9)
	assert.Equal(t, 0, res.MinExpense)
}

func TestAnalyze_CategoryTotalsDescending(t *testing.T) {
	ds := expense.NewDataset([]string{"category", "amount"}, []expense.Record{
		cleanedRecord("Food", 200),
		cleanedRecord("Food", 300),
		cleanedRecord("Rent", 1000),
	})

	res := Analyze(ds, nil)

	require.Len(t, res.CategoryTotals, 2)
	assert.Equal(t, expense.GroupEntry{Key: "Rent", Value: 1000}, res.CategoryTotals[0])
	assert.Equal(t, expense.GroupEntry{Key: "Food", Value: 500}, res.CategoryTotals[1])
}

func TestAnalyze_CategoryTotalsTieKeepsFirstSeenOrder(t *testing.T) {
	ds := expense.NewDataset([]string{"category", "amount"}, []expense.Record{
		cleanedRecord("Travel", 400),
		cleanedRecord("Food", 400),
	})

	res := Analyze(ds, nil)

	require.Len(t, res.CategoryTotals, 2)
	assert.Equal(t, "Travel", res.CategoryTotals[0].Key)
	assert.Equal(t, "Food", res.CategoryTotals[1].Key)
}

func TestAnalyze_CategoryTotalsPartitionCompleteness(t *testing.T) {
	ds := expense.NewDataset([]string{"category", "amount"}, []expense.Record{
		cleanedRecord("Food", 123),
		cleanedRecord("Rent", 4567),
		cleanedRecord("Food", 89),
		cleanedRecord("Travel", 1011),
	})

	res := Analyze(ds, nil)

	var total float64
	for _, entry := range res.CategoryTotals {
		total += entry.Value
	}
	assert.InDelta(t, float64(123+4567+89+1011), total, 1e-9)
}

func TestAnalyze_CategoryAverages(t *testing.T) {
	ds := expense.NewDataset([]string{"category", "amount"}, []expense.Record{
		cleanedRecord("Food", 200),
		cleanedRecord("Food", 300),
		cleanedRecord("Rent", 1000),
	})

	res := Analyze(ds, nil)

	require.Len(t, res.CategoryAverages, 2)
	assert.Equal(t, "Rent", res.CategoryAverages[0].Key)
	assert.InDelta(t, 1000.0, res.CategoryAverages[0].Value, 1e-9)
	assert.Equal(t, "Food", res.CategoryAverages[1].Key)
	assert.InDelta(t, 250.0, res.CategoryAverages[1].Value, 1e-9)
}

func TestAnalyze_PaymentCounts(t *testing.T) {
	records := []expense.Record{
		{Category: "Food", Amount: 100, PaymentMode: "UPI"},
		{Category: "Food", Amount: 100, PaymentMode: "Cash"},
		{Category: "Food", Amount: 100, PaymentMode: "UPI"},
		{Category: "Food", Amount: 100, PaymentMode: "Unknown"},
	}
	ds := expense.NewDataset([]string{"category", "amount", "payment_mode"}, records)

	res := Analyze(ds, nil)

	require.Len(t, res.PaymentCounts, 3)
	assert.Equal(t, expense.GroupEntry{Key: "UPI", Value: 2}, res.PaymentCounts[0])
	// Cash and Unknown tie at 1; Cash was seen first.
	assert.Equal(t, "Cash", res.PaymentCounts[1].Key)
	assert.Equal(t, "Unknown", res.PaymentCounts[2].Key)
}

func TestAnalyze_MonthlyTotals(t *testing.T) {
	ds := expense.NewDataset([]string{"date", "category", "amount"}, []expense.Record{
		datedRecord("Food", 300, "2025-02-10"),
		datedRecord("Rent", 1000, "2025-01-05"),
		datedRecord("Food", 200, "2025-01-20"),
	})

	res := Analyze(ds, nil)

	require.Len(t, res.MonthlyTotals, 2)
	assert.Equal(t, expense.GroupEntry{Key: "2025-01", Value: 1200}, res.MonthlyTotals[0])
	assert.Equal(t, expense.GroupEntry{Key: "2025-02", Value: 300}, res.MonthlyTotals[1])
}

func TestAnalyze_MonthlyTotalsSkipsUnparsedDates(t *testing.T) {
	withDate := datedRecord("Food", 300, "2025-02-10")
	noDate := cleanedRecord("Food", 500)
	ds := expense.NewDataset([]string{"date", "category", "amount"}, []expense.Record{withDate, noDate})

	res := Analyze(ds, nil)

	require.Len(t, res.MonthlyTotals, 1)
	assert.Equal(t, expense.GroupEntry{Key: "2025-02", Value: 300}, res.MonthlyTotals[0])
}

func TestAnalyze_NoDateColumnMeansEmptyMonthlyTotals(t *testing.T) {
	ds := expense.NewDataset([]string{"category", "amount"}, []expense.Record{
		cleanedRecord("Food", 300),
	})

	res := Analyze(ds, nil)

	assert.Empty(t, res.MonthlyTotals)
}

func TestAnalyze_Top5AndSorted(t *testing.T) {
	records := []expense.Record{
		cleanedRecord("A", 100),
		cleanedRecord("B", 900),
		cleanedRecord("C", 500),
		cleanedRecord("D", 900),
		cleanedRecord("E", 300),
		cleanedRecord("F", 700),
		cleanedRecord("G", 50),
	}
	ds := expense.NewDataset([]string{"category", "amount"}, records)

	res := Analyze(ds, nil)

	require.Len(t, res.Top5Items, 5)
	require.Len(t, res.SortedExpenses, len(records))

	// Descending, stable: B before D on the 900 tie.
	assert.Equal(t, "B", res.SortedExpenses[0].Category)
	assert.Equal(t, "D", res.SortedExpenses[1].Category)
	assert.Equal(t, "F", res.SortedExpenses[2].Category)

	// Top 5 is the prefix of the sorted view.
	assert.Equal(t, res.SortedExpenses[:5], res.Top5Items)

	for i := 1; i < len(res.SortedExpenses); i++ {
		assert.LessOrEqual(t, res.SortedExpenses[i].Amount, res.SortedExpenses[i-1].Amount)
	}
}

func TestAnalyze_Top5ShorterDataset(t *testing.T) {
	ds := expense.NewDataset([]string{"category", "amount"}, []expense.Record{
		cleanedRecord("A", 100),
		cleanedRecord("B", 200),
	})

	res := Analyze(ds, nil)

	assert.Len(t, res.Top5Items, 2)
}

func TestAnalyze_Above5000Partition(t *testing.T) {
	records := []expense.Record{
		cleanedRecord("Rent", 15000),
		cleanedRecord("Food", 5000),
		cleanedRecord("Gadget", 5001),
		cleanedRecord("Tea", 20),
	}
	ds := expense.NewDataset([]string{"category", "amount"}, records)

	res := Analyze(ds, nil)

	require.Len(t, res.Above5000, 2)
	// Original order preserved, strictly greater than 5000.
	assert.Equal(t, "Rent", res.Above5000[0].Category)
	assert.Equal(t, "Gadget", res.Above5000[1].Category)

	rest := 0
	for _, rec := range records {
		if rec.Amount <= 5000 {
			rest++
		}
	}
	assert.Equal(t, len(records), len(res.Above5000)+rest)
}

func TestAnalyze_EmptyDataset(t *testing.T) {
	ds := expense.NewDataset([]string{"category", "amount"}, nil)

	res := Analyze(ds, nil)

	assert.Zero(t, res.AverageExpense)
	assert.Zero(t, res.MaxExpense)
	assert.Zero(t, res.MinExpense)
	assert.Empty(t, res.CategoryTotals)
	assert.Empty(t, res.Top5Items)
	assert.Empty(t, res.SortedExpenses)
}

func TestAnalyze_DoesNotMutateDataset(t *testing.T) {
	records := []expense.Record{
		cleanedRecord("A", 100),
		cleanedRecord("B", 900),
	}
	ds := expense.NewDataset([]string{"category", "amount"}, records)

	_ = Analyze(ds, nil)

	assert.Equal(t, "A", ds.Records[0].Category)
	assert.Equal(t, "B", ds.Records[1].Category)
}
