package expense

// GroupEntry is one row of a grouped-aggregate view: the group key and the
// reduced value. Views are ordered slices because the ordering (descending
// by value, or ascending by month) is part of their contract.
type GroupEntry struct {
	Key   string
	Value float64
}

// AnalysisResults bundles every derived view computed from one cleaned
// dataset snapshot. It is created once per analysis run and never mutated.
type AnalysisResults struct {
	AverageExpense float64
	MaxExpense     int
	MinExpense     int

	CategoryTotals   []GroupEntry
	CategoryAverages []GroupEntry
	PaymentCounts    []GroupEntry
	MonthlyTotals    []GroupEntry

	Top5Items      []Record
	Above5000      []Record
	SortedExpenses []Record

	// RecordColumns is the column layout for record-shaped report sheets,
	// carried over from the dataset so sheets only show columns the source
	// actually had.
	RecordColumns []string
}
