package analyzer

import (
	"sort"

	"expensecli/internal/expense"
)

// reduceOp folds the accumulated sum and count of a group into its final
// value.
type reduceOp func(sum float64, count int) float64

func reduceSum(sum float64, _ int) float64 { return sum }

func reduceCount(_ float64, count int) float64 { return float64(count) }

func reduceMean(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// ordering arranges the finished group entries.
type ordering int

const (
	// orderByValueDesc sorts descending by reduced value; ties keep the
	// first-seen key order (stable sort over encounter order).
	orderByValueDesc ordering = iota
	// orderByKeyAsc sorts ascending by key, used for chronological views.
	orderByKeyAsc
)

// groupReduce is the single grouping engine behind every grouped view:
// group records by key, fold amounts with op, then order the entries.
// Records whose key function reports ok=false (e.g. no parsed date) are
// left out of the grouping.
func groupReduce(records []expense.Record, keyFn func(expense.Record) (string, bool), op reduceOp, order ordering) []expense.GroupEntry {
	type accum struct {
		sum   float64
		count int
	}

	index := make(map[string]int)
	keys := make([]string, 0)
	accums := make([]accum, 0)

	for _, rec := range records {
		key, ok := keyFn(rec)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(keys)
			index[key] = i
			keys = append(keys, key)
			accums = append(accums, accum{})
		}
		accums[i].sum += float64(rec.Amount)
		accums[i].count++
	}

	entries := make([]expense.GroupEntry, 0, len(keys))
	for i, key := range keys {
		entries = append(entries, expense.GroupEntry{
			Key:   key,
			Value: op(accums[i].sum, accums[i].count),
		})
	}

	switch order {
	case orderByKeyAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Key < entries[j].Key
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Value > entries[j].Value
		})
	}

	return entries
}
