package charts

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	apperrors "expensecli/internal/errors"
	"expensecli/internal/expense"
)

const histogramBuckets = 15

// amountHistogram draws the amount distribution as 15 fixed-width buckets
// spanning the observed range, with a Gaussian-kernel density estimate
// overlaid on the same count scale.
func amountHistogram(records []expense.Record) (pngChart, error) {
	if len(records) == 0 {
		return nil, apperrors.NewRenderError("no amounts to chart", nil)
	}

	amounts := make([]float64, 0, len(records))
	lo, hi := float64(records[0].Amount), float64(records[0].Amount)
	for _, rec := range records {
		v := float64(rec.Amount)
		amounts = append(amounts, v)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	width := (hi - lo) / histogramBuckets
	if width <= 0 {
		width = 1
	}

	counts := make([]float64, histogramBuckets)
	for _, v := range amounts {
		bucket := int((v - lo) / width)
		if bucket >= histogramBuckets {
			bucket = histogramBuckets - 1
		}
		counts[bucket]++
	}

	// The buckets render as a step polyline with a fill, one horizontal
	// segment per bucket.
	stepX := make([]float64, 0, 2*histogramBuckets)
	stepY := make([]float64, 0, 2*histogramBuckets)
	for i, c := range counts {
		left := lo + float64(i)*width
		stepX = append(stepX, left, left+width)
		stepY = append(stepY, c, c)
	}

	kdeX, kdeY := densityCurve(amounts, lo, hi, width)

	return &chart.Chart{
		Title:  "Expense Distribution",
		Width:  800,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20},
		},
		XAxis: chart.XAxis{Name: "Amount"},
		YAxis: chart.YAxis{Name: "Frequency"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Frequency",
				XValues: stepX,
				YValues: stepY,
				Style: chart.Style{
					StrokeColor: barEdge,
					StrokeWidth: 1,
					FillColor:   barFill.WithAlpha(120),
				},
			},
			chart.ContinuousSeries{
				Name:    "Density",
				XValues: kdeX,
				YValues: kdeY,
				Style: chart.Style{
					StrokeColor: kdeColor,
					StrokeWidth: 2,
				},
			},
		},
	}, nil
}

// densityCurve evaluates a Gaussian kernel density estimate over the
// observed range, scaled to the histogram's count axis (density times
// sample count times bucket width).
func densityCurve(amounts []float64, lo, hi, bucketWidth float64) ([]float64, []float64) {
	n := float64(len(amounts))

	var mean, variance float64
	for _, v := range amounts {
		mean += v
	}
	mean /= n
	for _, v := range amounts {
		variance += (v - mean) * (v - mean)
	}
	variance /= n

	// Silverman's rule of thumb for the bandwidth.
	h := 1.06 * math.Sqrt(variance) * math.Pow(n, -0.2)
	if h <= 0 {
		h = bucketWidth
	}

	const points = 100
	xs := make([]float64, 0, points)
	ys := make([]float64, 0, points)
	step := (hi - lo) / (points - 1)
	if step <= 0 {
		step = bucketWidth / (points - 1)
	}
	norm := 1 / (h * math.Sqrt(2*math.Pi))
	for i := 0; i < points; i++ {
		x := lo + float64(i)*step
		var density float64
		for _, v := range amounts {
			z := (x - v) / h
			density += norm * math.Exp(-0.5*z*z)
		}
		density /= n
		xs = append(xs, x)
		ys = append(ys, density*n*bucketWidth)
	}
	return xs, ys
}
