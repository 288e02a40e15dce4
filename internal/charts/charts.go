// Package charts renders the four PNG artifacts of an analysis run: a
// category bar chart, a payment-mode pie chart, a monthly line chart, and
// an amount histogram with a smoothed density overlay.
//
// Each chart is independent: one failing to render logs a warning and its
// key is absent from the returned mapping, the others still render.
// Regenerating into the same directory overwrites prior files.
package charts

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	apperrors "expensecli/internal/errors"
	"expensecli/internal/expense"
)

// Logical keys of the chart-path mapping.
const (
	KeyCategoryBar = "category_bar"
	KeyPaymentPie  = "payment_pie"
	KeyMonthlyLine = "monthly_line"
	KeyHistogram   = "histogram"
)

// Fixed artifact filenames within the output directory.
const (
	fileCategoryBar = "category_expenses_bar.png"
	filePaymentPie  = "payment_mode_pie.png"
	fileMonthlyLine = "monthly_expenses_line.png"
	fileHistogram   = "expense_hist.png"
)

// Order is the deterministic iteration order of the chart-path mapping,
// used wherever the charts are laid out one after another.
var Order = []string{KeyCategoryBar, KeyPaymentPie, KeyMonthlyLine, KeyHistogram}

// pngChart is the common surface of the go-chart chart types; the library
// itself does not export one.
type pngChart interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

var (
	barFill  = drawing.Color{R: 76, G: 114, B: 176, A: 255}
	barEdge  = drawing.Color{R: 40, G: 60, B: 100, A: 255}
	kdeColor = drawing.Color{R: 221, G: 132, B: 82, A: 255}
)

// Generate renders all chart artifacts for the dataset into dir, creating
// it if absent, and returns the logical-key to file-path mapping. The
// monthly line chart is only produced when the dataset has a date column;
// its key is absent otherwise, which is a valid outcome and not an error.
func Generate(ds *expense.Dataset, res *expense.AnalysisResults, dir string, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.NewIOError("failed to create charts directory", err).
			WithContext("dir", dir)
	}

	paths := make(map[string]string)

	render := func(key, filename string, build func() (pngChart, error)) {
		path := filepath.Join(dir, filename)
		if err := renderToFile(path, build); err != nil {
			logger.Warn("chart skipped",
				slog.String("chart", key),
				slog.String("error", err.Error()))
			return
		}
		paths[key] = path
		logger.Info("chart written",
			slog.String("chart", key),
			slog.String("path", path))
	}

	render(KeyCategoryBar, fileCategoryBar, func() (pngChart, error) {
		return categoryBarChart(res.CategoryTotals)
	})
	render(KeyPaymentPie, filePaymentPie, func() (pngChart, error) {
		return paymentPieChart(res.PaymentCounts)
	})
	if ds.HasColumn(expense.ColDate) {
		render(KeyMonthlyLine, fileMonthlyLine, func() (pngChart, error) {
			return monthlyLineChart(res.MonthlyTotals)
		})
	}
	render(KeyHistogram, fileHistogram, func() (pngChart, error) {
		return amountHistogram(ds.Records)
	})

	return paths, nil
}

func renderToFile(path string, build func() (pngChart, error)) error {
	renderable, err := build()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewIOError("failed to create chart file", err).
			WithContext("path", path)
	}
	defer f.Close()

	if err := renderable.Render(chart.PNG, f); err != nil {
		return apperrors.NewRenderError("chart render failed", err).
			WithContext("path", path)
	}
	return nil
}

// categoryBarChart draws one bar per category, already ordered descending
// by total.
func categoryBarChart(totals []expense.GroupEntry) (pngChart, error) {
	if len(totals) == 0 {
		return nil, apperrors.NewRenderError("no categories to chart", nil)
	}

	bars := make([]chart.Value, 0, len(totals))
	for _, entry := range totals {
		bars = append(bars, chart.Value{
			Label: entry.Key,
			Value: entry.Value,
			Style: chart.Style{
				FillColor:   barFill,
				StrokeColor: barEdge,
				StrokeWidth: 1,
			},
		})
	}

	return &chart.BarChart{
		Title:    "Expenses by Category",
		Width:    800,
		Height:   500,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}, nil
}

// paymentPieChart draws one slice per payment mode, labeled with its
// percentage share to one decimal place.
func paymentPieChart(counts []expense.GroupEntry) (pngChart, error) {
	if len(counts) == 0 {
		return nil, apperrors.NewRenderError("no payment modes to chart", nil)
	}

	var total float64
	for _, entry := range counts {
		total += entry.Value
	}
	if total == 0 {
		return nil, apperrors.NewRenderError("payment mode counts are all zero", nil)
	}

	values := make([]chart.Value, 0, len(counts))
	for _, entry := range counts {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", entry.Key, entry.Value/total*100),
			Value: entry.Value,
		})
	}

	return &chart.PieChart{
		Title:  "Payment Mode Distribution",
		Width:  600,
		Height: 600,
		Values: values,
	}, nil
}

// monthlyLineChart draws one point per calendar year-month, ascending.
func monthlyLineChart(monthly []expense.GroupEntry) (pngChart, error) {
	if len(monthly) == 0 {
		return nil, apperrors.NewRenderError("no monthly totals to chart", nil)
	}

	times := make([]time.Time, 0, len(monthly))
	values := make([]float64, 0, len(monthly))
	for _, entry := range monthly {
		t, err := time.Parse("2006-01", entry.Key)
		if err != nil {
			return nil, apperrors.NewRenderError("bad month key", err).
				WithContext("key", entry.Key)
		}
		times = append(times, t)
		values = append(values, entry.Value)
	}

	// go-chart needs at least two points per series.
	if len(times) == 1 {
		times = append(times, times[0].AddDate(0, 1, 0))
		values = append(values, values[0])
	}

	return &chart.Chart{
		Title:  "Monthly Expenses Over Time",
		Width:  1000,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Total Amount",
				XValues: times,
				YValues: values,
				Style: chart.Style{
					StrokeColor: barFill,
					StrokeWidth: 2,
					DotColor:    barFill,
					DotWidth:    4,
				},
			},
		},
	}, nil
}
