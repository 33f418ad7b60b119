package features

import (
	"fmt"
	"math"
	"sort"

	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// Shift is the forecast horizon in days. No lag or rolling feature reads a
// value fewer than Shift positions back in its series.
const Shift = 16

// seriesKey identifies one (store_nbr, family) series.
type seriesKey struct {
	store  []float64
	family []string
	date   []string
}

func loadSeriesKey(df dataframe.DataFrame) (seriesKey, error) {
	store, err := floatColumn(df, types.ColStoreNbr)
	if err != nil {
		return seriesKey{}, err
	}
	family, err := stringColumn(df, types.ColFamily)
	if err != nil {
		return seriesKey{}, err
	}
	date, err := stringColumn(df, types.ColDate)
	if err != nil {
		return seriesKey{}, err
	}
	return seriesKey{store: store, family: family, date: date}, nil
}

// compareFloat orders numbers ascending with NaN last.
func compareFloat(a, b float64) int {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	case math.IsNaN(b):
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compare orders rows i and j by store_nbr, family, then date.
func (k seriesKey) compare(i, j int) int {
	if c := compareFloat(k.store[i], k.store[j]); c != 0 {
		return c
	}
	if c := compareString(k.family[i], k.family[j]); c != 0 {
		return c
	}
	return compareString(k.date[i], k.date[j])
}

// sameSeries reports whether rows i and j belong to one series.
func (k seriesKey) sameSeries(i, j int) bool {
	return compareFloat(k.store[i], k.store[j]) == 0 && k.family[i] == k.family[j]
}

// SortSeries orders records by store_nbr, family and date. The sort is
// stable, so rows with equal keys keep their relative order.
func SortSeries(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	key, err := loadSeriesKey(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	order := make([]int, df.Nrow())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return key.compare(order[a], order[b]) < 0 })

	out := df.Subset(order)
	return out, out.Error()
}

// seriesBounds splits sorted rows into [start, end) runs, one per series.
// It fails with ErrUnsortedSeries when the rows are out of order.
func seriesBounds(key seriesKey) ([][2]int, error) {
	n := len(key.date)
	var bounds [][2]int
	start := 0
	for i := 1; i <= n; i++ {
		if i < n {
			if key.compare(i-1, i) > 0 {
				return nil, fmt.Errorf("%w: row %d", ErrUnsortedSeries, i)
			}
			if key.sameSeries(i-1, i) {
				continue
			}
		}
		bounds = append(bounds, [2]int{start, i})
		start = i
	}
	return bounds, nil
}

// shift moves every series n positions forward. The first n cells of each
// series become NaN; values never cross into the next series.
func shift(vals []float64, bounds [][2]int, n int) []float64 {
	out := make([]float64, len(vals))
	for _, b := range bounds {
		for i := b[0]; i < b[1]; i++ {
			if j := i - n; j >= b[0] {
				out[i] = vals[j]
			} else {
				out[i] = math.NaN()
			}
		}
	}
	return out
}

// rolling applies fn to the trailing window of w cells ending at each row,
// confined to its series. NaN cells are skipped; a window with fewer than
// minPeriods observed cells yields NaN.
func rolling(vals []float64, bounds [][2]int, w, minPeriods int, fn func([]float64) float64) []float64 {
	out := make([]float64, len(vals))
	window := make([]float64, 0, w)
	for _, b := range bounds {
		for i := b[0]; i < b[1]; i++ {
			lo := i - w + 1
			if lo < b[0] {
				lo = b[0]
			}
			window = window[:0]
			for _, v := range vals[lo : i+1] {
				if !math.IsNaN(v) {
					window = append(window, v)
				}
			}
			if len(window) < minPeriods || len(window) == 0 {
				out[i] = math.NaN()
				continue
			}
			out[i] = fn(window)
		}
	}
	return out
}

func mean(vals []float64) float64 { return stat.Mean(vals, nil) }

// stdDev is the sample standard deviation.
func stdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return math.NaN()
	}
	return stat.StdDev(vals, nil)
}

// AddLagFeatures adds the transaction and sales lags and rolling statistics.
// Rows must already be sorted by SortSeries.
func AddLagFeatures(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	key, err := loadSeriesKey(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	bounds, err := seriesBounds(key)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	transactions, err := floatColumn(df, types.ColTransactions)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	sales, err := floatColumn(df, types.ColSales)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	shiftedTx := shift(transactions, bounds, Shift)
	baseSales := shift(sales, bounds, Shift)

	return withColumns(df,
		floatSeries(shiftedTx, types.ColTransactionsLag16),
		floatSeries(shift(transactions, bounds, 28), types.ColTransactionsLag28),
		floatSeries(rolling(shiftedTx, bounds, 7, 7, mean), types.ColTransactionsRollMean7),
		floatSeries(rolling(shiftedTx, bounds, 28, 28, mean), types.ColTransactionsRollMean28),
		floatSeries(rolling(shiftedTx, bounds, 7, 7, stdDev), types.ColTransactionsRollStd7),

		floatSeries(baseSales, types.ColSalesLag16),
		floatSeries(shift(baseSales, bounds, 7), types.ColSalesLag23),
		floatSeries(shift(baseSales, bounds, 14), types.ColSalesLag30),
		floatSeries(shift(baseSales, bounds, 28), types.ColSalesLag44),
		floatSeries(shift(baseSales, bounds, 364), types.ColSalesLag380),
		floatSeries(rolling(baseSales, bounds, 7, 1, mean), types.ColSalesRoll7),
		floatSeries(rolling(baseSales, bounds, 14, 1, mean), types.ColSalesRoll14),
		floatSeries(rolling(baseSales, bounds, 28, 1, mean), types.ColSalesRoll28),
	)
}
