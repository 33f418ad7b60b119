package features

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/farxc/favorita_features/internal/forecast/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// JoinOilPrices aligns the oil series to the record date span and joins the
// price onto every record by date.
func JoinOilPrices(df, oil dataframe.DataFrame) (dataframe.DataFrame, error) {
	start, end, err := dateSpan(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	daily, err := AlignOilPrices(oil, start, end)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return joinFirst(df, daily, []string{types.ColDate}, []string{types.ColOilPrice})
}

// AlignOilPrices returns one price per calendar day in [start, end]. Gaps
// are carried forward then backward in date order, both before and after
// the reindex. Prices only stay missing when the raw series has none.
func AlignOilPrices(oil dataframe.DataFrame, start, end string) (dataframe.DataFrame, error) {
	from, err := utils.ParseDate(start)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: start: %v", ErrInvalidDateSpan, err)
	}
	to, err := utils.ParseDate(end)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: end: %v", ErrInvalidDateSpan, err)
	}
	if to.Before(from) {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s after %s", ErrInvalidDateSpan, start, end)
	}

	dates, err := stringColumn(oil, types.ColDate)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	prices, err := floatColumn(oil, types.ColOilPrice)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	order := make([]int, len(dates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return dates[order[a]] < dates[order[b]] })

	raw := make([]float64, len(order))
	for i, r := range order {
		raw[i] = prices[r]
	}
	raw = carryBackward(carryForward(raw))

	byDate := make(map[string]float64, len(order))
	for i, r := range order {
		if _, ok := byDate[dates[r]]; !ok {
			byDate[dates[r]] = raw[i]
		}
	}

	days := int(to.Sub(from).Hours()/24) + 1
	outDates := make([]string, 0, days)
	outPrices := make([]float64, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		p, ok := byDate[key]
		if !ok {
			p = math.NaN()
		}
		outDates = append(outDates, key)
		outPrices = append(outPrices, p)
	}
	outPrices = carryBackward(carryForward(outPrices))

	out := dataframe.New(
		series.New(outDates, series.String, types.ColDate),
		floatSeries(outPrices, types.ColOilPrice),
	)
	return out, out.Error()
}

// dateSpan returns the smallest and largest record date.
func dateSpan(df dataframe.DataFrame) (string, string, error) {
	dates, err := stringColumn(df, types.ColDate)
	if err != nil {
		return "", "", err
	}
	var lo, hi string
	for _, d := range dates {
		if d == "" {
			continue
		}
		if lo == "" || d < lo {
			lo = d
		}
		if hi == "" || d > hi {
			hi = d
		}
	}
	if lo == "" {
		return "", "", fmt.Errorf("%w: no record dates", ErrInvalidDateSpan)
	}
	return lo, hi, nil
}

// carryForward replaces each NaN with the last observed value before it.
func carryForward(vals []float64) []float64 {
	out := make([]float64, len(vals))
	last := math.NaN()
	for i, v := range vals {
		if !math.IsNaN(v) {
			last = v
		}
		out[i] = last
	}
	return out
}

// carryBackward replaces each NaN with the next observed value after it.
func carryBackward(vals []float64) []float64 {
	out := make([]float64, len(vals))
	next := math.NaN()
	for i := len(vals) - 1; i >= 0; i-- {
		if !math.IsNaN(vals[i]) {
			next = vals[i]
		}
		out[i] = next
	}
	return out
}
