package features

import (
	"math"

	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// JoinTransactions attaches the transaction count by date and store, then
// imputes gaps: a record with zero sales gets 0, any other gap gets its
// store's mean count taken after the zero fill.
func JoinTransactions(df, transactions dataframe.DataFrame) (dataframe.DataFrame, error) {
	joined, err := joinFirst(df, transactions,
		[]string{types.ColDate, types.ColStoreNbr},
		[]string{types.ColTransactions})
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	counts, err := floatColumn(joined, types.ColTransactions)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	sales, err := floatColumn(joined, types.ColSales)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	stores, err := stringColumn(joined, types.ColStoreNbr)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	for i, c := range counts {
		if math.IsNaN(c) && sales[i] == 0 {
			counts[i] = 0
		}
	}

	observed := make(map[string][]float64)
	for i, c := range counts {
		if !math.IsNaN(c) && stores[i] != "" {
			observed[stores[i]] = append(observed[stores[i]], c)
		}
	}
	means := make(map[string]float64, len(observed))
	for store, vals := range observed {
		means[store] = stat.Mean(vals, nil)
	}

	for i, c := range counts {
		if !math.IsNaN(c) {
			continue
		}
		if m, ok := means[stores[i]]; ok {
			counts[i] = m
		}
	}

	return withColumns(joined, floatSeries(counts, types.ColTransactions))
}
