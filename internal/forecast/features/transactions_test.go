package features

import (
	"math"
	"testing"

	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinTransactions(t *testing.T) {
	records := frame(t, map[string]series.Type{"store_nbr": series.Int, "sales": series.Float},
		[]string{"date", "store_nbr", "sales"},
		[]string{"2017-01-01", "1", "0"},
		[]string{"2017-01-02", "1", "5"},
		[]string{"2017-01-03", "1", "7"},
		[]string{"2017-01-04", "1", "NaN"},
		[]string{"2017-01-01", "2", "4"},
		[]string{"2017-01-02", "2", "0"},
		[]string{"2017-01-01", "3", "4"},
	)
	transactions := frame(t, map[string]series.Type{"store_nbr": series.Int, "transactions": series.Float},
		[]string{"date", "store_nbr", "transactions"},
		[]string{"2017-01-03", "1", "30"},
		[]string{"2017-01-03", "1", "99"},
	)

	out, err := JoinTransactions(records, transactions)
	require.NoError(t, err)
	require.Equal(t, 7, out.Nrow())

	got := out.Col(types.ColTransactions).Float()
	// Store 1 mean after the zero fill is (0 + 30) / 2.
	assert.Equal(t, []float64{0, 15, 30, 15}, got[:4])
	// Store 2 only has its zero-filled count, so its mean is 0.
	assert.Equal(t, []float64{0, 0}, got[4:6])
	// Store 3 has nothing to average.
	assert.True(t, math.IsNaN(got[6]))
}

func TestJoinTransactionsZeroSalesAlwaysZero(t *testing.T) {
	records := frame(t, map[string]series.Type{"store_nbr": series.Int, "sales": series.Float},
		[]string{"date", "store_nbr", "sales"},
		[]string{"2017-01-01", "3", "0"},
		[]string{"2017-01-02", "3", "0"},
		[]string{"2017-01-03", "3", "12"},
	)
	transactions := frame(t, map[string]series.Type{"store_nbr": series.Int, "transactions": series.Float},
		[]string{"date", "store_nbr", "transactions"},
		[]string{"2017-01-03", "3", "500"},
	)

	out, err := JoinTransactions(records, transactions)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 500}, out.Col(types.ColTransactions).Float())
}
