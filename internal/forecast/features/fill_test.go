package features

import (
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillMissing(t *testing.T) {
	df := frame(t, map[string]series.Type{
		"price":   series.Float,
		"cluster": series.Int,
		"flag":    series.Bool,
	},
		[]string{"price", "cluster", "city", "flag"},
		[]string{"NaN", "NaN", "NaN", "NaN"},
		[]string{"1.5", "4", "Quito", "true"},
	)

	out, err := FillMissing(df)
	require.NoError(t, err)

	assert.Equal(t, df.Names(), out.Names())
	assert.Equal(t, []float64{0, 1.5}, out.Col("price").Float())
	assert.Equal(t, series.Int, out.Col("cluster").Type())
	assert.Equal(t, []string{"0", "4"}, out.Col("cluster").Records())
	assert.Equal(t, []string{"0", "Quito"}, out.Col("city").Records())
	assert.Equal(t, []string{"false", "true"}, out.Col("flag").Records())

	for _, name := range out.Names() {
		col := out.Col(name)
		for i := 0; i < col.Len(); i++ {
			assert.False(t, col.Elem(i).IsNA(), "%s row %d", name, i)
		}
	}
}
