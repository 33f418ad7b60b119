package features

import (
	"math"
	"testing"

	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatTrainTest(t *testing.T) {
	train := frame(t, map[string]series.Type{"store_nbr": series.Int, "sales": series.Float},
		[]string{"date", "store_nbr", "family", "sales"},
		[]string{"2017-01-01", "1", "BEVERAGES", "3.5"},
		[]string{"2017-01-02", "1", "BEVERAGES", "0"},
	)
	test := frame(t, map[string]series.Type{"store_nbr": series.Int},
		[]string{"date", "store_nbr", "family", "note"},
		[]string{"2017-01-03", "1", "BEVERAGES", "NaN"},
	)

	out, err := ConcatTrainTest(train, test)
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "store_nbr", "family", "sales", "is_train", "note"}, out.Names())
	assert.Equal(t, 3, out.Nrow())
	assert.Equal(t, []float64{1, 1, 0}, out.Col(types.ColIsTrain).Float())
	assert.Equal(t, series.Int, out.Col(types.ColStoreNbr).Type())

	sales := out.Col(types.ColSales).Float()
	assert.Equal(t, []float64{3.5, 0}, sales[:2])
	assert.True(t, math.IsNaN(sales[2]))

	note := out.Col("note")
	for i := 0; i < note.Len(); i++ {
		assert.True(t, note.Elem(i).IsNA(), "row %d", i)
	}
}

func TestConcatTrainTestEmptyTrain(t *testing.T) {
	test := frame(t, nil,
		[]string{"date"},
		[]string{"2017-01-01"},
	)

	_, err := ConcatTrainTest(dataframe.DataFrame{}, test)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestConcatTrainTestEmptyTest(t *testing.T) {
	train := frame(t, map[string]series.Type{"store_nbr": series.Int, "sales": series.Float},
		[]string{"date", "store_nbr", "family", "sales"},
		[]string{"2017-01-01", "1", "BEVERAGES", "3.5"},
	)
	test := dataframe.New(
		series.New([]string{}, series.String, "date"),
		series.New([]string{}, series.Int, "store_nbr"),
		series.New([]string{}, series.String, "family"),
		series.New([]string{}, series.Float, "onpromotion"),
	)
	require.NoError(t, test.Error())

	out, err := ConcatTrainTest(train, test)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Nrow())
	assert.Equal(t, []string{"date", "store_nbr", "family", "sales", "is_train", "onpromotion"}, out.Names())
	assert.Equal(t, []float64{1}, out.Col(types.ColIsTrain).Float())
	assert.True(t, out.Col(types.ColOnPromotion).Elem(0).IsNA())
}
