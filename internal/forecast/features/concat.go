package features

import (
	"fmt"
	"math"

	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/farxc/favorita_features/internal/forecast/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ConcatTrainTest stacks train rows over test rows and tags them with
// is_train. Test rows get a missing sales value. Columns follow train's
// order, then is_train, then columns only test has. An empty test table
// adds no rows.
func ConcatTrainTest(train, test dataframe.DataFrame) (dataframe.DataFrame, error) {
	if train.Nrow() == 0 {
		return dataframe.DataFrame{}, ErrEmptyInput
	}

	trainFlags := make([]int, train.Nrow())
	for i := range trainFlags {
		trainFlags[i] = 1
	}
	missingSales := make([]float64, test.Nrow())
	for i := range missingSales {
		missingSales[i] = math.NaN()
	}

	train, err := withColumns(train, intSeries(trainFlags, types.ColIsTrain))
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("train: %w", err)
	}
	if test.Nrow() > 0 {
		test, err = withColumns(test,
			intSeries(make([]int, test.Nrow()), types.ColIsTrain),
			floatSeries(missingSales, types.ColSales),
		)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("test: %w", err)
		}
	}

	names := append([]string{}, train.Names()...)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range test.Names() {
		if !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}

	cols := make([]series.Series, 0, len(names))
	for _, n := range names {
		col, err := stackColumn(train, test, n)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		cols = append(cols, col)
	}

	out := dataframe.New(cols...)
	return out, out.Error()
}

// stackColumn concatenates one column of a over b. A side without the
// column contributes missing cells. The type comes from a when it has the
// column, except that a String on either side wins.
func stackColumn(a, b dataframe.DataFrame, name string) (series.Series, error) {
	var parts []series.Series
	typ := series.Type("")
	for _, df := range []dataframe.DataFrame{a, b} {
		if !utils.HasColumns(df, name) {
			parts = append(parts, series.Series{})
			continue
		}
		col := df.Col(name)
		if err := col.Error(); err != nil {
			return series.Series{}, fmt.Errorf("column %s: %w", name, err)
		}
		if typ == "" || col.Type() == series.String {
			typ = col.Type()
		}
		parts = append(parts, col)
	}

	rows := []int{a.Nrow(), b.Nrow()}
	if typ == series.String || typ == series.Bool {
		vals := make([]string, 0, rows[0]+rows[1])
		for i, p := range parts {
			for r := 0; r < rows[i]; r++ {
				if p.Len() == 0 || p.Elem(r).IsNA() {
					vals = append(vals, "NaN")
					continue
				}
				vals = append(vals, p.Elem(r).String())
			}
		}
		return series.New(vals, typ, name), nil
	}

	vals := make([]float64, 0, rows[0]+rows[1])
	for i, p := range parts {
		if p.Len() == 0 {
			for r := 0; r < rows[i]; r++ {
				vals = append(vals, math.NaN())
			}
			continue
		}
		vals = append(vals, p.Float()...)
	}
	return series.New(vals, typ, name), nil
}
