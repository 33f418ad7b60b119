package features

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FillMissing replaces every missing cell with zero. Text columns get "0"
// and boolean columns get false.
func FillMissing(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	cols := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		col, err := column(df, name)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		filled, err := fillSeries(col)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("column %s: %w", name, err)
		}
		cols = append(cols, filled)
	}
	out := dataframe.New(cols...)
	return out, out.Error()
}

func fillSeries(col series.Series) (series.Series, error) {
	switch col.Type() {
	case series.Float:
		vals := col.Float()
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = 0
			}
		}
		return series.New(vals, series.Float, col.Name), nil
	case series.Int:
		raw := col.Float()
		vals := make([]int, len(raw))
		for i, v := range raw {
			if !math.IsNaN(v) {
				vals[i] = int(v)
			}
		}
		return series.New(vals, series.Int, col.Name), nil
	case series.String:
		vals := make([]string, col.Len())
		for i := range vals {
			if e := col.Elem(i); e.IsNA() {
				vals[i] = "0"
			} else {
				vals[i] = e.String()
			}
		}
		return series.New(vals, series.String, col.Name), nil
	case series.Bool:
		vals := make([]bool, col.Len())
		for i := range vals {
			if e := col.Elem(i); !e.IsNA() {
				b, err := e.Bool()
				if err != nil {
					return series.Series{}, err
				}
				vals[i] = b
			}
		}
		return series.New(vals, series.Bool, col.Name), nil
	default:
		return series.Series{}, fmt.Errorf("unsupported column type %s", col.Type())
	}
}
