package features

import (
	"fmt"
	"math"
	"strings"

	"github.com/farxc/favorita_features/internal/forecast/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const keySep = "\x1f"

// column returns a named column or a wrapped ErrMissingColumn.
func column(df dataframe.DataFrame, name string) (series.Series, error) {
	if !utils.HasColumns(df, name) {
		return series.Series{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	col := df.Col(name)
	return col, col.Error()
}

func floatColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	col, err := column(df, name)
	if err != nil {
		return nil, err
	}
	return col.Float(), nil
}

// stringColumn returns the cells as text with missing cells as "".
func stringColumn(df dataframe.DataFrame, name string) ([]string, error) {
	col, err := column(df, name)
	if err != nil {
		return nil, err
	}
	out := make([]string, col.Len())
	for i := range out {
		if e := col.Elem(i); !e.IsNA() {
			out[i] = e.String()
		}
	}
	return out, nil
}

// keyColumn builds one join key per row from the named columns. A row with
// any missing key cell gets "" and never matches.
func keyColumn(df dataframe.DataFrame, names []string, normalize bool) ([]string, error) {
	parts := make([][]string, len(names))
	for i, name := range names {
		vals, err := stringColumn(df, name)
		if err != nil {
			return nil, err
		}
		parts[i] = vals
	}

	keys := make([]string, df.Nrow())
	buf := make([]string, len(names))
	for r := range keys {
		missing := false
		for i := range names {
			v := parts[i][r]
			if v == "" {
				missing = true
				break
			}
			if normalize {
				v = utils.NormalizeKey(v)
			}
			buf[i] = v
		}
		if !missing {
			keys[r] = strings.Join(buf, keySep)
		}
	}
	return keys, nil
}

// gather builds a column of len(rows) whose i-th cell is src[rows[i]], or
// missing when rows[i] < 0. String cells go through their text form so a
// missing string stays missing.
func gather(src series.Series, rows []int, name string) series.Series {
	switch src.Type() {
	case series.String, series.Bool:
		vals := make([]string, len(rows))
		for i, r := range rows {
			if r < 0 || src.Elem(r).IsNA() {
				vals[i] = "NaN"
				continue
			}
			vals[i] = src.Elem(r).String()
		}
		return series.New(vals, src.Type(), name)
	default:
		vals := make([]float64, len(rows))
		for i, r := range rows {
			if r < 0 {
				vals[i] = math.NaN()
				continue
			}
			vals[i] = src.Elem(r).Float()
		}
		return series.New(vals, src.Type(), name)
	}
}

// joinFirst left-joins cols of right onto left by keys. Only the first right
// row of each key is used, so the left row count and order never change.
func joinFirst(left, right dataframe.DataFrame, keys, cols []string) (dataframe.DataFrame, error) {
	leftKeys, err := keyColumn(left, keys, false)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("left keys: %w", err)
	}
	rightKeys, err := keyColumn(right, keys, false)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("right keys: %w", err)
	}

	first := make(map[string]int, len(rightKeys))
	for i, k := range rightKeys {
		if k == "" {
			continue
		}
		if _, ok := first[k]; !ok {
			first[k] = i
		}
	}

	rows := make([]int, len(leftKeys))
	for i, k := range leftKeys {
		rows[i] = -1
		if j, ok := first[k]; ok && k != "" {
			rows[i] = j
		}
	}

	added := make([]series.Series, 0, len(cols))
	for _, c := range cols {
		src, err := column(right, c)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("right: %w", err)
		}
		added = append(added, gather(src, rows, c))
	}
	return withColumns(left, added...)
}

// withColumns returns df with each column replaced or appended.
func withColumns(df dataframe.DataFrame, cols ...series.Series) (dataframe.DataFrame, error) {
	if len(cols) == 0 {
		return df, nil
	}

	var fresh []series.Series
	for _, c := range cols {
		if utils.HasColumns(df, c.Name) {
			df = df.Mutate(c)
			if err := df.Error(); err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("mutate %s: %w", c.Name, err)
			}
			continue
		}
		fresh = append(fresh, c)
	}
	if len(fresh) == 0 {
		return df, nil
	}

	out := df.CBind(dataframe.New(fresh...))
	return out, out.Error()
}

func intSeries(vals []int, name string) series.Series {
	return series.New(vals, series.Int, name)
}

func floatSeries(vals []float64, name string) series.Series {
	return series.New(vals, series.Float, name)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
