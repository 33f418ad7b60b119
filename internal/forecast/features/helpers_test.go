package features

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/farxc/favorita_features/internal/forecast/files"
	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
)

// frame builds a DataFrame from a header row and data rows. Columns not in
// typs are text; "NaN" marks a missing cell.
func frame(t *testing.T, typs map[string]series.Type, records ...[]string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(typs),
	)
	require.NoError(t, df.Error())
	return df
}

func decode(t *testing.T, table types.TableType, csv string) dataframe.DataFrame {
	t.Helper()
	df, err := files.DecodeTable(strings.NewReader(csv), table)
	require.NoError(t, err)
	return df
}

var (
	testStart    = time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	trainDays    = 40
	testDays     = 5
	testFamilies = []string{"BEVERAGES", "GROCERY I"}
	testStores   = []int{1, 2}
)

func day(offset int) string {
	return testStart.AddDate(0, 0, offset).Format(time.DateOnly)
}

// syntheticRaw returns a small but complete set of input tables: two stores,
// two families, forty train days and five test days. Oil skips weekends and
// the first day, store 2 reports no transactions on every ninth day, and
// some holidays are transferred.
func syntheticRaw(t *testing.T) types.RawTables {
	t.Helper()

	var train, test, tx, oil strings.Builder
	train.WriteString("id,date,store_nbr,family,sales,onpromotion\n")
	test.WriteString("id,date,store_nbr,family,onpromotion\n")
	tx.WriteString("date,store_nbr,transactions\n")
	oil.WriteString("date,dcoilwtico\n")

	id := 0
	for d := 0; d < trainDays+testDays; d++ {
		for _, s := range testStores {
			for f, fam := range testFamilies {
				sales := float64(s*100 + f*10 + d)
				if d%7 == 3 && f == 1 {
					sales = 0
				}
				if d < trainDays {
					fmt.Fprintf(&train, "%d,%s,%d,%s,%.1f,%d\n", id, day(d), s, fam, sales, d%2)
				} else {
					fmt.Fprintf(&test, "%d,%s,%d,%s,%d\n", id, day(d), s, fam, d%2)
				}
				id++
			}
			if d < trainDays && !(s == 2 && d%9 == 0) {
				fmt.Fprintf(&tx, "%s,%d,%d\n", day(d), s, 1000+s*10+d)
			}
		}
		wd := testStart.AddDate(0, 0, d).Weekday()
		if d > 0 && wd != time.Saturday && wd != time.Sunday {
			fmt.Fprintf(&oil, "%s,%.2f\n", day(d), 50+float64(d)/10)
		}
	}

	stores := "store_nbr,city,state,type,cluster\n" +
		"1,Quito,Pichincha,D,13\n" +
		"2,Guayaquil,Guayas,A,1\n"
	holidays := "date,type,locale,locale_name,description,transferred\n" +
		day(0) + ",Holiday,National,Ecuador,Primer dia del Ano,False\n" +
		day(0) + ",Holiday,Regional,Pichincha,Provincializacion,True\n" +
		day(9) + ",Holiday,Local,Guayaquil,Fundacion,True\n" +
		day(11) + ",Holiday,Local,Quito,Fundacion,False\n"

	return types.RawTables{
		Train:          decode(t, types.Train, train.String()),
		Test:           decode(t, types.Test, test.String()),
		Stores:         decode(t, types.Stores, stores),
		Oil:            decode(t, types.Oil, oil.String()),
		Transactions:   decode(t, types.Transactions, tx.String()),
		HolidaysEvents: decode(t, types.HolidaysEvents, holidays),
	}
}
