package types

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

type TableType int

const (
	Train TableType = iota
	Test
	Stores
	Oil
	Transactions
	HolidaysEvents
)

const (
	TrainFile          = "train.csv"
	TestFile           = "test.csv"
	StoresFile         = "stores.csv"
	OilFile            = "oil.csv"
	TransactionsFile   = "transactions.csv"
	HolidaysEventsFile = "holidays_events.csv"

	OutputDir  = "data"
	OutputFile = "processed_data.csv"
)

var TableFiles = map[TableType]string{
	Train:          TrainFile,
	Test:           TestFile,
	Stores:         StoresFile,
	Oil:            OilFile,
	Transactions:   TransactionsFile,
	HolidaysEvents: HolidaysEventsFile,
}

var TableNames = map[TableType]string{
	Train:          "Train",
	Test:           "Test",
	Stores:         "Stores",
	Oil:            "Oil",
	Transactions:   "Transactions",
	HolidaysEvents: "Holidays Events",
}

func (t TableType) String() string {
	if name, ok := TableNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Raw table columns
const (
	ColID          = "id"
	ColDate        = "date"
	ColStoreNbr    = "store_nbr"
	ColFamily      = "family"
	ColSales       = "sales"
	ColOnPromotion = "onpromotion"

	ColCity    = "city"
	ColState   = "state"
	ColType    = "type"
	ColCluster = "cluster"

	ColOilPrice     = "dcoilwtico"
	ColTransactions = "transactions"

	ColLocale      = "locale"
	ColLocaleName  = "locale_name"
	ColDescription = "description"
	ColTransferred = "transferred"
)

// Derived columns
const (
	ColIsTrain   = "is_train"
	ColIsHoliday = "is_holiday"

	ColDay        = "day"
	ColMonth      = "month"
	ColYear       = "year"
	ColDayOfWeek  = "dayofweek"
	ColWeekOfYear = "weekofyear"
	ColIsWeekend  = "is_weekend"
	ColIsPayday   = "is_payday"

	ColTransactionsLag16      = "transactions_lag_16"
	ColTransactionsLag28      = "transactions_lag_28"
	ColTransactionsRollMean7  = "transactions_roll_mean_7"
	ColTransactionsRollMean28 = "transactions_roll_mean_28"
	ColTransactionsRollStd7   = "transactions_roll_std_7"

	ColSalesLag16  = "sales_lag_16"
	ColSalesLag23  = "sales_lag_23"
	ColSalesLag30  = "sales_lag_30"
	ColSalesLag44  = "sales_lag_44"
	ColSalesLag380 = "sales_lag_380"
	ColSalesRoll7  = "sales_roll_7"
	ColSalesRoll14 = "sales_roll_14"
	ColSalesRoll28 = "sales_roll_28"
)

// Columns that must be present for each table, with the type they are read as.
// Columns not listed here or in OptionalColumnTypes are read as text.
var TableSchemas = map[TableType]map[string]series.Type{
	Train: {
		ColDate:     series.String,
		ColStoreNbr: series.Int,
		ColFamily:   series.String,
		ColSales:    series.Float,
	},
	Test: {
		ColDate:     series.String,
		ColStoreNbr: series.Int,
		ColFamily:   series.String,
	},
	Stores: {
		ColStoreNbr: series.Int,
		ColCity:     series.String,
		ColState:    series.String,
		ColType:     series.String,
		ColCluster:  series.Int,
	},
	Oil: {
		ColDate:     series.String,
		ColOilPrice: series.Float,
	},
	Transactions: {
		ColDate:         series.String,
		ColStoreNbr:     series.Int,
		ColTransactions: series.Float,
	},
	HolidaysEvents: {
		ColDate:        series.String,
		ColType:        series.String,
		ColLocale:      series.String,
		ColLocaleName:  series.String,
		ColDescription: series.String,
		ColTransferred: series.String,
	},
}

// Optional columns read with a fixed type when present.
var OptionalColumnTypes = map[string]series.Type{
	ColID:          series.Int,
	ColOnPromotion: series.Float,
}

// Tables that may be read with a header and no rows. Train must hold at
// least one record.
var EmptyAllowed = map[TableType]bool{
	Test:           true,
	Stores:         true,
	Oil:            true,
	Transactions:   true,
	HolidaysEvents: true,
}

// RawTables holds the six input tables as read from disk.
type RawTables struct {
	Train          dataframe.DataFrame
	Test           dataframe.DataFrame
	Stores         dataframe.DataFrame
	Oil            dataframe.DataFrame
	Transactions   dataframe.DataFrame
	HolidaysEvents dataframe.DataFrame
}

// Set stores df as the table for t.
func (r *RawTables) Set(t TableType, df dataframe.DataFrame) {
	switch t {
	case Train:
		r.Train = df
	case Test:
		r.Test = df
	case Stores:
		r.Stores = df
	case Oil:
		r.Oil = df
	case Transactions:
		r.Transactions = df
	case HolidaysEvents:
		r.HolidaysEvents = df
	}
}

type HolidayScope string

const (
	ScopeNational HolidayScope = "National"
	ScopeRegional HolidayScope = "Regional"
	ScopeLocal    HolidayScope = "Local"
)

type HolidayEvent struct {
	Date        string
	Type        string
	Scope       HolidayScope
	LocaleName  string
	Description string
	// Transferred is true unless the source flag is an explicit false.
	Transferred bool
}

// HasType reports whether the event carries a holiday type.
func (h HolidayEvent) HasType() bool {
	return h.Type != ""
}
