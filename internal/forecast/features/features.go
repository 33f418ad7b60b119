// Package features turns the six raw store-sales tables into one feature
// table. Every stage takes a DataFrame and returns a new one; none of them
// touch the filesystem.
package features

import (
	"errors"
	"fmt"

	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/farxc/favorita_features/internal/logger"
	"github.com/go-gota/gota/dataframe"
)

var (
	ErrMissingColumn   = errors.New("missing column")
	ErrEmptyInput      = errors.New("empty input table")
	ErrUnsortedSeries  = errors.New("records are not sorted by store_nbr, family, date")
	ErrInvalidDateSpan = errors.New("invalid date span")
)

// Stage is one step of the feature pipeline.
type Stage struct {
	Name  string
	Apply func(dataframe.DataFrame) (dataframe.DataFrame, error)
}

type Pipeline struct {
	appLogger *logger.Logger
}

// NewPipeline returns a pipeline that reports stage timings to appLogger.
// A nil logger is silent.
func NewPipeline(appLogger *logger.Logger) *Pipeline {
	return &Pipeline{appLogger: appLogger}
}

// BuildFeatures runs the full pipeline without logging.
func BuildFeatures(raw types.RawTables) (dataframe.DataFrame, error) {
	return NewPipeline(nil).Build(raw)
}

// Stages returns the stages applied after train and test are concatenated,
// in execution order.
func Stages(raw types.RawTables) []Stage {
	return []Stage{
		{Name: "stores", Apply: func(df dataframe.DataFrame) (dataframe.DataFrame, error) { return JoinStores(df, raw.Stores) }},
		{Name: "oil", Apply: func(df dataframe.DataFrame) (dataframe.DataFrame, error) { return JoinOilPrices(df, raw.Oil) }},
		{Name: "holidays", Apply: func(df dataframe.DataFrame) (dataframe.DataFrame, error) { return ResolveHolidays(df, raw.HolidaysEvents) }},
		{Name: "calendar", Apply: AddCalendarFeatures},
		{Name: "transactions", Apply: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			return JoinTransactions(df, raw.Transactions)
		}},
		{Name: "sort", Apply: SortSeries},
		{Name: "lags", Apply: AddLagFeatures},
		{Name: "fill", Apply: FillMissing},
	}
}

func (p *Pipeline) Build(raw types.RawTables) (dataframe.DataFrame, error) {
	const component = "FeaturePipeline"

	done := p.appLogger.Timed(component, "concat")
	df, err := ConcatTrainTest(raw.Train, raw.Test)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("concat: %w", err)
	}
	done()
	p.appLogger.Info(component, "Records concatenated: train=%d test=%d total=%d", raw.Train.Nrow(), raw.Test.Nrow(), df.Nrow())

	for _, stage := range Stages(raw) {
		done := p.appLogger.Timed(component, stage.Name)
		next, err := stage.Apply(df)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("%s: %w", stage.Name, err)
		}
		if next.Nrow() != df.Nrow() {
			return dataframe.DataFrame{}, fmt.Errorf("%s: row count changed from %d to %d", stage.Name, df.Nrow(), next.Nrow())
		}
		df = next
		done()
	}

	rows, cols := df.Dims()
	p.appLogger.Info(component, "Feature table built: rows=%d cols=%d", rows, cols)
	return df, nil
}
