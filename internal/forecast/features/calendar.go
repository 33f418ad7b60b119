package features

import (
	"fmt"
	"time"

	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/farxc/favorita_features/internal/forecast/utils"
	"github.com/go-gota/gota/dataframe"
)

// calendarDay is the set of date parts derived for one calendar day.
type calendarDay struct {
	day, month, year      int
	dayOfWeek, weekOfYear int
	isWeekend, isPayday   int
}

// newCalendarDay derives the calendar parts of t. Monday is day 0 and the
// week number is the ISO week.
func newCalendarDay(t time.Time) calendarDay {
	dow := (int(t.Weekday()) + 6) % 7
	_, week := t.ISOWeek()
	lastOfMonth := t.AddDate(0, 0, 1).Month() != t.Month()
	return calendarDay{
		day:        t.Day(),
		month:      int(t.Month()),
		year:       t.Year(),
		dayOfWeek:  dow,
		weekOfYear: week,
		isWeekend:  boolToInt(dow >= 5),
		isPayday:   boolToInt(lastOfMonth || t.Day() == 15),
	}
}

// AddCalendarFeatures derives day, month, year, dayofweek, weekofyear,
// is_weekend and is_payday from the record date.
func AddCalendarFeatures(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	dates, err := stringColumn(df, types.ColDate)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	n := len(dates)
	day, month, year := make([]int, n), make([]int, n), make([]int, n)
	dow, week := make([]int, n), make([]int, n)
	weekend, payday := make([]int, n), make([]int, n)

	cache := make(map[string]calendarDay)
	for i, d := range dates {
		c, ok := cache[d]
		if !ok {
			t, err := utils.ParseDate(d)
			if err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("row %d: %w", i, err)
			}
			c = newCalendarDay(t)
			cache[d] = c
		}
		day[i], month[i], year[i] = c.day, c.month, c.year
		dow[i], week[i] = c.dayOfWeek, c.weekOfYear
		weekend[i], payday[i] = c.isWeekend, c.isPayday
	}

	return withColumns(df,
		intSeries(day, types.ColDay),
		intSeries(month, types.ColMonth),
		intSeries(year, types.ColYear),
		intSeries(dow, types.ColDayOfWeek),
		intSeries(week, types.ColWeekOfYear),
		intSeries(weekend, types.ColIsWeekend),
		intSeries(payday, types.ColIsPayday),
	)
}
