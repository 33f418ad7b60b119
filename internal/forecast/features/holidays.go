package features

import (
	"github.com/farxc/favorita_features/internal/forecast/converter"
	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/go-gota/gota/dataframe"
)

// holidayIndex holds the events that survive the transferred filter,
// grouped by scope.
type holidayIndex struct {
	// national keeps the first event seen on each date.
	national map[string]types.HolidayEvent
	// regional and local hold date+place keys of events that carry a type.
	regional map[string]bool
	local    map[string]bool
}

func newHolidayIndex(events []types.HolidayEvent) holidayIndex {
	idx := holidayIndex{
		national: make(map[string]types.HolidayEvent),
		regional: make(map[string]bool),
		local:    make(map[string]bool),
	}
	for _, ev := range events {
		if ev.Transferred || ev.Date == "" {
			continue
		}
		switch ev.Scope {
		case types.ScopeNational:
			if _, ok := idx.national[ev.Date]; !ok {
				idx.national[ev.Date] = ev
			}
		case types.ScopeRegional:
			if ev.HasType() && ev.LocaleName != "" {
				idx.regional[ev.Date+keySep+ev.LocaleName] = true
			}
		case types.ScopeLocal:
			if ev.HasType() && ev.LocaleName != "" {
				idx.local[ev.Date+keySep+ev.LocaleName] = true
			}
		}
	}
	return idx
}

func (h holidayIndex) isHoliday(dateKey, stateKey, cityKey string) bool {
	if ev, ok := h.national[dateKey]; ok && ev.HasType() {
		return true
	}
	if stateKey != "" && h.regional[stateKey] {
		return true
	}
	return cityKey != "" && h.local[cityKey]
}

// ResolveHolidays sets is_holiday to 1 when a national event falls on the
// record date, a regional event on its date and state, or a local event on
// its date and city. Transferred events never count.
func ResolveHolidays(df, holidays dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, name := range []string{types.ColDate, types.ColType, types.ColLocale, types.ColLocaleName, types.ColTransferred} {
		if _, err := column(holidays, name); err != nil {
			return dataframe.DataFrame{}, err
		}
	}
	idx := newHolidayIndex(converter.DfToHolidayEvents(holidays))

	dates, err := stringColumn(df, types.ColDate)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	stateKeys, err := keyColumn(df, []string{types.ColDate, types.ColState}, true)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	cityKeys, err := keyColumn(df, []string{types.ColDate, types.ColCity}, true)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	flags := make([]int, len(dates))
	for i := range flags {
		flags[i] = boolToInt(idx.isHoliday(dates[i], stateKeys[i], cityKeys[i]))
	}
	return withColumns(df, intSeries(flags, types.ColIsHoliday))
}
