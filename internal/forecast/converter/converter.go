package converter

import (
	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/farxc/favorita_features/internal/forecast/utils"
	"github.com/go-gota/gota/dataframe"
)

func DfRowToHolidayEvent(df dataframe.DataFrame, rowIdx int) types.HolidayEvent {

	return types.HolidayEvent{
		Date:        utils.GetStr(types.ColDate, rowIdx, &df),
		Type:        utils.GetStr(types.ColType, rowIdx, &df),
		Scope:       types.HolidayScope(utils.GetStr(types.ColLocale, rowIdx, &df)),
		LocaleName:  utils.NormalizeKey(utils.GetStr(types.ColLocaleName, rowIdx, &df)),
		Description: utils.GetStr(types.ColDescription, rowIdx, &df),
		Transferred: !utils.IsExplicitFalse(utils.GetStr(types.ColTransferred, rowIdx, &df)),
	}
}

// DfToHolidayEvents converts every row of the holidays table, keeping file order.
func DfToHolidayEvents(df dataframe.DataFrame) []types.HolidayEvent {
	events := make([]types.HolidayEvent, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		events = append(events, DfRowToHolidayEvent(df, i))
	}
	return events
}
