package features

import (
	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/go-gota/gota/dataframe"
)

var storeColumns = []string{types.ColCity, types.ColState, types.ColType, types.ColCluster}

// JoinStores attaches city, state, type and cluster by store_nbr. Records
// of unknown stores get missing attributes.
func JoinStores(df, stores dataframe.DataFrame) (dataframe.DataFrame, error) {
	return joinFirst(df, stores, []string{types.ColStoreNbr}, storeColumns)
}
