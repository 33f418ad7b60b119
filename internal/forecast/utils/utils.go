package utils

import "github.com/go-gota/gota/dataframe"

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// HasColumns reports whether every name is a column of df.
func HasColumns(df dataframe.DataFrame, names ...string) bool {
	cols := df.Names()
	for _, n := range names {
		if !containsString(cols, n) {
			return false
		}
	}
	return true
}

// GetStr returns the cell as a string, or "" when the column is absent or
// the cell is missing.
func GetStr(col string, rowIdx int, df *dataframe.DataFrame) string {
	if df == nil {
		return ""
	}

	if containsString(df.Names(), col) {
		elem := df.Col(col).Elem(rowIdx)
		if elem.IsNA() {
			return ""
		}
		return elem.String()
	}
	return ""
}
