package files

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/farxc/favorita_features/internal/forecast/utils"
	"github.com/farxc/favorita_features/internal/logger"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrEmptyTable          = errors.New("dataframe is empty")
	ErrMissingColumn       = errors.New("missing required column")
	ErrMalformedCell       = errors.New("malformed cell")
	ErrUnsupportedEncoding = errors.New("unsupported input encoding")
)

// Cell values read as missing.
var nanValues = []string{"", "NA", "NaN", "nan", "<nil>"}

// BuildInputFiles maps every input table to its path under dir.
func BuildInputFiles(dir string) map[types.TableType]string {
	m := make(map[types.TableType]string, len(types.TableFiles))

	for t, name := range types.TableFiles {
		m[t] = filepath.Join(dir, name)
	}
	return m
}

// ResolveDataDir returns explicit when set, otherwise "data" when that
// directory exists, otherwise the working directory.
func ResolveDataDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if info, err := os.Stat(types.OutputDir); err == nil && info.IsDir() {
		return types.OutputDir
	}
	return "."
}

func decoderFor(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, encoding)
	}
}

// OpenFileAndDecode reads one input table. Every cell is read as text, then
// the columns the table's schema names are converted to their types; a cell
// that does not convert fails the whole read.
func OpenFileAndDecode(path string, table types.TableType, encoding string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	defer file.Close()

	decoded, err := decoderFor(file, encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	return DecodeTable(decoded, table)
}

// DecodeTable parses comma-delimited CSV with a header row into a typed table.
// A header without rows gives a zero-row table when the table may be empty.
func DecodeTable(r io.Reader, table types.TableType) (dataframe.DataFrame, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = ','

	records, err := csvReader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", table, err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", table, ErrEmptyTable)
	}
	if len(records) == 1 {
		return emptyTable(records[0], table)
	}

	raw := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nanValues),
	)
	if err := raw.Error(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", table, err)
	}

	schema := types.TableSchemas[table]
	if err := requireColumns(raw.Names(), schema, table); err != nil {
		return dataframe.DataFrame{}, err
	}

	columns := make([]series.Series, 0, raw.Ncol())
	for _, name := range raw.Names() {
		col := raw.Col(name)

		typ, ok := columnType(schema, name)
		if !ok {
			columns = append(columns, col)
			continue
		}

		converted, err := convertColumn(col, typ, name == types.ColDate)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("%s: column %s: %w", table, name, err)
		}
		columns = append(columns, converted)
	}

	df := dataframe.New(columns...)
	return df, df.Error()
}

// emptyTable builds a zero-row table carrying header's columns.
func emptyTable(header []string, table types.TableType) (dataframe.DataFrame, error) {
	if !types.EmptyAllowed[table] {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", table, ErrEmptyTable)
	}
	schema := types.TableSchemas[table]
	if err := requireColumns(header, schema, table); err != nil {
		return dataframe.DataFrame{}, err
	}

	columns := make([]series.Series, 0, len(header))
	for _, name := range header {
		typ, ok := columnType(schema, name)
		if !ok {
			typ = series.String
		}
		columns = append(columns, series.New([]string{}, typ, name))
	}
	df := dataframe.New(columns...)
	return df, df.Error()
}

func requireColumns(names []string, schema map[string]series.Type, table types.TableType) error {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for col := range schema {
		if !present[col] {
			return fmt.Errorf("%s: %w: %s", table, ErrMissingColumn, col)
		}
	}
	return nil
}

// columnType returns the fixed type of a schema or optional column.
func columnType(schema map[string]series.Type, name string) (series.Type, bool) {
	if typ, ok := schema[name]; ok {
		return typ, true
	}
	typ, ok := types.OptionalColumnTypes[name]
	return typ, ok
}

func convertColumn(col series.Series, typ series.Type, isDate bool) (series.Series, error) {
	n := col.Len()
	switch typ {
	case series.Int, series.Float:
		values := make([]float64, n)
		for i := 0; i < n; i++ {
			elem := col.Elem(i)
			if elem.IsNA() {
				values[i] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(elem.String()), 64)
			if err != nil || (typ == series.Int && f != math.Trunc(f)) {
				return series.Series{}, fmt.Errorf("%w: row %d value %q", ErrMalformedCell, i+1, elem.String())
			}
			values[i] = f
		}
		return series.New(values, typ, col.Name), nil
	default:
		values := make([]string, n)
		for i := 0; i < n; i++ {
			elem := col.Elem(i)
			if elem.IsNA() {
				if isDate {
					return series.Series{}, fmt.Errorf("%w: row %d missing date", ErrMalformedCell, i+1)
				}
				values[i] = "NaN"
				continue
			}
			values[i] = elem.String()
			if isDate {
				d, err := utils.CanonicalDate(values[i])
				if err != nil {
					return series.Series{}, fmt.Errorf("%w: row %d: %v", ErrMalformedCell, i+1, err)
				}
				values[i] = d
			}
		}
		return series.New(values, series.String, col.Name), nil
	}
}

// LoadTables reads all six input tables from dir.
func LoadTables(dir, encoding string, appLogger *logger.Logger) (types.RawTables, error) {
	const component = "FileDecoder"
	var raw types.RawTables

	paths := BuildInputFiles(dir)
	for _, t := range []types.TableType{types.Train, types.Test, types.Stores, types.Oil, types.Transactions, types.HolidaysEvents} {
		path := paths[t]
		appLogger.Debug(component, "Reading table: table=%s path=%s", t, path)

		df, err := OpenFileAndDecode(path, t, encoding)
		if err != nil {
			return types.RawTables{}, fmt.Errorf("read %s: %w", path, err)
		}
		rows, cols := df.Dims()
		appLogger.Info(component, "Table loaded: table=%s rows=%d cols=%d", t, rows, cols)
		raw.Set(t, df)
	}
	return raw, nil
}

// WriteSnapshot writes df as CSV to path. The file is written next to its
// destination and renamed into place, so a failed write leaves no output.
func WriteSnapshot(df dataframe.DataFrame, path string, appLogger *logger.Logger) error {
	const component = "SnapshotWriter"

	if err := df.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := csv.NewWriter(tmp).WriteAll(snapshotRecords(df)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move snapshot into place %s: %w", path, err)
	}

	rows, cols := df.Dims()
	appLogger.Info(component, "Snapshot written: path=%s rows=%d cols=%d", path, rows, cols)
	return nil
}

// snapshotRecords renders df as CSV records. Float cells are written with
// the fewest digits that parse back to the same value; other cells use
// gota's text form.
func snapshotRecords(df dataframe.DataFrame) [][]string {
	rows, cols := df.Dims()
	records := make([][]string, rows+1)
	records[0] = df.Names()
	for i := 1; i <= rows; i++ {
		records[i] = make([]string, cols)
	}

	for j, name := range df.Names() {
		col := df.Col(name)
		if col.Type() == series.Float {
			for i, v := range col.Float() {
				records[i+1][j] = formatFloat(v)
			}
			continue
		}
		for i, cell := range col.Records() {
			records[i+1][j] = cell
		}
	}
	return records
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
