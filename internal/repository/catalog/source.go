// Package catalog loads raw catalog records from files.
package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	domcat "github.com/kailas-cloud/stylematch/internal/domain/catalog"
)

// Supported file formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// DefaultIDColumn names the optional identifier column.
const DefaultIDColumn = "p_id"

// Column names every catalog file must carry.
const (
	ColumnName        = "name"
	ColumnImage       = "img"
	ColumnBrand       = "brand"
	ColumnDescription = "description"
	ColumnColor       = "colour"
	ColumnAttributes  = "p_attributes"
	ColumnPrice       = "price"
)

// RequiredColumns lists the mandatory columns in report order.
var RequiredColumns = []string{
	ColumnName, ColumnImage, ColumnBrand, ColumnDescription,
	ColumnColor, ColumnAttributes, ColumnPrice,
}

// Source loads catalog records.
type Source interface {
	Load(ctx context.Context) ([]domcat.Record, error)
}

// Open picks a source by explicit format or, when format is empty, by file extension.
func Open(path, format, idColumn string) (Source, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case FormatCSV:
		return &CSVSource{Path: path, IDColumn: idColumn}, nil
	case FormatParquet:
		return &ParquetSource{Path: path, IDColumn: idColumn}, nil
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

// SliceSource serves records held in memory.
type SliceSource struct {
	Records []domcat.Record
}

// Load returns a copy of the held records.
func (s *SliceSource) Load(_ context.Context) ([]domcat.Record, error) {
	out := make([]domcat.Record, len(s.Records))
	copy(out, s.Records)
	return out, nil
}

// columnIndex maps column names to positions.
type columnIndex map[string]int

// missing returns the required columns absent from the index.
func (c columnIndex) missing() []string {
	var out []string
	for _, name := range RequiredColumns {
		if _, ok := c[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

func idColumnOrDefault(name string) string {
	if name == "" {
		return DefaultIDColumn
	}
	return name
}

// naValues are the cell spellings read as missing, following the pandas
// read_csv defaults.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

func cellValue(s string) string {
	if _, ok := naValues[strings.TrimSpace(s)]; ok {
		return ""
	}
	return s
}
