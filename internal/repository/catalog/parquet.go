package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/stylematch/internal/domain"
	domcat "github.com/kailas-cloud/stylematch/internal/domain/catalog"
)

const parquetBatchSize = 1000

// ParquetSource reads records from a Parquet file. Columns are resolved by
// top-level field name.
type ParquetSource struct {
	Path     string
	IDColumn string
}

// Load reads every row group of the file.
func (s *ParquetSource) Load(ctx context.Context) ([]domcat.Record, error) {
	h, err := openParquet(s.Path)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	cols := make(columnIndex)
	for i, path := range h.pf.Schema().Columns() {
		if len(path) == 0 {
			continue
		}
		if _, dup := cols[path[0]]; !dup {
			cols[path[0]] = i
		}
	}
	if missing := cols.missing(); len(missing) > 0 {
		return nil, domain.NewDataError("missing columns", missing...)
	}
	idIdx, hasID := cols[idColumnOrDefault(s.IDColumn)]
	if !hasID {
		idIdx = -1
	}

	records := make([]domcat.Record, 0, h.pf.NumRows())
	for _, rg := range h.pf.RowGroups() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
		records, err = readRowGroup(rg, cols, idIdx, records)
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

func readRowGroup(rg parquet.RowGroup, cols columnIndex, idIdx int, records []domcat.Record) ([]domcat.Record, error) {
	rows := parquet.NewRowGroupReader(rg)
	defer func() { _ = rows.Close() }()
	buf := make([]parquet.Row, parquetBatchSize)

	for {
		n, readErr := rows.ReadRows(buf)
		for i := 0; i < n; i++ {
			records = append(records, rowToRecord(buf[i], cols, idIdx, len(records)))
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return records, nil
			}
			return records, fmt.Errorf("read rows: %w", readErr)
		}
	}
}

// rowToRecord extracts a record from a generic row by leaf column index.
func rowToRecord(row parquet.Row, cols columnIndex, idIdx, position int) domcat.Record {
	r := domcat.Record{ID: strconv.Itoa(position)}

	for _, v := range row {
		if v.IsNull() {
			continue
		}
		switch v.Column() {
		case idIdx:
			if s := idValue(v); s != "" {
				r.ID = s
			}
		case cols[ColumnName]:
			r.Name = cellValue(v.String())
		case cols[ColumnImage]:
			r.Image = cellValue(v.String())
		case cols[ColumnBrand]:
			r.Brand = cellValue(v.String())
		case cols[ColumnDescription]:
			r.Description = cellValue(v.String())
		case cols[ColumnColor]:
			r.Color = cellValue(v.String())
		case cols[ColumnAttributes]:
			r.Attributes = domcat.SerializedAttributes(cellValue(v.String()))
		case cols[ColumnPrice]:
			r.Price = priceValue(v)
		}
	}
	return r
}

func idValue(v parquet.Value) string {
	switch v.Kind() {
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	default:
		return strings.TrimSpace(cellValue(v.String()))
	}
}

func priceValue(v parquet.Value) domcat.Price {
	switch v.Kind() {
	case parquet.Double:
		return domcat.NumericPrice(v.Double())
	case parquet.Float:
		return domcat.NumericPrice(float64(v.Float()))
	case parquet.Int32:
		return domcat.NumericPrice(float64(v.Int32()))
	case parquet.Int64:
		return domcat.NumericPrice(float64(v.Int64()))
	default:
		return domcat.RawPrice(cellValue(v.String()))
	}
}

// parquetHandle wraps parquet.File + underlying os.File for proper cleanup.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat catalog: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}
