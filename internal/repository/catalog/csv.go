package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kailas-cloud/stylematch/internal/domain"
	domcat "github.com/kailas-cloud/stylematch/internal/domain/catalog"
)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 1024

// CSVSource reads records from a CSV file with a header row.
type CSVSource struct {
	Path     string
	IDColumn string
}

// Load reads every row of the file.
func (s *CSVSource) Load(ctx context.Context) ([]domcat.Record, error) {
	f, err := os.Open(filepath.Clean(s.Path))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readCSV(ctx, f, idColumnOrDefault(s.IDColumn))
}

func readCSV(ctx context.Context, r io.Reader, idColumn string) ([]domcat.Record, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewDataError("missing columns", RequiredColumns...)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(columnIndex, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		cols[strings.TrimSpace(name)] = i
	}
	if missing := cols.missing(); len(missing) > 0 {
		return nil, domain.NewDataError("missing columns", missing...)
	}
	idIdx, hasID := cols[idColumn]

	var records []domcat.Record
	for row := 0; ; row++ {
		if row%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("read csv: %w", err)
			}
		}

		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, domain.NewDataError("malformed csv", pe.Error())
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}

		id := strconv.Itoa(row)
		if hasID {
			if v := cellValue(cells[idIdx]); v != "" {
				id = strings.TrimSpace(v)
			}
		}

		records = append(records, domcat.Record{
			ID:          id,
			Name:        cellValue(cells[cols[ColumnName]]),
			Image:       cellValue(cells[cols[ColumnImage]]),
			Brand:       cellValue(cells[cols[ColumnBrand]]),
			Description: cellValue(cells[cols[ColumnDescription]]),
			Color:       cellValue(cells[cols[ColumnColor]]),
			Attributes:  domcat.SerializedAttributes(cellValue(cells[cols[ColumnAttributes]])),
			Price:       domcat.RawPrice(cellValue(cells[cols[ColumnPrice]])),
		})
	}
	return records, nil
}
