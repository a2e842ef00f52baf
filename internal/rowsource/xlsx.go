package rowsource

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSX reads records from the first sheet of an Excel workbook. The first
// row is the header; shorter data rows are padded with empty cells.
type XLSX struct {
	f *excelize.File
}

// OpenXLSX parses a workbook from r. The reader is consumed eagerly so the
// caller may close the underlying file immediately.
func OpenXLSX(r io.Reader) (*XLSX, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &XLSX{f: f}, nil
}

func (x *XLSX) Read() ([]Record, error) {
	sheet := x.f.GetSheetName(0)
	rows, err := x.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, label := range header {
			if label == "" {
				continue
			}
			if i < len(row) {
				rec[label] = row[i]
			} else {
				rec[label] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Close releases the parsed workbook.
func (x *XLSX) Close() error {
	return x.f.Close()
}
