package knowledge

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads every table from one .xlsx workbook, one sheet per
// table named after it.
type WorkbookSource struct {
	Path string
}

func (s WorkbookSource) String() string {
	return "xlsx:" + s.Path
}

func (s WorkbookSource) Load(ctx context.Context) (Tables, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.Path, err)
	}
	defer f.Close()

	sheets := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		sheets[name] = true
	}

	tables := make(Tables, len(RequiredTables))
	for _, name := range RequiredTables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !sheets[name] {
			return nil, fmt.Errorf("%s (sheet in %s): %w", name, s.Path, ErrMissingTable)
		}
		// GetRows trims trailing empty cells; Append pads them back as nulls.
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		t, err := tableFromRecords(name, rows)
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}
	return tables, nil
}
