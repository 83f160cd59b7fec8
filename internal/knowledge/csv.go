package knowledge

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirSource reads one <table>.csv file per table from Dir.
type DirSource struct {
	Dir string
}

func (s DirSource) String() string {
	return "csv:" + s.Dir
}

func (s DirSource) Load(ctx context.Context) (Tables, error) {
	tables := make(Tables, len(RequiredTables))
	for _, name := range RequiredTables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := readCSV(name, filepath.Join(s.Dir, name+".csv"))
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}
	return tables, nil
}

func readCSV(name, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s (%s): %w", name, path, ErrMissingTable)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tableFromRecords(name, records)
}
