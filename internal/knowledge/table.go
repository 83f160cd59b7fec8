package knowledge

import (
	"errors"
	"fmt"
)

var (
	ErrMissingTable  = errors.New("missing table")
	ErrMissingColumn = errors.New("missing column")
)

// Cell is a single nullable table value. Empty source cells load as null.
type Cell struct {
	Value string
	Valid bool
}

func Val(s string) Cell {
	return Cell{Value: s, Valid: true}
}

var Null = Cell{}

type Row []Cell

// Table is a read-only set of rows with named columns. Column names keep the
// casing of the source (Disease vs disease).
type Table struct {
	Name    string
	Columns []string
	Rows    []Row

	colIndex map[string]int
	keyIndex map[string]map[string][]int
}

func NewTable(name string, columns []string, rows ...Row) *Table {
	t := &Table{
		Name:     name,
		Columns:  columns,
		colIndex: make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, dup := t.colIndex[c]; !dup {
			t.colIndex[c] = i
		}
	}
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

// Append adds a row, padding short rows with nulls and dropping surplus cells.
// Tables must not be appended to once handed to New.
func (t *Table) Append(r Row) {
	row := make(Row, len(t.Columns))
	copy(row, r)
	t.Rows = append(t.Rows, row)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIndex[name]
	return ok
}

func (t *Table) column(name string) (int, error) {
	i, ok := t.colIndex[name]
	if !ok {
		return 0, fmt.Errorf("%s.%s: %w", t.Name, name, ErrMissingColumn)
	}
	return i, nil
}

// index builds an exact-match lookup on key column. Called once at construction.
func (t *Table) index(key string) error {
	ci, err := t.column(key)
	if err != nil {
		return err
	}
	idx := make(map[string][]int)
	for i, r := range t.Rows {
		if !r[ci].Valid {
			continue
		}
		idx[r[ci].Value] = append(idx[r[ci].Value], i)
	}
	if t.keyIndex == nil {
		t.keyIndex = make(map[string]map[string][]int)
	}
	t.keyIndex[key] = idx
	return nil
}

// Filter returns the rows whose key column equals value exactly.
func (t *Table) Filter(key, value string) ([]Row, error) {
	if idx, ok := t.keyIndex[key]; ok {
		out := make([]Row, 0, len(idx[value]))
		for _, i := range idx[value] {
			out = append(out, t.Rows[i])
		}
		return out, nil
	}

	ci, err := t.column(key)
	if err != nil {
		return nil, err
	}
	var out []Row
	for _, r := range t.Rows {
		if r[ci].Valid && r[ci].Value == value {
			out = append(out, r)
		}
	}
	return out, nil
}

// Values extracts the non-null values of column across rows, in row order.
func (t *Table) Values(rows []Row, column string) ([]string, error) {
	ci, err := t.column(column)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r[ci].Valid {
			out = append(out, r[ci].Value)
		}
	}
	return out, nil
}

// Unique lists the distinct non-null values of column in first-seen order.
func (t *Table) Unique(column string) ([]string, error) {
	ci, err := t.column(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Rows {
		c := r[ci]
		if !c.Valid || seen[c.Value] {
			continue
		}
		seen[c.Value] = true
		out = append(out, c.Value)
	}
	return out, nil
}
