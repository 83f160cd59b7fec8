package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRows struct {
	fields []pgconn.FieldDescription
	data   [][]any
	pos    int
	err    error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) Scan(dest ...any) error                       { return errors.New("not supported") }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

// fakeDB serves each table's rows as a Postgres result set; NULL cells come
// back as nil like pgx does.
type fakeDB struct {
	tables  Tables
	queries []string
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	for name, tbl := range f.tables {
		if !strings.HasSuffix(sql, pgx.Identifier{name}.Sanitize()) {
			continue
		}
		rows := &fakeRows{}
		for _, c := range tbl.Columns {
			rows.fields = append(rows.fields, pgconn.FieldDescription{Name: c})
		}
		for _, r := range tbl.Rows {
			vals := make([]any, len(r))
			for i, c := range r {
				if c.Valid {
					vals[i] = c.Value
				}
			}
			rows.data = append(rows.data, vals)
		}
		return rows, nil
	}
	return nil, &pgconn.PgError{Code: pgUndefinedTable, Message: "relation does not exist"}
}

func TestPostgresSource_Load(t *testing.T) {
	db := &fakeDB{tables: sampleTables()}

	kb, err := LoadBase(context.Background(), PostgresSource{DB: db}, nil)
	require.NoError(t, err)
	assert.Len(t, db.queries, len(RequiredTables))
	assert.Equal(t, `SELECT * FROM "symtoms_df"`, db.queries[len(db.queries)-1])
	assert.Equal(t, []string{"Fungal infection", "Allergy", "Malaria"}, kb.Diseases())
	assert.Equal(t, []string{"continuous_sneezing", "shivering", "chills"}, kb.SymptomsOf("Allergy"))
}

func TestPostgresSource_UndefinedTable(t *testing.T) {
	tables := sampleTables()
	delete(tables, TableMedications)

	_, err := LoadBase(context.Background(), PostgresSource{DB: &fakeDB{tables: tables}}, nil)
	require.ErrorIs(t, err, ErrMissingTable)
	assert.Contains(t, err.Error(), TableMedications)
}

func TestPgCell(t *testing.T) {
	assert.Equal(t, Null, pgCell(nil))
	assert.Equal(t, Null, pgCell(""))
	assert.Equal(t, Val("x"), pgCell("x"))
	assert.Equal(t, Val("y"), pgCell([]byte("y")))
	assert.Equal(t, Val("3"), pgCell(int64(3)))
}
