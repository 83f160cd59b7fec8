package knowledge

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUndefinedTable = "42P01"

// Querier is the slice of *pgxpool.Pool the Postgres source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads each table from a Postgres table of the same name.
type PostgresSource struct {
	DB Querier
}

func (s PostgresSource) String() string {
	return "postgres"
}

func (s PostgresSource) Load(ctx context.Context) (Tables, error) {
	tables := make(Tables, len(RequiredTables))
	for _, name := range RequiredTables {
		t, err := s.readTable(ctx, name)
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}
	return tables, nil
}

func (s PostgresSource) readTable(ctx context.Context, name string) (*Table, error) {
	rows, err := s.DB.Query(ctx, "SELECT * FROM "+pgx.Identifier{name}.Sanitize())
	if err != nil {
		return nil, pgTableError(name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	t := NewTable(name, columns)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}
		row := make(Row, len(vals))
		for i, v := range vals {
			row[i] = pgCell(v)
		}
		t.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, pgTableError(name, err)
	}
	return t, nil
}

func pgTableError(name string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("%s: %w: %v", name, ErrMissingTable, err)
	}
	return fmt.Errorf("query %s: %w", name, err)
}

func pgCell(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Null
	case string:
		if x == "" {
			return Null
		}
		return Val(x)
	case []byte:
		if len(x) == 0 {
			return Null
		}
		return Val(string(x))
	default:
		return Val(fmt.Sprint(x))
	}
}
