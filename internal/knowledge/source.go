package knowledge

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Source reads the raw knowledge-base tables from some backing store.
type Source interface {
	Load(ctx context.Context) (Tables, error)
	String() string
}

// LoadBase reads every table from src and builds the knowledge base. There is
// no partial mode: any failure is returned with its cause.
func LoadBase(ctx context.Context, src Source, logger *zap.Logger) (*Base, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tables, err := src.Load(ctx)
	if err != nil {
		logger.Error("failed to load datasets", zap.String("source", src.String()), zap.Error(err))
		return nil, fmt.Errorf("load %s: %w", src, err)
	}

	kb, err := New(tables)
	if err != nil {
		logger.Error("invalid datasets", zap.String("source", src.String()), zap.Error(err))
		return nil, fmt.Errorf("build knowledge base from %s: %w", src, err)
	}

	logger.Info("all datasets loaded",
		zap.String("source", src.String()),
		zap.Int("diseases", len(kb.diseases)),
	)
	return kb, nil
}

// tableFromRecords turns a header row plus data rows into a table; empty
// strings become nulls.
func tableFromRecords(name string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row", name)
	}
	header := make([]string, len(records[0]))
	copy(header, records[0])
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	t := NewTable(name, header)
	for _, rec := range records[1:] {
		row := make(Row, len(rec))
		for i, v := range rec {
			if v != "" {
				row[i] = Val(v)
			}
		}
		t.Append(row)
	}
	return t, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
