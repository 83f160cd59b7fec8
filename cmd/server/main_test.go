package main

import (
	"context"
	"testing"

	"github.com/Skufu/GoRocky-symptoms/internal/config"
	"github.com/Skufu/GoRocky-symptoms/internal/details"
	"github.com/Skufu/GoRocky-symptoms/internal/knowledge"
	"github.com/Skufu/GoRocky-symptoms/internal/predict"
)

func TestNewSourceCSV(t *testing.T) {
	src, err := newSource(&config.Config{KBSource: config.SourceCSV, DatasetDir: "data"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir, ok := src.(knowledge.DirSource)
	if !ok || dir.Dir != "data" {
		t.Fatalf("expected csv source for data/, got %#v", src)
	}
}

func TestNewSourceWorkbook(t *testing.T) {
	src, err := newSource(&config.Config{KBSource: config.SourceXLSX, DatasetWorkbook: "kb.xlsx"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.String() != "xlsx:kb.xlsx" {
		t.Fatalf("unexpected source %s", src)
	}
}

func TestNewSourcePostgresNeedsPool(t *testing.T) {
	if _, err := newSource(&config.Config{KBSource: config.SourcePostgres}, nil); err == nil {
		t.Fatal("expected error when postgres source has no pool")
	}
}

func TestNewSourceUnknown(t *testing.T) {
	if _, err := newSource(&config.Config{KBSource: "parquet"}, nil); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestShippedDatasetLoads(t *testing.T) {
	src, err := newSource(&config.Config{KBSource: config.SourceCSV, DatasetDir: "../../dataset"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kb, err := knowledge.LoadBase(context.Background(), src, nil)
	if err != nil {
		t.Fatalf("failed to load shipped dataset: %v", err)
	}

	disease, msg := predict.NewScorer(kb, nil).Predict([]string{"itching", "skin_rash"}, "Delhi")
	if disease != "Fungal infection" {
		t.Fatalf("expected Fungal infection, got %s (%s)", disease, msg)
	}

	bundle := details.NewAggregator(kb, nil).Lookup(disease)
	if bundle.Degraded || len(bundle.Precautions) != 4 || len(bundle.Medications) != 2 {
		t.Fatalf("unexpected details: %+v", bundle)
	}
}
