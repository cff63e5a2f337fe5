// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package training

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/export"
	"github.com/tomtom215/coffeecast/internal/model"
	"github.com/tomtom215/coffeecast/internal/model/storage"
	"github.com/tomtom215/coffeecast/internal/production"
)

func writeExport(t *testing.T, records []production.Record, countries production.CountryDirectory) string {
	t.Helper()
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, export.ProductionFile))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := export.WriteProduction(f, records); err != nil {
		t.Fatalf("WriteProduction: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err = os.Create(filepath.Join(dir, export.CountriesFile))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := export.WriteCountries(f, countries); err != nil {
		t.Fatalf("WriteCountries: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return dir
}

func syntheticHistory() ([]production.Record, production.CountryDirectory) {
	countries := production.CountryDirectory{1: "Brazil", 2: "Colombia", 3: "Ethiopia"}
	var records []production.Record
	for id := int64(1); id <= 3; id++ {
		base := 1000 * float64(id)
		growth := 0.01 * float64(id)
		for year := 2000; year <= 2012; year++ {
			step := float64(year - 2000)
			value := base*math.Pow(1+growth, step) + 25*math.Sin(step*float64(id))
			records = append(records, production.Record{CountryID: id, CountryName: countries[id], Year: year, Production: value})
		}
	}
	return records, countries
}

func newTestTrainer(t *testing.T, dataDir string, keep int) (*Trainer, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	cfg := &config.ModelConfig{Name: "linear_regression_advanced", HoldoutYears: 3, KeepVersions: keep}
	return NewTrainer(cfg, dataDir, store), store
}

func TestTrainer_Train(t *testing.T) {
	records, countries := syntheticHistory()
	trainer, store := newTestTrainer(t, writeExport(t, records, countries), 1)
	ctx := context.Background()

	report, err := trainer.Train(ctx)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	meta := report.Metadata
	if meta.Version != 1 || meta.CutoffYear != 2010 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	// 12 targets per country, the last 3 target years held out.
	if meta.TrainSamples != 27 || meta.TestSamples != 9 || report.Holdout.N != 9 {
		t.Errorf("unexpected sample counts: train=%d test=%d", meta.TrainSamples, meta.TestSamples)
	}
	if meta.LastObservedYr != 2012 || meta.Countries != 3 {
		t.Errorf("unexpected dataset metadata %+v", meta)
	}
	if report.Holdout.MAE <= 0 || math.IsNaN(report.Holdout.RMSE) {
		t.Errorf("holdout metrics look wrong: %+v", report.Holdout)
	}

	artifact, err := model.LoadArtifact(ctx, store, "linear_regression_advanced", 0)
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}
	if artifact.Metadata.Holdout.MAE != report.Holdout.MAE {
		t.Errorf("stored holdout %v != reported %v", artifact.Metadata.Holdout.MAE, report.Holdout.MAE)
	}

	second, err := trainer.Train(ctx)
	if err != nil {
		t.Fatalf("second Train: %v", err)
	}
	if second.Metadata.Version != 2 || second.Pruned != 1 {
		t.Errorf("second run: version=%d pruned=%d", second.Metadata.Version, second.Pruned)
	}
	if trainer.LastReport() != second {
		t.Error("LastReport should return the latest run")
	}
}

func TestTrainer_RefitFull(t *testing.T) {
	records, countries := syntheticHistory()
	trainer, _ := newTestTrainer(t, writeExport(t, records, countries), 5)
	trainer.cfg.RefitFull = true

	report, err := trainer.Train(context.Background())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if report.Metadata.TrainSamples != 36 || !report.Metadata.RefitFull {
		t.Errorf("refit should train on every sample: %+v", report.Metadata)
	}
}

func TestTrainer_InsufficientSamples(t *testing.T) {
	records := []production.Record{
		{CountryID: 1, Year: 2000, Production: 1},
		{CountryID: 1, Year: 2001, Production: 2},
		{CountryID: 1, Year: 2002, Production: 3},
	}
	trainer, _ := newTestTrainer(t, writeExport(t, records, production.CountryDirectory{1: "Brazil"}), 5)

	if _, err := trainer.Train(context.Background()); !errors.Is(err, model.ErrInsufficientSamples) {
		t.Errorf("expected ErrInsufficientSamples, got %v", err)
	}
	if trainer.LastReport() != nil {
		t.Error("failed run must not replace LastReport")
	}
}

func TestTrainer_MissingExport(t *testing.T) {
	trainer, _ := newTestTrainer(t, t.TempDir(), 5)
	if _, err := trainer.Train(context.Background()); err == nil {
		t.Error("expected error when export files are missing")
	}
}
