// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package chart

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/tomtom215/coffeecast/internal/forecast"
	"github.com/tomtom215/coffeecast/internal/production"
)

func TestRender(t *testing.T) {
	history := []production.Record{
		{CountryID: 1, Year: 2018, Production: 950},
		{CountryID: 1, Year: 2019, Production: 1000},
		{CountryID: 1, Year: 2020, Production: 1100},
	}
	series := forecast.Series{
		{Year: 2021, PredictedProduction: 1150},
		{Year: 2022, PredictedProduction: 1190},
	}

	var buf bytes.Buffer
	if err := Render(&buf, "Brazil", history, series, Options{Width: 480, Height: 240}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 480 || b.Dy() != 240 {
		t.Errorf("image size = %dx%d, want 480x240", b.Dx(), b.Dy())
	}
}

func TestRender_HistoryOnly(t *testing.T) {
	var buf bytes.Buffer
	history := []production.Record{{Year: 2020, Production: 5}}
	if err := Render(&buf, "Laos", history, nil, Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected PNG output")
	}
}

func TestRender_Empty(t *testing.T) {
	if err := Render(&bytes.Buffer{}, "none", nil, nil, DefaultOptions()); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot, got %v", err)
	}
}

func TestYearTicks(t *testing.T) {
	ticks := yearTicks{}.Ticks(1989.6, 1993.2)
	if len(ticks) != 4 || ticks[0].Value != 1990 || ticks[0].Label != "1990" {
		t.Errorf("unexpected ticks %+v", ticks)
	}

	labelled := 0
	for _, tk := range (yearTicks{}).Ticks(1960, 2020) {
		if tk.Label != "" {
			labelled++
		}
	}
	if labelled > 13 {
		t.Errorf("too many labelled ticks on a long range: %d", labelled)
	}
}
