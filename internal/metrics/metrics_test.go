// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount extracts the sample count from a Prometheus histogram.
func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantLabel string
	}{
		{name: "select ok", operation: "SELECT", table: "production"},
		{name: "insert failed", operation: "INSERT", table: "countries", err: errors.New("connection refused"), wantLabel: "connection refused"},
		{name: "long error truncated", operation: "CREATE", table: "production", err: errors.New(strings.Repeat("x", 80)), wantLabel: strings.Repeat("x", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CollectAndCount(DBQueryDuration)
			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)
			if testutil.CollectAndCount(DBQueryDuration) < before {
				t.Error("histogram series disappeared")
			}
			if tt.err != nil {
				got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.wantLabel))
				if got < 1 {
					t.Errorf("expected error counter for %q, got %v", tt.wantLabel, got)
				}
			}
		})
	}
}

func TestRecordTraining(t *testing.T) {
	RecordTraining(time.Second, 7, 12.5, 20.25, 0.93, nil)

	if got := testutil.ToFloat64(ModelHoldoutScore.WithLabelValues("mae")); got != 12.5 {
		t.Errorf("mae gauge = %v, want 12.5", got)
	}
	if got := testutil.ToFloat64(ModelHoldoutScore.WithLabelValues("r2")); got != 0.93 {
		t.Errorf("r2 gauge = %v, want 0.93", got)
	}
	if got := testutil.ToFloat64(ModelVersion); got != 7 {
		t.Errorf("version gauge = %v, want 7", got)
	}

	before := testutil.ToFloat64(TrainingRuns.WithLabelValues("error"))
	RecordTraining(time.Second, 8, 0, 0, 0, errors.New("boom"))
	if got := testutil.ToFloat64(TrainingRuns.WithLabelValues("error")); got != before+1 {
		t.Errorf("error runs = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(ModelVersion); got != 7 {
		t.Errorf("failed run must not move version gauge, got %v", got)
	}
}

func TestRecordForecast(t *testing.T) {
	okBefore := testutil.ToFloat64(ForecastsTotal.WithLabelValues("success"))
	clampBefore := testutil.ToFloat64(ForecastClamped)
	observedBefore := histogramCount(t, ForecastDuration)

	RecordForecast(time.Millisecond, 2, nil)

	if got := histogramCount(t, ForecastDuration); got != observedBefore+1 {
		t.Errorf("duration samples = %d, want %d", got, observedBefore+1)
	}

	if got := testutil.ToFloat64(ForecastsTotal.WithLabelValues("success")); got != okBefore+1 {
		t.Errorf("success forecasts = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(ForecastClamped); got != clampBefore+2 {
		t.Errorf("clamped steps = %v, want %v", got, clampBefore+2)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/countries", 200, 3*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/countries", "200")); got < 1 {
		t.Errorf("request counter = %v, want >= 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}
