// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package validation

import (
	"strings"
	"testing"
)

type horizonRequest struct {
	Horizon int    `validate:"min=1,max=50"`
	Table   string `validate:"omitempty,sqlident"`
	Driver  string `validate:"required,oneof=duckdb postgres"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     horizonRequest
		wantErr   bool
		wantTag   string
		wantInMsg string
	}{
		{
			name:  "valid",
			input: horizonRequest{Horizon: 5, Table: "production", Driver: "duckdb"},
		},
		{
			name:      "horizon below minimum",
			input:     horizonRequest{Horizon: 0, Driver: "duckdb"},
			wantErr:   true,
			wantTag:   "min",
			wantInMsg: "Horizon must be at least 1",
		},
		{
			name:      "horizon above maximum",
			input:     horizonRequest{Horizon: 51, Driver: "duckdb"},
			wantErr:   true,
			wantTag:   "max",
			wantInMsg: "Horizon must be at most 50",
		},
		{
			name:      "table with spaces",
			input:     horizonRequest{Horizon: 1, Table: "drop table", Driver: "duckdb"},
			wantErr:   true,
			wantTag:   "sqlident",
			wantInMsg: "plain SQL identifier",
		},
		{
			name:      "unknown driver",
			input:     horizonRequest{Horizon: 1, Driver: "oracle"},
			wantErr:   true,
			wantTag:   "oneof",
			wantInMsg: "Driver must be one of: duckdb postgres",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if !tt.wantErr {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), verr)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("tag = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if !strings.Contains(verr.Error(), tt.wantInMsg) {
				t.Errorf("message %q does not contain %q", verr.Error(), tt.wantInMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	verr := ValidateStruct(&horizonRequest{Horizon: 0, Table: "a b"})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("expected fields detail, got %#v", apiErr.Details)
	}
	if len(fields) != 3 {
		t.Errorf("expected 3 failing fields, got %d", len(fields))
	}
}

func TestForecastRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     ForecastRequest
		wantTag string
	}{
		{name: "within bounds", req: ForecastRequest{Horizon: 5, MaxHorizon: 30}},
		{name: "at max", req: ForecastRequest{Horizon: 30, MaxHorizon: 30}},
		{name: "zero", req: ForecastRequest{Horizon: 0, MaxHorizon: 30}, wantTag: "min"},
		{name: "above max", req: ForecastRequest{Horizon: 31, MaxHorizon: 30}, wantTag: "ltefield"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if tt.wantTag == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if got := verr.Errors()[0].Tag(); got != tt.wantTag {
				t.Errorf("tag = %q, want %q", got, tt.wantTag)
			}
		})
	}
}
