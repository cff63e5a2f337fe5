// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package services provides Suture service wrappers for the HTTP server and
// the periodic training job.
//
// Each wrapper implements suture.Service (Serve(ctx) error) and
// fmt.Stringer, and returns ctx.Err() on a requested shutdown.
package services
