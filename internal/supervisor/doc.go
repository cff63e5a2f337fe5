// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package supervisor provides Suture-based process supervision for the
// coffeecast server.
//
// The tree has two layers under the root:
//
//	coffeecast
//	├── jobs-layer   periodic training
//	└── api-layer    HTTP server
//
// A crash in the training job restarts only that job; the API keeps serving
// the model it loaded at startup. Events are logged through sutureslog.
package supervisor
