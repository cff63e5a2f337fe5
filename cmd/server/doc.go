// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

/*
Package main is the entry point for the Coffeecast server.

The server loads the exported production history and the latest model
artifact once, then serves the dashboard and JSON API under a Suture v4
supervisor tree:

	RootSupervisor ("coffeecast")
	├── JobsSupervisor ("jobs-layer")
	│   └── Training service (optional, training.enabled)
	└── APISupervisor ("api-layer")
	    ├── Chart cache sweep
	    └── HTTP server

A missing dataset or model is not fatal: the dashboard shows a warning
banner and model-backed endpoints answer 503 until the exporter or trainer
has run and the server is restarted. Artifacts written by the training
service are picked up the same way.

Configuration is layered through Koanf v2 (defaults, config.yaml, then
environment variables). Common variables:

	HTTP_PORT=8501
	EXPORT_DIR=data/predictionData
	MODEL_DIR=models
	TRAINING_ENABLED=true
	LOG_LEVEL=debug

The server shuts down gracefully on SIGINT and SIGTERM.
*/
package main
