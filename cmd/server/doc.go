// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

/*
Package main is the entry point for the Dramarec server and CLI.

Dramarec recommends K-dramas similar to a given title. It loads a catalog,
encodes every drama as a weighted feature vector (TF-IDF over synopsis,
genres and network, a one-hot content rating and a min-max scaled rating),
precomputes pairwise cosine similarity and answers lookups over HTTP.

# Commands

	dramarec                          # same as "dramarec serve"
	dramarec serve                    # run the HTTP service
	dramarec recommend Goblin -n 3    # print recommendations as JSON
	dramarec inspect                  # build the index and print its status

Global flags:

	--config PATH     YAML config file (default: CONFIG_PATH, ./config.yaml, /etc/dramarec/config.yaml)
	--env-file PATH   .env file loaded before configuration (default: .env)

# Application Architecture

The serve command runs a Suture v4 supervisor tree:

	RootSupervisor ("dramarec")
	├── CatalogSupervisor ("catalog-layer")
	│   ├── Reload service (startup load, cron schedule, API triggers)
	│   └── Watch service (optional, RELOAD_WATCH_FILE=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

The reload service performs the first catalog load and retries until it
succeeds. Until then /recommend answers 503 NOT_READY and /health reports
"starting". Every later rebuild produces a complete new snapshot that
replaces the old one atomically; a failed rebuild keeps serving the old one.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=5000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Catalog
	CATALOG_SOURCE=file          # file, duckdb or s3
	CATALOG_PATH=data/kdrama_catalog.json
	SNAPSHOT_DIR=/data/index     # optional BadgerDB index store

	# Reloads
	RELOAD_SCHEDULE=@every 6h    # optional cron expression
	RELOAD_WATCH_FILE=true       # reload when CATALOG_PATH changes
	ADMIN_TOKEN=<token>          # guards POST /api/v1/catalog/reload

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests within HTTP_SHUTDOWN_TIMEOUT, the index store is
closed, and services that failed to stop are reported.

# See Also

  - internal/config: Configuration management
  - internal/recommend: Feature encoding, similarity index and engine
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
*/
package main
