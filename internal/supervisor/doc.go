// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

/*
Package supervisor provides process supervision using suture v4.

The tree isolates catalog maintenance from request serving:

	RootSupervisor ("dramarec")
	├── CatalogSupervisor ("catalog-layer")
	│   ├── ReloadService
	│   └── WatchService (file sources with reload.watch_file)
	└── APISupervisor ("api-layer")
	    └── APIService

A failing watcher or a source outage restarts services inside the catalog
layer with suture's backoff while the HTTP server keeps answering from the
last published snapshot (or with 503 NOT_READY before the first one).

Supervisor events are logged through sutureslog, fed by the zerolog-backed
slog handler from internal/logging:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddCatalogService(reloadSvc)
	tree.AddAPIService(httpSvc)
	err = tree.Serve(ctx)
*/
package supervisor
