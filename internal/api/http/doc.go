// Package http exposes the launcher controller over a small JSON admin API.
//
// Routes:
//
//	GET    /health                  liveness and summary
//	GET    /apps                    discovered apps
//	POST   /apps/scan               rescan the apps directory
//	POST   /apps/:name/run          launch an app
//	GET    /processes               running apps
//	DELETE /processes/:name         close a running app
//	GET    /processes/:name/output  captured output (pty strategy)
//	GET    /metrics                 Prometheus metrics
package http
