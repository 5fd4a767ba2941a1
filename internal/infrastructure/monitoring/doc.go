/*
Package monitoring provides Prometheus metrics for the launcher.

# Overview

Metrics live on a private registry created by NewMetrics and are served by
Metrics.Handler (mounted at /metrics by the admin API). Every recording
method is safe on a nil *Metrics, so components can run without metrics.

# Metrics

  - miraos_apps_discovered, miraos_scans_total{result}
  - miraos_processes_running
  - miraos_launches_total{strategy,result}
  - miraos_closes_total{result}, miraos_close_duration_seconds
  - miraos_http_requests_total{method,path,status}, miraos_http_request_duration_seconds
  - miraos_uptime_seconds plus the standard Go and process collectors

# Usage

	metrics := monitoring.NewMetrics()
	metrics.RecordLaunch("emulator", "success")
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
