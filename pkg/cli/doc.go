// Package cli implements the command-line interface of cortana-monitor.
//
// # Overview
//
// cortana-monitor runs once per invocation: it collects a snapshot of host
// metrics and service liveness, publishes it, and exits. A systemd timer or
// cron entry provides the schedule.
//
// # Commands
//
// collect - Collect and publish one snapshot (also the default action):
//
//	cortana-monitor collect [--config FILE] [--output FILE] [--format json|yaml]
//
// version - Print build information:
//
//	cortana-monitor version
//
// # Global Flags
//
//	--config, -c       YAML config file (env CORTANA_CONFIG)
//	--output, -o       Snapshot path, - for stdout (env CORTANA_OUTPUT)
//	--format, -t       json or yaml (env CORTANA_FORMAT)
//	--log-level        debug, info, warn, error (env CORTANA_LOG_LEVEL, LOG_LEVEL)
//	--concurrency      Parallel liveness checks (env CORTANA_CONCURRENCY)
//	--cpu-cache        Previous CPU sample file (env CORTANA_CPU_CACHE)
//	--service-manager  auto, dbus or systemctl (env CORTANA_SERVICE_MANAGER)
//	--metrics-file     Prometheus textfile output (env CORTANA_METRICS_FILE)
//
// Flags and their environment variables override the config file, which
// overrides the built-in defaults.
//
// # Exit Status
//
// 0 when the snapshot was published. 1 when the configuration is invalid or
// publishing failed. Degraded readings and unknown services do not change the
// exit status.
//
// # Logging
//
// Structured JSON logs go to stderr. Every record of one invocation carries
// the same "run" attribute.
package cli
