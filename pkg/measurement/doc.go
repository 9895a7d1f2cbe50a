// Package measurement defines the values a snapshot is made of: host
// metrics, usage blocks and per-service liveness statuses.
//
// Every value here is already normalized for display. Usage percentages are
// clamped to [0, 100], sizes are non-negative gigabytes, and a
// ServiceStatus only carries an uptime when it is running:
//
//	s := measurement.Running("nginx", "3d 4h")
//	u := measurement.NewUsage(usedKB, totalKB, measurement.KiBPerGiB)
//
// Values serialize to the snapshot document's JSON field names.
package measurement
