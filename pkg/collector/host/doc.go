// Package host samples host level counters: CPU, memory, swap, disk, load
// and uptime.
//
// # Collected Data
//
//   - CPU busy percentage since the previous invocation, from the aggregate
//     line of /proc/stat (user nice system idle iowait irq softirq). Only the
//     idle column counts as idle.
//   - Memory and swap from /proc/meminfo (MemAvailable, falling back to
//     MemFree).
//   - Disk usage of one mount point via statfs.
//   - 1/5/15 minute load from /proc/loadavg.
//   - Whole days of uptime from /proc/uptime.
//
// # CPU State
//
// A percentage needs two samples. The previous one lives in a small JSON file
// ({"idle": n, "total": n}) owned by SampleStore. Each run swaps it for the
// current sample under a file lock. A missing or unreadable file is a cold
// start and reports 0.
//
// # Error Handling
//
// Nothing here returns an error to the caller. A failed read logs a warning
// and yields the zero value of that reading.
package host
