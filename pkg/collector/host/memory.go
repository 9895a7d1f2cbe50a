package host

import (
	"log/slog"

	"github.com/prometheus/procfs"

	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// readMeminfo parses <procRoot>/meminfo. Counters are in KiB.
func readMeminfo(procRoot string) (procfs.Meminfo, error) {
	fs, err := procfs.NewFS(procRoot)
	if err != nil {
		return procfs.Meminfo{}, err
	}
	return fs.Meminfo()
}

// memoryUsage derives RAM usage. Available falls back to MemFree on kernels
// that do not report MemAvailable; missing keys count as 0.
func memoryUsage(mi procfs.Meminfo) measurement.Usage {
	total := kib(mi.MemTotal)
	available := kib(mi.MemFree)
	if mi.MemAvailable != nil {
		available = kib(mi.MemAvailable)
	}
	return measurement.NewUsage(total-available, total, measurement.KiBPerGiB)
}

// swapUsage derives swap usage.
func swapUsage(mi procfs.Meminfo) measurement.Usage {
	total := kib(mi.SwapTotal)
	return measurement.NewUsage(total-kib(mi.SwapFree), total, measurement.KiBPerGiB)
}

// collectMemory returns memory and swap usage, or zero records when the
// table cannot be read.
func collectMemory(procRoot string) (memory, swap measurement.Usage) {
	mi, err := readMeminfo(procRoot)
	if err != nil {
		slog.Warn("failed to read meminfo", slog.String("root", procRoot), slog.String("error", err.Error()))
		return measurement.Usage{}, measurement.Usage{}
	}
	return memoryUsage(mi), swapUsage(mi)
}

func kib(v *uint64) int64 {
	if v == nil {
		return 0
	}
	return int64(*v)
}
