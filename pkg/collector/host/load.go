package host

import (
	"log/slog"
	"path/filepath"

	"github.com/prometheus/procfs"

	"github.com/cortana-monitor/cortana/pkg/collector/file"
)

const secondsPerDay = 86400

// collectLoad returns the 1, 5 and 15 minute load averages, or zeros.
func collectLoad(procRoot string) [3]float64 {
	fs, err := procfs.NewFS(procRoot)
	if err != nil {
		slog.Warn("failed to open proc root", slog.String("root", procRoot), slog.String("error", err.Error()))
		return [3]float64{}
	}
	la, err := fs.LoadAvg()
	if err != nil {
		slog.Warn("failed to read load average", slog.String("error", err.Error()))
		return [3]float64{}
	}
	return [3]float64{la.Load1, la.Load5, la.Load15}
}

// collectUptimeDays returns whole days since boot, or 0.
func collectUptimeDays(parser *file.Parser, procRoot string) int {
	path := filepath.Join(procRoot, "uptime")
	secs, err := parser.GetFloat(path, 0)
	if err != nil {
		slog.Warn("failed to read uptime", slog.String("path", path), slog.String("error", err.Error()))
		return 0
	}
	if secs < 0 {
		return 0
	}
	return int(secs / secondsPerDay)
}
