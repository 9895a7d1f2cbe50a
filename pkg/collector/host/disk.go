package host

import (
	"log/slog"

	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// collectDisk reports usage of the filesystem mounted at mount. Used space
// includes blocks reserved for root, matching df's "Used" plus reserved.
func collectDisk(mount string) measurement.Usage {
	total, free, err := statDisk(mount)
	if err != nil {
		slog.Warn("failed to stat filesystem", slog.String("mount", mount), slog.String("error", err.Error()))
		return measurement.Usage{}
	}
	return measurement.NewUsage(total-free, total, measurement.BytePerGiB)
}
