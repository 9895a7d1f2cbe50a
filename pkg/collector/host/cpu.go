package host

import (
	"log/slog"
	"path/filepath"

	"github.com/cortana-monitor/cortana/pkg/collector/file"
	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// cpuFields is the number of aggregate categories summed into the total:
// user nice system idle iowait irq softirq.
const cpuFields = 7

// idleField is the position of idle within those categories. iowait is
// counted as busy time.
const idleField = 3

// CPUCollector computes the CPU busy percentage since the previous
// invocation from the aggregate line of /proc/stat.
type CPUCollector struct {
	statPath string
	store    *SampleStore
	parser   *file.Parser
}

// NewCPUCollector reads <procRoot>/stat and keeps its delta state in store.
func NewCPUCollector(procRoot string, store *SampleStore) *CPUCollector {
	return &CPUCollector{
		statPath: filepath.Join(procRoot, "stat"),
		store:    store,
		parser:   file.NewParser(),
	}
}

// Store returns the sample store backing the delta computation.
func (c *CPUCollector) Store() *SampleStore {
	return c.store
}

// Sample reads the current aggregate ticks.
func (c *CPUCollector) Sample() (CPUSample, error) {
	ticks, err := c.parser.GetUints(c.statPath, 1, cpuFields)
	if err != nil {
		return CPUSample{}, err
	}

	var total uint64
	for _, v := range ticks {
		total += v
	}
	return CPUSample{Idle: ticks[idleField], Total: total}, nil
}

// Percent returns the busy percentage in [0, 100]. The first call without a
// usable cached sample returns 0. The cache is overwritten with the current
// sample on every call that could read the counters.
func (c *CPUCollector) Percent() float64 {
	cur, err := c.Sample()
	if err != nil {
		slog.Warn("failed to read cpu counters", slog.String("path", c.statPath), slog.String("error", err.Error()))
		return 0
	}

	prev, ok, err := c.store.Swap(cur)
	if err != nil {
		slog.Warn("failed to persist cpu sample", slog.String("path", c.store.Path()), slog.String("error", err.Error()))
	}
	if !ok {
		slog.Debug("no previous cpu sample, cold start")
		return 0
	}

	return busyPercent(prev, cur)
}

// busyPercent derives the busy share between two samples. A non-increasing
// total (no elapsed ticks, or counters reset by a reboot) yields 0.
func busyPercent(prev, cur CPUSample) float64 {
	if cur.Total <= prev.Total {
		return 0
	}
	idleDelta := float64(cur.Idle) - float64(prev.Idle)
	totalDelta := float64(cur.Total - prev.Total)

	return measurement.Clamp((1.0-idleDelta/totalDelta)*100, 0, 100)
}
