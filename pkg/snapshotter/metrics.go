package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cortana-monitor/cortana/pkg/measurement"
)

var (
	// Snapshot collection metrics
	snapshotCollectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cortana_snapshot_collection_duration_seconds",
			Help:    "Time taken to assemble a complete snapshot",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	snapshotCollectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cortana_snapshot_collection_total",
			Help: "Total number of snapshot publish attempts",
		},
		[]string{"status"}, // success or error
	)

	snapshotCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cortana_snapshot_collector_duration_seconds",
			Help:    "Time taken by each part of the snapshot",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"collector"}, // host, services
	)

	snapshotServiceCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cortana_snapshot_services",
			Help: "Number of service entries in the last snapshot",
		},
	)

	// Check metrics
	checkDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cortana_check_duration_seconds",
			Help:    "Time taken by individual liveness checks",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"type"},
	)

	checkResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cortana_check_results_total",
			Help: "Liveness check outcomes by type and status",
		},
		[]string{"type", "status"},
	)

	serviceUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cortana_service_up",
			Help: "1 when running, 0 when stopped, -1 when unknown",
		},
		[]string{"name"},
	)

	// Host metrics
	systemUsagePercent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cortana_system_usage_percent",
			Help: "Host utilisation from the last snapshot",
		},
		[]string{"resource"}, // cpu, memory, disk, swap
	)

	systemLoadAverage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cortana_system_load_average",
			Help: "Load average from the last snapshot",
		},
		[]string{"window"}, // 1m, 5m, 15m
	)
)

func recordSystem(m measurement.SystemMetrics) {
	systemUsagePercent.WithLabelValues("cpu").Set(m.CPUPercent)
	systemUsagePercent.WithLabelValues("memory").Set(m.Memory.Percent)
	systemUsagePercent.WithLabelValues("disk").Set(m.Disk.Percent)
	systemUsagePercent.WithLabelValues("swap").Set(m.Swap.Percent)
	for i, w := range []string{"1m", "5m", "15m"} {
		systemLoadAverage.WithLabelValues(w).Set(m.LoadAverage[i])
	}
}

func recordService(s measurement.ServiceStatus) {
	v := -1.0
	switch s.Status {
	case measurement.StatusRunning:
		v = 1
	case measurement.StatusStopped:
		v = 0
	case measurement.StatusUnknown:
	}
	serviceUp.WithLabelValues(s.Name).Set(v)
}
