package collector

import (
	"context"

	"github.com/cortana-monitor/cortana/pkg/checker"
	"github.com/cortana-monitor/cortana/pkg/collector/host"
	"github.com/cortana-monitor/cortana/pkg/collector/systemd"
	"github.com/cortana-monitor/cortana/pkg/config"
	"github.com/cortana-monitor/cortana/pkg/defaults"
	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// HostCollector gathers the system block of a snapshot. It never fails;
// unreadable sources degrade to zero values.
type HostCollector interface {
	Collect(ctx context.Context) measurement.SystemMetrics
}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateHostCollector() HostCollector
	CreateServiceManager(ctx context.Context) systemd.Manager
	CreateChecker(mgr systemd.Manager) checker.Checker
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	ProcRoot       string
	DiskMount      string
	CPUCachePath   string
	ServiceManager config.ServiceManager
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithConfig takes paths and the service manager backend from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(f *DefaultFactory) {
		if cfg == nil {
			return
		}
		f.ProcRoot = cfg.ProcRoot
		f.DiskMount = cfg.DiskMount
		f.CPUCachePath = cfg.CPUCachePath
		f.ServiceManager = cfg.ServiceManager
	}
}

// WithServiceManager selects the service manager backend.
func WithServiceManager(kind config.ServiceManager) Option {
	return func(f *DefaultFactory) {
		f.ServiceManager = kind
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		ProcRoot:       defaults.ProcRoot,
		DiskMount:      defaults.DiskMount,
		CPUCachePath:   defaults.CPUCachePath,
		ServiceManager: config.ServiceManagerAuto,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateHostCollector creates the procfs/statfs backed host collector.
func (f *DefaultFactory) CreateHostCollector() HostCollector {
	return host.NewCollector(f.ProcRoot, f.DiskMount, f.CPUCachePath)
}

// CreateServiceManager connects to the configured service manager backend.
func (f *DefaultFactory) CreateServiceManager(ctx context.Context) systemd.Manager {
	return systemd.New(ctx, f.ServiceManager)
}

// CreateChecker creates the kind-dispatching checker registry.
func (f *DefaultFactory) CreateChecker(mgr systemd.Manager) checker.Checker {
	return checker.NewDefaultRegistry(mgr)
}
