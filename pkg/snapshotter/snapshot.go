package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cortana-monitor/cortana/pkg/checker"
	"github.com/cortana-monitor/cortana/pkg/collector"
	"github.com/cortana-monitor/cortana/pkg/collector/systemd"
	"github.com/cortana-monitor/cortana/pkg/config"
	"github.com/cortana-monitor/cortana/pkg/measurement"
	"github.com/cortana-monitor/cortana/pkg/serializer"
)

// Assembler builds a snapshot from the host collector and the configured
// checks, and publishes it.
type Assembler struct {
	// Config lists what to check. If nil, config.Default() is used.
	Config *config.Config

	// Factory is the collector factory to use. If nil, the default factory
	// built from Config is used.
	Factory collector.Factory

	// Serializer is the serializer to use for output. If nil, the document is
	// published atomically at Config.OutputPath.
	Serializer serializer.Serializer

	now func() time.Time
}

var _ Snapshotter = (*Assembler)(nil)

// NewAssembler returns an assembler for cfg with default dependencies.
func NewAssembler(cfg *config.Config) *Assembler {
	return &Assembler{Config: cfg}
}

func (a *Assembler) init() {
	if a.Config == nil {
		a.Config = config.Default()
	}
	if a.Factory == nil {
		a.Factory = collector.NewDefaultFactory(collector.WithConfig(a.Config))
	}
	if a.now == nil {
		a.now = time.Now
	}
}

// Measure assembles a snapshot and hands it to the serializer.
func (a *Assembler) Measure(ctx context.Context) error {
	a.init()
	if a.Serializer == nil {
		a.Serializer = serializer.NewFileWriterOrStdout(serializer.Format(a.Config.Format), a.Config.OutputPath)
	}

	snap := a.Assemble(ctx)

	// the collection deadline does not apply to publishing a finished snapshot
	if err := a.Serializer.Serialize(context.WithoutCancel(ctx), snap); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	return nil
}

// Assemble collects host metrics and runs every check. It always returns a
// complete snapshot; failures surface as zero readings or unknown statuses.
func (a *Assembler) Assemble(ctx context.Context) *Snapshot {
	a.init()

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	snap := NewSnapshot()
	snap.Timestamp = a.now().UTC().Format(time.RFC3339)

	hostStart := time.Now()
	snap.System = a.Factory.CreateHostCollector().Collect(ctx)
	snapshotCollectorDuration.WithLabelValues("host").Observe(time.Since(hostStart).Seconds())
	recordSystem(snap.System)

	svcStart := time.Now()
	mgr := a.Factory.CreateServiceManager(ctx)
	defer func() {
		if err := mgr.Close(); err != nil {
			slog.Debug("failed to close service manager", slog.String("error", err.Error()))
		}
	}()

	plan := a.plan(ctx, mgr)
	snap.Services = a.runChecks(ctx, a.Factory.CreateChecker(mgr), plan)
	snapshotCollectorDuration.WithLabelValues("services").Observe(time.Since(svcStart).Seconds())
	snapshotServiceCount.Set(float64(len(snap.Services)))

	slog.Debug("snapshot assembled",
		slog.Int("services", len(snap.Services)),
		slog.Duration("duration", time.Since(start)))

	return snap
}

// plan lists the checks in publish order. Optional systemd units are only
// included when the service manager knows them.
func (a *Assembler) plan(ctx context.Context, mgr systemd.Manager) []config.ServiceCheck {
	cfg := a.Config
	out := make([]config.ServiceCheck, 0,
		len(cfg.Services)+len(cfg.OptionalServices)+len(cfg.Apps)+len(cfg.Websites))

	out = append(out, cfg.Services...)
	for _, sc := range cfg.OptionalServices {
		if sc.Kind == config.KindSystemd && !checker.Exists(ctx, mgr, sc.Name) {
			slog.Debug("optional service not installed", slog.String("name", sc.Name))
			continue
		}
		out = append(out, sc)
	}
	out = append(out, cfg.Apps...)
	out = append(out, cfg.Websites...)
	return out
}

// runChecks runs plan through chk. With Concurrency above one the checks run
// in parallel; each result is stored at its plan index, so the order matches
// the sequential path.
func (a *Assembler) runChecks(ctx context.Context, chk checker.Checker, plan []config.ServiceCheck) []measurement.ServiceStatus {
	results := make([]measurement.ServiceStatus, len(plan))

	if a.Config.Concurrency <= 1 {
		for i, sc := range plan {
			results[i] = check(ctx, chk, sc)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(a.Config.Concurrency)
	for i, sc := range plan {
		g.Go(func() error {
			results[i] = check(ctx, chk, sc)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func check(ctx context.Context, chk checker.Checker, sc config.ServiceCheck) measurement.ServiceStatus {
	start := time.Now()
	s := chk.Check(ctx, sc)
	checkDuration.WithLabelValues(sc.Kind.String()).Observe(time.Since(start).Seconds())

	if s.Name != sc.Name || !s.Status.IsValid() {
		slog.Warn("checker returned malformed status",
			slog.String("name", sc.Name),
			slog.String("status", s.Status.String()))
		s = measurement.Unknown(sc.Name)
	}
	if s.Status != measurement.StatusRunning {
		s.Uptime = nil
	}

	checkResults.WithLabelValues(sc.Kind.String(), s.Status.String()).Inc()
	recordService(s)
	slog.Debug("check complete",
		slog.String("name", sc.Name),
		slog.String("type", sc.Kind.String()),
		slog.String("status", s.Status.String()))
	return s
}
