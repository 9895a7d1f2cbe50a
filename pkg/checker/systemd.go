package checker

import (
	"context"
	"log/slog"
	"time"

	"github.com/cortana-monitor/cortana/pkg/collector/systemd"
	"github.com/cortana-monitor/cortana/pkg/config"
	"github.com/cortana-monitor/cortana/pkg/defaults"
	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// SystemdChecker asks the service manager whether a unit is active and, if
// so, for how long.
type SystemdChecker struct {
	Manager systemd.Manager
	Timeout time.Duration
	now     func() time.Time
}

// NewSystemdChecker returns a checker bounded by defaults.ServiceQueryTimeout
// per query.
func NewSystemdChecker(mgr systemd.Manager) *SystemdChecker {
	return &SystemdChecker{
		Manager: mgr,
		Timeout: defaults.ServiceQueryTimeout,
		now:     time.Now,
	}
}

// Check reports running, stopped or unknown for the unit named by sc.
func (c *SystemdChecker) Check(ctx context.Context, sc config.ServiceCheck) measurement.ServiceStatus {
	state, err := c.activeState(ctx, sc.Name)
	if err != nil {
		code := cerrors.CodeOf(err)
		switch code {
		case cerrors.ErrCodeTimeout, cerrors.ErrCodeUnavailable, cerrors.ErrCodeNotFound:
			slog.Debug("service state undeterminable",
				slog.String("name", sc.Name),
				slog.String("code", string(code)),
				slog.String("error", err.Error()))
		default:
			slog.Warn("service state query failed",
				slog.String("name", sc.Name),
				slog.String("error", err.Error()))
		}
		return measurement.Unknown(sc.Name)
	}

	if state != systemd.StateActive {
		slog.Debug("service not active", slog.String("name", sc.Name), slog.String("state", state))
		return measurement.Stopped(sc.Name)
	}

	return measurement.Running(sc.Name, c.uptime(ctx, sc.Name))
}

func (c *SystemdChecker) activeState(ctx context.Context, name string) (string, error) {
	qctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()
	return c.Manager.ActiveState(qctx, name)
}

// uptime returns "" when the start time cannot be determined.
func (c *SystemdChecker) uptime(ctx context.Context, name string) string {
	qctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	since, err := c.Manager.ActiveSince(qctx, name)
	if err != nil {
		slog.Debug("service uptime unavailable", slog.String("name", name), slog.String("error", err.Error()))
		return ""
	}

	elapsed := c.now().Sub(since)
	if since.IsZero() || elapsed < 0 {
		slog.Debug("service start time out of range", slog.String("name", name), slog.Time("since", since))
		return ""
	}
	return FormatUptime(elapsed)
}
