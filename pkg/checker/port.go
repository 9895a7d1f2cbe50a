package checker

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/cortana-monitor/cortana/pkg/config"
	"github.com/cortana-monitor/cortana/pkg/defaults"
	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// PortChecker reports running when a TCP connection to the port succeeds.
type PortChecker struct {
	Timeout time.Duration
}

// NewPortChecker returns a checker with defaults.PortProbeTimeout.
func NewPortChecker() *PortChecker {
	return &PortChecker{Timeout: defaults.PortProbeTimeout}
}

// Check dials sc.Host (loopback when empty) on sc.Port.
func (c *PortChecker) Check(ctx context.Context, sc config.ServiceCheck) measurement.ServiceStatus {
	if sc.Port < 1 || sc.Port > 65535 {
		slog.Debug("port check without a usable port", slog.String("name", sc.Name), slog.Int("port", sc.Port))
		return measurement.Stopped(sc.Name)
	}

	host := sc.Host
	if host == "" {
		host = defaults.LoopbackHost
	}
	addr := net.JoinHostPort(host, strconv.Itoa(sc.Port))

	d := net.Dialer{Timeout: c.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		slog.Debug("port closed", slog.String("name", sc.Name), slog.String("addr", addr), slog.String("error", err.Error()))
		return measurement.Stopped(sc.Name)
	}
	_ = conn.Close()

	return measurement.Running(sc.Name, "")
}
