package checker

import (
	"context"
	"log/slog"

	"github.com/cortana-monitor/cortana/pkg/collector/systemd"
	"github.com/cortana-monitor/cortana/pkg/defaults"
)

// Exists reports whether the service manager knows a unit file for name.
// Any failure counts as absent.
func Exists(ctx context.Context, mgr systemd.Manager, name string) bool {
	qctx, cancel := context.WithTimeout(ctx, defaults.ServiceQueryTimeout)
	defer cancel()

	ok, err := mgr.UnitExists(qctx, name)
	if err != nil {
		slog.Debug("unit existence undeterminable", slog.String("name", name), slog.String("error", err.Error()))
		return false
	}
	return ok
}
