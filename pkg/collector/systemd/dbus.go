package systemd

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"

	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
)

const loadStateNotFound = "not-found"

// DBusManager queries systemd over the system bus.
type DBusManager struct {
	conn *dbus.Conn
}

// NewDBusManager connects to the system bus.
func NewDBusManager(ctx context.Context) (*DBusManager, error) {
	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	return &DBusManager{conn: conn}, nil
}

// ActiveState reads LoadState and ActiveState of the unit. A unit systemd
// could not load is reported as NOT_FOUND.
func (m *DBusManager) ActiveState(ctx context.Context, unit string) (string, error) {
	name := UnitName(unit)
	props, err := m.conn.GetUnitPropertiesContext(ctx, name)
	if err != nil {
		return "", classify(ctx, "is-active", name, err)
	}

	if load, _ := props["LoadState"].(string); load == loadStateNotFound {
		return "", cerrors.NewWithContext(cerrors.ErrCodeNotFound, "unit not found", map[string]any{"unit": name})
	}

	state, ok := props["ActiveState"].(string)
	if !ok {
		return "", cerrors.NewWithContext(cerrors.ErrCodeInternal, "ActiveState missing or not a string",
			map[string]any{"unit": name})
	}
	return state, nil
}

// ActiveSince reads ActiveEnterTimestamp, microseconds since the epoch.
// Zero means the unit never entered the active state.
func (m *DBusManager) ActiveSince(ctx context.Context, unit string) (time.Time, error) {
	name := UnitName(unit)
	p, err := m.conn.GetUnitPropertyContext(ctx, name, "ActiveEnterTimestamp")
	if err != nil {
		return time.Time{}, classify(ctx, "active-since", name, err)
	}

	usec, ok := p.Value.Value().(uint64)
	if !ok || usec == 0 {
		return time.Time{}, cerrors.NewWithContext(cerrors.ErrCodeInternal, "ActiveEnterTimestamp not set",
			map[string]any{"unit": name, "value": p.Value.String()})
	}
	return time.UnixMicro(int64(usec)), nil
}

// UnitExists lists unit files matching the unit name.
func (m *DBusManager) UnitExists(ctx context.Context, unit string) (bool, error) {
	name := UnitName(unit)
	files, err := m.conn.ListUnitFilesByPatternsContext(ctx, nil, []string{name})
	if err != nil {
		return false, classify(ctx, "list-unit-files", name, err)
	}
	return len(files) > 0, nil
}

// Close closes the bus connection.
func (m *DBusManager) Close() error {
	m.conn.Close()
	return nil
}
