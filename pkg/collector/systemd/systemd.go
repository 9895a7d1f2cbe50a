// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package systemd

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/cortana-monitor/cortana/pkg/config"
	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
)

// StateActive is the ActiveState of a running unit.
const StateActive = "active"

// Manager is the query surface the liveness checks need from the service
// manager. Every method is bounded by ctx. Errors carry a structured code:
// TIMEOUT when ctx expired, SERVICE_UNAVAILABLE when the tool or bus is
// missing, NOT_FOUND when the unit is not defined, INTERNAL otherwise.
type Manager interface {
	// ActiveState returns the unit's active state ("active", "inactive",
	// "failed", ...).
	ActiveState(ctx context.Context, unit string) (string, error)

	// ActiveSince returns when the unit last entered the active state.
	ActiveSince(ctx context.Context, unit string) (time.Time, error)

	// UnitExists reports whether a unit file is registered for unit.
	UnitExists(ctx context.Context, unit string) (bool, error)

	// Close releases the connection, if any.
	Close() error
}

// UnitName appends ".service" to bare names.
func UnitName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".service"
}

// New returns the backend selected by kind. auto prefers D-Bus and falls back
// to systemctl when the system bus is unreachable. A dbus backend that cannot
// connect answers every query with SERVICE_UNAVAILABLE.
func New(ctx context.Context, kind config.ServiceManager) Manager {
	switch kind {
	case config.ServiceManagerSystemctl:
		return NewSystemctlManager()
	case config.ServiceManagerDBus:
		m, err := NewDBusManager(ctx)
		if err != nil {
			slog.Warn("systemd bus unavailable", slog.String("error", err.Error()))
			return &unavailableManager{err: err}
		}
		return m
	default:
		m, err := NewDBusManager(ctx)
		if err != nil {
			slog.Debug("systemd bus unavailable, using systemctl", slog.String("error", err.Error()))
			return NewSystemctlManager()
		}
		return m
	}
}

// classify attaches a structured code to a failed query.
func classify(ctx context.Context, op, unit string, err error) error {
	meta := map[string]any{"op": op, "unit": unit}
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return cerrors.WrapWithContext(cerrors.ErrCodeTimeout, op+" timed out", err, meta)
	case errors.Is(err, exec.ErrNotFound):
		return cerrors.WrapWithContext(cerrors.ErrCodeUnavailable, "service manager tool not found", err, meta)
	case cerrors.CodeOf(err) != "":
		return err
	default:
		return cerrors.WrapWithContext(cerrors.ErrCodeInternal, op+" failed", err, meta)
	}
}

// unavailableManager stands in when the configured backend cannot be reached.
type unavailableManager struct {
	err error
}

func (m *unavailableManager) fail(op string) error {
	return cerrors.Wrap(cerrors.ErrCodeUnavailable, op+": service manager unavailable", m.err)
}

func (m *unavailableManager) ActiveState(context.Context, string) (string, error) {
	return "", m.fail("is-active")
}

func (m *unavailableManager) ActiveSince(context.Context, string) (time.Time, error) {
	return time.Time{}, m.fail("active-since")
}

func (m *unavailableManager) UnitExists(context.Context, string) (bool, error) {
	return false, m.fail("list-unit-files")
}

func (m *unavailableManager) Close() error { return nil }
