package systemd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/cortana-monitor/cortana/pkg/defaults"
	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
)

// systemctl is-active exits 4 for units it does not know.
const exitNoSuchUnit = 4

// timestampLayouts are tried in order. Fractional seconds are accepted by
// time.Parse even when the layout omits them.
var timestampLayouts = []string{
	"Mon 2006-01-02 15:04:05 MST",
	"Mon 2006-01-02 15:04:05",
}

// runFunc executes a command and returns its stdout and exit code. A non-zero
// exit is not an error; failing to run at all is.
type runFunc func(ctx context.Context, name string, args ...string) (string, int, error)

// SystemctlManager shells out to systemctl.
type SystemctlManager struct {
	Binary string
	run    runFunc
}

// NewSystemctlManager returns a manager that runs systemctl from PATH.
func NewSystemctlManager() *SystemctlManager {
	return &SystemctlManager{Binary: "systemctl", run: execCommand}
}

func execCommand(ctx context.Context, name string, args ...string) (string, int, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.WaitDelay = defaults.CommandWaitDelay

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), -1, ctxErr
	}
	// the command exited cleanly, only a leftover child held the pipe
	if errors.Is(err, exec.ErrWaitDelay) {
		return stdout.String(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return "", -1, err
	}
	return stdout.String(), 0, nil
}

// ActiveState runs "systemctl is-active". Non-active units exit non-zero but
// still print their state, which is a valid answer.
func (m *SystemctlManager) ActiveState(ctx context.Context, unit string) (string, error) {
	out, code, err := m.run(ctx, m.Binary, "is-active", unit)
	if err != nil {
		return "", classify(ctx, "is-active", unit, err)
	}
	if code == exitNoSuchUnit {
		return "", cerrors.NewWithContext(cerrors.ErrCodeNotFound, "unit not found", map[string]any{"unit": unit})
	}

	state := strings.TrimSpace(out)
	if state == "" {
		return "", cerrors.NewWithContext(cerrors.ErrCodeInternal, "empty is-active answer",
			map[string]any{"unit": unit, "exitCode": code})
	}
	return state, nil
}

// ActiveSince runs "systemctl show --property=ActiveEnterTimestamp".
func (m *SystemctlManager) ActiveSince(ctx context.Context, unit string) (time.Time, error) {
	out, code, err := m.run(ctx, m.Binary, "show", unit, "--property=ActiveEnterTimestamp")
	if err != nil {
		return time.Time{}, classify(ctx, "active-since", unit, err)
	}
	if code != 0 {
		return time.Time{}, cerrors.NewWithContext(cerrors.ErrCodeInternal, "systemctl show failed",
			map[string]any{"unit": unit, "exitCode": code})
	}

	_, value, _ := strings.Cut(strings.TrimSpace(out), "=")
	ts, err := ParseTimestamp(value)
	if err != nil {
		return time.Time{}, cerrors.WrapWithContext(cerrors.ErrCodeInternal, "unparsable ActiveEnterTimestamp", err,
			map[string]any{"unit": unit})
	}
	return ts, nil
}

// UnitExists runs "systemctl list-unit-files <unit>". systemctl exits 1 when
// nothing matched, so the listing decides.
func (m *SystemctlManager) UnitExists(ctx context.Context, unit string) (bool, error) {
	out, _, err := m.run(ctx, m.Binary, "list-unit-files", UnitName(unit))
	if err != nil {
		return false, classify(ctx, "list-unit-files", unit, err)
	}
	return UnitListed(out, unit), nil
}

// Close is a no-op.
func (m *SystemctlManager) Close() error { return nil }

// ParseTimestamp parses systemd's human readable timestamp, e.g.
// "Mon 2024-01-15 10:30:00 UTC", in the local time zone.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "n/a" {
		return time.Time{}, fmt.Errorf("timestamp not set: %q", s)
	}

	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// UnitListed reports whether a list-unit-files listing has a row whose first
// column is unit or unit.service.
func UnitListed(listing, unit string) bool {
	want := UnitName(unit)
	sc := bufio.NewScanner(strings.NewReader(listing))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == unit || fields[0] == want {
			return true
		}
	}
	return false
}
