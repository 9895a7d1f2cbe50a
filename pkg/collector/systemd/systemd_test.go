package systemd

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortana-monitor/cortana/pkg/config"
	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
)

type call struct {
	out  string
	code int
	err  error
}

// scripted returns a manager whose runner answers from calls keyed by the
// systemctl subcommand.
func scripted(calls map[string]call) (*SystemctlManager, *[][]string) {
	var seen [][]string
	m := &SystemctlManager{
		Binary: "systemctl",
		run: func(_ context.Context, name string, args ...string) (string, int, error) {
			seen = append(seen, append([]string{name}, args...))
			c := calls[args[0]]
			return c.out, c.code, c.err
		},
	}
	return m, &seen
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "nginx.service", UnitName("nginx"))
	assert.Equal(t, "nginx.service", UnitName("nginx.service"))
	assert.Equal(t, "backup.timer", UnitName("backup.timer"))
}

func TestSystemctl_ActiveState(t *testing.T) {
	tests := []struct {
		name     string
		call     call
		want     string
		wantCode cerrors.ErrorCode
	}{
		{name: "active", call: call{out: "active\n"}, want: "active"},
		{name: "inactive exits non-zero", call: call{out: "inactive\n", code: 3}, want: "inactive"},
		{name: "failed", call: call{out: "failed\n", code: 3}, want: "failed"},
		{name: "no such unit", call: call{out: "inactive\n", code: 4}, wantCode: cerrors.ErrCodeNotFound},
		{name: "empty answer", call: call{code: 1}, wantCode: cerrors.ErrCodeInternal},
		{name: "binary missing", call: call{err: exec.ErrNotFound}, wantCode: cerrors.ErrCodeUnavailable},
		{name: "deadline", call: call{err: context.DeadlineExceeded}, wantCode: cerrors.ErrCodeTimeout},
		{name: "other failure", call: call{err: errors.New("boom")}, wantCode: cerrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, seen := scripted(map[string]call{"is-active": tt.call})
			got, err := m.ActiveState(context.Background(), "nginx")
			assert.Equal(t, []string{"systemctl", "is-active", "nginx"}, (*seen)[0])
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, cerrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemctl_ActiveStateHonorsExpiredContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	m, _ := scripted(map[string]call{"is-active": {err: errors.New("signal: killed")}})
	_, err := m.ActiveState(ctx, "nginx")
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeTimeout))
}

func TestSystemctl_ActiveSince(t *testing.T) {
	m, seen := scripted(map[string]call{
		"show": {out: "ActiveEnterTimestamp=Mon 2024-01-15 10:30:00 UTC\n"},
	})
	got, err := m.ActiveSince(context.Background(), "nginx")
	require.NoError(t, err)
	assert.Equal(t, []string{"systemctl", "show", "nginx", "--property=ActiveEnterTimestamp"}, (*seen)[0])
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)), got.String())

	for name, c := range map[string]call{
		"never active": {out: "ActiveEnterTimestamp=\n"},
		"n/a":          {out: "ActiveEnterTimestamp=n/a\n"},
		"garbage":      {out: "ActiveEnterTimestamp=yesterday\n"},
		"exit code":    {out: "", code: 1},
	} {
		t.Run(name, func(t *testing.T) {
			m, _ := scripted(map[string]call{"show": c})
			_, err := m.ActiveSince(context.Background(), "nginx")
			assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInternal), "%v", err)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("Tue 2024-03-05 08:09:10.123456 UTC")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 8, 9, 10, 123456000, time.UTC)), got.String())

	got, err = ParseTimestamp("Tue 2024-03-05 08:09:10")
	require.NoError(t, err)
	assert.Equal(t, time.Local, got.Location())
	assert.Equal(t, 8, got.Hour())

	_, err = ParseTimestamp("  ")
	assert.Error(t, err)
}

func TestUnitListed(t *testing.T) {
	listing := `UNIT FILE          STATE   VENDOR PRESET
redis-server.service enabled enabled
fail2ban.service   enabled enabled

2 unit files listed.
`
	assert.True(t, UnitListed(listing, "fail2ban"))
	assert.True(t, UnitListed(listing, "fail2ban.service"))
	assert.True(t, UnitListed(listing, "redis-server"))
	assert.False(t, UnitListed(listing, "redis"))
	assert.False(t, UnitListed(listing, "postgresql"))
	assert.False(t, UnitListed("0 unit files listed.\n", "postgresql"))
	assert.False(t, UnitListed("", "nginx"))
}

func TestSystemctl_UnitExists(t *testing.T) {
	m, seen := scripted(map[string]call{
		"list-unit-files": {out: "UNIT FILE STATE\nredis.service enabled\n\n1 unit files listed.\n"},
	})
	ok, err := m.UnitExists(context.Background(), "redis")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"systemctl", "list-unit-files", "redis.service"}, (*seen)[0])

	m, _ = scripted(map[string]call{"list-unit-files": {out: "0 unit files listed.\n", code: 1}})
	ok, err = m.UnitExists(context.Background(), "postgresql")
	require.NoError(t, err)
	assert.False(t, ok)

	m, _ = scripted(map[string]call{"list-unit-files": {err: exec.ErrNotFound}})
	_, err = m.UnitExists(context.Background(), "redis")
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeUnavailable))
}

func TestExecCommand(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, code, err := execCommand(context.Background(), "sh", "-c", "echo inactive; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Equal(t, "inactive\n", out)

	_, _, err = execCommand(context.Background(), "definitely-not-a-binary-on-path")
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestExecCommand_LeftoverChildDoesNotBlock(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	start := time.Now()
	out, code, err := execCommand(context.Background(), "sh", "-c", "sleep 5 & echo active")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "active\n", out)
	assert.Less(t, time.Since(start), 4*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start = time.Now()
	_, _, err = execCommand(ctx, "sh", "-c", "sleep 5 & sleep 5")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestUnavailableManager(t *testing.T) {
	m := &unavailableManager{err: errors.New("no bus")}
	ctx := context.Background()

	_, err := m.ActiveState(ctx, "nginx")
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeUnavailable))
	_, err = m.ActiveSince(ctx, "nginx")
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeUnavailable))
	_, err = m.UnitExists(ctx, "nginx")
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeUnavailable))
	assert.NoError(t, m.Close())
}

func TestNew_Systemctl(t *testing.T) {
	m := New(context.Background(), config.ServiceManagerSystemctl)
	_, ok := m.(*SystemctlManager)
	assert.True(t, ok)
}
