package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/var/www/cortana/stats.json", cfg.OutputPath)
	assert.Equal(t, "/", cfg.DiskMount)
	assert.Len(t, cfg.Services, 2)
	assert.Len(t, cfg.OptionalServices, 3)
	assert.Len(t, cfg.Apps, 2)
	assert.Len(t, cfg.Websites, 1)
	assert.Equal(t, KindHTTP, cfg.Websites[0].Kind)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
output_path: /srv/stats.json
disk_mount: /data
concurrency: 4
service_manager: systemctl
services:
  - name: caddy
optional_services: []
apps:
  - name: api
    port: 9000
  - name: health
    type: http
    url: http://127.0.0.1:9000/healthz
websites:
  - name: blog
    url: https://example.com
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/stats.json", cfg.OutputPath)
	assert.Equal(t, "/data", cfg.DiskMount)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, ServiceManagerSystemctl, cfg.ServiceManager)
	assert.Equal(t, []ServiceCheck{{Name: "caddy", Kind: KindSystemd}}, cfg.Services)
	assert.Empty(t, cfg.OptionalServices)
	assert.Equal(t, KindPort, cfg.Apps[0].Kind)
	assert.Equal(t, KindHTTP, cfg.Apps[1].Kind)
	assert.Equal(t, KindHTTP, cfg.Websites[0].Kind)

	// untouched fields keep defaults
	assert.Equal(t, "/tmp/cortana_cpu_cache", cfg.CPUCachePath)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	want := Default()
	want.Services, want.OptionalServices, want.Apps, want.Websites = nil, nil, nil, nil
	assert.Equal(t, want, cfg)
}

func TestParse_ListsReplaceBuiltins(t *testing.T) {
	cfg, err := Parse([]byte("services:\n  - name: myapp\n"))
	require.NoError(t, err)

	assert.Equal(t, []ServiceCheck{{Name: "myapp", Kind: KindSystemd}}, cfg.Services)
	assert.Empty(t, cfg.OptionalServices)
	assert.Empty(t, cfg.Apps)
	assert.Empty(t, cfg.Websites)
	assert.Equal(t, "/var/www/cortana/stats.json", cfg.OutputPath)
}

func TestParse_UncheckableEntriesAreKept(t *testing.T) {
	cfg, err := Parse([]byte(`
apps:
  - name: strong
  - name: rpc
    type: grpc
websites:
  - name: travels
`))
	require.NoError(t, err)
	require.Len(t, cfg.Apps, 2)
	assert.Equal(t, KindPort, cfg.Apps[0].Kind)
	assert.Equal(t, CheckKind("grpc"), cfg.Apps[1].Kind)

	problems := cfg.Problems()
	require.Len(t, problems, 3)
	assert.Contains(t, problems[0].Error(), "apps[0]")
	assert.Contains(t, problems[1].Error(), "apps[1]")
	assert.Contains(t, problems[2].Error(), "websites[0]")
	for _, p := range problems {
		assert.True(t, cerrors.IsCode(p, cerrors.ErrCodeInvalidRequest))
	}
}

func TestParse_EmptyNameIsFatal(t *testing.T) {
	_, err := Parse([]byte("apps:\n  - port: 8000\n"))
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidRequest))
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("bogus: true\n"))
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidRequest))
}

func TestParse_HistoryAccepted(t *testing.T) {
	cfg, err := Parse([]byte("history_file: /tmp/h.json\nhistory_max_points: 24\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.HistoryMaxPoints)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		wantProblem bool
	}{
		{"default", func(c *Config) {}, false, false},
		{"empty output", func(c *Config) { c.OutputPath = " " }, true, false},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, true, false},
		{"bad manager", func(c *Config) { c.ServiceManager = "upstart" }, true, false},
		{"empty name", func(c *Config) { c.Services[0].Name = "" }, true, true},
		{"port out of range", func(c *Config) { c.Apps[0].Port = 70000 }, false, true},
		{"port missing", func(c *Config) { c.Apps[0].Port = 0 }, false, true},
		{"http without url", func(c *Config) { c.Websites[0].URL = "" }, false, true},
		{"unknown kind", func(c *Config) { c.Apps[0].Kind = "ping" }, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantProblem, len(cfg.Problems()) > 0)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cortana.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_path: /tmp/out.json\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out.json", cfg.OutputPath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCheckKind_IsValid(t *testing.T) {
	assert.True(t, KindSystemd.IsValid())
	assert.True(t, KindPort.IsValid())
	assert.True(t, KindHTTP.IsValid())
	assert.False(t, CheckKind("icmp").IsValid())
}
