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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cortana-monitor/cortana/pkg/defaults"
	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
)

// CheckKind selects the liveness strategy for a monitored unit.
type CheckKind string

const (
	// KindSystemd asks the service manager whether the unit is active.
	KindSystemd CheckKind = "systemd"
	// KindPort opens a TCP connection to host:port.
	KindPort CheckKind = "port"
	// KindHTTP issues a HEAD request to a URL.
	KindHTTP CheckKind = "http"
)

func (k CheckKind) String() string {
	return string(k)
}

// IsValid reports whether k names a known strategy.
func (k CheckKind) IsValid() bool {
	switch k {
	case KindSystemd, KindPort, KindHTTP:
		return true
	default:
		return false
	}
}

// ServiceManager selects the service manager backend.
type ServiceManager string

const (
	ServiceManagerAuto      ServiceManager = "auto"
	ServiceManagerDBus      ServiceManager = "dbus"
	ServiceManagerSystemctl ServiceManager = "systemctl"
)

// IsValid reports whether m names a known backend.
func (m ServiceManager) IsValid() bool {
	switch m {
	case ServiceManagerAuto, ServiceManagerDBus, ServiceManagerSystemctl:
		return true
	default:
		return false
	}
}

// ServiceCheck declares one monitored unit. Port applies to KindPort, URL to
// KindHTTP; Host optionally overrides the loopback target of a port check.
type ServiceCheck struct {
	Name string    `yaml:"name"`
	Kind CheckKind `yaml:"type"`
	Port int       `yaml:"port,omitempty"`
	Host string    `yaml:"host,omitempty"`
	URL  string    `yaml:"url,omitempty"`
}

// Config is the full monitor configuration.
type Config struct {
	OutputPath     string         `yaml:"output_path"`
	Format         string         `yaml:"format"`
	DiskMount      string         `yaml:"disk_mount"`
	ProcRoot       string         `yaml:"proc_root"`
	CPUCachePath   string         `yaml:"cpu_cache_path"`
	ServiceManager ServiceManager `yaml:"service_manager"`
	Concurrency    int            `yaml:"concurrency"`

	Services         []ServiceCheck `yaml:"services"`
	OptionalServices []ServiceCheck `yaml:"optional_services"`
	Apps             []ServiceCheck `yaml:"apps"`
	Websites         []ServiceCheck `yaml:"websites"`

	// History settings are accepted for compatibility with existing config
	// files. Nothing reads them.
	HistoryFile      string `yaml:"history_file,omitempty"`
	HistoryMaxPoints int    `yaml:"history_max_points,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputPath:     defaults.OutputPath,
		Format:         "json",
		DiskMount:      defaults.DiskMount,
		ProcRoot:       defaults.ProcRoot,
		CPUCachePath:   defaults.CPUCachePath,
		ServiceManager: ServiceManagerAuto,
		Concurrency:    1,
		Services: []ServiceCheck{
			{Name: "nginx", Kind: KindSystemd},
			{Name: "sshd", Kind: KindSystemd},
		},
		OptionalServices: []ServiceCheck{
			{Name: "fail2ban", Kind: KindSystemd},
			{Name: "redis", Kind: KindSystemd},
			{Name: "postgresql", Kind: KindSystemd},
		},
		Apps: []ServiceCheck{
			{Name: "strong", Kind: KindPort, Port: 8000},
			{Name: "flights", Kind: KindPort, Port: 8001},
		},
		Websites: []ServiceCheck{
			{Name: "travels", Kind: KindHTTP, URL: "https://travels.carlocarfora.co.uk"},
		},
		HistoryFile:      "/var/www/cortana/stats_history.json",
		HistoryMaxPoints: 168,
	}
}

// Load reads a YAML config file. Unknown keys are an error.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML and validates the result. Scalar settings the document
// omits keep their defaults. The check lists are taken from the document
// alone: a list it omits is empty.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	cfg.Services = nil
	cfg.OptionalServices = nil
	cfg.Apps = nil
	cfg.Websites = nil

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "failed to parse config", err)
	}

	cfg.applyKindDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyKindDefaults fills in the kind of entries that omit it: services are
// systemd units, apps are port checks, websites are http checks.
func (c *Config) applyKindDefaults() {
	fill := func(list []ServiceCheck, kind CheckKind) {
		for i := range list {
			if list[i].Kind == "" {
				list[i].Kind = kind
			}
		}
	}
	fill(c.Services, KindSystemd)
	fill(c.OptionalServices, KindSystemd)
	fill(c.Apps, KindPort)
	fill(c.Websites, KindHTTP)
}

// Validate checks the structural rules of the configuration. Entry level
// problems such as a missing port are not structural; see Problems.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputPath) == "" {
		return cerrors.New(cerrors.ErrCodeInvalidRequest, "output_path is required")
	}
	if c.Concurrency < 1 {
		return cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "concurrency must be at least 1",
			map[string]any{"concurrency": c.Concurrency})
	}
	if !c.ServiceManager.IsValid() {
		return cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "unknown service_manager",
			map[string]any{"service_manager": c.ServiceManager})
	}

	for _, g := range c.groups() {
		for i, sc := range g.checks {
			if strings.TrimSpace(sc.Name) == "" {
				return fmt.Errorf("%s[%d]: %w", g.name, i,
					cerrors.New(cerrors.ErrCodeInvalidRequest, "name is required"))
			}
		}
	}
	return nil
}

// Problems lists the entries that cannot be checked as declared. They are
// still published: a port or http entry without a target reports stopped and
// an unknown type reports unknown.
func (c *Config) Problems() []error {
	var out []error
	for _, g := range c.groups() {
		for i, sc := range g.checks {
			if err := sc.Validate(); err != nil {
				out = append(out, fmt.Errorf("%s[%d]: %w", g.name, i, err))
			}
		}
	}
	return out
}

type checkGroup struct {
	name   string
	checks []ServiceCheck
}

func (c *Config) groups() []checkGroup {
	return []checkGroup{
		{"services", c.Services},
		{"optional_services", c.OptionalServices},
		{"apps", c.Apps},
		{"websites", c.Websites},
	}
}

// Validate checks a single entry.
func (s ServiceCheck) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return cerrors.New(cerrors.ErrCodeInvalidRequest, "name is required")
	}
	ctx := map[string]any{"name": s.Name, "type": s.Kind}
	switch s.Kind {
	case KindSystemd:
	case KindPort:
		if s.Port < 1 || s.Port > 65535 {
			return cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "port must be in 1..65535", ctx)
		}
	case KindHTTP:
		if strings.TrimSpace(s.URL) == "" {
			return cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "url is required", ctx)
		}
	default:
		return cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "unknown check type", ctx)
	}
	return nil
}
