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

package collector

import (
	"context"
	"testing"

	"github.com/cortana-monitor/cortana/pkg/checker"
	"github.com/cortana-monitor/cortana/pkg/collector/host"
	"github.com/cortana-monitor/cortana/pkg/collector/systemd"
	"github.com/cortana-monitor/cortana/pkg/config"
)

func TestNewDefaultFactory_Defaults(t *testing.T) {
	f := NewDefaultFactory()

	if f.ProcRoot != "/proc" {
		t.Errorf("ProcRoot = %q, want /proc", f.ProcRoot)
	}
	if f.DiskMount != "/" {
		t.Errorf("DiskMount = %q, want /", f.DiskMount)
	}
	if f.ServiceManager != config.ServiceManagerAuto {
		t.Errorf("ServiceManager = %q, want auto", f.ServiceManager)
	}
}

func TestNewDefaultFactory_WithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ProcRoot = "/host/proc"
	cfg.DiskMount = "/data"
	cfg.CPUCachePath = "/run/cortana/cpu"
	cfg.ServiceManager = config.ServiceManagerSystemctl

	f := NewDefaultFactory(WithConfig(cfg))

	col := f.CreateHostCollector()
	hc, ok := col.(*host.Collector)
	if !ok {
		t.Fatalf("expected *host.Collector, got %T", col)
	}
	if hc.ProcRoot != "/host/proc" || hc.DiskMount != "/data" {
		t.Errorf("unexpected collector paths: %q %q", hc.ProcRoot, hc.DiskMount)
	}
	if hc.CPU.Store().Path() != "/run/cortana/cpu" {
		t.Errorf("cpu cache path = %q", hc.CPU.Store().Path())
	}
}

func TestNewDefaultFactory_WithNilConfig(t *testing.T) {
	f := NewDefaultFactory(WithConfig(nil))
	if f.ProcRoot != "/proc" {
		t.Errorf("nil config must keep defaults, got %q", f.ProcRoot)
	}
}

func TestDefaultFactory_CreateServiceManager(t *testing.T) {
	f := NewDefaultFactory(WithServiceManager(config.ServiceManagerSystemctl))

	mgr := f.CreateServiceManager(context.TODO())
	defer mgr.Close()

	if _, ok := mgr.(*systemd.SystemctlManager); !ok {
		t.Errorf("expected *systemd.SystemctlManager, got %T", mgr)
	}
}

func TestDefaultFactory_CreateChecker(t *testing.T) {
	f := NewDefaultFactory(WithServiceManager(config.ServiceManagerSystemctl))

	c := f.CreateChecker(systemd.NewSystemctlManager())
	if _, ok := c.(*checker.Registry); !ok {
		t.Errorf("expected *checker.Registry, got %T", c)
	}
}
