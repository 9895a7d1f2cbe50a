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

package host

import (
	"context"
	"log/slog"

	"github.com/cortana-monitor/cortana/pkg/collector/file"
	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// Collector gathers the system block of a snapshot.
type Collector struct {
	ProcRoot  string
	DiskMount string
	CPU       *CPUCollector

	parser *file.Parser
}

// NewCollector returns a collector over procRoot that reports the filesystem
// at diskMount and keeps CPU delta state in the file at cpuCachePath.
func NewCollector(procRoot, diskMount, cpuCachePath string) *Collector {
	return &Collector{
		ProcRoot:  procRoot,
		DiskMount: diskMount,
		CPU:       NewCPUCollector(procRoot, NewSampleStore(cpuCachePath)),
		parser:    file.NewParser(),
	}
}

// Collect samples every host metric. Each reading degrades to its zero value
// on failure; Collect itself never fails.
func (c *Collector) Collect(ctx context.Context) measurement.SystemMetrics {
	slog.Debug("collecting host metrics", slog.String("proc", c.ProcRoot), slog.String("mount", c.DiskMount))

	if c.parser == nil {
		c.parser = file.NewParser()
	}

	mem, swap := collectMemory(c.ProcRoot)

	m := measurement.SystemMetrics{
		CPUPercent:  c.CPU.Percent(),
		Memory:      mem,
		Disk:        collectDisk(c.DiskMount),
		LoadAverage: collectLoad(c.ProcRoot),
		UptimeDays:  collectUptimeDays(c.parser, c.ProcRoot),
		Swap:        swap,
	}

	if err := ctx.Err(); err != nil {
		slog.Warn("host metrics collected after context ended", slog.String("error", err.Error()))
	}
	return m
}
