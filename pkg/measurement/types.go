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

package measurement

import (
	"math"

	"k8s.io/utils/ptr"
)

// Unit divisors for converting raw counters into gigabytes.
const (
	KiBPerGiB  float64 = 1024 * 1024
	BytePerGiB float64 = 1024 * 1024 * 1024
)

// Status is the outcome of a liveness check.
type Status string

const (
	// StatusRunning means the check succeeded and the target is up.
	StatusRunning Status = "running"
	// StatusStopped means the check succeeded and the target is not up.
	StatusStopped Status = "stopped"
	// StatusUnknown means the check could not be performed.
	StatusUnknown Status = "unknown"
)

func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is one of the three defined statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusRunning, StatusStopped, StatusUnknown:
		return true
	default:
		return false
	}
}

// ServiceStatus is one entry of the snapshot's services list.
type ServiceStatus struct {
	Name   string  `json:"name" yaml:"name"`
	Status Status  `json:"status" yaml:"status"`
	Uptime *string `json:"uptime" yaml:"uptime"`
}

// Running returns a running status. An empty uptime is recorded as absent.
func Running(name, uptime string) ServiceStatus {
	s := ServiceStatus{Name: name, Status: StatusRunning}
	if uptime != "" {
		s.Uptime = ptr.To(uptime)
	}
	return s
}

// Stopped returns a stopped status.
func Stopped(name string) ServiceStatus {
	return ServiceStatus{Name: name, Status: StatusStopped}
}

// Unknown returns an unknown status.
func Unknown(name string) ServiceStatus {
	return ServiceStatus{Name: name, Status: StatusUnknown}
}

// Usage is a used/total pair in gigabytes with the derived percentage.
type Usage struct {
	UsedGB  float64 `json:"used_gb" yaml:"used_gb"`
	TotalGB float64 `json:"total_gb" yaml:"total_gb"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// NewUsage converts raw used/total counters expressed in units where
// perGiB units make one gigabyte. Used is clamped into [0, total]; sizes are
// rounded to 2 decimals and the percentage to 1.
func NewUsage(used, total int64, perGiB float64) Usage {
	if total <= 0 {
		return Usage{}
	}
	used = min(max(used, 0), total)

	return Usage{
		UsedGB:  Round(float64(used)/perGiB, 2),
		TotalGB: Round(float64(total)/perGiB, 2),
		Percent: Clamp(Round(float64(used)/float64(total)*100, 1), 0, 100),
	}
}

// SystemMetrics is the host block of a snapshot.
type SystemMetrics struct {
	CPUPercent  float64    `json:"cpu_percent" yaml:"cpu_percent"`
	Memory      Usage      `json:"memory" yaml:"memory"`
	Disk        Usage      `json:"disk" yaml:"disk"`
	LoadAverage [3]float64 `json:"load_average" yaml:"load_average"`
	UptimeDays  int        `json:"uptime_days" yaml:"uptime_days"`
	Swap        Usage      `json:"swap" yaml:"swap"`
}

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp bounds v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
