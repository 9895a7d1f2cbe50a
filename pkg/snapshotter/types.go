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

package snapshotter

import (
	"context"

	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// Snapshotter collects and publishes one snapshot.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// Snapshot is the published document.
type Snapshot struct {
	// Timestamp is the UTC collection time in RFC 3339.
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// System holds the host metrics.
	System measurement.SystemMetrics `json:"system" yaml:"system"`

	// Services lists required services, installed optional services, apps
	// and websites, in that order.
	Services []measurement.ServiceStatus `json:"services" yaml:"services"`
}

// NewSnapshot returns a snapshot with an empty, non-nil services list.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Services: make([]measurement.ServiceStatus, 0),
	}
}
