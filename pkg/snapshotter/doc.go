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

// Package snapshotter assembles and publishes host monitoring snapshots.
//
// # Overview
//
// One invocation produces one document:
//
//	{
//	  "timestamp": "2024-01-15T10:30:00Z",
//	  "system": {"cpu_percent": 12.5, "memory": {...}, "disk": {...},
//	             "load_average": [0.5, 0.4, 0.3], "uptime_days": 4, "swap": {...}},
//	  "services": [{"name": "nginx", "status": "running", "uptime": "1d 1h"}, ...]
//	}
//
// Services appear in a fixed order: required services, then optional
// services the service manager knows, then apps, then websites. Renderers
// rely on that grouping.
//
// # Usage
//
//	a := snapshotter.NewAssembler(cfg)
//	if err := a.Measure(ctx); err != nil {
//	    return err
//	}
//
// Assemble returns the snapshot without publishing it.
//
// # Concurrency
//
// With Config.Concurrency above one, checks run on an errgroup limited to
// that many goroutines. Each result lands in the slot of its position in the
// plan, so the published order never depends on completion order. Every
// check keeps its own timeout.
//
// # Failure Model
//
// Assemble never fails. Unreadable host sources yield zero readings and
// undeterminable checks yield "unknown". Only publishing can fail, and Measure
// returns that error.
//
// # Observability
//
// Prometheus metrics registered on the default registry:
//   - cortana_snapshot_collection_duration_seconds
//   - cortana_snapshot_collection_total{status}
//   - cortana_snapshot_collector_duration_seconds{collector}
//   - cortana_snapshot_services
//   - cortana_check_duration_seconds{type}
//   - cortana_check_results_total{type,status}
//   - cortana_service_up{name}
//   - cortana_system_usage_percent{resource}
//   - cortana_system_load_average{window}
package snapshotter
