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

// Package collector wires the data sources of a snapshot.
//
// # Overview
//
// A snapshot has two halves: host metrics and service liveness. The
// subpackages provide the sources:
//
//   - host: CPU, memory, swap, disk, load and uptime from procfs and statfs
//   - systemd: the service manager query interface (D-Bus or systemctl)
//   - file: line and field readers for kernel counter files
//
// # Factory Pattern
//
// The Factory interface abstracts construction so the snapshotter can be
// tested with fakes:
//
//	type Factory interface {
//	    CreateHostCollector() HostCollector
//	    CreateServiceManager(ctx context.Context) systemd.Manager
//	    CreateChecker(mgr systemd.Manager) checker.Checker
//	}
//
// DefaultFactory builds production implementations from the configuration:
//
//	factory := collector.NewDefaultFactory(collector.WithConfig(cfg))
//	metrics := factory.CreateHostCollector().Collect(ctx)
//
// # Graceful Degradation
//
// Host collectors never return errors. A source that cannot be read yields
// the zero value of its reading and a warning in the log, so one broken
// counter file never costs the rest of the snapshot.
package collector
