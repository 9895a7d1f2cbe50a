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

// Package defaults provides centralized configuration constants for the monitor.
//
// This package defines timeout values and well-known paths used across the
// codebase. Centralizing these values ensures consistency and makes tuning
// easier.
//
// # Timeout Categories
//
//   - Service manager timeouts: one bound per query to systemd
//   - Probe timeouts: TCP connect and HTTP request bounds
//   - CLI timeouts: an upper bound on a whole invocation
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ServiceQueryTimeout)
//	defer cancel()
//
// Every check that can block carries its own bound so one unresponsive
// dependency delays the snapshot by at most that bound.
package defaults
