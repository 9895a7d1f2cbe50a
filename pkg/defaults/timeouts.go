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

package defaults

import "time"

// Service manager timeouts.
const (
	// ServiceQueryTimeout bounds each single query to the service manager
	// (is-active, active-since, list-unit-files).
	ServiceQueryTimeout = 5 * time.Second

	// CommandWaitDelay bounds how long a finished or killed systemctl may
	// keep its output pipe open through a leftover child.
	CommandWaitDelay = 1 * time.Second
)

// Probe timeouts for liveness checks.
const (
	// PortProbeTimeout is the TCP connect timeout for port checks.
	PortProbeTimeout = 2 * time.Second

	// HTTPProbeTimeout is the total timeout for an HTTP check.
	HTTPProbeTimeout = 5 * time.Second

	// HTTPConnectTimeout is the timeout for establishing probe connections.
	HTTPConnectTimeout = 3 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for the probe TLS handshake.
	HTTPTLSHandshakeTimeout = 3 * time.Second
)

// CLI timeouts.
const (
	// CLICollectTimeout caps a whole invocation. With the default fan-out of
	// one, the worst case is roughly checks x ServiceQueryTimeout.
	CLICollectTimeout = 5 * time.Minute
)
