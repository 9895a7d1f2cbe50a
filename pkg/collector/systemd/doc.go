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

// Package systemd queries the service manager for unit state.
//
// Two backends implement Manager:
//
//   - DBusManager talks to systemd on the system bus via go-systemd.
//   - SystemctlManager runs the systemctl binary (is-active, show,
//     list-unit-files).
//
// New picks one from config.ServiceManager. "auto" tries the bus first.
//
// # Usage
//
//	mgr := systemd.New(ctx, config.ServiceManagerAuto)
//	defer mgr.Close()
//
//	qctx, cancel := context.WithTimeout(ctx, defaults.ServiceQueryTimeout)
//	defer cancel()
//	state, err := mgr.ActiveState(qctx, "nginx")
//
// # Errors
//
// Failures are structured errors. Callers distinguish a definite answer
// from an undeterminable one by code:
//
//   - ErrCodeTimeout: the query outlived its context
//   - ErrCodeUnavailable: no systemctl binary or no bus
//   - ErrCodeNotFound: the unit is not defined
//   - ErrCodeInternal: anything else
//
// A unit that is defined but not running is not an error. ActiveState
// returns its state ("inactive", "failed", ...).
package systemd
