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

package checker

import (
	"context"
	"log/slog"

	"github.com/cortana-monitor/cortana/pkg/collector/systemd"
	"github.com/cortana-monitor/cortana/pkg/config"
	"github.com/cortana-monitor/cortana/pkg/measurement"
)

// Checker determines the liveness of one configured unit. Implementations
// never fail: anything that goes wrong is folded into the returned status.
type Checker interface {
	Check(ctx context.Context, sc config.ServiceCheck) measurement.ServiceStatus
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, sc config.ServiceCheck) measurement.ServiceStatus

// Check calls f.
func (f CheckerFunc) Check(ctx context.Context, sc config.ServiceCheck) measurement.ServiceStatus {
	return f(ctx, sc)
}

// Registry dispatches a check to the Checker registered for its kind.
type Registry struct {
	checkers map[config.CheckKind]Checker
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[config.CheckKind]Checker)}
}

// NewDefaultRegistry wires the systemd, port and http checkers.
func NewDefaultRegistry(mgr systemd.Manager) *Registry {
	r := NewRegistry()
	r.Register(config.KindSystemd, NewSystemdChecker(mgr))
	r.Register(config.KindPort, NewPortChecker())
	r.Register(config.KindHTTP, NewHTTPChecker())
	return r
}

// Register sets the checker for kind, replacing any previous one.
func (r *Registry) Register(kind config.CheckKind, c Checker) {
	r.checkers[kind] = c
}

// Check runs the checker for sc.Kind. A kind with no checker is unknown.
func (r *Registry) Check(ctx context.Context, sc config.ServiceCheck) measurement.ServiceStatus {
	c, ok := r.checkers[sc.Kind]
	if !ok {
		slog.Warn("no checker for kind",
			slog.String("name", sc.Name),
			slog.String("type", sc.Kind.String()))
		return measurement.Unknown(sc.Name)
	}
	return c.Check(ctx, sc)
}
