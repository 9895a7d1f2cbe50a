/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/cortana-monitor/cortana/pkg/logging"
)

const (
	name           = "cortana-monitor"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command with os.Args and exits non-zero on error.
// SIGINT and SIGTERM cancel the running collection.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Host and service health snapshot for the Cortana dashboard",
		Version: version,
		Description: fmt.Sprintf(`Collects CPU, memory, disk, swap, load and uptime figures plus the
liveness of configured services, apps and websites, and publishes them as a
single JSON document for the dashboard to read.

Runs once and exits; schedule it with a systemd timer or cron.

Version: %s
Commit:  %s
Built:   %s`, version, commit, date),
		Flags:  globalFlags(),
		Before: initLogger,
		Action: collectAction,
		Commands: []*cli.Command{
			collectCmd(),
			versionCmd(),
		},
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command runs. Every record of this run carries the same
// run id.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := cmd.String(logLevelFlagName)
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
	slog.SetDefault(slog.Default().With(slog.String("run", uuid.NewString())))

	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", level)
	return ctx, nil
}
