/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/cortana-monitor/cortana/pkg/defaults"
	"github.com/cortana-monitor/cortana/pkg/snapshotter"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Collect one snapshot and publish it (default command)",
		Description: `Collects one snapshot and publishes it:
  - CPU busy percentage since the previous run
  - Memory, swap and disk usage
  - Load average and whole days of uptime
  - Status of required and installed optional services
  - Reachability of apps (TCP port) and websites (HTTP HEAD)

The document replaces the output file atomically, so a dashboard polling it
never reads a partial write.

# Examples

Publish with the built-in service lists:
  cortana-monitor collect

Use a config file and run checks four at a time:
  cortana-monitor collect --config /etc/cortana/monitor.yaml --concurrency 4

Print to stdout as YAML:
  cortana-monitor collect --output - --format yaml`,
		Action: collectAction,
	}
}

func collectAction(ctx context.Context, cmd *cli.Command) error {
	if _, err := parseOutputFormat(cmd); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CLICollectTimeout)
	defer cancel()

	slog.Info("collecting stats",
		slog.Int("services", len(cfg.Services)),
		slog.Int("optional", len(cfg.OptionalServices)),
		slog.Int("apps", len(cfg.Apps)),
		slog.Int("websites", len(cfg.Websites)))

	if err := snapshotter.NewAssembler(cfg).Measure(ctx); err != nil {
		return err
	}
	slog.Info("stats written", slog.String("path", cfg.OutputPath))

	if path := cmd.String(metricsFileFlagName); path != "" {
		if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
			slog.Warn("failed to write metrics file", slog.String("path", path), slog.String("error", err.Error()))
		}
	}

	slog.Info("done")
	return nil
}
