/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cortana-monitor/cortana/pkg/config"
	"github.com/cortana-monitor/cortana/pkg/defaults"
	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
	"github.com/cortana-monitor/cortana/pkg/serializer"
)

const (
	configFlagName         = "config"
	outputFlagName         = "output"
	formatFlagName         = "format"
	logLevelFlagName       = "log-level"
	concurrencyFlagName    = "concurrency"
	cpuCacheFlagName       = "cpu-cache"
	serviceManagerFlagName = "service-manager"
	metricsFileFlagName    = "metrics-file"
)

var (
	configFlag = &cli.StringFlag{
		Name:    configFlagName,
		Aliases: []string{"c"},
		Usage:   "YAML config file (built-in service lists when omitted)",
		Sources: cli.EnvVars("CORTANA_CONFIG"),
	}

	outputFlag = &cli.StringFlag{
		Name:    outputFlagName,
		Aliases: []string{"o"},
		Usage:   "Snapshot destination; - writes to stdout",
		Value:   defaults.OutputPath,
		Sources: cli.EnvVars("CORTANA_OUTPUT"),
	}

	formatFlag = &cli.StringFlag{
		Name:    formatFlagName,
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Snapshot format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatJSON),
		Sources: cli.EnvVars("CORTANA_FORMAT"),
	}

	logLevelFlag = &cli.StringFlag{
		Name:    logLevelFlagName,
		Usage:   "Log level (debug, info, warn, error); falls back to LOG_LEVEL",
		Sources: cli.EnvVars("CORTANA_LOG_LEVEL"),
	}

	concurrencyFlag = &cli.IntFlag{
		Name:    concurrencyFlagName,
		Usage:   "Number of liveness checks run in parallel",
		Value:   1,
		Sources: cli.EnvVars("CORTANA_CONCURRENCY"),
	}

	cpuCacheFlag = &cli.StringFlag{
		Name:    cpuCacheFlagName,
		Usage:   "File holding the previous CPU sample between runs",
		Value:   defaults.CPUCachePath,
		Sources: cli.EnvVars("CORTANA_CPU_CACHE"),
	}

	serviceManagerFlag = &cli.StringFlag{
		Name:    serviceManagerFlagName,
		Usage:   "Service manager backend (auto, dbus, systemctl)",
		Value:   string(config.ServiceManagerAuto),
		Sources: cli.EnvVars("CORTANA_SERVICE_MANAGER"),
	}

	metricsFileFlag = &cli.StringFlag{
		Name:    metricsFileFlagName,
		Usage:   "Also write Prometheus metrics in textfile-collector format to this path",
		Sources: cli.EnvVars("CORTANA_METRICS_FILE"),
	}
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		configFlag,
		outputFlag,
		formatFlag,
		logLevelFlag,
		concurrencyFlag,
		cpuCacheFlag,
		serviceManagerFlag,
		metricsFileFlag,
	}
}

// parseOutputFormat validates the --format value.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String(formatFlagName))))
	if f.IsUnknown() {
		return "", cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "unknown output format",
			map[string]any{"format": cmd.String(formatFlagName), "supported": serializer.SupportedFormats()})
	}
	return f, nil
}

// loadConfig resolves the configuration: flags and their env vars win over
// the config file, which wins over the built-in defaults.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String(configFlagName); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.IsSet(outputFlagName) {
		cfg.OutputPath = cmd.String(outputFlagName)
	}
	if cmd.IsSet(formatFlagName) {
		cfg.Format = cmd.String(formatFlagName)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cmd.IsSet(concurrencyFlagName) {
		cfg.Concurrency = cmd.Int(concurrencyFlagName)
	}
	if cmd.IsSet(cpuCacheFlagName) {
		cfg.CPUCachePath = cmd.String(cpuCacheFlagName)
	}
	if cmd.IsSet(serviceManagerFlagName) {
		cfg.ServiceManager = config.ServiceManager(cmd.String(serviceManagerFlagName))
	}

	if serializer.Format(cfg.Format).IsUnknown() {
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "unknown output format",
			map[string]any{"format": cfg.Format, "supported": serializer.SupportedFormats()})
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, p := range cfg.Problems() {
		slog.Warn("check entry cannot be probed as declared", slog.String("error", p.Error()))
	}
	return cfg, nil
}
