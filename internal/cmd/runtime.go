package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/treecheck/internal/config"
	"github.com/felixgeelhaar/treecheck/internal/errors"
	"github.com/felixgeelhaar/treecheck/internal/log"
	"github.com/felixgeelhaar/treecheck/internal/metrics"
	"github.com/felixgeelhaar/treecheck/internal/telemetry"
	"github.com/felixgeelhaar/treecheck/internal/ux"
	"github.com/felixgeelhaar/treecheck/internal/version"
)

// skipConfigAnnotation marks commands that must run even when the config
// file is broken, such as "config init --force".
const skipConfigAnnotation = "treecheck/skip-config"

// runtimeState is everything a command needs beyond its own flags. It is
// built once per invocation by setupRuntime and released by ExecuteContext.
type runtimeState struct {
	cc         *CommandContext
	cfg        config.Config
	configPath string
	logger     *log.Logger
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	shutdown   func(context.Context) error
}

var state *runtimeState

func setupRuntime(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if !slices.Contains(ux.Formats, cc.Format) {
		return fmt.Errorf("invalid argument %q for --format: must be one of %v", cc.Format, ux.Formats)
	}

	rs := &runtimeState{cc: cc, cfg: config.Default()}

	// An empty path makes Load fall back to the defaults.
	loadPath := cc.ConfigPath
	if loadPath == "" {
		loadPath = discoverConfigPath()
	}
	rs.configPath = loadPath
	if rs.configPath == "" {
		rs.configPath = config.DefaultPath()
	}
	if cmd.Annotations[skipConfigAnnotation] != "true" {
		cfg, err := config.Load(loadPath)
		if err != nil {
			return err
		}
		rs.cfg = cfg
	}

	if cc.LogLevel != "" {
		rs.cfg.Log.Level = strings.ToLower(cc.LogLevel)
	}
	if cc.LogFormat != "" {
		rs.cfg.Log.Format = strings.ToLower(cc.LogFormat)
	}
	if cc.LogLevel != "" || cc.LogFormat != "" {
		if err := rs.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid argument for --log-level or --log-format: %w", err)
		}
	}
	rs.logger = log.New(loggerConfig(rs.cfg.Log, cmd.ErrOrStderr())).With("command", cmd.Name())
	log.SetDefaultLogger(rs.logger)

	rs.registry, rs.metrics = metrics.NewRegistry()

	tcfg := telemetry.DefaultConfig()
	tcfg.ServiceVersion = version.Version
	if rs.cfg.Telemetry.Enabled {
		tcfg = telemetry.CollectorConfig(rs.cfg.Telemetry.Endpoint)
		tcfg.ServiceVersion = version.Version
	}
	rs.shutdown, err = telemetry.InitProvider(cmd.Context(), tcfg)
	if err != nil {
		rs.logger.WithError(err).Warn("tracing disabled")
		rs.shutdown = nil
	}

	state = rs
	return nil
}

// loggerConfig starts from the development preset for debug logging and
// from the production preset for JSON logs.
func loggerConfig(c config.LogConfig, w io.Writer) log.Config {
	lc := log.DefaultConfig()
	switch {
	case strings.EqualFold(c.Level, "debug"):
		lc = log.DevelopmentConfig()
	case strings.EqualFold(c.Format, "json"):
		lc = log.ProductionConfig()
	}
	lc.Level = log.ParseLevel(c.Level)
	lc.Format = log.ParseFormat(c.Format)
	lc.Output = w
	lc.ServiceVersion = version.Version
	return lc
}

// discoverConfigPath finds the nearest config file at or above the working
// directory. It returns "" when there is none.
func discoverConfigPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return ux.DiscoverConfig(wd, config.DefaultPath())
}

// close writes the metrics textfile and flushes traces.
func (rs *runtimeState) close(ctx context.Context) error {
	var errs []error
	if rs.cc.MetricsFile != "" {
		if err := metrics.WriteTextfile(rs.cc.MetricsFile, rs.registry); err != nil {
			errs = append(errs, errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write metrics file", err))
		}
	}
	if rs.shutdown != nil {
		if err := rs.shutdown(ctx); err != nil {
			rs.logger.WithError(err).Warn("trace export failed")
		}
	}
	return stderrors.Join(errs...)
}

// current returns the runtime of the running command. Run functions are
// only reached after setupRuntime succeeded.
func current() *runtimeState {
	if state == nil {
		panic("cmd: runtime not initialised")
	}
	return state
}
