package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/rpcmon/internal/config"
	"github.com/hamed0406/rpcmon/internal/domain"
	"github.com/hamed0406/rpcmon/internal/logging"
	"github.com/hamed0406/rpcmon/internal/monitor"
	"github.com/hamed0406/rpcmon/internal/probe"
	"github.com/hamed0406/rpcmon/internal/report"
)

type options struct {
	method    string
	timeoutMS int
	json      bool
	noColor   bool
	logDir    string
	logLevel  string
	threshold float64
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "rpcmon FILE [START_DATE END_DATE]",
		Short: "Measure the composite availability of a set of JSON-RPC services",
		Long: `rpcmon calls get_disponibility on every service listed in FILE, one at a
time, and multiplies the availabilities the services report into the
availability of the whole system.

FILE is either the counted list format (first line N, then N URLs) or a
.yaml/.yml/.toml file with an "endpoints" list and optional "method" and
"params". START_DATE and END_DATE, when given, replace the file's params.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("accepts FILE or FILE START_DATE END_DATE, received %d arg(s)", len(args))
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.method, "method", "", "JSON-RPC method to call (default from file, then RPC_METHOD)")
	f.IntVar(&opts.timeoutMS, "timeout", 0, "per-service timeout in milliseconds (default TIMEOUT_MS or 10000)")
	f.BoolVar(&opts.json, "json", false, "print the run report as JSON instead of the console transcript")
	f.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	f.StringVar(&opts.logDir, "log-dir", "", "directory for rpcmon.log (default LOG_DIR or logs)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default LOG_LEVEL or info)")
	f.Float64Var(&opts.threshold, "threshold", 0, "composite availability considered healthy (default HEALTHY_THRESHOLD or 0.95)")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	cfg := applyFlags(config.FromEnv(), opts)

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	file, err := config.LoadEndpoints(args[0])
	if err != nil {
		logger.Error("endpoints_load_failed", zap.String("path", args[0]), zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "ERROR: failed to parse config file: %v\n", err)
		return err
	}

	method := cfg.Method
	if opts.method == "" && file.Method != "" {
		method = file.Method
	}
	params := file.Params
	if len(args) == 3 {
		params = []string{args[1], args[2]}
	}

	out := cmd.OutOrStdout()
	sender := probe.NewHTTPSender(cfg.Timeout)
	sender.UserAgent = cfg.UserAgent

	reporters := report.Multi{report.NewLog(logger)}
	if opts.json {
		reporters = append(reporters, report.NewJSON(out))
	} else {
		console := report.NewConsole(out, cfg.HealthyThreshold, !opts.noColor)
		console.Banner(args[0])
		reporters = append(reporters, console)
	}
	if slack := report.NewSlack(cfg.SlackWebhook); slack != nil {
		reporters = append(reporters, slack)
	}

	logger.Info("run_started",
		zap.String("source", args[0]),
		zap.String("method", method),
		zap.Strings("params", params),
		zap.Int("endpoints", len(file.Endpoints)),
		zap.Duration("timeout", cfg.Timeout),
	)

	mon := monitor.New(logger, sender, reporters, method, params)
	mon.Resolver = net.DefaultResolver
	if cfg.APIKey != "" {
		mon.Headers = map[string]string{"Authorization": "Bearer " + cfg.APIKey}
	}
	if _, err := mon.Run(cmd.Context(), domain.Endpoints(file.Endpoints)); err != nil {
		// reporting problems never change the outcome of the run
		logger.Warn("report_failed", zap.Error(err))
	}
	return nil
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cfg config.Config, opts options) config.Config {
	if opts.method != "" {
		cfg.Method = opts.method
	}
	if opts.timeoutMS > 0 {
		cfg.Timeout = time.Duration(opts.timeoutMS) * time.Millisecond
	}
	if opts.logDir != "" {
		cfg.LogDir = opts.logDir
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.threshold > 0 && opts.threshold <= 1 {
		cfg.HealthyThreshold = opts.threshold
	}
	return cfg
}
