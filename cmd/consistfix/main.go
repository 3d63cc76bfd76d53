package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/railtools/consistfix/internal/adapters/index"
	"github.com/railtools/consistfix/internal/adapters/scan"
	service "github.com/railtools/consistfix/internal/app"
	"github.com/railtools/consistfix/internal/config"
	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/metadata"
	"github.com/railtools/consistfix/internal/domain/taxonomy"
	"github.com/railtools/consistfix/internal/fixture"
	"github.com/railtools/consistfix/pkg/logger"
	"github.com/railtools/consistfix/pkg/metrics"
)

// version is overridden at build time via -ldflags.
var version = "dev"

const (
	metricsReadHeaderTimeout = 5 * time.Second
	metricsShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "consistfix",
		Short:         "Repair rolling stock references in train simulator consist files",
		Long:          "consistfix indexes a trainset directory and rewrites consist entries\nwhose asset name or folder no longer matches an installed asset.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(); err != nil {
				return fmt.Errorf("initializing logging: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().String("log-level", "", "log verbosity: debug, info, warn, error")

	root.AddCommand(newResolveCommand())
	root.AddCommand(newScanCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newVersionCommand())

	return root
}

// loadConfig layers defaults, file and env, then applies the log level.
// An explicit --log-level wins over the configured one.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		logger.Get().Warn(ctx, "invalid log level, falling back to info",
			logger.String("log_level", level),
			logger.Error(err),
		)
		_ = logger.SetLevelString("info")
	}

	return cfg, nil
}

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve consist entries against the trainset and rewrite drifted references",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(ctx, cmd)
			if err != nil {
				return err
			}
			applyResolveFlags(cmd, cfg)

			stopMetrics := startMetricsServer(ctx, cfg.MetricsAddr)
			defer stopMetrics()

			svc := service.New(
				service.WithTrainsetDir(cfg.TrainsetDir),
				service.WithConsistDir(cfg.ConsistDir),
				service.WithWorkerCount(cfg.WorkerCount),
				service.WithDryRun(cfg.DryRun),
				service.WithExplain(cfg.Explain),
				service.WithSemanticMatch(cfg.SemanticMatch),
				service.WithTieBreakSeed(cfg.TieBreakSeed),
				service.WithOilIndicators(cfg.OilIndicators),
				service.WithWeights(cfg.Weights),
				service.WithOutput(cmd.OutOrStdout()),
			)

			_, err = svc.Run(ctx)
			return err
		},
	}

	flags := cmd.Flags()
	flags.String("trainset", "", "trainset directory (overrides config)")
	flags.String("consists", "", "consist directory (overrides config)")
	flags.Int("workers", 0, "resolution worker count (overrides config)")
	flags.Bool("dry-run", false, "report changes without writing files")
	flags.Bool("explain", false, "print a per-entry resolution report")
	flags.Bool("semantic", true, "enable the fuzzy similarity phase")
	flags.Int64("seed", 0, "tie-break seed (overrides config)")
	flags.String("metrics-addr", "", "expose Prometheus metrics on this address")

	return cmd
}

// applyResolveFlags folds explicitly set flags over the loaded config.
func applyResolveFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("trainset") {
		cfg.TrainsetDir, _ = flags.GetString("trainset")
	}
	if flags.Changed("consists") {
		cfg.ConsistDir, _ = flags.GetString("consists")
	}
	if flags.Changed("workers") {
		cfg.WorkerCount, _ = flags.GetInt("workers")
	}
	if flags.Changed("dry-run") {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}
	if flags.Changed("explain") {
		cfg.Explain, _ = flags.GetBool("explain")
	}
	if flags.Changed("semantic") {
		cfg.SemanticMatch, _ = flags.GetBool("semantic")
	}
	if flags.Changed("seed") {
		cfg.TieBreakSeed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
}

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Index the trainset and report its composition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(ctx, cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("trainset") {
				cfg.TrainsetDir, _ = cmd.Flags().GetString("trainset")
			}

			classifier := taxonomy.New()
			detector := detect.New(classifier)
			scanner := scan.New(metadata.New(classifier, detector), detector)

			idx, err := scanner.Scan(ctx, cfg.TrainsetDir)
			if err != nil {
				return err
			}

			printIndexStats(cmd.OutOrStdout(), cfg.TrainsetDir, idx.Statistics())
			return nil
		},
	}

	cmd.Flags().String("trainset", "", "trainset directory (overrides config)")

	return cmd
}

func printIndexStats(out io.Writer, dir string, stats index.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("TRAINSET INDEX - %s", dir)
	t.AppendRows([]table.Row{
		{"Total Assets", stats.TotalAssets},
		{"Engines", stats.Engines},
		{"Wagons", stats.Wagons},
		{"Folders", stats.Folders},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Engine Classes", stats.EngineClasses},
		{"Coach Types", stats.CoachTypes},
		{"Freight Types", stats.FreightTypes},
		{"Composites", stats.Composites},
	})
	t.Render()
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic trainset and drifted consists for testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(ctx, cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("trainset") {
				cfg.TrainsetDir, _ = flags.GetString("trainset")
			}
			if flags.Changed("consists") {
				cfg.ConsistDir, _ = flags.GetString("consists")
			}
			count, _ := flags.GetInt("count")
			rake, _ := flags.GetInt("rake")
			driftRate, _ := flags.GetFloat64("drift-rate")
			seed, _ := flags.GetInt64("seed")

			gen := fixture.New(
				fixture.WithTrainsetDir(cfg.TrainsetDir),
				fixture.WithConsistDir(cfg.ConsistDir),
				fixture.WithConsistCount(count),
				fixture.WithRakeLength(rake),
				fixture.WithDriftRate(driftRate),
				fixture.WithSeed(seed),
			)

			summary, err := gen.Generate(ctx)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetTitle("FIXTURE - %s", cfg.TrainsetDir)
			t.AppendRows([]table.Row{
				{"Assets Created", summary.AssetsCreated},
				{"Consists Created", summary.ConsistsCreated},
				{"Entries Written", summary.EntriesWritten},
				{"Drifted Entries", summary.DriftedEntries},
			})
			t.Render()
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("trainset", "", "trainset directory (overrides config)")
	flags.String("consists", "", "consist directory (overrides config)")
	flags.Int("count", 10, "number of consist files to generate")
	flags.Int("rake", 8, "wagons per consist")
	flags.Float64("drift-rate", 0.3, "fraction of entries written with drift")
	flags.Int64("seed", 1, "generation seed")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the consistfix version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "consistfix "+version)
		},
	}
}

// startMetricsServer exposes the Prometheus handler when addr is non-empty.
// The returned function shuts the server down.
func startMetricsServer(ctx context.Context, addr string) func() {
	if addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	log := logger.Get().Named("metrics-server")
	go func() {
		log.Info(ctx, "serving metrics", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server failed", logger.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
