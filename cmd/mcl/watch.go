package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/cli"
	"mercator-hq/ganymede/pkg/store"
	"mercator-hq/ganymede/pkg/telemetry/logging"
	"mercator-hq/ganymede/pkg/telemetry/metrics"
	"mercator-hq/ganymede/pkg/watch"
)

var watchFlags struct {
	debounce      time.Duration
	storePath     string
	schedule      string
	metricsListen string
	logFormat     string
}

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch a document and reload on change",
	Long: `Watch an MCL document and reparse it whenever it changes.

Each successful reload produces a snapshot: the parsed tree plus its
canonical text, tagged with a UUID. Snapshots can be persisted to a
SQLite store for audit history, and reload counters can be exposed on
a Prometheus /metrics endpoint. A cron schedule adds periodic refreshes
for files whose change events are unreliable (e.g. network mounts).

The command runs until interrupted (SIGINT/SIGTERM).

Examples:
  # Watch and log canonical snapshots
  mcl watch config.mcl

  # Persist reload history
  mcl watch config.mcl --store snapshots.db

  # Refresh every five minutes regardless of file events
  mcl watch config.mcl --schedule "*/5 * * * *"

  # Expose Prometheus metrics
  mcl watch config.mcl --metrics-listen :9090`,
	Args: cobra.ExactArgs(1),
	RunE: watchDocument,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 100*time.Millisecond, "quiet period before reloading after a change")
	watchCmd.Flags().StringVar(&watchFlags.storePath, "store", "", "SQLite database for snapshot history")
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron expression for periodic refresh")
	watchCmd.Flags().StringVar(&watchFlags.metricsListen, "metrics-listen", "", "address for the Prometheus /metrics endpoint")
	watchCmd.Flags().StringVar(&watchFlags.logFormat, "log-format", "text", "log format: text, json")
}

func watchDocument(cmd *cobra.Command, args []string) error {
	level := "info"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Format: watchFlags.logFormat})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	var opts []watch.Option

	if watchFlags.storePath != "" {
		st, err := store.Open(watchFlags.storePath)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer st.Close()
		opts = append(opts, watch.WithStore(st))
	}

	var collector *metrics.Collector
	if watchFlags.metricsListen != "" {
		collector = metrics.NewCollector(metrics.Config{}, nil)
		opts = append(opts, watch.WithMetrics(collector))

		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(watchFlags.metricsListen, mux); err != nil {
				logger.Error("Metrics endpoint failed", "error", err)
			}
		}()
		logger.Info("Metrics endpoint started", "addr", watchFlags.metricsListen)
	}

	w, err := watch.New(watch.Config{
		Path:             args[0],
		DebounceInterval: watchFlags.debounce,
		RefreshSchedule:  watchFlags.schedule,
	}, logger, opts...)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	ctx := cli.SetupSignalHandler()

	err = w.Watch(ctx, func(snap *watch.Snapshot) error {
		if verbose {
			fmt.Println(snap.Text)
		}
		return nil
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}
