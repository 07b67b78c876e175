package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/raceroute/config"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "raceroute",
		Short: "Capacity-aware cable routing through raceways",
		Long: `raceroute plans cable routes through fixed raceways (trays, conduits)
and open field space, honouring raceway fill limits and cable-group
segregation. Requests and responses are JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug|info|warn|error)")

	// Route command - one request, one response
	routeCmd := &cobra.Command{
		Use:   "route [request.json]",
		Short: "Route a single cable request (file or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRoute,
	}

	// Serve command - JSON lines on stdin, worker pool
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Route a stream of JSON requests from stdin with a worker pool",
		RunE:  runServe,
	}
	serveCmd.Flags().Int("workers", 0, "Worker goroutines (default from config)")
	serveCmd.Flags().String("metrics-addr", "", "Expose Prometheus metrics on this address")

	// Batch command - sequential session routing
	batchCmd := &cobra.Command{
		Use:   "batch <cables.json>",
		Short: "Route cables one after another, applying fills and bundling history",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sharedCmd := &cobra.Command{
		Use:   "shared <routes.json>",
		Short: "Report field stretches shared by completed routes",
		Args:  cobra.ExactArgs(1),
		RunE:  runShared,
	}
	sharedCmd.Flags().Float64("tolerance", 0, "Overlap tolerance (default from config)")

	topologyCmd := &cobra.Command{
		Use:   "topology [raceways.json]",
		Short: "Build the base graph for a raceway roster and print its fingerprint",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTopology,
	}
	topologyCmd.Flags().Bool("json", false, "Print the full base graph")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "raceroute %s\n", version)
		},
	}

	rootCmd.AddCommand(
		routeCmd,
		serveCmd,
		batchCmd,
		sharedCmd,
		topologyCmd,
		versionCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger from persistent flags.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return config.Config{}, nil, err
	}
	if level != "" {
		cfg.Log.Level = level
	}
	logger, err := cfg.Log.Logger()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
