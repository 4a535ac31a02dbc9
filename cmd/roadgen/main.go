package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/roadgen/internal/server"
	"github.com/ChicagoDave/roadgen/pkg/config"
)

// Persistent logging overrides; empty means use the project's settings.
var (
	logLevel  string
	logFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "roadgen",
		Short:        "Procedural level generator for road-runner courses",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var (
		seed     int64
		doBake   bool
		debugRun bool
	)
	cmd := &cobra.Command{
		Use:   "generate [project-path]",
		Short: "Run an authoring pass and print the generated scene graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(args[0], seed, doBake, debugRun)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().BoolVar(&doBake, "bake", false, "persist the scene for later runtime passes")
	cmd.Flags().BoolVar(&debugRun, "debug-run", false, "force spawning and use placeholders when no templates are set")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a level project without generating",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func playCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "play [project-path]",
		Short: "Run the runtime entry point against the baked scene, if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), args[0], seed)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server for inspecting generated levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, log, err := loadProject(args[0])
			if err != nil {
				return err
			}
			return server.New(args[0], port, log).Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}

// setupLogger installs the default slog handler. Logs go to stderr so that
// command output on stdout stays machine readable.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level, format := cfg.Level, cfg.Format
	if logLevel != "" {
		level = logLevel
	}
	if logFormat != "" {
		format = logFormat
	}

	opts := &slog.HandlerOptions{}
	switch level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	default:
		h = slog.NewTextHandler(os.Stderr, opts)
	}

	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
