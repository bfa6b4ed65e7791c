// Command backdrop shows the animated circuit backdrop in a window, or renders it offscreen to PNG files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/oxy-backdrop/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/offscreen"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/page"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/window"
	"github.com/Carmen-Shannon/oxy-backdrop/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	logLevel   string
	logFormat  string
	seed       uint64

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "backdrop",
	Short: "Procedural circuit backdrop with a scroll-driven crossfade",
	Long: `backdrop draws a circuit board of traces with travelling signals that
crossfades into drifting light streaks as the page scrolls.

Use "run" to open a window (scroll with the mouse wheel, arrows, Page Up/Down,
Home and End) or "render" to write PNG snapshots without a display.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.Logging.Level = logLevel
		}
		if flags.Changed("log-format") {
			cfg.Logging.Format = logFormat
		}
		if flags.Changed("seed") {
			cfg.Backdrop.Seed = seed
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the backdrop in a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if v, _ := flags.GetInt("width"); flags.Changed("width") {
			cfg.Window.Width = v
		}
		if v, _ := flags.GetInt("height"); flags.Changed("height") {
			cfg.Window.Height = v
		}
		if v, _ := flags.GetFloat64("fps"); flags.Changed("fps") {
			cfg.Loop.FPS = v
		}
		if v, _ := flags.GetUint64("frames"); flags.Changed("frames") {
			cfg.Loop.FrameLimit = v
		}
		if v, _ := flags.GetBool("no-vsync"); flags.Changed("no-vsync") {
			cfg.Loop.VSync = !v
		}
		if v, _ := flags.GetBool("software"); flags.Changed("software") {
			cfg.Loop.SoftwareRender = v
		}
		if v, _ := flags.GetBool("profile"); flags.Changed("profile") {
			cfg.Loop.Profile = v
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		eng, err := engine.NewEngine(
			engine.WithLogger(logger),
			engine.WithProfiling(cfg.Loop.Profile),
			engine.WithTickRate(cfg.Loop.FPS),
			engine.WithFrameLimit(cfg.Loop.FrameLimit),
			engine.WithVSync(cfg.Loop.VSync),
			engine.WithSoftwareRenderer(cfg.Loop.SoftwareRender),
			engine.WithWorkers(cfg.Loop.Workers),
			engine.WithWindowOptions(
				window.WithTitle(cfg.Window.Title),
				window.WithWidth(cfg.Window.Width),
				window.WithHeight(cfg.Window.Height),
			),
			engine.WithBackdropOptions(backdropOptions()...),
			engine.WithScrollOptions(
				page.WithPageScreens(cfg.Page.Screens),
				page.WithWheelStep(cfg.Page.WheelStep),
				page.WithLineStep(cfg.Page.LineStep),
			),
		)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return eng.Run(ctx)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render PNG snapshots without a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if v, _ := flags.GetString("out"); flags.Changed("out") {
			cfg.Headless.OutputDir = v
		}
		if v, _ := flags.GetInt("width"); flags.Changed("width") {
			cfg.Headless.Width = v
		}
		if v, _ := flags.GetInt("height"); flags.Changed("height") {
			cfg.Headless.Height = v
		}
		if v, _ := flags.GetInt("frames"); flags.Changed("frames") {
			cfg.Headless.Frames = v
		}
		if v, _ := flags.GetFloat64Slice("progress"); flags.Changed("progress") {
			cfg.Headless.Progress = v
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		snaps, err := offscreen.Capture(ctx, offscreen.Options{
			Width:     cfg.Headless.Width,
			Height:    cfg.Headless.Height,
			Frames:    cfg.Headless.Frames,
			Progress:  cfg.Headless.Progress,
			OutputDir: cfg.Headless.OutputDir,
			Workers:   cfg.Loop.Workers,
			Backdrop:  backdropOptions(),
			Logger:    logger,
		})
		for _, s := range snaps {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tprogress=%.2f\tframe=%d\n", s.Path, s.Progress, s.Frame)
		}
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "backdrop %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func backdropOptions() []backdrop.BackdropBuilderOption {
	opts := []backdrop.BackdropBuilderOption{
		backdrop.WithTraceCount(cfg.Backdrop.TraceCount),
		backdrop.WithStreakCount(cfg.Backdrop.StreakCount),
	}
	if cfg.Backdrop.Seed != 0 {
		opts = append(opts, backdrop.WithSeed(cfg.Backdrop.Seed))
	}
	return opts
}

func init() {
	// GLFW must run on the main OS thread.
	runtime.LockOSThread()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Scene seed, 0 picks a random one (or set "+config.EnvSeed+")")

	runCmd.Flags().Int("width", 0, "Window width in pixels")
	runCmd.Flags().Int("height", 0, "Window height in pixels")
	runCmd.Flags().Float64("fps", 0, "Target frame rate")
	runCmd.Flags().Uint64("frames", 0, "Exit after this many frames (0 runs until closed)")
	runCmd.Flags().Bool("no-vsync", false, "Present frames without waiting for vertical sync")
	runCmd.Flags().Bool("software", false, "Force the WebGPU software adapter")
	runCmd.Flags().Bool("profile", false, "Log frame rate and memory statistics")

	renderCmd.Flags().StringP("out", "o", "", "Output directory")
	renderCmd.Flags().Int("width", 0, "Image width in pixels")
	renderCmd.Flags().Int("height", 0, "Image height in pixels")
	renderCmd.Flags().Int("frames", 0, "Frames animated before each snapshot")
	renderCmd.Flags().Float64Slice("progress", nil, "Scroll progress of each snapshot, e.g. 0,0.25,0.5")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
