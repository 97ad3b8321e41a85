package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvmaze/config"
	"github.com/katalvlaran/lvmaze/render"
	"github.com/katalvlaran/lvmaze/template"
)

var (
	// Global flags
	verbose    bool
	configPath string
	rows       int
	cols       int
	strategy   string
	prune      bool
	ascii      bool

	// Loaded in PersistentPreRunE
	settings *config.Config
	logger   *zap.Logger
)

// rootCmd solves a maze when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "lvmaze [template]",
	Short: "Depth-first maze solver",
	Long: `lvmaze loads a maze template (JSON or YAML: walls, start, end), draws it,
searches it depth-first and draws the result.

Without a template an open grid is solved from the top-left to the
bottom-right cell. Grid size defaults to 8x8 and can be set with --rows and
--cols, a config file, or LVMAZE_ROWS / LVMAZE_COLS.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSolve,
}

var solveCmd = &cobra.Command{
	Use:   "solve [template]",
	Short: "Draw, solve and redraw a maze",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSolve,
}

var regionsCmd = &cobra.Command{
	Use:   "regions [template]",
	Short: "List the connected open regions of a maze",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRegions,
}

var templateCmd = &cobra.Command{
	Use:   "template [source]",
	Short: "Write a maze template",
	Long: `Writes the default template for the configured grid size, or converts
source to the format implied by --out (.json, .yaml or .yml).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplate,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lvmaze.yaml", "Config file (skipped if missing)")
	rootCmd.PersistentFlags().IntVar(&rows, "rows", 0, "Grid rows (overrides config)")
	rootCmd.PersistentFlags().IntVar(&cols, "cols", 0, "Grid columns (overrides config)")
	rootCmd.PersistentFlags().StringVar(&strategy, "strategy", "", "Search strategy: auto, recursive or iterative")
	rootCmd.PersistentFlags().BoolVar(&prune, "prune", false, "Skip cells already searched during this run")
	rootCmd.PersistentFlags().BoolVar(&ascii, "ascii", false, "Draw with ASCII characters only")

	for _, c := range []*cobra.Command{rootCmd, solveCmd} {
		c.Flags().StringVar(&pngPath, "png", "", "Also write the solved maze as a PNG image")
	}
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "maze.json", "Output file")
	configCmd.Flags().StringVarP(&configOut, "out", "o", "lvmaze.yaml", "Output file")
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	settings, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		settings.Maze.Rows = rows
	}
	if flags.Changed("cols") {
		settings.Maze.Cols = cols
	}
	if flags.Changed("strategy") {
		settings.Solver.Strategy = strategy
	}
	if flags.Changed("prune") {
		settings.Solver.Prune = prune
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	logger, err = newLogger(settings.Logging, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// newLogger builds a production zap logger at the configured level, or debug
// when verbose is set.
func newLogger(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Format == "console" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	return zcfg.Build()
}

// loadTemplate reads the template named by args, or returns the default one.
func loadTemplate(args []string) (template.Template, error) {
	if len(args) == 0 {
		return template.Default(settings.Maze), nil
	}
	t, err := template.LoadFile(args[0])
	if err != nil {
		return template.Template{}, fmt.Errorf("cannot read template: %w", err)
	}
	if skipped := t.OutOfBounds(settings.Maze); len(skipped) > 0 {
		logger.Warn("Ignoring walls outside the grid",
			zap.String("template", args[0]),
			zap.Int("count", len(skipped)))
	}

	return t, nil
}

func newRenderer() *render.Renderer {
	if ascii {
		return render.New(render.WithPalette(render.ASCIIPalette()))
	}
	return render.New()
}

// commandContext returns cmd's context, or Background when cmd was not
// started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
