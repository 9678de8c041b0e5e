// Package cli builds the crtsim command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string
	logFile    string

	// simulation overrides
	mode        string
	accel       float64
	vertical    float64
	horizontal  float64
	freqX       float64
	freqY       float64
	phaseX      float64
	phaseY      float64
	amplitude   float64
	persistence float64
	brightness  float64
	figure      string
	persistName string

	// headless output
	frames      int
	viewWidth   int
	renderOut   string
	svgOut      string
	jsonOut     string
	scenarioOut string
	gifPath     string
	svgPath   string
	gifEvery  int
	runName   string
	ticks     int

	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

// GUIFunc opens the interactive window and blocks until it closes.
type GUIFunc func(cfg *config.Config, log *zap.Logger) error

// NewRootCmd builds the command tree. Flags are rebound to their defaults on
// every call. openGUI backs the root and gui commands.
func NewRootCmd(openGUI GUIFunc) *cobra.Command {
	runGUI := func(cmd *cobra.Command, args []string) error {
		if openGUI == nil {
			return fmt.Errorf("gui not available in this build")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()
		return openGUI(cfg, log)
	}

	rootCmd := &cobra.Command{
		Use:           "crtsim",
		Short:         "cathode ray tube electron beam simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".crtsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	pf.StringVar(&mode, "mode", "manual", "deflection mode (manual, lissajous)")
	pf.Float64Var(&accel, "accel", 2000, "acceleration voltage")
	pf.Float64Var(&vertical, "vertical", 0, "vertical plate voltage (manual mode)")
	pf.Float64Var(&horizontal, "horizontal", 0, "horizontal plate voltage (manual mode)")
	pf.Float64Var(&freqX, "freq-x", 1, "horizontal frequency (lissajous mode)")
	pf.Float64Var(&freqY, "freq-y", 1, "vertical frequency (lissajous mode)")
	pf.Float64Var(&phaseX, "phase-x", 0, "horizontal phase in degrees")
	pf.Float64Var(&phaseY, "phase-y", 0, "vertical phase in degrees")
	pf.Float64Var(&amplitude, "amplitude", 300, "lissajous amplitude in volts")
	pf.Float64Var(&persistence, "persistence", 0.95, "phosphor persistence [0,1]")
	pf.Float64Var(&brightness, "brightness", 1, "display brightness [0,1]")
	pf.StringVar(&figure, "figure", "", "lissajous figure preset")
	pf.StringVar(&persistName, "persistence-preset", "", "persistence preset (fast, medium, slow, infinite)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive window (default)",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&viz.GIFPath, "gif", viz.GIFPath, "recording output path")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "print the impact point for a range of ticks",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	solveCmd.Flags().IntVar(&ticks, "ticks", 10, "number of ticks")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headless to PNG and GIF",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&renderOut, "out", "crtsim.png", "final frame output path")
	renderCmd.Flags().StringVar(&gifPath, "gif", "", "animated GIF output path")
	renderCmd.Flags().IntVar(&gifEvery, "gif-every", 2, "capture every nth frame into the GIF")
	renderCmd.Flags().StringVar(&svgPath, "svg", "", "trail SVG output path")
	addHeadlessFlags(renderCmd)

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run headless and save the impact samples",
		Args:  cobra.NoArgs,
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVar(&runName, "name", "run", "run name")
	addHeadlessFlags(recordCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a recorded run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output path (default <run_id>.svg)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonOut, "out", "", "output path (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list figure and persistence presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&scenarioOut, "out", ".", "snapshot directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one voltage and plot the deflection",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "vertical", "voltage to sweep (acceleration, vertical, horizontal)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -500, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 500, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 50, "number of values")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	})

	rootCmd.AddCommand(guiCmd, tuiCmd, solveCmd, renderCmd, recordCmd, listCmd, plotCmd, analyzeCmd,
		exportSVGCmd, exportJSONCmd, presetsCmd, scenarioCmd, sweepCmd, configCmd)
	return rootCmd
}

func addHeadlessFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	cmd.Flags().IntVar(&viewWidth, "width", config.DefaultViewWidth, "view width in pixels")
}

func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if logFormat == "console" {
		zc = zap.NewDevelopmentConfig()
	} else if logFormat != "json" {
		return nil, fmt.Errorf("unknown log format: %s", logFormat)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if logFile != "" {
		zc.OutputPaths = []string{logFile}
	}
	return zc.Build()
}

// loadConfig reads the config file, if any, and lets explicitly set flags
// override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	sim := &cfg.Simulation
	if flags.Changed("mode") {
		m, err := crt.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		sim.Mode = m
	}
	setFloat := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	setFloat("accel", &sim.Voltages.Acceleration, accel)
	setFloat("vertical", &sim.Voltages.Vertical, vertical)
	setFloat("horizontal", &sim.Voltages.Horizontal, horizontal)
	setFloat("freq-x", &sim.Lissajous.FreqX, freqX)
	setFloat("freq-y", &sim.Lissajous.FreqY, freqY)
	setFloat("phase-x", &sim.Lissajous.PhaseX, phaseX)
	setFloat("phase-y", &sim.Lissajous.PhaseY, phaseY)
	setFloat("amplitude", &sim.Lissajous.Amplitude, amplitude)
	setFloat("persistence", &sim.Display.Persistence, persistence)
	setFloat("brightness", &sim.Display.Brightness, brightness)

	if figure != "" {
		fc, err := config.FigureConfiguration(*sim, figure)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListFigures())
		}
		*sim = fc
	}
	if persistName != "" {
		p, err := config.PersistencePreset(persistName)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPersistence())
		}
		sim.Display.Persistence = p
	}

	if flags.Lookup("frames") != nil && (flags.Changed("frames") || configFile == "") {
		cfg.Render.Frames = frames
	}
	if flags.Lookup("width") != nil && (flags.Changed("width") || configFile == "") {
		cfg.Render.ViewWidth = viewWidth
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// log lines on stderr would tear the alternate screen
	log := zap.NewNop()
	if logFile != "" {
		if log, err = newLogger(); err != nil {
			return err
		}
		defer log.Sync()
	}
	return viz.Run(cfg, log)
}
