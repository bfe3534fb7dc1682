package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/swingsim/internal/config"
	"github.com/san-kum/swingsim/internal/integrators"
	"github.com/san-kum/swingsim/internal/physics"
	"github.com/san-kum/swingsim/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logFile  string

	configFile string
	preset     string
	saveConfig string
	dt         float64
	duration   float64
	integrator string
	mass       float64
	length     float64
	stiffness  float64
	angleDeg   float64
	gravity    float64
	mode       string

	theme       string
	plotColumns string
	htmlColumns string
	output      string
	xLabel      string
	yLabel      string

	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	epsilon    float64
)

var log = logrus.New()

func main() {
	rootCmd := &cobra.Command{
		Use:   "swingsim",
		Short: "spring and rope pendulum lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".swingsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	addPendulumFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addPendulumFlags(runCmd)
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved configuration to this yaml file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "swing the pendulum in the terminal, drag the bob with the mouse",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addPendulumFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeEditor.Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "run the same pendulum under several integrators",
		RunE:  compareIntegrators,
	}
	addPendulumFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and report period and amplitude",
		Args:  cobra.NoArgs,
		RunE:  sweepParameter,
	}
	addPendulumFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", physics.ParamRestLength, "parameter to vary (length, mass, stiffness, gravity)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 5, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	chaosCmd := &cobra.Command{
		Use:   "chaos",
		Short: "estimate how fast two nearby starts diverge",
		Args:  cobra.NoArgs,
		RunE:  separation,
	}
	addPendulumFlags(chaosCmd)
	chaosCmd.Flags().Float64Var(&epsilon, "eps", 1e-6, "initial angle offset in degrees")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded columns",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotColumns, "columns", "x,y,angle,tension", "comma separated columns")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "swing period and power spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of two columns",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xLabel, "x-axis", physics.LabelAngle, "column for the x axis")
	phaseCmd.Flags().StringVar(&yLabel, "y-axis", physics.LabelVX, "column for the y axis")

	presetsCmd := &cobra.Command{
		Use:   "presets [mode]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and states to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the bob path as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportHTMLCmd := &cobra.Command{
		Use:   "export-html [run_id]",
		Short: "interactive HTML chart of recorded columns",
		Args:  cobra.ExactArgs(1),
		RunE:  exportHTML,
	}
	exportHTMLCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportHTMLCmd.Flags().StringVar(&htmlColumns, "columns", "x,y,tension", "comma separated columns")

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, sweepCmd, chaosCmd, listCmd, plotCmd, analyzeCmd, phaseCmd,
		presetsCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, exportHTMLCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPendulumFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "preset as mode/name, see presets")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	f.StringVar(&integrator, "integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
	f.Float64Var(&mass, "mass", physics.DefaultMass, "bob mass in kg")
	f.Float64Var(&length, "length", physics.DefaultRestLength, "rest length in m")
	f.Float64Var(&stiffness, "stiffness", physics.DefaultStiffness, "stiffness in N/m")
	f.Float64Var(&angleDeg, "angle", config.DefaultAngleDeg, "initial angle in degrees")
	f.Float64Var(&gravity, "gravity", physics.DefaultGravity, "gravity in m/s²")
	f.StringVar(&mode, "mode", physics.Spring.String(), "connector mode (spring, rope)")
}

func setupLogging(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})

	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
		log.SetOutput(f)
	case cmd.Name() == "live" || cmd.Name() == "swingsim":
		// the live view owns the terminal
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return nil
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		modeName, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be mode/name, got %q", preset)
		}
		p := config.GetPreset(modeName, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(modeName))
		}
		cfg = p
		log.WithField("preset", preset).Debug("preset applied")
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		log.WithField("file", configFile).Debug("config loaded")
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("mass") {
		cfg.Pendulum.Mass = mass
	}
	if flags.Changed("length") {
		cfg.Pendulum.RestLength = length
	}
	if flags.Changed("stiffness") {
		cfg.Pendulum.Stiffness = stiffness
	}
	if flags.Changed("angle") {
		cfg.Pendulum.InitialAngleDeg = angleDeg
	}
	if flags.Changed("gravity") {
		cfg.Pendulum.Gravity = gravity
	}
	if flags.Changed("mode") {
		m, err := physics.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		cfg.Pendulum.Mode = m
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.LogLevel != "" {
		level, _ := logrus.ParseLevel(cfg.LogLevel)
		log.SetLevel(level)
	}
	return cfg, nil
}

// newPendulum builds a pendulum from cfg with its configured integrator.
func newPendulum(cfg *config.Config) (*physics.SpringPendulum, error) {
	p, err := physics.NewWithParams(cfg.Parameters())
	if err != nil {
		return nil, err
	}
	scheme, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	p.SetScheme(scheme)
	return p, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := newPendulum(cfg)
	if err != nil {
		return err
	}

	title := cfg.Pendulum.Mode.String() + " pendulum"
	if preset != "" {
		title = preset
	}
	log.WithFields(logrus.Fields{
		"mode":       cfg.Pendulum.Mode,
		"integrator": cfg.Integrator,
	}).Info("starting live view")

	return viz.Run(p, viz.Options{Dt: cfg.Dt, Title: title, Theme: theme, SnapshotDir: "."})
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
