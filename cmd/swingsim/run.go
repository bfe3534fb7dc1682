package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/swingsim/internal/analysis"
	"github.com/san-kum/swingsim/internal/config"
	"github.com/san-kum/swingsim/internal/dynamo"
	"github.com/san-kum/swingsim/internal/integrators"
	"github.com/san-kum/swingsim/internal/metrics"
	"github.com/san-kum/swingsim/internal/physics"
	"github.com/san-kum/swingsim/internal/storage"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// simulate runs cfg headless with the default pendulum metrics attached.
func simulate(ctx context.Context, cfg *config.Config) (*dynamo.Result, error) {
	p, err := newPendulum(cfg)
	if err != nil {
		return nil, err
	}
	sim := dynamo.New()
	sim.SetLogger(log)
	for _, m := range metrics.ForPendulum(p) {
		sim.AddMetric(m)
	}
	return sim.Run(ctx, p, cfg.SimConfig())
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
		log.WithField("file", saveConfig).Info("config saved")
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s pendulum (%s, dt=%.4f, %.1fs)...\n",
		cfg.Pendulum.Mode, cfg.Integrator, cfg.Dt, cfg.Duration)
	start := time.Now()

	result, err := simulate(ctx, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	st.SetLogger(log)
	p := cfg.Parameters()
	runID, err := st.Save(storage.RunMetadata{
		Preset:       preset,
		Mode:         p.Mode.String(),
		Mass:         p.Mass,
		RestLength:   p.RestLength,
		Stiffness:    p.Stiffness,
		InitialAngle: p.InitialAngle,
		Gravity:      p.Gravity,
		Dt:           cfg.Dt,
		Duration:     cfg.Duration,
		Integrator:   cfg.Integrator,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if final := result.Final(); final != nil {
		fmt.Printf("final angle: %.2f°, length: %.3fm\n",
			degrees(final[physics.IdxAngle]), final[physics.IdxRadius])
	}
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("comparing integrators for %s pendulum (dt=%.4f, duration=%.1fs)\n\n",
		base.Pendulum.Mode, base.Dt, base.Duration)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s  %-12s\n", "integrator", "final_x", "final_y", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 66))

	for _, name := range names {
		cfg := *base
		cfg.Integrator = name
		if err := cfg.Validate(); err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := simulate(ctx, &cfg)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		final := result.Final()
		fmt.Printf("%-12s  %12.6f  %12.6f  %12.2e  %12.2f\n",
			name, final[physics.IdxX], final[physics.IdxY], result.EnergyDrift,
			float64(elapsed.Microseconds())/1000)
	}
	return nil
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := newPendulum(cfg); err != nil {
		return err
	}
	newSystem := func() analysis.Sweepable {
		p, _ := newPendulum(cfg)
		return p
	}

	log.WithFields(logrus.Fields{
		"param": sweepParam,
		"from":  sweepFrom,
		"to":    sweepTo,
		"steps": sweepSteps,
	}).Debug("sweep started")

	points, err := analysis.Sweep(ctx, newSystem, sweepParam, sweepFrom, sweepTo, sweepSteps, physics.LabelX, cfg.SimConfig())
	if err != nil {
		return err
	}

	fmt.Printf("%-10s  %-10s  %-10s  %-10s  %-12s\n", sweepParam, "period_s", "ideal_s", "peak_x", "energy_drift")
	fmt.Println(strings.Repeat("-", 58))
	for _, pt := range points {
		length := cfg.Pendulum.RestLength
		g := cfg.Pendulum.Gravity
		switch sweepParam {
		case physics.ParamRestLength:
			length = pt.Param
		case physics.ParamGravity:
			g = pt.Param
		}
		fmt.Printf("%-10.3f  %10.3f  %10.3f  %10.3f  %12.2e\n",
			pt.Param, pt.Period, analysis.SmallAnglePeriod(length, g), pt.Peak, pt.EnergyDrift)
	}
	return nil
}

func separation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newPendulum(cfg)
	if err != nil {
		return err
	}

	shifted := *cfg
	shifted.Pendulum.InitialAngleDeg += epsilon
	b, err := newPendulum(&shifted)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	rate, err := analysis.SeparationRate(ctx, a, b, cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}

	fmt.Printf("separation rate: %.4f 1/s over %.1fs\n", rate, cfg.Duration)
	switch {
	case math.IsNaN(rate):
		fmt.Println("undetermined")
	case rate > 0.1:
		fmt.Println("nearby starts diverge: chaotic regime")
	default:
		fmt.Println("nearby starts stay together: regular regime")
	}
	return nil
}
