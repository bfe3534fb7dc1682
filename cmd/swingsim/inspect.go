package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/swingsim/internal/analysis"
	"github.com/san-kum/swingsim/internal/config"
	"github.com/san-kum/swingsim/internal/export"
	"github.com/san-kum/swingsim/internal/physics"
	"github.com/san-kum/swingsim/internal/storage"
)

func openStore() *storage.Store {
	st := storage.New(dataDir)
	st.SetLogger(log)
	return st
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tDURATION\tDT\tINTEG\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%.2e\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func splitColumns(s string) []string {
	out := make([]string, 0)
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

var captions = map[string]string{
	physics.LabelX:       "x (m)",
	physics.LabelY:       "y (m)",
	physics.LabelVX:      "vx (m/s)",
	physics.LabelVY:      "vy (m/s)",
	physics.LabelAngle:   "angle (rad)",
	physics.LabelRadius:  "length (m)",
	physics.LabelTension: "tension (N)",
	physics.LabelStretch: "stretch (m)",
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := openStore()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("samples: %d\n\n", len(result.States))

	for _, label := range splitColumns(plotColumns) {
		data, err := result.Column(label)
		if err != nil {
			return err
		}
		caption, ok := captions[label]
		if !ok {
			caption = label
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := openStore()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	xs, err := result.Column(physics.LabelX)
	if err != nil {
		return err
	}
	if len(xs) < 4 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("mode: %s\n\n", meta.Mode)

	ps := analysis.PowerSpectrum(xs)
	plotData := ps[:max(len(ps)/4, 2)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x)"),
	)
	fmt.Println(graph)
	fmt.Println()

	if period, err := analysis.DominantPeriod(xs, meta.Dt); err == nil {
		fmt.Printf("dominant period: %.3f s (%.3f hz)\n", period, 1/period)
	} else {
		fmt.Printf("dominant period: %v\n", err)
	}

	if turns, err := analysis.TurningPoints(result, physics.LabelX); err == nil {
		if period, err := analysis.MeanInterval(turns); err == nil {
			fmt.Printf("crossing period: %.3f s over %d swings\n", period, len(turns)-1)
		}
	}
	fmt.Printf("rigid small-angle period: %.3f s\n", analysis.SmallAnglePeriod(meta.RestLength, meta.Gravity))

	if tension, err := result.Column(physics.LabelTension); err == nil {
		peak := 0.0
		for _, v := range tension {
			peak = max(peak, v)
		}
		fmt.Printf("peak tension: %.3f N\n", peak)
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}
	portrait, err := analysis.PhasePortrait(result, xLabel, yLabel)
	if err != nil {
		return err
	}

	fmt.Printf("phase portrait: %s vs %s\n\n", portrait.YLabel, portrait.XLabel)
	fmt.Print(portrait.ToASCII(80, 30))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	modes := args
	if len(modes) == 0 {
		for m := range config.Presets {
			modes = append(modes, m)
		}
		sort.Strings(modes)
	}

	for _, m := range modes {
		presets := config.ListPresets(m)
		if len(presets) == 0 {
			fmt.Printf("no presets for mode: %s\n", m)
			continue
		}
		fmt.Printf("presets for %s:\n", m)
		for _, name := range presets {
			p := config.GetPreset(m, name)
			fmt.Printf("  %s/%-10s  k=%g  L=%g  m=%g  θ0=%g°\n", m, name,
				p.Pendulum.Stiffness, p.Pendulum.RestLength, p.Pendulum.Mass, p.Pendulum.InitialAngleDeg)
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return openStore().ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return openStore().ExportCSV(os.Stdout, args[0])
}

// outputWriter opens the --output file, or stdout when none was given.
func outputWriter() (io.Writer, func() error, error) {
	if output == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := openStore()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	svg, err := export.TrajectorySVG(result, meta.RestLength, export.DefaultSVGOptions())
	if err != nil {
		return err
	}

	w, done, err := outputWriter()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg); err != nil {
		done()
		return err
	}
	return done()
}

func exportHTML(cmd *cobra.Command, args []string) error {
	result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}

	w, done, err := outputWriter()
	if err != nil {
		return err
	}
	if err := export.ChartHTML(w, result, args[0], splitColumns(htmlColumns)...); err != nil {
		done()
		return err
	}
	if output != "" {
		log.WithField("file", output).Info("chart written")
	}
	return done()
}
