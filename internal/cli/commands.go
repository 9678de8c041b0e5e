package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/crtsim/internal/analysis"
	"github.com/san-kum/crtsim/internal/automation"
	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/export"
	"github.com/san-kum/crtsim/internal/physics"
	"github.com/san-kum/crtsim/internal/raster"
	"github.com/san-kum/crtsim/internal/session"
	"github.com/san-kum/crtsim/internal/storage"
	"github.com/san-kum/crtsim/internal/trail"
	"github.com/san-kum/crtsim/internal/viz"
)

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := crt.DefaultPhysics()
	sim := cfg.Simulation

	fmt.Printf("mode: %s  v0: %.3e m/s  plate capacitance: %.3e F\n\n",
		sim.Mode, physics.InitialSpeed(p, sim.Voltages.Acceleration), p.PlateCapacitance())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "tick\tVh (V)\tVv (V)\tx (cm)\ty (cm)\tspeed (m/s)\tbrightness\ton screen")
	for tick := int64(0); tick < int64(ticks); tick++ {
		vh, vv := physics.PlateVoltages(sim, tick)
		e := physics.Solve(p, sim, tick)
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%.3f\t%.3f\t%.3e\t%.3f\t%v\n",
			tick, vh, vv, e.X*100, e.Y*100, e.Speed, e.Brightness, physics.InBounds(p, e))
	}
	return w.Flush()
}

// headless builds a started session drawing into a raster sheet.
func headless(cfg *config.Config, tr *trail.Buffer, log *zap.Logger) (*session.Session, *raster.Sheet, error) {
	sheet := raster.NewSheet(cfg.Render.ViewWidth)
	sess, err := session.New(sheet.Views(), cfg.Simulation,
		session.WithLogger(log),
		session.WithTrail(tr),
	)
	if err != nil {
		return nil, nil, err
	}
	sess.Start()
	return sess, sheet, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	tr, err := cfg.NewTrail()
	if err != nil {
		return err
	}
	sess, sheet, err := headless(cfg, tr, log)
	if err != nil {
		return err
	}

	var anim *export.GIFRecorder
	if gifPath != "" {
		anim = export.NewGIFRecorder(cfg.Render.GIFDelay, 0)
		every := max(gifEvery, 1)
		sess.AddObserver(session.ObserverFunc(func(tick int64, _ crt.ElectronState, _ bool) {
			if tick%int64(every) == 0 {
				anim.Add(sheet.Composite())
			}
		}))
	}

	drawn, err := sess.RunFrames(cfg.Render.Frames)
	if err != nil {
		log.Warn("frames skipped", zap.Error(err))
	}

	sheet.Annotate(fmt.Sprintf("%s  t=%d", cfg.Simulation.Mode, sess.Snapshot().Tick))
	if err := sheet.SavePNG(renderOut); err != nil {
		return err
	}
	fmt.Printf("rendered %d frames to %s\n", drawn, renderOut)

	if anim != nil {
		if err := anim.Save(gifPath); err != nil {
			return err
		}
		fmt.Printf("saved %d gif frames to %s\n", anim.Len(), gifPath)
	}

	if svgPath != "" {
		svg := export.TrailToSVG(tr, sess.Snapshot().Tick, cfg.Simulation.Display.Persistence, sess.Physics().ScreenSize, 600)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("saved trail (%d points) to %s\n", tr.Len(), svgPath)
	}
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	tr, err := cfg.NewTrail()
	if err != nil {
		return err
	}
	sess, _, err := headless(cfg, tr, log)
	if err != nil {
		return err
	}
	rec := &storage.Recorder{}
	sess.AddObserver(rec)

	if _, err := sess.RunFrames(cfg.Render.Frames); err != nil {
		log.Warn("frames skipped", zap.Error(err))
	}

	report := analysis.Analyze(rec.Samples, physics.TimeScale)
	st := storage.New(dataDir)
	runID, err := st.Save(storage.Run{
		Name:          runName,
		Configuration: cfg.Simulation,
		Physics:       sess.Physics(),
		TimeScale:     physics.TimeScale,
		TrailLen:      sess.Snapshot().TrailLen,
		Samples:       rec.Samples,
		Metrics:       report.Metrics(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("run saved: %s\n", runID)
	fmt.Printf("frames: %d  on screen: %.0f%%\n", report.Samples, report.VisibleFraction*100)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "id\tmode\tframes\ton screen\taccel (V)\ttime")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f\t%s\n",
			r.ID, r.Configuration.Mode, r.Frames, r.VisibleFrames,
			r.Configuration.Voltages.Acceleration, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Configuration.Mode)
	fmt.Printf("samples: %d\n\n", len(samples))

	xs, ys := storage.Series(samples)
	for i := range xs {
		xs[i] *= 100
		ys[i] *= 100
	}
	graph := asciigraph.PlotMany([][]float64{xs, ys},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Cyan),
		asciigraph.Caption("deflection x (green) / y (cyan), cm"),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Print(analysis.FigureToASCII(samples, meta.Physics.ScreenSize, 61, 31))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	timeScale := meta.TimeScale
	if timeScale <= 0 {
		timeScale = physics.TimeScale
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("mode: %s\n\n", meta.Configuration.Mode)

	xs, ys := storage.Series(samples)
	for _, axis := range []struct {
		name string
		data []float64
	}{{"x", xs}, {"y", ys}} {
		ps := analysis.PowerSpectrum(axis.data)
		if len(ps) < 2 {
			continue
		}
		plotData := ps[:max(len(ps)/4, 2)]
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum ("+axis.name+")"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	r := analysis.Analyze(samples, timeScale)
	fmt.Printf("dominant frequency x: %.3f\n", r.FreqX)
	fmt.Printf("dominant frequency y: %.3f\n", r.FreqY)
	fmt.Printf("zero crossings x/y: %d / %d\n", r.CrossingsX, r.CrossingsY)
	if r.Ratio > 0 {
		fmt.Printf("ratio x:y: %.3f\n", r.Ratio)
	}
	fmt.Printf("span: %.2f x %.2f cm\n", (r.MaxX-r.MinX)*100, (r.MaxY-r.MinY)*100)
	fmt.Printf("on screen: %.0f%%\n", r.VisibleFraction*100)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := svgOut
	if path == "" {
		path = meta.ID + ".svg"
	}
	svg := export.PathToSVG(samples, meta.Physics.ScreenSize, 600, "#33ff66")
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if jsonOut == "" {
		return export.WriteJSON(cmd.OutOrStdout(), *meta, samples)
	}
	if err := export.ExportJSON(jsonOut, *meta, samples); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", jsonOut)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "key\tfigure\tfreq x\tfreq y\tphase y")
	for i, name := range config.ListFigures() {
		f := config.Figures[name]
		fmt.Fprintf(w, "%d\t%s\t%.0f\t%.0f\t%.0f°\n", i+1, name, f.FreqX, f.FreqY, f.PhaseY)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "key\tpersistence\tvalue")
	keys := map[string]string{"fast": "F", "medium": "G", "slow": "H", "infinite": "I"}
	for _, name := range config.ListPersistence() {
		fmt.Fprintf(w, "%s\t%s\t%.3f\n", keys[name], name, config.Persistence[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nthemes (tui, T to cycle): %v\n", viz.ThemeNames())
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := &automation.Runner{Base: cfg, Store: storage.New(dataDir), OutDir: scenarioOut, Log: log}
	results, err := r.RunScenario(ctx, sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "step\tframes\tratio\ton screen\trun\tsnapshot")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.0f%%\t%s\t%s\n",
			res.Name, res.Frames, res.Report.Ratio, res.Report.VisibleFraction*100,
			dash(res.RunID), dash(res.Snapshot))
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(crt.DefaultPhysics(), automation.Sweep{
		Base:  cfg.Simulation,
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
	})
	if err != nil {
		return err
	}

	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	offScreen := 0
	for i, r := range results {
		xs[i], ys[i] = r.X*100, r.Y*100
		if !r.Visible {
			offScreen++
		}
	}
	graph := asciigraph.PlotMany([][]float64{xs, ys},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Cyan),
		asciigraph.Caption(fmt.Sprintf("impact x/y (cm) vs %s %.0f..%.0f V", sweepParam, sweepMin, sweepMax)),
	)
	fmt.Println(graph)
	if offScreen > 0 {
		fmt.Printf("\n%d of %d values miss the screen\n", offScreen, len(results))
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "crtsim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
