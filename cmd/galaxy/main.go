package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/galaxy/internal/actor"
	"github.com/san-kum/galaxy/internal/analysis"
	"github.com/san-kum/galaxy/internal/automation"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/engine"
	"github.com/san-kum/galaxy/internal/experiment"
	"github.com/san-kum/galaxy/internal/export"
	"github.com/san-kum/galaxy/internal/optim"
	"github.com/san-kum/galaxy/internal/orbit"
	"github.com/san-kum/galaxy/internal/raster"
	"github.com/san-kum/galaxy/internal/storage"
	"github.com/san-kum/galaxy/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int
	debug      bool
	// run
	refreshes  int
	controller string
	kp         float64
	kd         float64
	spawnKind  string
	jsonOut    string
	// render
	outPath string
	format  string
	scale   int
	every   int
	// orbit
	clickX  int
	clickY  int
	ecc     int
	steps   int
	svgPath string
	// plot, analyze
	series string
	// ensemble, tune, sweep
	runs     int
	kpGrid   []float64
	kdGrid   []float64
	metric   string
	sweepMin int
	sweepMax int
	numSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "galaxy",
		Short: "fixed-point particle galaxy with orbiting actors",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f := setupLogging(debug); f != nil {
				cobra.OnFinalize(func() { f.Close() })
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".galaxy", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&seed, "seed", config.DefaultSeed, "field seed (0-65535)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write logs to logs/galaxy.log")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the galaxy in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and store the metrics",
		Args:  cobra.NoArgs,
		RunE:  runExperiment,
	}
	runCmd.Flags().IntVar(&refreshes, "refreshes", config.DefaultRefreshes, "display refreshes to run")
	runCmd.Flags().StringVar(&controller, "controller", "none", "input controller (none, pursuit)")
	runCmd.Flags().Float64Var(&kp, "kp", 128, "pursuit proportional gain, Q8.8")
	runCmd.Flags().Float64Var(&kd, "kd", 64, "pursuit derivative gain, Q8.8")
	runCmd.Flags().StringVar(&spawnKind, "kind", "guardian", "worker the pursuit controller spawns (guardian, gardener)")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also write the run as JSON to this path")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "run headless and write the framebuffer as png, svg or gif",
		Args:  cobra.NoArgs,
		RunE:  renderFrame,
	}
	renderCmd.Flags().IntVar(&refreshes, "refreshes", renderRefreshes, "display refreshes to run")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "galaxy.png", "output path")
	renderCmd.Flags().StringVar(&format, "format", "", "png, svg or gif (default from the output extension)")
	renderCmd.Flags().IntVar(&scale, "scale", 2, "pixel scale for png and svg")
	renderCmd.Flags().IntVar(&every, "every", 4, "refreshes between gif frames")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "fit an orbit to a click and trace it",
		Args:  cobra.NoArgs,
		RunE:  traceOrbit,
	}
	orbitCmd.Flags().IntVar(&clickX, "x", 220, "click x, pixels")
	orbitCmd.Flags().IntVar(&clickY, "y", 60, "click y, pixels")
	orbitCmd.Flags().IntVar(&ecc, "ecc", config.DefaultEccentricity, "eccentricity 0-255")
	orbitCmd.Flags().IntVar(&steps, "steps", 256, "steps to trace")
	orbitCmd.Flags().StringVar(&svgPath, "svg", "", "write the trace as svg to this path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "", "one of "+strings.Join(engine.SeriesNames(), ", ")+" (default all)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tROWS\tDECAY\tENEMY EVERY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\t%d\n", name, p.Display.Width, p.Display.Height, p.Field.N, p.Field.Decay, p.Host.EnemyInterval)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "inspect or write configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd, configShowCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&series, "series", "lit", "series to analyze")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run the configuration under consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&runs, "runs", 4, "number of seeds")
	ensembleCmd.Flags().IntVar(&refreshes, "refreshes", config.DefaultRefreshes, "display refreshes per run")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search the pursuit controller gains",
		Args:  cobra.NoArgs,
		RunE:  tunePursuit,
	}
	tuneCmd.Flags().Float64SliceVar(&kpGrid, "kp", []float64{64, 128, 256}, "kp values, Q8.8")
	tuneCmd.Flags().Float64SliceVar(&kdGrid, "kd", []float64{32, 64, 128}, "kd values, Q8.8")
	tuneCmd.Flags().StringVar(&metric, "metric", "infection", "metric to minimize")
	tuneCmd.Flags().IntVar(&refreshes, "refreshes", tuneRefreshes, "display refreshes per trial")
	tuneCmd.Flags().StringVar(&spawnKind, "kind", "guardian", "worker the pursuit controller spawns (guardian, gardener)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "run across a range of one parameter (" + strings.Join(automation.SweepParams(), ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 255, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&refreshes, "refreshes", sweepRefreshes, "display refreshes per value")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of steps and store each run",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(liveCmd, runCmd, renderCmd, orbitCmd, listCmd, plotCmd, analyzeCmd, presetsCmd, configCmd,
		ensembleCmd, tuneCmd, sweepCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

const (
	renderRefreshes = 600
	tuneRefreshes   = 1200
	sweepRefreshes  = 600
)

// refreshCount returns --refreshes when it was given and def otherwise.
// Several commands bind the same variable with different defaults.
func refreshCount(cmd *cobra.Command, def int) int {
	if cmd.Flags().Changed("refreshes") {
		return refreshes
	}
	return def
}

// loadConfig resolves defaults, then --preset, then --config, then --seed.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	name := "default"
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}
	if cmd.Flags().Changed("seed") {
		cfg.Host.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func newEngine(cfg *config.Config) (*engine.Engine, error) {
	ec, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	return engine.New(ec)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	viz.SetTheme(cfg.Display.Theme)
	log.Printf("live: %s %dx%d at %d Hz", name, cfg.Display.Width, cfg.Display.Height, cfg.Host.RefreshRate)
	return viz.Run(eng, name, cfg.Host.RefreshRate)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("controller") {
		cfg.Host.Controller = controller
	}
	cfg.Host.Refreshes = refreshCount(cmd, cfg.Host.Refreshes)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	params, err := pursuitParams()
	if err != nil {
		return err
	}
	if err := exp.Setup(params); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %d refreshes...\n", name, cfg.Host.Refreshes)
	log.Printf("run: preset=%s controller=%s seed=%d refreshes=%d", name, cfg.Host.Controller, cfg.Host.Seed, cfg.Host.Refreshes)
	start := time.Now()

	result, err := exp.Run(ctx)
	if result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted after %d refreshes, keeping partial run\n", result.Refreshes)
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:       name,
		Seed:         uint16(cfg.Host.Seed),
		Width:        cfg.Display.Width,
		Height:       cfg.Display.Height,
		N:            cfg.Field.N,
		Eccentricity: uint8(cfg.Orbit.Eccentricity),
		Decay:        cfg.Field.Decay,
		Controller:   cfg.Host.Controller,
	}, result)
	if err != nil {
		return err
	}
	log.Printf("run: saved %s in %v", runID, elapsed)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("refreshes: %d\n", result.Refreshes)
	fmt.Printf("field frames: %d\n", result.Frames)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if lit := result.Series("lit"); len(lit) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(lit, asciigraph.Height(8), asciigraph.Width(70), asciigraph.Caption("lit pixels")))
	}

	if jsonOut != "" {
		if err := storage.ExportJSONFile(jsonOut, name, cfg.Host.Controller, uint16(cfg.Host.Seed), result); err != nil {
			return err
		}
		fmt.Printf("\nexported to %s\n", jsonOut)
	}
	return nil
}

// gifCapture records the framebuffer every n refreshes.
type gifCapture struct {
	rec *export.GIFRecorder
	fb  *raster.Framebuffer
	n   uint64
}

func (g *gifCapture) OnRefresh(v engine.View, f engine.Frame) {
	if f.Refresh%g.n == 0 {
		g.rec.Capture(g.fb)
	}
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	f := format
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), ".")
	}
	if every < 1 {
		every = 1
	}

	var rec *export.GIFRecorder
	switch f {
	case "png", "svg":
	case "gif":
		rec = export.NewGIFRecorder(every*100/cfg.Host.RefreshRate, 0)
		eng.AddObserver(&gifCapture{rec: rec, fb: eng.Surface(), n: uint64(every)})
	default:
		return fmt.Errorf("unknown format: %q (want png, svg or gif)", f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := eng.Run(ctx, refreshCount(cmd, renderRefreshes), nil)
	if err != nil {
		return err
	}
	log.Printf("render: %s %d refreshes, %d frames", name, result.Refreshes, result.Frames)

	fb := eng.Surface()
	switch f {
	case "png":
		err = export.SavePNG(outPath, fb, scale)
	case "svg":
		err = os.WriteFile(outPath, []byte(export.RasterToSVG(fb, float64(scale))), 0644)
	case "gif":
		err = rec.Save(outPath)
	}
	if err != nil {
		return err
	}

	pink, cyan := fb.Channels()
	fmt.Printf("rendered %s after %d refreshes (%d field frames)\n", outPath, result.Refreshes, result.Frames)
	fmt.Printf("lit: %d  pink: %d  cyan: %d\n", fb.Lit(), pink, cyan)
	return nil
}

func traceOrbit(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("ecc") {
		ecc = cfg.Orbit.Eccentricity
	}
	if ecc < 0 || ecc > 255 {
		return fmt.Errorf("eccentricity %d not in [0,255]", ecc)
	}
	if steps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d", steps)
	}

	anchor := orbit.Point{X: int16(cfg.Display.Width / 2), Y: int16(cfg.Display.Height / 2)}
	click := orbit.Point{X: int16(clickX), Y: int16(clickY)}
	bounds := orbit.Bounds{MinRadius: uint8(cfg.Orbit.WorkerMinRadius), MaxRadius: uint8(cfg.Orbit.MaxRadius)}
	el, angle := orbit.Fit(click, anchor, uint8(ecc), bounds)

	points, dist := tracePoints(el, angle, anchor, steps)

	fmt.Printf("radius: %d  eccentricity: %d  omega: %d  speed: %d\n", el.Radius, el.Eccentricity, el.Omega, el.Speed)
	fmt.Printf("semi-minor: %d  focus offset: %d\n\n", el.SemiMinor(), el.FocusOffset())
	fmt.Println(asciigraph.Plot(dist, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("distance from focus (px)")))

	if svgPath != "" {
		svg := export.TraceToSVG(points, anchor, cfg.Display.Width, cfg.Display.Height, "#00dcff")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}
	return nil
}

// tracePoints steps an orbit n times and returns the Q12.4 positions and
// the pixel distance of each from the focus.
func tracePoints(el orbit.Elements, angle uint16, anchor orbit.Point, n int) ([]orbit.Point, []float64) {
	points := make([]orbit.Point, n)
	dist := make([]float64, n)
	for i := range points {
		var p orbit.Point
		p, angle = orbit.Step(angle, el, anchor)
		points[i] = p
		dx := float64(p.X)/16 - float64(anchor.X)
		dy := float64(p.Y)/16 - float64(anchor.Y)
		dist[i] = math.Hypot(dx, dy)
	}
	return points, dist
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tREFRESHES\tFRAMES\tSEED\tCTRL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Refreshes,
			run.Frames,
			run.Seed,
			run.Controller,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	names := engine.SeriesNames()
	if cmd.Flags().Changed("series") {
		names = []string{series}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("refreshes: %d\n\n", meta.Refreshes)

	for _, name := range names {
		data, err := st.LoadSeries(runID, name)
		if err != nil {
			return err
		}
		if len(data) < 2 {
			return fmt.Errorf("no data to plot")
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	name := "lit"
	if cmd.Flags().Changed("series") {
		name = series
	}
	st := storage.New(dataDir)
	data, err := st.LoadSeries(args[0], name)
	if err != nil {
		return err
	}
	spec, err := analysis.NewSpectrum(data)
	if err != nil {
		return err
	}

	bin, amp := spec.Peak()
	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("series: %s (%d samples)\n", name, spec.N)
	if bin == 0 {
		fmt.Println("no oscillation found")
		return nil
	}
	fmt.Printf("dominant period: %.1f refreshes (bin %d, amplitude %.2f)\n\n", spec.Period(bin), bin, amp)
	fmt.Println(asciigraph.Plot(spec.Amplitude[1:],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("amplitude by cycles per run"),
	))
	return nil
}

// workerKind resolves --kind to a worker pool kind.
func workerKind() (actor.Kind, error) {
	k, ok := actor.ParseKind(spawnKind)
	if !ok || !k.IsWorker() {
		return 0, fmt.Errorf("unknown worker kind %q (guardian, gardener)", spawnKind)
	}
	return k, nil
}

func pursuitParams() (map[string]float64, error) {
	k, err := workerKind()
	if err != nil {
		return nil, err
	}
	params := map[string]float64{"kp": kp, "kd": kd}
	if k == actor.Gardener {
		params["gardener"] = 1
	}
	return params, nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Host.Refreshes = refreshCount(cmd, cfg.Host.Refreshes)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := experiment.NewEnsemble(cfg, nil, runs)
	fmt.Printf("running %s under %d seeds...\n", name, runs)
	start := time.Now()
	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}
	log.Printf("ensemble: %s %d runs in %v", name, runs, time.Since(start))

	mean := experiment.MeanMetrics(results)
	names := make([]string, 0, len(mean))
	for n := range mean {
		names = append(names, n)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED\tFRAMES")
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(n))
	}
	fmt.Fprintln(w)
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d", ens.Seed(i), r.Frames)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, "mean\t")
	for _, n := range names {
		fmt.Fprintf(w, "\t%.4f", mean[n])
	}
	fmt.Fprintln(w)
	return w.Flush()
}

func tunePursuit(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Host.Controller = "pursuit"
	cfg.Host.Refreshes = refreshCount(cmd, tuneRefreshes)
	kind, err := workerKind()
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		trial := *cfg
		if kind == actor.Gardener {
			params["gardener"] = 1
		}
		exp := experiment.New(&trial)
		if err := exp.Setup(params); err != nil {
			return nil, err
		}
		return exp, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("tuning pursuit on %s: %d x %d grid, minimizing %s\n", name, len(kpGrid), len(kdGrid), metric)
	g := optim.NewGridSearch([]string{"kp", "kd"}, [][]float64{kpGrid, kdGrid})
	best, trials, err := g.Search(ctx, build, metric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "KP\tKD\t%s\n", strings.ToUpper(metric))
	for _, t := range trials {
		fmt.Fprintf(w, "%.0f\t%.0f\t%.4f\n", t.Params["kp"], t.Params["kd"], t.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: kp=%.0f kd=%.0f %s=%.4f\n", best.Params["kp"], best.Params["kd"], metric, best.Value)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{
		Preset:    preset,
		Param:     args[0],
		Min:       sweepMin,
		Max:       sweepMax,
		NumSteps:  numSteps,
		Refreshes: refreshCount(cmd, sweepRefreshes),
	}
	results, err := automation.RunSweep(ctx, sweep, os.Stdout)
	if err != nil {
		return err
	}

	lit := make([]float64, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\n%s\tFRAMES\tLIT\tINFECTION\n", strings.ToUpper(args[0]))
	for i, r := range results {
		lit[i] = r.Metrics["lit_pixels"]
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\n", r.ParamValue, r.Frames, r.Metrics["lit_pixels"], r.Metrics["infection"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(lit) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(lit, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("lit fraction vs "+args[0])))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sc.Description != "" {
		fmt.Printf("%s: %s\n", sc.Name, sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, st, os.Stdout)
	for _, r := range results {
		fmt.Printf("  %-12s %s  frames=%d  infection=%.4f\n", r.Name, r.RunID, r.Result.Frames, r.Result.Metrics["infection"])
	}
	return err
}
