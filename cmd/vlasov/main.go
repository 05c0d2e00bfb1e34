package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/vlasov/internal/config"
	"github.com/san-kum/vlasov/internal/loading"
	"github.com/san-kum/vlasov/internal/metrics"
	"github.com/san-kum/vlasov/internal/parallel"
	"github.com/san-kum/vlasov/internal/sim"
	"github.com/san-kum/vlasov/internal/storage"
	"github.com/san-kum/vlasov/internal/transport"
	"github.com/san-kum/vlasov/internal/viz"
)

var (
	dataDir string
	verbose bool

	configFile string
	preset     string

	cells      int
	xMin       float64
	xMax       float64
	dt         float64
	steps      int
	printEvery int
	perCell    int
	vThermal   float64
	epsilon    float64
	waveNumber float64
	accel      float64
	workers    int
	minChunk   int

	noSave     bool
	palette    string
	benchSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "vlasov",
		Short:        "1-D periodic particle-mesh transport",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vlasov", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run a simulation and store its density snapshots",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the initial and final density of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [file]",
		Short: "export a run as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().StringVar(&palette, "palette", viz.PalettePlasma.Name, "color palette")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare kernel throughput across execution strategies",
		RunE:  runBench,
	}
	addConfigFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchSteps, "bench-steps", 50, "steps per measurement")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCELLS\tDOMAIN\tDT\tSTEPS\tPER CELL\tEPS\tK\tACCEL")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t[%.3f, %.3f)\t%g\t%d\t%d\t%g\t%g\t%g\n",
					name, p.Grid.Cells, p.Grid.XMin, p.Grid.XMax, p.Time.Dt, p.Time.Steps,
					p.Loading.PerCell, p.Loading.Epsilon, p.Loading.K, p.Acceleration)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&cells, "cells", def.Grid.Cells, "number of grid cells")
	f.Float64Var(&xMin, "x-min", def.Grid.XMin, "left edge of the domain")
	f.Float64Var(&xMax, "x-max", def.Grid.XMax, "right edge of the domain")
	f.Float64Var(&dt, "dt", def.Time.Dt, "timestep")
	f.IntVar(&steps, "steps", def.Time.Steps, "number of steps")
	f.IntVar(&printEvery, "print-every", def.Time.PrintEvery, "snapshot interval in steps")
	f.IntVar(&perCell, "per-cell", def.Loading.PerCell, "particles per cell")
	f.Float64Var(&vThermal, "v-thermal", def.Loading.VThermal, "thermal velocity")
	f.Float64Var(&epsilon, "epsilon", def.Loading.Epsilon, "density perturbation amplitude")
	f.Float64Var(&waveNumber, "k", def.Loading.K, "perturbation wave number")
	f.Float64Var(&accel, "acceleration", def.Acceleration, "uniform acceleration")
	f.IntVar(&workers, "workers", def.Execution.Workers, "kernel workers (0 = one per CPU)")
	f.IntVar(&minChunk, "min-chunk", def.Execution.MinChunk, "smallest particle range per worker")
}

// resolveConfig layers defaults, then the preset, then the config file,
// then any flag set explicitly on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("cells") {
		cfg.Grid.Cells = cells
	}
	if changed("x-min") {
		cfg.Grid.XMin = xMin
	}
	if changed("x-max") {
		cfg.Grid.XMax = xMax
	}
	if changed("dt") {
		cfg.Time.Dt = dt
	}
	if changed("steps") {
		cfg.Time.Steps = steps
	}
	if changed("print-every") {
		cfg.Time.PrintEvery = printEvery
	}
	if changed("per-cell") {
		cfg.Loading.PerCell = perCell
	}
	if changed("v-thermal") {
		cfg.Loading.VThermal = vThermal
	}
	if changed("epsilon") {
		cfg.Loading.Epsilon = epsilon
	}
	if changed("k") {
		cfg.Loading.K = waveNumber
	}
	if changed("acceleration") {
		cfg.Acceleration = accel
	}
	if changed("workers") {
		cfg.Execution.Workers = workers
	}
	if changed("min-chunk") {
		cfg.Execution.MinChunk = minChunk
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name := "run"
	if len(args) == 1 {
		name = args[0]
	} else if preset != "" {
		name = preset
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	g, err := cfg.NewGrid()
	if err != nil {
		return err
	}
	p, err := loading.Maxwellian(g, cfg.Loading)
	if err != nil {
		return err
	}

	s := sim.New(g, p,
		sim.WithLogger(newLogger(cmd.ErrOrStderr())),
		sim.WithStrategy(cfg.Strategy()))
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "grid: %d cells on [%.4f, %.4f), dx = %.6f\n", g.Cells(), g.XMin(), g.XMax(), g.Dx())
	fmt.Fprintf(out, "particles: %d (total weight %.6f)\n\n", p.Len(), loading.TotalWeight(p))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, runErr := s.Run(ctx, cfg.SimConfig())
	if result == nil {
		return runErr
	}

	for _, snap := range result.Snapshots {
		fmt.Fprintln(out, statusLine(snap, result.Particles))
	}
	fmt.Fprintln(out)
	printMetrics(out, result.Metrics)
	fmt.Fprintf(out, "elapsed: %v\n", result.Elapsed.Round(time.Microsecond))

	if runErr != nil && !errors.Is(runErr, sim.ErrCanceled) {
		return runErr
	}

	if !noSave {
		st := storage.New(dataDir)
		runID, err := st.Save(name, cfg, result)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintf(out, "saved: %s\n", runID)
	}
	return runErr
}

func statusLine(snap sim.Snapshot, particles int) string {
	return fmt.Sprintf("Step %5d | t = %8.4f | particles = %d | rho: [%8.4f, %8.4f]",
		snap.Step, snap.Time, particles, snap.Min, snap.Max)
}

func printMetrics(w io.Writer, values map[string]float64) {
	for _, m := range metrics.Standard() {
		if v, ok := values[m.Name()]; ok {
			fmt.Fprintf(w, "%-16s %.6g\n", m.Name()+":", v)
		}
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tCELLS\tPARTICLES\tSTEPS\tDT\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%g\t%.1fms\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Cells,
			run.Particles,
			run.Steps,
			run.Dt,
			run.ElapsedMs,
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
	snapshots, err := st.LoadDensity(runID)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "cells: %d, particles: %d\n", meta.Cells, meta.Particles)
	fmt.Fprintf(out, "snapshots: %d\n\n", len(snapshots))

	first, last := snapshots[0], snapshots[len(snapshots)-1]
	fmt.Fprintln(out, viz.DensityPlot(first.Density, 80, 10, fmt.Sprintf("density at t = %.4f", first.Time)))
	fmt.Fprintln(out)
	if len(snapshots) > 1 {
		fmt.Fprintln(out, viz.DensityPlot(last.Density, 80, 10, fmt.Sprintf("density at t = %.4f", last.Time)))
		fmt.Fprintln(out)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if len(args) == 2 {
		if err := st.ExportFile(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", args[0], args[1])
		return nil
	}
	return st.Export(args[0], cmd.OutOrStdout())
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	g, err := cfg.NewGrid()
	if err != nil {
		return err
	}
	p, err := loading.Maxwellian(g, cfg.Loading)
	if err != nil {
		return err
	}

	name := "vlasov"
	if preset != "" {
		name = preset
	}

	st := sim.NewStepper(g, p, transport.New(cfg.Strategy()), cfg.Time.Dt, cfg.Acceleration)

	m := viz.NewModel(st, name).WithPalette(palette)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if benchSteps < 1 {
		return fmt.Errorf("bench-steps must be positive, got %d", benchSteps)
	}

	g, err := cfg.NewGrid()
	if err != nil {
		return err
	}
	p, err := loading.Maxwellian(g, cfg.Loading)
	if err != nil {
		return err
	}

	strategies := []struct {
		name string
		s    parallel.Strategy
	}{
		{"sequential", parallel.Sequential},
		{"chunked-2", parallel.Chunked(2, cfg.Execution.MinChunk)},
		{"chunked-4", parallel.Chunked(4, cfg.Execution.MinChunk)},
		{"auto", parallel.Auto()},
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d particles on %d cells, %d steps\n\n", p.Len(), g.Cells(), benchSteps)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tWORKERS\tCHUNKS\tTIME\tSTEPS/SEC\tPARTICLES/SEC")

	simCfg := cfg.SimConfig()
	simCfg.Steps = benchSteps
	simCfg.PrintEvery = 0

	for _, bc := range strategies {
		s := sim.New(g, p, sim.WithStrategy(bc.s))
		result, err := s.Run(cmd.Context(), simCfg)
		if err != nil {
			return err
		}
		secs := result.Elapsed.Seconds()
		stepsPerSec := float64(result.StepsTaken) / secs
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.3g\n",
			bc.name,
			max(bc.s.Workers, 1),
			len(bc.s.Chunks(p.Len())),
			result.Elapsed.Round(time.Microsecond),
			stepsPerSec,
			stepsPerSec*float64(p.Len()),
		)
	}
	return w.Flush()
}
