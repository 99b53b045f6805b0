package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pskrzyn/geosim/internal/config"
	"github.com/pskrzyn/geosim/internal/control"
	"github.com/pskrzyn/geosim/internal/export"
	"github.com/pskrzyn/geosim/internal/geom"
	"github.com/pskrzyn/geosim/internal/hull"
	"github.com/pskrzyn/geosim/internal/metrics"
	"github.com/pskrzyn/geosim/internal/plant"
	"github.com/pskrzyn/geosim/internal/sim"
	"github.com/pskrzyn/geosim/internal/storage"
	"github.com/pskrzyn/geosim/internal/viz"
)

var (
	dataDir string
	// pid flags
	kp         float64
	ki         float64
	kd         float64
	dt         float64
	duration   float64
	setpoint   float64
	tau        float64
	controller string
	configFile string
	preset     string
	// hull flags
	randomN  int
	seed     int64
	svgPath  string
	showPlot bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "geosim",
		Short: "convex hull construction and control loop lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".geosim", "data directory")

	hullCmd := &cobra.Command{
		Use:   "hull [points.csv]",
		Short: "compute the hull of a point set",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHull,
	}
	hullCmd.Flags().IntVar(&randomN, "random", 0, "generate n random points instead of reading a file")
	hullCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	hullCmd.Flags().StringVar(&svgPath, "svg", "", "write an SVG rendering to this path")
	hullCmd.Flags().BoolVar(&showPlot, "plot", false, "render a terminal scatter plot")

	pidCmd := &cobra.Command{
		Use:   "pid",
		Short: "run the control loop simulation",
		RunE:  runPID,
	}
	pidCmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	pidCmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "integral gain")
	pidCmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "derivative gain")
	pidCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	pidCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	pidCmd.Flags().Float64Var(&setpoint, "setpoint", config.DefaultSetpoint, "desired setpoint")
	pidCmd.Flags().Float64Var(&tau, "tau", config.DefaultTau, "plant time constant")
	pidCmd.Flags().StringVar(&controller, "controller", "pid", "controller (pid, none)")
	pidCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	pidCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

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

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the control loop with live visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	liveCmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "integral gain")
	liveCmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "derivative gain")
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Float64Var(&setpoint, "setpoint", config.DefaultSetpoint, "desired setpoint")
	liveCmd.Flags().Float64Var(&tau, "tau", config.DefaultTau, "plant time constant")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(hullCmd, pidCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runHull(cmd *cobra.Command, args []string) error {
	var points []geom.Point
	var err error

	switch {
	case randomN > 0:
		points = randomPoints(randomN, seed)
	case len(args) == 1:
		points, err = readPointsCSV(args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either a points file or --random n is required")
	}

	// The construction permutes its input; keep the original order for
	// persistence.
	original := append([]geom.Point(nil), points...)

	start := time.Now()
	hullPts := hull.Compute(points)
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveHull(seed, original, hullPts)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d, hull: %d, elapsed: %v\n\n", len(original), len(hullPts), elapsed)
	for _, p := range hullPts {
		fmt.Printf("(%g, %g)\n", p.X, p.Y)
	}

	if showPlot {
		fmt.Println()
		fmt.Println(viz.Scatter(original, hullPts, 70, 20))
	}

	if svgPath != "" {
		svg := export.HullSVG(original, hullPts, 640, 640)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nsvg written to %s\n", svgPath)
	}

	return nil
}

func runPID(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and config file values.
	applyFlagOverrides(cmd, cfg)

	runner, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s control loop...\n", cfg.Controller.Kind)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Setpoint: cfg.Setpoint,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveSim(cfg.Controller.Kind, cfg.Dt, cfg.Duration, cfg.Setpoint, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("kp") {
		cfg.Controller.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.Controller.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.Controller.Kd = kd
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("setpoint") {
		cfg.Setpoint = setpoint
	}
	if cmd.Flags().Changed("tau") {
		cfg.Tau = tau
	}
	if cmd.Flags().Changed("controller") {
		cfg.Controller.Kind = controller
	}
}

func buildRunner(cfg *config.Config) (*sim.Runner, error) {
	p := plant.NewFirstOrderLag(cfg.Tau)

	var ctrl control.Controller
	switch cfg.Controller.Kind {
	case "pid":
		pid := control.NewPID(cfg.Controller.Kp, cfg.Controller.Ki, cfg.Controller.Kd, cfg.Dt, cfg.Setpoint)
		if cfg.Controller.IntegralLimit > 0 {
			pid.IntegralLimit = cfg.Controller.IntegralLimit
		}
		if cfg.Controller.OutputLimit > 0 {
			pid.OutputLimit = cfg.Controller.OutputLimit
		}
		ctrl = pid
	case "none", "":
		ctrl = control.NewNone()
	default:
		return nil, fmt.Errorf("unknown controller: %s", cfg.Controller.Kind)
	}

	runner := sim.New(p, ctrl)
	runner.AddMetric(metrics.NewControlEffort())
	runner.AddMetric(metrics.NewTrackingError(cfg.Setpoint))
	return runner, nil
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
	fmt.Fprintln(w, "ID\tKIND\tTIME\tDETAILS")

	for _, run := range runs {
		details := ""
		switch run.Kind {
		case storage.KindSim:
			details = fmt.Sprintf("%s dt=%.4fs dur=%.1fs", run.Controller, run.Dt, run.Duration)
		case storage.KindHull:
			details = fmt.Sprintf("points=%d hull=%d", run.Points, run.HullPoints)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			details,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	switch meta.Kind {
	case storage.KindSim:
		result, err := st.LoadSeries(meta.ID)
		if err != nil {
			return err
		}
		fmt.Printf("run: %s\nsamples: %d\n\n", meta.ID, result.StepsTaken)
		fmt.Println(viz.Series("process variable", result.Process))
		fmt.Println()
		fmt.Println(viz.Series("compensated output (pv+u)", result.Output))
		return nil

	case storage.KindHull:
		input, hullPts, err := st.LoadHull(meta.ID)
		if err != nil {
			return err
		}
		fmt.Printf("run: %s\n\n", meta.ID)
		fmt.Println(viz.Scatter(input, hullPts, 70, 20))
		return nil
	}

	return fmt.Errorf("unknown run kind: %s", meta.Kind)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	switch meta.Kind {
	case storage.KindSim:
		result, err := st.LoadSeries(meta.ID)
		if err != nil {
			return err
		}
		if err := w.Write([]string{"time", "pv", "u", "output"}); err != nil {
			return err
		}
		for i := range result.Times {
			row := []string{
				strconv.FormatFloat(result.Times[i], 'f', 6, 64),
				strconv.FormatFloat(result.Process[i], 'f', 6, 64),
				strconv.FormatFloat(result.Control[i], 'f', 6, 64),
				strconv.FormatFloat(result.Output[i], 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil

	case storage.KindHull:
		_, hullPts, err := st.LoadHull(meta.ID)
		if err != nil {
			return err
		}
		if err := w.Write([]string{"x", "y"}); err != nil {
			return err
		}
		for _, p := range hullPts {
			row := []string{
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unknown run kind: %s", meta.Kind)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	switch meta.Kind {
	case storage.KindSim:
		result, err := st.LoadSeries(meta.ID)
		if err != nil {
			return err
		}
		return storage.ExportSimJSON(os.Stdout, meta, result)

	case storage.KindHull:
		input, hullPts, err := st.LoadHull(meta.ID)
		if err != nil {
			return err
		}
		return storage.ExportHullJSON(os.Stdout, meta, input, hullPts)
	}

	return fmt.Errorf("unknown run kind: %s", meta.Kind)
}

func runLive(cmd *cobra.Command, args []string) error {
	p := plant.NewFirstOrderLag(tau)
	pid := control.NewPID(kp, ki, kd, dt, setpoint)

	m := viz.NewModel(p, pid, sim.Config{Dt: dt, Setpoint: setpoint})

	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

func randomPoints(n int, seed int64) []geom.Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]geom.Point, n)
	for i := range points {
		points[i] = geom.Pt(rng.Float64()*100, rng.Float64()*100)
	}
	return points
}

// readPointsCSV parses a two-column CSV of coordinates. A leading header row
// is skipped when its first field is not numeric.
func readPointsCSV(path string) ([]geom.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	points := make([]geom.Point, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: expected two columns, got %d", i+1, len(record))
		}
		x, errX := strconv.ParseFloat(record[0], 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		if errX != nil || errY != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: invalid coordinates %v", i+1, record)
		}
		points = append(points, geom.Pt(x, y))
	}
	return points, nil
}
