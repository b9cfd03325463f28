package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/mcpi/internal/config"
	"github.com/san-kum/mcpi/internal/export"
	"github.com/san-kum/mcpi/internal/metrics"
	"github.com/san-kum/mcpi/internal/montecarlo"
	"github.com/san-kum/mcpi/internal/rng"
	"github.com/san-kum/mcpi/internal/storage"
	"github.com/san-kum/mcpi/internal/viz"
)

var (
	dataDir    string
	threads    int
	repeat     int
	sample     float64
	generator  string
	seed       uint64
	configFile string
	preset     string
	save       bool
	verbose    bool
	// Sweep bounds for converge
	sweepFrom float64
	sweepTo   float64
	// Output paths
	svgPath   string
	sketchOut string
	exportOut string
	points    int
)

// main registers the commands and flags and executes the root command,
// which estimates π. It exits with status 1 if the command returns an error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pi",
		Short:        "estimate pi by Monte Carlo sampling",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runEstimate,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", montecarlo.ErrInvalidArgument, err)
	})

	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&threads, "threads", "j", montecarlo.DefaultThreads(), "number of threads")
	pf.IntVarP(&repeat, "repeat", "r", config.DefaultRepeat, "repeat experiment n times")
	pf.Float64VarP(&sample, "sample", "s", config.DefaultSample, "number of samples")
	pf.StringVar(&generator, "generator", config.DefaultGenerator, "random generator")
	pf.Uint64Var(&seed, "seed", 0, "master seed (0 seeds from OS entropy)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&dataDir, "data", ".mcpi", "data directory")

	rootCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a run report")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live progress view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "sweep the sample count over decades and plot the error",
		Args:  cobra.NoArgs,
		RunE:  runConverge,
	}
	convergeCmd.Flags().Float64Var(&sweepFrom, "from", 10, "smallest sample count")
	convergeCmd.Flags().Float64Var(&sweepTo, "to", 1e7, "largest sample count")
	convergeCmd.Flags().StringVar(&svgPath, "svg", "", "also write the error curve as SVG")

	sketchCmd := &cobra.Command{
		Use:   "sketch",
		Short: "draw sample points against the quarter circle as SVG",
		Args:  cobra.NoArgs,
		RunE:  runSketch,
	}
	sketchCmd.Flags().IntVar(&points, "points", 2000, "number of points to draw")
	sketchCmd.Flags().StringVarP(&sketchOut, "out", "o", "pi.svg", "output file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREPEAT\tSAMPLE\tGENERATOR")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%d\t%g\t%s\n", name, p.Repeat, p.Sample, p.Generator)
			}
			return w.Flush()
		},
	}

	generatorsCmd := &cobra.Command{
		Use:   "generators",
		Short: "list available random generators",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range rng.NewRegistry().List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	rootCmd.AddCommand(liveCmd, convergeCmd, sketchCmd, listCmd, showCmd, exportCmd, presetsCmd, generatorsCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Overlay(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("threads") {
		cfg.Threads = threads
	}
	if flags.Changed("repeat") {
		cfg.Repeat = repeat
	}
	if flags.Changed("sample") {
		cfg.Sample = sample
	}
	if flags.Changed("generator") {
		cfg.Generator = generator
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newFactory(cfg *config.Config) (montecarlo.SourceFactory, error) {
	var seeder rng.Seeder = rng.NewEntropySeeder()
	if cfg.Seed != 0 {
		seeder = rng.NewFixedSeeder(cfg.Seed)
	}
	return rng.NewRegistry().Factory(cfg.Generator, seeder)
}

func newDriver(cfg *config.Config) (*montecarlo.Driver, error) {
	factory, err := newFactory(cfg)
	if err != nil {
		return nil, err
	}
	return montecarlo.NewDriver(factory), nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	rc, err := cfg.Run()
	if err != nil {
		return err
	}
	d, err := newDriver(cfg)
	if err != nil {
		return err
	}

	res, err := d.Run(cmd.Context(), rc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Value of pi: %v\n", res.Mean)

	if verbose {
		summary := metrics.Summarize(res.Estimates)
		fmt.Fprintln(out, viz.Report("run", summary, runFields(cfg, res)))
		fmt.Fprintln(out, viz.EstimatesPlot(res.Estimates))
	}

	return saveRun(cmd, cfg, res)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	rc, err := cfg.Run()
	if err != nil {
		return err
	}
	d, err := newDriver(cfg)
	if err != nil {
		return err
	}

	feed := viz.NewFeed(rc.Repeat)
	d.AddObserver(feed)

	m := viz.NewLiveModel(cmd.Context(), rc, cfg.Generator, feed, func(ctx context.Context) (*montecarlo.Result, error) {
		return d.Run(ctx, rc)
	})

	final, err := tea.NewProgram(m,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	).Run()
	if err != nil {
		return err
	}

	res, err := final.(viz.LiveModel).Result()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Value of pi: %v\n", res.Mean)
	return saveRun(cmd, cfg, res)
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	from, err := config.SampleCount(sweepFrom)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := config.SampleCount(sweepTo)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	if to < from {
		return fmt.Errorf("%w: sweep needs from <= to, got %d..%d", montecarlo.ErrInvalidArgument, from, to)
	}
	d, err := newDriver(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLES\tESTIMATE\tERROR\tTIME")

	var sweep []viz.ConvergencePoint
	for n := from; n <= to; {
		rc := montecarlo.Config{Threads: cfg.Threads, Repeat: cfg.Repeat, Samples: n}
		res, err := d.Run(cmd.Context(), rc)
		if err != nil {
			return err
		}
		p := viz.ConvergencePoint{Samples: rc.Samples, Estimate: res.Mean}
		sweep = append(sweep, p)
		fmt.Fprintf(w, "%d\t%.10f\t%.3e\t%v\n", p.Samples, p.Estimate, p.AbsError(), res.Elapsed.Round(time.Microsecond))
		if n > to/10 {
			break
		}
		n *= 10
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.ConvergencePlot(sweep))

	if svgPath != "" {
		samples := make([]uint64, len(sweep))
		estimates := make([]float64, len(sweep))
		for i, p := range sweep {
			samples[i], estimates[i] = p.Samples, p.Estimate
		}
		svg := export.ConvergenceSVG(samples, estimates, 640, 400)
		if svg == "" {
			return fmt.Errorf("no convergence curve to write to %s", svgPath)
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", svgPath)
	}
	return nil
}

func runSketch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if points < 1 {
		return fmt.Errorf("%w: points must be positive, got %d", montecarlo.ErrInvalidArgument, points)
	}
	factory, err := newFactory(cfg)
	if err != nil {
		return err
	}

	svg, pi := export.SamplesSVG(factory(0), points, 400)
	if err := os.WriteFile(sketchOut, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d points, estimate %v)\n", sketchOut, points, pi)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportOut == "" {
		return st.ExportJSON(cmd.OutOrStdout(), args[0])
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	defer f.Close()

	return st.ExportJSON(f, args[0])
}

func saveRun(cmd *cobra.Command, cfg *config.Config, res *montecarlo.Result) error {
	if !save {
		return nil
	}

	st := storage.New(dataDir)
	summary := metrics.Summarize(res.Estimates)
	runID, err := st.Save(storage.RunMetadata{
		Threads:   res.Threads,
		Repeat:    len(res.Estimates),
		Samples:   res.Samples,
		Generator: cfg.Generator,
		Seed:      cfg.Seed,
		Mean:      res.Mean,
		Elapsed:   res.Elapsed,
		Metrics:   summary.Map(),
	}, res.Estimates)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run id: %s\n", runID)
	return nil
}

func runFields(cfg *config.Config, res *montecarlo.Result) map[string]string {
	fields := map[string]string{
		"threads":   strconv.Itoa(res.Threads),
		"repeat":    strconv.Itoa(len(res.Estimates)),
		"samples":   strconv.FormatUint(res.Samples, 10),
		"generator": cfg.Generator,
		"elapsed":   res.Elapsed.Round(time.Millisecond).String(),
	}
	if cfg.Seed != 0 {
		fields["seed"] = strconv.FormatUint(cfg.Seed, 10)
	}
	return fields
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
	fmt.Fprintln(w, "ID\tTIME\tTHREADS\tREPEAT\tSAMPLES\tGEN\tMEAN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%.10f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Threads,
			run.Repeat,
			run.Samples,
			run.Generator,
			run.Mean,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	estimates, err := st.LoadEstimates(runID)
	if err != nil {
		return err
	}

	fields := map[string]string{
		"threads":   strconv.Itoa(meta.Threads),
		"repeat":    strconv.Itoa(meta.Repeat),
		"samples":   strconv.FormatUint(meta.Samples, 10),
		"generator": meta.Generator,
		"time":      meta.Timestamp.Format("2006-01-02 15:04:05"),
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Report(meta.ID, metrics.Summarize(estimates), fields))
	fmt.Fprintln(out, viz.EstimatesPlot(estimates))
	return nil
}
