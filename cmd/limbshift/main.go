package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/limbshift/internal/config"
	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/export"
	"github.com/san-kum/limbshift/internal/log"
	"github.com/san-kum/limbshift/internal/metrics"
	"github.com/san-kum/limbshift/internal/sim"
	"github.com/san-kum/limbshift/internal/solver"
	"github.com/san-kum/limbshift/internal/trial"
	"github.com/san-kum/limbshift/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	dominant   string
	mode       string
	preset     string
	// Trial selection
	handTarget     string
	elbowTarget    string
	condition      string
	shoulderOffset float64
	elbowOffset    float64
	// Reach timing
	dt        float64
	duration  float64
	overshoot float64
	svgFile   string
)

// main registers the commands and flags and executes the root command.
func main() {
	rootCmd := &cobra.Command{
		Use:           "limbshift",
		Short:         "virtual limb offset engine for reaching experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logLevel
			if !cmd.Flags().Changed("log-level") {
				if cfg, err := loadConfig(cmd); err == nil {
					level = cfg.LogLevel
				}
			}
			log.Init(level)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dominant, "hand", "right", "dominant hand (right, left)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "table", "offset solver mode (table, bone)")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "compute the virtual anchors for one trial",
		RunE:  runSolve,
	}
	addTrialFlags(solveCmd)

	reachCmd := &cobra.Command{
		Use:   "reach",
		Short: "simulate a reach and report the virtual limb",
		RunE:  runReach,
	}
	addTrialFlags(reachCmd)
	addReachFlags(reachCmd)
	reachCmd.Flags().StringVar(&svgFile, "svg", "", "write a top-down view of the reach to this file")

	liveCmd := &cobra.Command{
		Use:   "live [preset...]",
		Short: "watch simulated reaches in the terminal",
		RunE:  runLive,
	}
	addReachFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset...]",
		Short: "simulate several presets concurrently and compare metrics",
		RunE:  runSweep,
	}
	addReachFlags(sweepCmd)

	targetsCmd := &cobra.Command{
		Use:   "targets",
		Short: "list the table targets of the active layout",
		RunE:  listTargets,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available trial presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(solveCmd, reachCmd, liveCmd, sweepCmd, targetsCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addTrialFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset trial")
	cmd.Flags().StringVar(&handTarget, "hand-target", "MM", "hand target (MM, MP, PM, PP)")
	cmd.Flags().StringVar(&elbowTarget, "elbow-target", "MM_MP", "elbow target (MM_MP, PM_PP, R)")
	cmd.Flags().StringVar(&condition, "condition", "congruent", "trial condition (congruent, shortened, lengthened)")
	cmd.Flags().Float64Var(&shoulderOffset, "shoulder-offset", 0, "shoulder angle offset in degrees")
	cmd.Flags().Float64Var(&elbowOffset, "elbow-offset", 0, "elbow angle offset in degrees")
}

func addReachFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "reach duration")
	cmd.Flags().Float64Var(&overshoot, "overshoot", 0, "reach past the target as a fraction of the path")
}

// loadConfig reads the config file when one is given and applies the flags
// the user set explicitly on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("hand") {
		h, err := trial.ParseDominantHand(dominant)
		if err != nil {
			return nil, err
		}
		cfg.DominantHand = h
	}
	if flags.Changed("mode") {
		m, err := solver.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		cfg.Mode = m
	}
	if flags.Changed("dt") {
		cfg.Reach.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Reach.Duration = duration
	}
	if flags.Changed("overshoot") {
		cfg.Reach.Overshoot = overshoot
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// trialFromFlags starts from the preset, if any, and overrides it with the
// trial flags that were set.
func trialFromFlags(cmd *cobra.Command) (sim.Reach, error) {
	var r sim.Reach
	flags := cmd.Flags()

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return r, fmt.Errorf("unknown preset: %s", preset)
		}
		r.Selection, r.Trial = p.Selection, p.Trial
	}

	if preset == "" || flags.Changed("hand-target") {
		h, err := trial.ParseTargetHand(handTarget)
		if err != nil {
			return r, err
		}
		r.Selection.Hand = h
	}
	if preset == "" || flags.Changed("elbow-target") {
		e, err := trial.ParseTargetElbow(elbowTarget)
		if err != nil {
			return r, err
		}
		r.Selection.Elbow = e
	}
	if preset == "" || flags.Changed("condition") {
		c, err := trial.ParseCondition(condition)
		if err != nil {
			return r, err
		}
		r.Trial.Condition = c
	}
	if preset == "" || flags.Changed("shoulder-offset") {
		r.Trial.ShoulderAngleOffset = shoulderOffset
	}
	if preset == "" || flags.Changed("elbow-offset") {
		r.Trial.ElbowAngleOffset = elbowOffset
	}

	return r, r.Trial.Validate()
}

func simConfig(cfg *config.Config) sim.Config {
	sc := sim.DefaultConfig()
	sc.Dt = cfg.Reach.Dt
	sc.Duration = cfg.Reach.Duration
	sc.Overshoot = cfg.Reach.Overshoot
	return sc
}

func newEngine(cfg *config.Config) (*engine.Engine, error) {
	return engine.New(cfg.EngineConfig(), cfg.GetLayout(), engine.WithLogger(log.L()))
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := trialFromFlags(cmd)
	if err != nil {
		return err
	}

	l := cfg.GetLayout()
	s, err := solver.New(cfg.Mode, l, cfg.EngineConfig().Solver)
	if err != nil {
		return err
	}
	path, err := sim.PlanPath(l, r.Selection, 0)
	if err != nil {
		return err
	}

	anchors, err := s.Solve(solver.Anchors{}, solver.Input{
		Selection: r.Selection,
		Trial:     r.Trial,
		Dominant:  cfg.DominantHand,
		Pose:      path.Pose(0, sim.DefaultConfig().Forward),
	})
	if errors.Is(err, solver.ErrUnsupportedTarget) {
		fmt.Printf("elbow target %s has no %s offset; anchors unchanged\n", r.Selection.Elbow, cfg.Mode)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("mode: %s  hand: %s\n", cfg.Mode, cfg.DominantHand)
	fmt.Printf("selection: %s\n", r.Selection)
	fmt.Printf("trial: %s\n", r.Trial)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nJOINT\tTARGET\tANCHOR")
	fmt.Fprintf(w, "hand\t%s\t%s\n", viz.FormatVec(path.HandTo), viz.FormatVec(anchors.Hand))
	fmt.Fprintf(w, "elbow\t%s\t%s\n", viz.FormatVec(path.ElbowTo), viz.FormatVec(anchors.Elbow))
	if anchors.Pinned {
		fmt.Fprintln(w, "\t(pinned to the real limb)\t")
	}
	return w.Flush()
}

func runReach(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := trialFromFlags(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	s := sim.New(eng)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Debug("running reach", "selection", r.Selection.String(), "trial", r.Trial.String())
	result, err := s.Run(ctx, r, simConfig(cfg))
	if err != nil {
		return err
	}

	title := preset
	if title == "" {
		title = "reach"
	}
	fmt.Println(viz.Report(title, r, result))

	if svgFile != "" {
		if err := export.WriteReachSVG(svgFile, eng.Layout(), result.Frames, 600, 600); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}
	reaches := make([]viz.NamedReach, 0, len(names))
	for _, name := range names {
		p, ok := config.GetPreset(name)
		if !ok {
			return fmt.Errorf("unknown preset: %s", name)
		}
		reaches = append(reaches, viz.NamedReach{
			Name:  name,
			Reach: sim.Reach{Selection: p.Selection, Trial: p.Trial},
		})
	}

	return viz.Run(eng, reaches, simConfig(cfg))
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}
	reaches := make([]sim.Reach, 0, len(names))
	for _, name := range names {
		p, ok := config.GetPreset(name)
		if !ok {
			return fmt.Errorf("unknown preset: %s", name)
		}
		reaches = append(reaches, sim.Reach{Selection: p.Selection, Trial: p.Trial})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := sim.NewEnsemble(func() (*engine.Engine, error) { return newEngine(cfg) }, metrics.Defaults)
	results, err := ens.Run(ctx, reaches, simConfig(cfg))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPHASE\tPEAK HAND\tPEAK ELBOW\tHAND PROG\tELBOW PROG\tMONOTONIC")
	for i, res := range results {
		phase := "-"
		if len(res.Frames) > 0 {
			phase = res.Frames[len(res.Frames)-1].Phase.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.3f\t%.3f\t%.0f\n",
			names[i],
			phase,
			res.Metrics["peak_hand_offset"],
			res.Metrics["peak_elbow_offset"],
			res.Metrics["final_hand_progress"],
			res.Metrics["final_elbow_progress"],
			res.Metrics["progress_monotonic"],
		)
	}
	return w.Flush()
}

func listTargets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	l := cfg.GetLayout()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tPOSITION")
	fmt.Fprintf(w, "center\tshoulder\t%s\n", viz.FormatVec(l.Shoulder))
	fmt.Fprintf(w, "center\thand\t%s\n", viz.FormatVec(l.HandCenter))
	fmt.Fprintf(w, "center\telbow\t%s\n", viz.FormatVec(l.ElbowCenter))
	for _, t := range trial.TargetHands() {
		p, err := l.HandTarget(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "hand\t%s\t%s\n", t, viz.FormatVec(p))
	}
	for _, t := range trial.TargetElbows() {
		p, err := l.ElbowTarget(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "elbow\t%s\t%s\n", t, viz.FormatVec(p))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHAND\tELBOW\tCONDITION\tSHOULDER\tELBOW OFFSET")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.1f\n",
			name,
			p.Selection.Hand,
			p.Selection.Elbow,
			p.Trial.Condition,
			p.Trial.ShoulderAngleOffset,
			p.Trial.ElbowAngleOffset,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "limbshift.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Layout == nil {
		cfg.Layout = cfg.GetLayout()
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
