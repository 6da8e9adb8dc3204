package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/derekprior/minitourney/internal/config"
	"github.com/derekprior/minitourney/internal/excel"
	"github.com/derekprior/minitourney/internal/layout"
	"github.com/derekprior/minitourney/internal/logging"
	"github.com/derekprior/minitourney/internal/metrics"
	"github.com/derekprior/minitourney/internal/rank"
	"github.com/derekprior/minitourney/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

// app carries the state shared by the layouts subcommands.
type app struct {
	configFile  string
	logLevel    string
	metricsFile string

	log *slog.Logger
}

func main() {
	a := &app{log: logging.Discard()}

	rootCmd := &cobra.Command{
		Use:   "minitourney",
		Short: "Round-robin mini-tournament layout generator",
	}
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(os.Stderr, a.logLevel)
		if err != nil {
			return err
		}
		a.log = logger
		return nil
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	layoutsCmd := &cobra.Command{
		Use:   "layouts",
		Short: "Generate, browse, export and validate layout options",
	}
	layoutsCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to config file (default: config.yaml in current directory)")
	layoutsCmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "Write generation metrics to this file in Prometheus text format")

	var rankBy string
	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List every layout option",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(rankBy)
		},
	}
	listCmd.Flags().StringVar(&rankBy, "rank-by", "", "Order options by duration, real-games, bye-games or timeslots (largest first)")

	showCmd := &cobra.Command{
		Use:          "show <option>",
		Short:        "Print the timetable of one layout option",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid option number %q", args[0])
			}
			return a.runShow(n)
		},
	}

	var outputFile string
	exportCmd := &cobra.Command{
		Use:          "export",
		Short:        "Write every layout option to an Excel workbook",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(outputFile)
		},
	}
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "layouts.xlsx", "Output Excel file path")

	validateCmd := &cobra.Command{
		Use:          "validate <layouts.xlsx>",
		Short:        "Validate an exported workbook against the config",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(args[0])
		},
	}

	layoutsCmd.AddCommand(listCmd, showCmd, exportCmd, validateCmd)
	rootCmd.AddCommand(initCmd, layoutsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Mini-Tournament Configuration
# =============================
# Teams are split into small round-robin groups of 3 to 5 teams. Each group
# plays on one pitch during one timeslot. The generator lists every layout
# option that fits the pitches available.

name: "Spring Sevens"
location: "Riverside Fields"

# Optional. Game times in the export are anchored on this date.
date: "2026-05-09"

# First kick-off, 24-hour format.
start_time: "10:00"

# Pitches that can be used at the same time.
pitches: 2

# Rules of play, in minutes. One game lasts two halves plus the half-time
# break plus the changeover, rounded up to the next multiple of 5.
timing:
  half_duration: 7
  half_time_duration: 2
  swap_duration: 5

# Team names must be unique. Their order decides how teams fill the groups.
teams:
  - Ravens
  - Wolves
  - Otters
  - Herons
  - Badgers
  - Foxes
  - Kites
  - Stags
  - Hares
  - Owls
  - Lynx
`

// generate loads the config and produces every layout option, recording the
// run in the metrics file when one was requested.
func (a *app) generate() (*config.Config, []layout.Layout, error) {
	configPath, err := resolveConfigPath(a.configFile)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	a.log.Debug("config loaded", "path", configPath, "teams", len(cfg.Teams), "pitches", cfg.Pitches)

	recorder := metrics.NewRecorder()
	began := time.Now()
	layouts, genErr := layout.Generate(cfg.Params())
	elapsed := time.Since(began)
	recorder.ObserveGeneration(layouts, elapsed, genErr)
	a.log.Info("layouts generated", "count", len(layouts), "elapsed", elapsed)

	if a.metricsFile != "" {
		if err := recorder.WriteTextfile(a.metricsFile); err != nil {
			a.log.Warn("writing metrics failed", "path", a.metricsFile, "err", err)
		}
	}

	if genErr != nil {
		return nil, nil, fmt.Errorf("generating layouts: %w", genErr)
	}
	return cfg, layouts, nil
}

// rankKey extracts the value an option is ranked by.
func rankKey(by string) (func(l *layout.Layout) int64, error) {
	switch by {
	case "duration":
		return func(l *layout.Layout) int64 { return int64(l.Duration) }, nil
	case "real-games":
		return func(l *layout.Layout) int64 { return int64(l.RealGames) }, nil
	case "bye-games":
		return func(l *layout.Layout) int64 { return int64(l.ByeGames) }, nil
	case "timeslots":
		return func(l *layout.Layout) int64 { return int64(len(l.Timeslots)) }, nil
	default:
		return nil, fmt.Errorf("unknown ranking %q (want duration, real-games, bye-games or timeslots)", by)
	}
}

// option is a layout with its 1-based position in generation order.
type option struct {
	number int
	layout *layout.Layout
}

func (a *app) runList(rankBy string) error {
	var key func(*layout.Layout) int64
	if rankBy != "" {
		k, err := rankKey(rankBy)
		if err != nil {
			return err
		}
		key = k
	}

	cfg, layouts, err := a.generate()
	if err != nil {
		return err
	}
	if len(layouts) == 0 {
		fmt.Println("No layout available")
		return nil
	}

	options := make([]option, len(layouts))
	for i := range layouts {
		options[i] = option{number: i + 1, layout: &layouts[i]}
	}
	if key != nil {
		items := make([]rank.Item[int64, option], len(options))
		for i, o := range options {
			items[i] = rank.Item[int64, option]{Key: key(o.layout), Value: o}
		}
		options = rank.Descending(items)
	}

	fmt.Printf("%s: %d teams on %d pitches\n\n", cfg.Name, len(cfg.Teams), cfg.Pitches)
	fmt.Printf("  %-6s %-8s %9s %-10s %8s %6s %5s\n", "Option", "ID", "Timeslots", "Pitches", "Duration", "Games", "Byes")
	for _, o := range options {
		l := o.layout
		fmt.Printf("  %-6d %-8s %9d %-10s %8s %6d %5d\n",
			o.number, l.ID.String()[:8], len(l.Timeslots), excel.PitchSummary(l.PitchCounts()),
			excel.FormatDuration(l.Duration), l.RealGames, l.ByeGames)
	}
	return nil
}

func (a *app) runShow(n int) error {
	_, layouts, err := a.generate()
	if err != nil {
		return err
	}
	if len(layouts) == 0 {
		fmt.Println("No layout available")
		return nil
	}
	if n < 1 || n > len(layouts) {
		return fmt.Errorf("option %d does not exist; choose 1 to %d", n, len(layouts))
	}

	l := &layouts[n-1]
	fmt.Printf("Option %d (%s)\n", n, l.ID)
	fmt.Printf("Duration %s, %d games, %d byes\n", excel.FormatDuration(l.Duration), l.RealGames, l.ByeGames)
	for t, ts := range l.Timeslots {
		fmt.Printf("\nTimeslot %d\n", t+1)
		for p, g := range ts.Groups {
			fmt.Printf("  Pitch %d:", p+1)
			for _, team := range g.Teams {
				fmt.Printf(" %s", team.Name)
			}
			fmt.Println()
			for _, game := range g.Games {
				marker := " "
				if game.IsBye() {
					marker = "-"
				}
				fmt.Printf("    %s %s  %s vs %s\n", marker, game.Start.Format(excel.TimeFormat), game.Team1.Name, game.Team2.Name)
			}
		}
	}
	return nil
}

func (a *app) runExport(outputPath string) error {
	cfg, layouts, err := a.generate()
	if err != nil {
		return err
	}
	if len(layouts) == 0 {
		fmt.Println("No layout available")
		return nil
	}

	f, err := excel.Generate(cfg, layouts)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("✓ %d layout options saved to %s\n", len(layouts), outputPath)
	return nil
}

func (a *app) runValidate(workbookPath string) error {
	configPath, err := resolveConfigPath(a.configFile)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, workbookPath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Option %d: %s\n", v.Option, v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Option %d: %s\n", v.Option, v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d errors, %d warnings\n", errors, warnings)
	if errors > 0 {
		return fmt.Errorf("%d violations found", errors)
	}
	return nil
}
