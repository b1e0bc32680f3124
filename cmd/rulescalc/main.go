package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rgehrsitz/rulescalc/internal/calculation"
	"github.com/rgehrsitz/rulescalc/internal/catalog"
	"github.com/rgehrsitz/rulescalc/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds what the subcommands share once the persistent flags are parsed.
type app struct {
	v            *viper.Viper
	settingsFile string
	logger       *zap.Logger
	engine       *calculation.Engine
}

// setup loads settings, builds the logger and the engine for the configured
// fiscal year.
func (a *app) setup() error {
	settings, err := config.LoadSettings(a.v, a.settingsFile)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(settings.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	rules, err := config.LoadRules(settings.RulesPath)
	if err != nil {
		return err
	}
	a.engine = calculation.NewEngineWithRules(rules, catalog.Default())
	a.engine.SetLogger(logger.Sugar())
	logger.Debug("engine ready",
		zap.Int("year", rules.Year),
		zap.String("rules", settings.RulesPath),
		zap.Int("brackets", len(rules.IncomeTax.Brackets)))
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "rulescalc",
		Short: "Dutch net income rules calculator",
		Long: "Calculates net income for a Dutch household from gross salary: income tax, " +
			"social premiums and income-dependent benefits, with a trace of every rule applied.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.settingsFile, "config", "", "Settings file (yaml, json or toml)")
	flags.String(config.KeyRules, "", "Fiscal-year rules file (default: built-in 2025 rules)")
	flags.String(config.KeyLogLevel, "warn", "Log level (debug, info, warn, error)")
	flags.String(config.KeyLogFormat, "console", "Log format (console, json)")
	flags.String(config.KeyLogFile, "", "Write logs to this file instead of stderr")
	for _, key := range []string{config.KeyRules, config.KeyLogLevel, config.KeyLogFormat, config.KeyLogFile} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(a.evaluateCmd())
	rootCmd.AddCommand(a.taxCmd())
	rootCmd.AddCommand(a.benefitsCmd())
	rootCmd.AddCommand(a.thresholdsCmd())
	rootCmd.AddCommand(a.rulesCmd())
	rootCmd.AddCommand(a.compareCmd())
	rootCmd.AddCommand(a.deltaCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No engine needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rulescalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
