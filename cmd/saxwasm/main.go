package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"saxwasm/internal/config"
	"saxwasm/internal/logging"
	"saxwasm/internal/observ"
	"saxwasm/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "saxwasm",
	Short: "Streaming SAX tokenizer for XML, HTML and JSX",
	Long: `saxwasm tokenizes markup in chunks and reports a positioned event
stream: text, tags, attributes, comments, CDATA and processing instructions.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepareRun,
}

// runState is what PersistentPreRunE sets up for the subcommand.
type runState struct {
	cfg      config.Config
	cfgPath  string
	timer    *observ.Timer
	cleanups []func()
}

var state runState

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", config.DefaultMaxDiagnostics, "maximum number of diagnostics per document")
	pf.String("log-level", "info", "log level (debug|info|warn|error)")
	pf.String("config", "", "config file (default: saxwasm.toml or .saxwasm.yaml found upward)")

	bindTraceFlags(pf)

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	err := rootCmd.Execute()
	finishRun()
	if err != nil {
		os.Exit(1)
	}
}

// prepareRun loads the config file, then applies logging, colour, tracing
// and profiling flags.
func prepareRun(cmd *cobra.Command, _ []string) error {
	root := cmd.Root()
	explicit, err := root.PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, path, err := config.Load(explicit, wd)
	if err != nil {
		return err
	}
	if root.PersistentFlags().Changed("max-diagnostics") {
		cfg.MaxDiagnostics, _ = root.PersistentFlags().GetInt("max-diagnostics")
	}
	if root.PersistentFlags().Changed("log-level") {
		cfg.LogLevel, _ = root.PersistentFlags().GetString("log-level")
	}
	state.cfg = cfg
	state.cfgPath = path

	level := cfg.LogLevel
	if quiet, _ := root.PersistentFlags().GetBool("quiet"); quiet {
		level = "error"
	}
	logging.SetLevel(level)
	if path != "" {
		logging.Default().Debug("config loaded", logging.FieldConfig, path)
	}

	colorFlag, _ := root.PersistentFlags().GetString("color")
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if timings, _ := root.PersistentFlags().GetBool("timings"); timings {
		state.timer = observ.NewTimer()
	}

	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	state.cleanups = append(state.cleanups, stopTrace)

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	state.cleanups = append(state.cleanups, stopProf)
	return nil
}

// finishRun runs cleanups in reverse order and prints timings.
func finishRun() {
	for i := len(state.cleanups) - 1; i >= 0; i-- {
		state.cleanups[i]()
	}
	state.cleanups = nil
	if state.timer != nil {
		if summary := state.timer.Summary(); summary != "" {
			fmt.Fprint(os.Stderr, summary)
		}
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
