package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/keepaway-sim/keepaway/sim"
	"github.com/keepaway-sim/keepaway/sim/notes"
)

var (
	// CLI flags for the run command
	notesPath  string // Path to the agent notes file
	configPath string // Optional YAML/TOML run config
	policyName string // Overflow policy: damped or modulus
	rounds     int    // Number of rounds (0 = policy default)
	logLevel   string // Log verbosity level
	traceLevel string // Trace verbosity: none, rounds, throws
	traceOut   string // Path of the zstd JSONL trace file
	format     string // Report format: text or json
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "keepaway",
	Short: "Round-based item-dispatch simulator",
}

// runCmd executes the simulation using parameters from CLI flags and an optional config file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and print the monkey-business metric",
	Run: func(cmd *cobra.Command, args []string) {
		opts := flagOptions()
		if configPath != "" {
			cfg, err := sim.LoadRunConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load run config: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				logrus.Fatalf("Invalid run config %s: %v", configPath, err)
			}
			opts = mergeRunConfig(opts, cfg, cmd.Flags().Changed)
		}

		// Set up logging
		level, err := logrus.ParseLevel(opts.Log)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", opts.Log)
		}
		logrus.SetLevel(level)

		opts, err = opts.finalize()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Running %s with policy=%s, rounds=%d", opts.Notes, opts.Policy, opts.Rounds)

		styled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		if err := runSimulation(opts, os.Stdout, styled); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// validateCmd parses the notes and checks them without running any round
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and validate an agent notes file",
	Run: func(cmd *cobra.Command, args []string) {
		if notesPath == "" {
			logrus.Fatalf("Notes file not provided (--notes).")
		}
		if err := validateNotes(notesPath, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func flagOptions() runOptions {
	return runOptions{
		Notes:      notesPath,
		Policy:     policyName,
		Rounds:     rounds,
		Log:        logLevel,
		TraceLevel: traceLevel,
		TraceOut:   traceOut,
		Format:     format,
	}
}

func validateNotes(path string, w io.Writer) error {
	specs, err := notes.LoadFile(path)
	if err != nil {
		return err
	}
	if err := sim.ValidateAgentSpecs(specs); err != nil {
		return err
	}
	items := 0
	divisors := make([]int64, len(specs))
	for i, s := range specs {
		items += len(s.StartingItems)
		divisors[i] = s.Divisor
	}
	modulus, err := sim.LCM(divisors...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %d agents, %d items, modulus %d\n", path, len(specs), items, modulus)
	return err
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&notesPath, "notes", "", "Path to the agent notes file")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML or TOML run config")
	runCmd.Flags().StringVar(&policyName, "policy", "modulus", "Overflow policy (damped, modulus)")
	runCmd.Flags().IntVar(&rounds, "rounds", 0, "Number of rounds (0 = policy default: damped 20, modulus 10000)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "", "Trace level (none, rounds, throws)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the trace as zstd-compressed JSON lines to this path")
	runCmd.Flags().StringVar(&format, "format", "text", "Report format (text, json)")

	validateCmd.Flags().StringVar(&notesPath, "notes", "", "Path to the agent notes file")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
