package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/keepaway-sim/keepaway/sim"
	"github.com/keepaway-sim/keepaway/sim/notes"
	"github.com/keepaway-sim/keepaway/sim/trace"
)

// runOptions is the fully merged configuration of one `run` invocation.
type runOptions struct {
	Notes      string
	Policy     string
	Rounds     int
	Log        string
	TraceLevel string
	TraceOut   string
	Format     string
}

// mergeRunConfig overlays values from a config file onto opts. Flags the user
// set explicitly win over the file (changed reports whether a flag was set).
func mergeRunConfig(opts runOptions, cfg *sim.RunConfig, changed func(string) bool) runOptions {
	if cfg.Notes != "" && !changed("notes") {
		opts.Notes = cfg.Notes
	}
	if cfg.Policy != "" && !changed("policy") {
		opts.Policy = cfg.Policy
	}
	if cfg.Rounds != nil && !changed("rounds") {
		opts.Rounds = *cfg.Rounds
	}
	if cfg.Log != "" && !changed("log") {
		opts.Log = cfg.Log
	}
	if cfg.TraceLevel != "" && !changed("trace") {
		opts.TraceLevel = cfg.TraceLevel
	}
	if cfg.TraceOut != "" && !changed("trace-out") {
		opts.TraceOut = cfg.TraceOut
	}
	if cfg.Format != "" && !changed("format") {
		opts.Format = cfg.Format
	}
	return opts
}

// finalize fills policy-dependent defaults and validates the options.
func (o runOptions) finalize() (runOptions, error) {
	if o.Notes == "" {
		return o, fmt.Errorf("%w: notes file not provided (--notes or config notes)", sim.ErrInvalidConfig)
	}
	if !sim.IsValidOverflowPolicy(o.Policy) {
		return o, fmt.Errorf("%w: unknown overflow policy %q; valid: damped, modulus", sim.ErrInvalidConfig, o.Policy)
	}
	if o.Rounds < 0 {
		return o, fmt.Errorf("%w: rounds must not be negative, got %d", sim.ErrInvalidConfig, o.Rounds)
	}
	if o.Rounds == 0 {
		o.Rounds = sim.DefaultRounds[o.Policy]
	}
	if o.Policy == "damped" && o.Rounds > sim.DefaultRounds["damped"] {
		logrus.Warnf("damped policy requested for %d rounds; items may overflow beyond %d rounds", o.Rounds, sim.DefaultRounds["damped"])
	}
	if !trace.IsValidTraceLevel(o.TraceLevel) {
		return o, fmt.Errorf("%w: unknown trace level %q", sim.ErrInvalidConfig, o.TraceLevel)
	}
	if o.TraceOut != "" && (o.TraceLevel == "" || o.TraceLevel == string(trace.TraceLevelNone)) {
		o.TraceLevel = string(trace.TraceLevelThrows)
	}
	if !sim.ValidReportFormats[o.Format] {
		return o, fmt.Errorf("%w: unknown report format %q", sim.ErrInvalidConfig, o.Format)
	}
	return o, nil
}

// runSimulation loads the notes, runs every round and writes the report to w.
// Nothing is written when the run fails.
func runSimulation(opts runOptions, w io.Writer, styled bool) error {
	specs, err := notes.LoadFile(opts.Notes)
	if err != nil {
		return err
	}
	s, err := sim.NewSimulator(specs, sim.SimConfig{
		Policy: opts.Policy,
		Rounds: opts.Rounds,
		Trace:  trace.TraceConfig{Level: trace.TraceLevel(opts.TraceLevel)},
	})
	if err != nil {
		return err
	}
	m, err := s.Run()
	if err != nil {
		return err
	}

	if s.Trace != nil {
		summary := trace.Summarize(s.Trace)
		logrus.Infof("Trace: %d throws (%d to self) across %d targets, %d round records, max item %d",
			summary.TotalThrows, summary.SelfThrows, summary.UniqueTargets, summary.RoundsRecorded, summary.MaxItem)
		if opts.TraceOut != "" {
			hdr := trace.Header{
				RunID:   m.RunID,
				Policy:  m.Policy,
				Modulus: m.Modulus,
				Rounds:  m.Rounds,
				Level:   s.Trace.Config.Level,
			}
			if err := trace.WriteFile(opts.TraceOut, hdr, s.Trace); err != nil {
				return err
			}
			logrus.Infof("Trace written to %s", opts.TraceOut)
		}
	}

	return m.SaveResults(w, opts.Format, styled)
}
