// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/keepaway-sim/keepaway/sim/trace"
)

// SimConfig selects the overflow regime and run length. Policy and Rounds
// belong together (damped for short runs, modulus for long ones); the
// simulator does not second-guess the pairing.
type SimConfig struct {
	Policy string // "damped" or "modulus"
	Rounds int    // must be > 0
	Trace  trace.TraceConfig
}

// Simulator owns the agent collection for one run.
// Thread-safety: NOT thread-safe. Build a fresh Simulator per run.
type Simulator struct {
	RunID  string
	Agents []*Agent
	Policy OverflowPolicy
	Rounds int
	// Round is the number of rounds completed so far.
	Round int
	// Trace is nil when tracing is disabled.
	Trace *trace.SimulationTrace

	maxItem int64
}

// NewSimulator validates specs and cfg, builds the overflow policy once, and
// returns a simulator ready to Run.
func NewSimulator(specs []AgentSpec, cfg SimConfig) (*Simulator, error) {
	if err := ValidateAgentSpecs(specs); err != nil {
		return nil, err
	}
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidConfig, cfg.Rounds)
	}
	if !trace.IsValidTraceLevel(string(cfg.Trace.Level)) {
		return nil, fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, cfg.Trace.Level)
	}
	policy, err := NewOverflowPolicy(cfg.Policy, specs)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		RunID:  uuid.NewString(),
		Agents: newAgents(specs),
		Policy: policy,
		Rounds: cfg.Rounds,
	}
	if cfg.Trace.Level != "" && cfg.Trace.Level != trace.TraceLevelNone {
		s.Trace = trace.NewSimulationTrace(cfg.Trace)
	}
	return s, nil
}

// ValidateAgentSpecs checks that ids are dense and match positions, every
// divisor is positive, and every routing target names an agent in specs.
func ValidateAgentSpecs(specs []AgentSpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("%w: no agents defined", ErrMalformedSpec)
	}
	for i, s := range specs {
		if s.ID != i {
			return fmt.Errorf("%w: agent at position %d has id %d; ids must be dense and 0-based", ErrMalformedSpec, i, s.ID)
		}
		if s.Divisor <= 0 {
			return fmt.Errorf("%w: agent %d has divisor %d", ErrDegenerateDivisor, s.ID, s.Divisor)
		}
		for _, target := range []int{s.TargetIfTrue, s.TargetIfFalse} {
			if target < 0 || target >= len(specs) {
				return &RoutingError{AgentID: s.ID, Target: target, AgentCount: len(specs)}
			}
		}
	}
	return nil
}

func newAgents(specs []AgentSpec) []*Agent {
	agents := make([]*Agent, len(specs))
	for i, spec := range specs {
		agents[i] = NewAgent(spec)
	}
	return agents
}

// Step runs the next round.
func (s *Simulator) Step() error {
	round := s.Round + 1
	stats, err := RunRound(s.Agents, s.Policy, round, s.Trace)
	if err != nil {
		return err
	}
	s.Round = round
	if stats.MaxItem > s.maxItem {
		s.maxItem = stats.MaxItem
	}
	logrus.Debugf("[round %05d] %d throws, max item %d", round, stats.Throws, stats.MaxItem)
	return nil
}

// Run executes the remaining rounds and returns the final metrics.
// On error no metrics are returned.
func (s *Simulator) Run() (*Metrics, error) {
	logrus.Infof("Starting simulation %s: %d agents, %d items, policy=%s, rounds=%d",
		s.RunID, len(s.Agents), s.TotalItems(), s.Policy.Name(), s.Rounds)
	for s.Round < s.Rounds {
		if err := s.Step(); err != nil {
			return nil, err
		}
	}
	m, err := s.Results()
	if err != nil {
		return nil, err
	}
	logrus.Infof("Simulation %s ended after %d rounds", s.RunID, s.Round)
	return m, nil
}

// TotalItems returns the number of items across all queues.
func (s *Simulator) TotalItems() int {
	n := 0
	for _, a := range s.Agents {
		n += a.Queue.Len()
	}
	return n
}

// Results reads the agents' current counters and queues into a Metrics.
func (s *Simulator) Results() (*Metrics, error) {
	m := &Metrics{
		RunID:       s.RunID,
		Policy:      s.Policy.Name(),
		Rounds:      s.Round,
		Inspections: make([]uint64, len(s.Agents)),
		FinalQueues: make([][]int64, len(s.Agents)),
		MaxItem:     s.maxItem,
	}
	if mr, ok := s.Policy.(*ModulusReduction); ok {
		m.Modulus = mr.Modulus
	}
	for i, a := range s.Agents {
		m.Inspections[i] = a.Inspections
		m.FinalQueues[i] = append([]int64{}, a.Queue.Items()...)
	}
	mb, err := MonkeyBusiness(m.Inspections)
	if err != nil {
		return nil, err
	}
	m.MonkeyBusiness = mb
	return m, nil
}

// Simulate runs rounds rounds over a fresh agent collection built from specs
// with the given policy and returns the product of the two highest
// inspection counts. A *ModulusReduction must cover every divisor in specs.
func Simulate(specs []AgentSpec, policy OverflowPolicy, rounds int) (uint64, error) {
	if err := ValidateAgentSpecs(specs); err != nil {
		return 0, err
	}
	if policy == nil {
		return 0, fmt.Errorf("%w: nil overflow policy", ErrInvalidConfig)
	}
	if mr, ok := policy.(*ModulusReduction); ok {
		if err := mr.Validate(specs); err != nil {
			return 0, err
		}
	}
	if rounds <= 0 {
		return 0, fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidConfig, rounds)
	}
	agents := newAgents(specs)
	for round := 1; round <= rounds; round++ {
		if _, err := RunRound(agents, policy, round, nil); err != nil {
			return 0, err
		}
	}
	counts := make([]uint64, len(agents))
	for i, a := range agents {
		counts[i] = a.Inspections
	}
	return MonkeyBusiness(counts)
}
