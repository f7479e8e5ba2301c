package trace

// TraceLevel controls the verbosity of simulation tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelRounds captures one RoundRecord per round.
	TraceLevelRounds TraceLevel = "rounds"
	// TraceLevelThrows captures every throw in addition to round records.
	TraceLevelThrows TraceLevel = "throws"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelRounds: true,
	TraceLevelThrows: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// RecordsRounds reports whether round records are collected.
func (c TraceConfig) RecordsRounds() bool {
	return c.Level == TraceLevelRounds || c.Level == TraceLevelThrows
}

// RecordsThrows reports whether individual throws are collected.
func (c TraceConfig) RecordsThrows() bool {
	return c.Level == TraceLevelThrows
}

// SimulationTrace collects records during a simulation.
type SimulationTrace struct {
	Config TraceConfig
	Throws []ThrowRecord
	Rounds []RoundRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Throws: make([]ThrowRecord, 0),
		Rounds: make([]RoundRecord, 0),
	}
}

// RecordThrow appends a throw record.
func (st *SimulationTrace) RecordThrow(record ThrowRecord) {
	st.Throws = append(st.Throws, record)
}

// RecordRound appends a round record.
func (st *SimulationTrace) RecordRound(record RoundRecord) {
	st.Rounds = append(st.Rounds, record)
}
