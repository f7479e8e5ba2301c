package sim

import (
	"errors"
	"fmt"
)

// Error categories reported by the engine. Callers match them with errors.Is.
var (
	// ErrMalformedSpec marks notes that could not be turned into agent specs.
	ErrMalformedSpec = errors.New("malformed agent spec")
	// ErrInvalidRouting marks a throw target outside [0, agent count).
	ErrInvalidRouting = errors.New("invalid routing target")
	// ErrDegenerateDivisor marks a routing divisor that is not positive.
	ErrDegenerateDivisor = errors.New("degenerate divisor")
	// ErrOverflow marks an int64 overflow in a transform, the LCM, or the metric.
	ErrOverflow = errors.New("integer overflow")
	// ErrInvalidConfig marks an unusable simulation or run configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// RoutingError reports a throw to an agent that does not exist.
// It wraps ErrInvalidRouting.
type RoutingError struct {
	Round      int // 1-based round in which the throw happened; 0 when detected at construction
	AgentID    int // thrower
	Target     int
	AgentCount int
}

func (e *RoutingError) Error() string {
	if e.Round == 0 {
		return fmt.Sprintf("agent %d routes to agent %d, valid targets are [0, %d)", e.AgentID, e.Target, e.AgentCount)
	}
	return fmt.Sprintf("round %d: agent %d threw to agent %d, valid targets are [0, %d)", e.Round, e.AgentID, e.Target, e.AgentCount)
}

func (e *RoutingError) Unwrap() error { return ErrInvalidRouting }
