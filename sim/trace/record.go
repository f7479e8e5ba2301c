// Package trace provides throw and round recording for simulation analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// ThrowRecord captures a single item moving from one agent to another.
type ThrowRecord struct {
	Round  int   `json:"round"`
	From   int   `json:"from"`
	Item   int64 `json:"item"`
	Target int   `json:"target"`
}

// RoundRecord captures agent state at the end of a round.
type RoundRecord struct {
	Round        int      `json:"round"`
	Inspections  []uint64 `json:"inspections"`
	QueueLengths []int    `json:"queue_lengths"`
}
