package sim

import (
	"fmt"

	"github.com/keepaway-sim/keepaway/sim/trace"
)

// RoundStats summarizes the throws made during one round.
type RoundStats struct {
	Throws  int
	MaxItem int64 // largest item value thrown this round; 0 when nothing moved
}

// RunRound drives one round: agents act in ascending index order, and every
// throw lands on its target's queue before the next agent acts. An item
// thrown to a higher-index agent is therefore inspected again this round,
// while one thrown to a lower-index agent waits for the next round.
//
// A throw to a target outside the collection returns a *RoutingError and
// leaves the round unfinished. st may be nil.
func RunRound(agents []*Agent, policy OverflowPolicy, round int, st *trace.SimulationTrace) (RoundStats, error) {
	var stats RoundStats
	for _, agent := range agents {
		throws, err := agent.DrainAndThrow(policy)
		if err != nil {
			return stats, fmt.Errorf("round %d: %w", round, err)
		}
		for _, t := range throws {
			if t.Target < 0 || t.Target >= len(agents) {
				return stats, &RoutingError{Round: round, AgentID: agent.ID, Target: t.Target, AgentCount: len(agents)}
			}
			agents[t.Target].Queue.Enqueue(t.Item)
			stats.Throws++
			if t.Item > stats.MaxItem {
				stats.MaxItem = t.Item
			}
			if st != nil && st.Config.RecordsThrows() {
				st.RecordThrow(trace.ThrowRecord{Round: round, From: agent.ID, Item: t.Item, Target: t.Target})
			}
		}
	}
	if st != nil && st.Config.RecordsRounds() {
		st.RecordRound(snapshotRound(agents, round))
	}
	return stats, nil
}

func snapshotRound(agents []*Agent, round int) trace.RoundRecord {
	rec := trace.RoundRecord{
		Round:        round,
		Inspections:  make([]uint64, len(agents)),
		QueueLengths: make([]int, len(agents)),
	}
	for i, a := range agents {
		rec.Inspections[i] = a.Inspections
		rec.QueueLengths[i] = a.Queue.Len()
	}
	return rec
}
