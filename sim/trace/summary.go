package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalThrows        int
	SelfThrows         int // throws whose target is the thrower
	MaxItem            int64
	UniqueTargets      int
	TargetDistribution map[int]int // agent ID → count of items received
	RoundsRecorded     int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalThrows = len(st.Throws)
	summary.RoundsRecorded = len(st.Rounds)
	for i, t := range st.Throws {
		summary.TargetDistribution[t.Target]++
		if t.Target == t.From {
			summary.SelfThrows++
		}
		if i == 0 || t.Item > summary.MaxItem {
			summary.MaxItem = t.Item
		}
	}

	summary.UniqueTargets = len(summary.TargetDistribution)

	return summary
}
