package sim

// pairSpecs is the two-agent fixture where every item bounces 0 → 1 → 0.
func pairSpecs() []AgentSpec {
	return []AgentSpec{
		{ID: 0, StartingItems: []int64{79, 98}, Transform: Multiply(19), Divisor: 23, TargetIfTrue: 1, TargetIfFalse: 1},
		{ID: 1, StartingItems: []int64{54, 65, 75, 74}, Transform: Add(6), Divisor: 19, TargetIfTrue: 0, TargetIfFalse: 0},
	}
}

// sampleSpecs is the four-agent sample from testdata/sample_notes.txt.
func sampleSpecs() []AgentSpec {
	return []AgentSpec{
		{ID: 0, StartingItems: []int64{79, 98}, Transform: Multiply(19), Divisor: 23, TargetIfTrue: 2, TargetIfFalse: 3},
		{ID: 1, StartingItems: []int64{54, 65, 75, 74}, Transform: Add(6), Divisor: 19, TargetIfTrue: 2, TargetIfFalse: 0},
		{ID: 2, StartingItems: []int64{79, 60, 97}, Transform: Square(), Divisor: 13, TargetIfTrue: 1, TargetIfFalse: 3},
		{ID: 3, StartingItems: []int64{74}, Transform: Add(3), Divisor: 17, TargetIfTrue: 0, TargetIfFalse: 1},
	}
}

func totalQueued(agents []*Agent) int {
	n := 0
	for _, a := range agents {
		n += a.Queue.Len()
	}
	return n
}
