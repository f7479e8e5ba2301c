package sim

import "fmt"

// AgentSpec is the immutable description of one agent, as produced by the
// notes parser. ID doubles as the agent's index in the collection, so ids
// must be dense and 0-based.
type AgentSpec struct {
	ID            int
	StartingItems []int64
	Transform     Transform
	Divisor       int64 // routing test: item % Divisor == 0
	TargetIfTrue  int
	TargetIfFalse int
}

// Throw is one item leaving an agent, bound for Target's queue.
type Throw struct {
	Item   int64
	Target int
}

// Agent is the mutable per-agent state owned by a Simulator.
type Agent struct {
	AgentSpec
	Queue *ItemQueue
	// Inspections counts every item this agent has inspected over the run.
	// It is never reset.
	Inspections uint64
}

// NewAgent builds an agent whose queue starts with spec.StartingItems.
func NewAgent(spec AgentSpec) *Agent {
	return &Agent{
		AgentSpec: spec,
		Queue:     NewItemQueue(spec.StartingItems...),
	}
}

// Route returns the target selected by the routing test for item.
func (a *Agent) Route(item int64) int {
	if item%a.Divisor == 0 {
		return a.TargetIfTrue
	}
	return a.TargetIfFalse
}

// DrainAndThrow inspects every item present in the queue when the call
// starts, in FIFO order, and returns the resulting throws in the same order.
// Items thrown back to this agent while the caller distributes the result
// are not part of this call. The queue is empty on return.
//
// Panics if policy is nil or the divisor is not positive; NewSimulator
// rejects such agents before any round runs.
func (a *Agent) DrainAndThrow(policy OverflowPolicy) ([]Throw, error) {
	if policy == nil {
		panic("DrainAndThrow: policy must not be nil")
	}
	if a.Divisor <= 0 {
		panic(fmt.Sprintf("DrainAndThrow: agent %d has divisor %d", a.ID, a.Divisor))
	}
	items := a.Queue.TakeAll()
	throws := make([]Throw, 0, len(items))
	for _, item := range items {
		a.Inspections++
		v, err := a.Transform.Apply(item)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", a.ID, err)
		}
		v = policy.Reduce(v)
		throws = append(throws, Throw{Item: v, Target: a.Route(v)})
	}
	return throws, nil
}
