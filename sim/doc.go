// Package sim provides the round-based item-dispatch engine for keepaway.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - agent.go: AgentSpec, the mutable Agent, and DrainAndThrow
//   - round.go: RunRound, the ordered round discipline
//   - simulator.go: Simulator, which owns the agents and drives rounds
//
// # Round Discipline
//
// Agents act in ascending id order. An acting agent takes every item in its
// queue at the start of its turn, inspects each one (transform, overflow
// policy, divisibility test) and throws it. Throws land on the target's
// queue immediately, so a lower-id agent can feed a higher-id agent within
// the same round, while throws to already-acted agents wait for the next
// round. Snapshot or parallel rounds give different results.
//
// # Overflow Policies
//
//   - DampedDivision: floor(v/3), for short runs.
//   - ModulusReduction: v mod lcm(divisors), exact routing for any run length.
//
// # Sub-packages
//   - sim/notes/: parser for the textual agent notes
//   - sim/trace/: throw and round recording, zstd JSONL trace files
package sim
