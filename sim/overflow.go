package sim

import "fmt"

// OverflowPolicy bounds an item's magnitude after its transform.
// A policy is chosen once per run and never changes mid-run.
type OverflowPolicy interface {
	// Reduce returns the value the item carries from here on.
	Reduce(v int64) int64
	// Name returns the registry name of the policy.
	Name() string
}

// DampedDivision divides every transformed value by 3, rounding toward
// negative infinity. It is lossy: routing decisions drift from an unbounded
// run, and the magnitude headroom it relies on only holds for short runs.
type DampedDivision struct{}

// Reduce implements OverflowPolicy for DampedDivision.
func (DampedDivision) Reduce(v int64) int64 {
	q := v / 3
	if v%3 != 0 && v < 0 {
		q--
	}
	return q
}

// Name implements OverflowPolicy for DampedDivision.
func (DampedDivision) Name() string { return "damped" }

// ModulusReduction keeps every value in [0, Modulus). Modulus is the LCM of
// all divisors in the run, so v mod Modulus ≡ v (mod d) for every divisor d
// and all routing tests see the same outcome as an unbounded run.
type ModulusReduction struct {
	Modulus int64
}

// NewModulusReduction computes the LCM of every agent's divisor once.
func NewModulusReduction(specs []AgentSpec) (*ModulusReduction, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: modulus reduction needs at least one agent", ErrInvalidConfig)
	}
	divisors := make([]int64, len(specs))
	for i, s := range specs {
		divisors[i] = s.Divisor
	}
	m, err := LCM(divisors...)
	if err != nil {
		return nil, err
	}
	return &ModulusReduction{Modulus: m}, nil
}

// Validate checks that Modulus is positive and a multiple of every divisor
// in specs, so that reduction leaves each routing test unchanged.
func (mr *ModulusReduction) Validate(specs []AgentSpec) error {
	if mr == nil || mr.Modulus <= 0 {
		return fmt.Errorf("%w: modulus reduction needs a positive modulus", ErrInvalidConfig)
	}
	for _, s := range specs {
		if s.Divisor > 0 && mr.Modulus%s.Divisor != 0 {
			return fmt.Errorf("%w: modulus %d is not a multiple of agent %d divisor %d", ErrInvalidConfig, mr.Modulus, s.ID, s.Divisor)
		}
	}
	return nil
}

// Reduce implements OverflowPolicy for ModulusReduction.
func (mr *ModulusReduction) Reduce(v int64) int64 {
	r := v % mr.Modulus
	if r < 0 {
		r += mr.Modulus
	}
	return r
}

// Name implements OverflowPolicy for ModulusReduction.
func (mr *ModulusReduction) Name() string { return "modulus" }

// LCM returns the least common multiple of values, which must all be positive.
func LCM(values ...int64) (int64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: lcm of no values", ErrInvalidConfig)
	}
	acc := int64(1)
	for _, v := range values {
		if v <= 0 {
			return 0, fmt.Errorf("%w: lcm operand %d", ErrDegenerateDivisor, v)
		}
		next, ok := mulInt64(acc/gcd(acc, v), v)
		if !ok {
			return 0, fmt.Errorf("%w: lcm exceeds int64 at operand %d", ErrOverflow, v)
		}
		acc = next
	}
	return acc, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ValidOverflowPolicies is the set of recognized overflow policy names.
var ValidOverflowPolicies = map[string]bool{"damped": true, "modulus": true}

// DefaultRounds is the round count each policy is meant to run for.
// The damped policy only has headroom for short runs.
var DefaultRounds = map[string]int{"damped": 20, "modulus": 10000}

// IsValidOverflowPolicy returns true if name is a recognized overflow policy.
func IsValidOverflowPolicy(name string) bool {
	return ValidOverflowPolicies[name]
}

// NewOverflowPolicy creates an OverflowPolicy by name. The modulus policy
// derives its modulus from specs.
func NewOverflowPolicy(name string, specs []AgentSpec) (OverflowPolicy, error) {
	if !IsValidOverflowPolicy(name) {
		return nil, fmt.Errorf("%w: unknown overflow policy %q; valid: damped, modulus", ErrInvalidConfig, name)
	}
	switch name {
	case "damped":
		return DampedDivision{}, nil
	case "modulus":
		return NewModulusReduction(specs)
	default:
		panic(fmt.Sprintf("unhandled overflow policy %q", name))
	}
}
