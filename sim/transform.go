package sim

import (
	"fmt"
	"math"
)

// TransformKind enumerates the closed set of per-item operations.
type TransformKind int

const (
	// TransformAdd computes old + Operand.
	TransformAdd TransformKind = iota
	// TransformMultiply computes old * Operand.
	TransformMultiply
	// TransformSquare computes old * old. Operand is ignored.
	TransformSquare
)

// Transform is the operation an agent applies to every item it inspects.
// Construct it with Add, Multiply or Square.
type Transform struct {
	Kind    TransformKind
	Operand int64
}

// Add returns a transform computing old + k.
func Add(k int64) Transform { return Transform{Kind: TransformAdd, Operand: k} }

// Multiply returns a transform computing old * k.
func Multiply(k int64) Transform { return Transform{Kind: TransformMultiply, Operand: k} }

// Square returns a transform computing old * old.
func Square() Transform { return Transform{Kind: TransformSquare} }

// Apply returns the transformed value. Results that do not fit in int64
// return ErrOverflow instead of wrapping around.
func (t Transform) Apply(old int64) (int64, error) {
	var (
		v  int64
		ok bool
	)
	switch t.Kind {
	case TransformAdd:
		v, ok = addInt64(old, t.Operand)
	case TransformMultiply:
		v, ok = mulInt64(old, t.Operand)
	case TransformSquare:
		v, ok = mulInt64(old, old)
	default:
		panic(fmt.Sprintf("unhandled transform kind %d", t.Kind))
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s with old = %d", ErrOverflow, t, old)
	}
	return v, nil
}

// String renders the transform the way the notes spell it.
func (t Transform) String() string {
	switch t.Kind {
	case TransformAdd:
		return fmt.Sprintf("old + %d", t.Operand)
	case TransformMultiply:
		return fmt.Sprintf("old * %d", t.Operand)
	case TransformSquare:
		return "old * old"
	default:
		return fmt.Sprintf("transform(%d)", t.Kind)
	}
}

func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}
