package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulusReduction_Validate(t *testing.T) {
	specs := sampleSpecs()
	tests := []struct {
		name    string
		modulus int64
		wantErr bool
	}{
		{"lcm", 96577, false},
		{"multiple of lcm", 3 * 96577, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"misses a divisor", 23 * 19, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ModulusReduction{Modulus: tt.modulus}).Validate(specs)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDampedDivision_Reduce_Floors(t *testing.T) {
	tests := []struct {
		in, want int64
	}{
		{1501, 500},
		{1862, 620},
		{0, 0},
		{2, 0},
		{-1, -1},
		{-3, -1},
		{-4, -2},
	}
	for _, tt := range tests {
		if got := (DampedDivision{}).Reduce(tt.in); got != tt.want {
			t.Errorf("Reduce(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLCM(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		want   int64
	}{
		{"pair", []int64{23, 19}, 437},
		{"sample", []int64{23, 19, 13, 17}, 96577},
		{"shared factors", []int64{4, 6, 10}, 60},
		{"single", []int64{7}, 7},
		{"repeated", []int64{5, 5, 5}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LCM(tt.values...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLCM_InvalidInputs(t *testing.T) {
	_, err := LCM()
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = LCM(3, 0)
	assert.True(t, errors.Is(err, ErrDegenerateDivisor))

	_, err = LCM(math.MaxInt64, math.MaxInt64-1)
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestNewModulusReduction_UsesLCMOfAllDivisors(t *testing.T) {
	mr, err := NewModulusReduction(pairSpecs())
	require.NoError(t, err)
	assert.Equal(t, int64(437), mr.Modulus)
}

func TestModulusReduction_PreservesEveryDivisorResidue(t *testing.T) {
	// GIVEN the modulus for the sample divisors
	specs := sampleSpecs()
	mr, err := NewModulusReduction(specs)
	require.NoError(t, err)

	// WHEN arbitrary values (including negatives) are reduced
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		v := rng.Int63() - rng.Int63()
		r := mr.Reduce(v)

		// THEN the result lies in [0, M) and every routing test agrees
		if r < 0 || r >= mr.Modulus {
			t.Fatalf("Reduce(%d) = %d outside [0, %d)", v, r, mr.Modulus)
		}
		for _, s := range specs {
			if (v%s.Divisor == 0) != (r%s.Divisor == 0) {
				t.Fatalf("divisor %d: routing differs for %d and reduced %d", s.Divisor, v, r)
			}
		}
	}
}

func TestNewOverflowPolicy(t *testing.T) {
	p, err := NewOverflowPolicy("damped", sampleSpecs())
	require.NoError(t, err)
	assert.Equal(t, "damped", p.Name())

	p, err = NewOverflowPolicy("modulus", sampleSpecs())
	require.NoError(t, err)
	assert.Equal(t, "modulus", p.Name())
	assert.Equal(t, int64(96577), p.(*ModulusReduction).Modulus)

	_, err = NewOverflowPolicy("none", sampleSpecs())
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestOverflowPolicyRegistry_HasDefaultRounds(t *testing.T) {
	for name := range ValidOverflowPolicies {
		assert.True(t, IsValidOverflowPolicy(name))
		assert.Positive(t, DefaultRounds[name], "policy %q has no default round count", name)
	}
	assert.False(t, IsValidOverflowPolicy(""))
	assert.False(t, IsValidOverflowPolicy("MODULUS"))
}
