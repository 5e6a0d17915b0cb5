package param

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Unwrap(t *testing.T) {
	err := fmt.Errorf("generating grid: %w", Positive("period", -1))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	var pErr *Error
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "period", pErr.Name)
	assert.Equal(t, -1.0, pErr.Value)
	assert.Contains(t, err.Error(), "period=-1")
}

func TestValidators(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		invalid bool
	}{
		{"positive ok", Positive("x", 0.1), false},
		{"positive zero", Positive("x", 0), true},
		{"positive inf", Positive("x", math.Inf(1)), true},
		{"non-negative zero", NonNegative("x", 0), false},
		{"non-negative below", NonNegative("x", -0.01), true},
		{"non-negative nan", NonNegative("x", math.NaN()), true},
		{"finite", Finite("x", 1e300), false},
		{"finite nan", Finite("x", math.NaN()), true},
		{"unit one", HalfOpenUnit("x", 1), false},
		{"unit zero", HalfOpenUnit("x", 0), true},
		{"unit above", HalfOpenUnit("x", 1.0001), true},
		{"between edge", Between("x", 10, 10, 20), false},
		{"between outside", Between("x", 21, 10, 20), true},
		{"at least", AtLeast("n", 1, 1), false},
		{"at least below", AtLeast("n", 0, 1), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.invalid {
				assert.ErrorIs(t, tc.err, ErrInvalidParameter)
			} else {
				assert.NoError(t, tc.err)
			}
		})
	}
}
