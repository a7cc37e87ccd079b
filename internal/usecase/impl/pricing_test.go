package impl

import (
	"testing"

	domainerrors "minishop/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name          string
		originalPrice float64
		newPrice      float64
		want          int
	}{
		{name: "quarter off", originalPrice: 100, newPrice: 75, want: 25},
		{name: "rounds down", originalPrice: 3, newPrice: 2, want: 33},
		{name: "rounds up", originalPrice: 3, newPrice: 1, want: 67},
		{name: "no discount", originalPrice: 50, newPrice: 50, want: 0},
		{name: "full discount", originalPrice: 20, newPrice: 0, want: 100},
		{name: "price increase yields negative discount", originalPrice: 100, newPrice: 120, want: -20},
		{name: "fractional prices", originalPrice: 19.99, newPrice: 9.99, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := computeDiscount(tt.originalPrice, tt.newPrice)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeDiscount_RejectsNonPositiveOriginal(t *testing.T) {
	for _, original := range []float64{0, -1, -99.99} {
		_, err := computeDiscount(original, 10)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidPrice))
	}
}
