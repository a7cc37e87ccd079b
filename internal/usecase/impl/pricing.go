package impl

import (
	"math"

	domainerrors "minishop/internal/domain/errors"
)

// computeDiscount derives the rounded percentage discount from a price pair.
// A non-positive original price cannot anchor a percentage and is rejected.
func computeDiscount(originalPrice, newPrice float64) (int, error) {
	if originalPrice <= 0 {
		return 0, domainerrors.ErrInvalidPrice.WrapMessage("original price must be positive to compute a discount")
	}

	return int(math.Round((originalPrice - newPrice) / originalPrice * 100)), nil
}
