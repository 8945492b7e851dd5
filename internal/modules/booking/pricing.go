package booking

import (
	"fmt"

	"github.com/shopspring/decimal"

	"salonagenda/internal/domain"
)

// PriceAdjustment maps a base price to the amount charged for one payment method.
type PriceAdjustment func(base decimal.Decimal) decimal.Decimal

// PriceResolver computes the final chargeable amount. Methods without an
// adjustment are charged the base price.
type PriceResolver struct {
	adjustments map[domain.PaymentMethod]PriceAdjustment
}

func NewPriceResolver() *PriceResolver {
	return &PriceResolver{adjustments: make(map[domain.PaymentMethod]PriceAdjustment)}
}

// WithAdjustment attaches a policy to one method and returns the resolver.
func (r *PriceResolver) WithAdjustment(method domain.PaymentMethod, adj PriceAdjustment) *PriceResolver {
	r.adjustments[method] = adj
	return r
}

func (r *PriceResolver) FinalPrice(base decimal.Decimal, method domain.PaymentMethod) (decimal.Decimal, error) {
	if !base.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: base price must be > 0, got %s", ErrPricing, base.String())
	}
	if !method.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}

	final := base
	if adj, ok := r.adjustments[method]; ok && adj != nil {
		final = adj(base)
	}
	if final.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s price resolved to %s", ErrPricing, method, final.String())
	}
	return final.Round(2), nil
}
