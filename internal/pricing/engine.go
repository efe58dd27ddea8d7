package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when a quantity is zero or negative.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// Quote aggregates computed pricing components for a single order line.
type Quote struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Compute calculates order totals from a unit price, quantity and discount
// percentage. The discount is kept at full precision; only the final total is
// rounded to two decimal places, half up.
func Compute(unitPrice decimal.Decimal, quantity int, discountPercent decimal.Decimal) (Quote, error) {
	if quantity <= 0 {
		return Quote{}, ErrInvalidQuantity
	}
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discount := decimal.Zero
	if discountPercent.IsPositive() {
		discount = subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100))
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	total := subtotal.Sub(discount).Round(2)
	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
	}, nil
}
