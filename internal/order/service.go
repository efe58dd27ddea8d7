package order

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/slice-labs/backend-pizzeria/internal/common"
	"github.com/slice-labs/backend-pizzeria/internal/menu"
	"github.com/slice-labs/backend-pizzeria/internal/obs"
	"github.com/slice-labs/backend-pizzeria/internal/pricing"
	"github.com/slice-labs/backend-pizzeria/internal/promo"
)

type menuProvider interface {
	Get(ctx context.Context, id int64) (menu.Item, error)
}

type promoEngine interface {
	Validate(ctx context.Context, code string) (promo.ValidationResult, error)
	Redeem(ctx context.Context, id int64) error
}

type orderStore interface {
	Insert(ctx context.Context, p InsertParams) (Order, error)
	Get(ctx context.Context, id uuid.UUID) (Order, error)
	List(ctx context.Context, limit, offset int32) ([]Order, error)
	Count(ctx context.Context) (int64, error)
}

type placedNotifier interface {
	OrderPlaced(ctx context.Context, o Order) error
}

// Service orchestrates order submission: item lookup, promo validation,
// pricing, redemption and persistence.
type Service struct {
	Menu     menuProvider
	Promo    promoEngine
	Store    orderStore
	Notifier placedNotifier
	Logger   zerolog.Logger
}

// SubmitParams carries the caller-supplied order fields.
type SubmitParams struct {
	MenuItemID   int64
	Quantity     int32
	CustomerName string
	PromoCode    string
}

// Submit places an order. Promo problems never abort the order; they only
// suppress the discount. A promoCodeId is persisted only when the usage
// increment actually succeeded.
func (s *Service) Submit(ctx context.Context, p SubmitParams) (Order, error) {
	// Item existence is checked before the input fields so that a bad item
	// id always reports ITEM_NOT_FOUND, whatever else is wrong.
	item, err := s.Menu.Get(ctx, p.MenuItemID)
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			return Order{}, common.NewAppError("ITEM_NOT_FOUND", "menu item not found", http.StatusNotFound, err)
		}
		return Order{}, storageUnavailable(err)
	}

	if p.Quantity <= 0 {
		return Order{}, common.NewAppError("INVALID_QUANTITY", "quantity must be a positive integer", http.StatusBadRequest, pricing.ErrInvalidQuantity)
	}
	if strings.TrimSpace(p.CustomerName) == "" {
		return Order{}, common.NewAppError("INVALID_INPUT", "customer name is required", http.StatusBadRequest, nil)
	}

	validation, err := s.Promo.Validate(ctx, p.PromoCode)
	if err != nil {
		return Order{}, storageUnavailable(err)
	}

	discountPercent := decimal.Zero
	if validation.Outcome.Applicable() {
		discountPercent = validation.Rule.DiscountPercent
	}
	quote, err := pricing.Compute(item.Price, int(p.Quantity), discountPercent)
	if err != nil {
		return Order{}, common.NewAppError("INVALID_QUANTITY", "quantity must be a positive integer", http.StatusBadRequest, err)
	}

	var promoCodeID *int64
	if validation.Outcome.Applicable() {
		switch err := s.Promo.Redeem(ctx, validation.Rule.ID); {
		case err == nil:
			id := validation.Rule.ID
			promoCodeID = &id
		case errors.Is(err, promo.ErrLimitReached):
			// Lost the race to exhaustion between validation and increment.
			// Re-price as if no code were supplied; the order still succeeds.
			s.Logger.Warn().Str("code", validation.Rule.Code).Msg("promo redemption lost race, pricing without discount")
			quote, _ = pricing.Compute(item.Price, int(p.Quantity), decimal.Zero)
		default:
			return Order{}, storageUnavailable(err)
		}
	}

	o, err := s.Store.Insert(ctx, InsertParams{
		MenuItemID:     item.ID,
		Quantity:       p.Quantity,
		CustomerName:   strings.TrimSpace(p.CustomerName),
		PromoCodeID:    promoCodeID,
		Subtotal:       quote.Subtotal,
		DiscountAmount: quote.Discount,
		FinalTotal:     quote.Total,
	})
	if err != nil {
		s.observePlaced("error")
		return Order{}, storageUnavailable(err)
	}
	o.ItemName = item.Name

	s.observePlaced(placedResult(promoCodeID))
	if obs.OrderTotalAmount != nil {
		total, _ := o.FinalTotal.Float64()
		obs.OrderTotalAmount.Observe(total)
	}

	if s.Notifier != nil {
		if err := s.Notifier.OrderPlaced(ctx, o); err != nil {
			s.Logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("enqueue order placed notification")
		}
	}
	return o, nil
}

// Lookup fetches a persisted order by id.
func (s *Service) Lookup(ctx context.Context, id uuid.UUID) (Order, error) {
	o, err := s.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Order{}, common.NewAppError("ORDER_NOT_FOUND", "order not found", http.StatusNotFound, err)
		}
		return Order{}, storageUnavailable(err)
	}
	return o, nil
}

// Recent lists persisted orders newest first, along with the total number
// of orders across all pages.
func (s *Service) Recent(ctx context.Context, limit, offset int32) ([]Order, int64, error) {
	total, err := s.Store.Count(ctx)
	if err != nil {
		return nil, 0, storageUnavailable(err)
	}
	out, err := s.Store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, storageUnavailable(err)
	}
	return out, total, nil
}

func (s *Service) observePlaced(result string) {
	if obs.OrdersPlacedTotal != nil {
		obs.OrdersPlacedTotal.WithLabelValues(result).Inc()
	}
}

func placedResult(promoCodeID *int64) string {
	if promoCodeID != nil {
		return "discounted"
	}
	return "full_price"
}

func storageUnavailable(err error) error {
	return common.NewAppError("STORAGE_UNAVAILABLE", "storage unavailable", http.StatusServiceUnavailable, err)
}
