package promo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/slice-labs/backend-pizzeria/internal/obs"
)

// Querier captures the store methods required by the promo service.
type Querier interface {
	FindByCode(ctx context.Context, code string) (Rule, error)
	IncrementUsage(ctx context.Context, id int64) error
	Create(ctx context.Context, p CreateParams) (Rule, error)
	List(ctx context.Context) ([]Rule, error)
}

// ValidationResult pairs the classification outcome with the matched rule.
// Rule is set only when a code was found, regardless of outcome, so callers
// can surface code details alongside rejection messages.
type ValidationResult struct {
	Outcome Outcome
	Rule    *Rule
}

// Service evaluates and redeems promo codes. The clock is injected so the
// validity-window logic stays testable.
type Service struct {
	Q   Querier
	Now func() time.Time
}

// Validate classifies the supplied code string at the current instant.
// Storage failures are the only error case; every rejection is an outcome.
func (s *Service) Validate(ctx context.Context, code string) (ValidationResult, error) {
	if s == nil || s.Q == nil {
		return ValidationResult{}, errors.New("promo service not configured")
	}
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return s.observe(ValidationResult{Outcome: OutcomeNoCode}), nil
	}
	rule, err := s.Q.FindByCode(ctx, trimmed)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.observe(ValidationResult{Outcome: OutcomeInvalid}), nil
		}
		return ValidationResult{}, err
	}
	return s.observe(ValidationResult{Outcome: rule.Evaluate(s.now()), Rule: &rule}), nil
}

// Redeem consumes one usage of the rule. ErrLimitReached means the code was
// exhausted by a concurrent redemption after validation.
func (s *Service) Redeem(ctx context.Context, id int64) error {
	err := s.Q.IncrementUsage(ctx, id)
	if obs.PromoRedemptionTotal != nil {
		result := "redeemed"
		switch {
		case errors.Is(err, ErrLimitReached):
			result = "lost_race"
		case err != nil:
			result = "error"
		}
		obs.PromoRedemptionTotal.WithLabelValues(result).Inc()
	}
	return err
}

// Register stores a new promo code.
func (s *Service) Register(ctx context.Context, p CreateParams) (Rule, error) {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	return s.Q.Create(ctx, p)
}

// All lists every known promo code.
func (s *Service) All(ctx context.Context) ([]Rule, error) {
	return s.Q.List(ctx)
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) observe(res ValidationResult) ValidationResult {
	if obs.PromoValidationTotal != nil {
		obs.PromoValidationTotal.WithLabelValues(string(res.Outcome)).Inc()
	}
	return res
}
