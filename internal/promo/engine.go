package promo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome classifies the result of evaluating a promo code. All non-valid
// outcomes suppress the discount; callers still need to distinguish them
// because the user-facing message differs per case.
type Outcome string

const (
	// OutcomeNoCode means no code was supplied. This is the normal no-promo path.
	OutcomeNoCode Outcome = "no_code"
	// OutcomeInvalid means the code does not exist.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeExhausted means the code has reached its usage limit.
	OutcomeExhausted Outcome = "exhausted"
	// OutcomeNotYetActive means the code's validity window has not opened yet.
	OutcomeNotYetActive Outcome = "not_yet_active"
	// OutcomeExpired means the code's validity window has closed.
	OutcomeExpired Outcome = "expired"
	// OutcomeValid means the code may be applied.
	OutcomeValid Outcome = "valid"
)

// Applicable reports whether the outcome entitles the order to a discount.
func (o Outcome) Applicable() bool { return o == OutcomeValid }

// Rule captures the runtime constraints of a promo code.
type Rule struct {
	ID              int64
	Code            string
	DiscountPercent decimal.Decimal
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	UsageLimit      *int32
	TimesUsed       int32
}

// Unlimited reports whether the rule has no effective usage cap. A missing
// limit and a negative sentinel both mean unlimited.
func (r Rule) Unlimited() bool {
	return r.UsageLimit == nil || *r.UsageLimit < 0
}

// Evaluate classifies the rule at the provided instant. Exhaustion is checked
// before the validity window so a used-up code reports exhausted even when it
// has also expired.
func (r Rule) Evaluate(now time.Time) Outcome {
	if !r.Unlimited() && r.TimesUsed >= *r.UsageLimit {
		return OutcomeExhausted
	}
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return OutcomeNotYetActive
	}
	if r.ValidUntil != nil && now.After(*r.ValidUntil) {
		return OutcomeExpired
	}
	return OutcomeValid
}
