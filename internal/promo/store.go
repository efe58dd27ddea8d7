package promo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no promo code matches the given code.
var ErrNotFound = errors.New("promo code not found")

// ErrLimitReached is returned by IncrementUsage when the code has no
// redemptions left. Callers treat this as a lost race, not a failure.
var ErrLimitReached = errors.New("promo code usage limit reached")

// Repo persists promo codes in Postgres.
type Repo struct {
	DB *pgxpool.Pool
}

const ruleColumns = `id, code, discount_percent::text, valid_from, valid_until, usage_limit, times_used`

// FindByCode looks up a promo code case-insensitively.
func (r *Repo) FindByCode(ctx context.Context, code string) (Rule, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+ruleColumns+` FROM promo_codes WHERE upper(code) = upper($1)`, code)
	rule, err := scanRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Rule{}, ErrNotFound
		}
		return Rule{}, fmt.Errorf("find promo code: %w", err)
	}
	return rule, nil
}

// IncrementUsage consumes one redemption of the code. The conditional update
// is the atomicity point for concurrent redemptions: when the limit is
// already reached no row matches and ErrLimitReached is returned.
func (r *Repo) IncrementUsage(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE promo_codes
		 SET times_used = times_used + 1
		 WHERE id = $1
		   AND (usage_limit IS NULL OR usage_limit < 0 OR times_used < usage_limit)`, id)
	if err != nil {
		return fmt.Errorf("increment promo usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLimitReached
	}
	return nil
}

// CreateParams carries the fields needed to register a new promo code.
type CreateParams struct {
	Code            string
	DiscountPercent decimal.Decimal
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	UsageLimit      *int32
}

// Create inserts a new promo code and returns the stored rule.
func (r *Repo) Create(ctx context.Context, p CreateParams) (Rule, error) {
	row := r.DB.QueryRow(ctx,
		`INSERT INTO promo_codes (code, discount_percent, valid_from, valid_until, usage_limit)
		 VALUES ($1, $2::numeric, $3, $4, $5)
		 RETURNING `+ruleColumns,
		p.Code, p.DiscountPercent.String(), p.ValidFrom, p.ValidUntil, p.UsageLimit)
	rule, err := scanRule(row)
	if err != nil {
		return Rule{}, fmt.Errorf("create promo code: %w", err)
	}
	return rule, nil
}

// List returns all promo codes ordered by code.
func (r *Repo) List(ctx context.Context) ([]Rule, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+ruleColumns+` FROM promo_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	defer rows.Close()

	out := []Rule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promo code: %w", err)
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRule(row pgx.Row) (Rule, error) {
	var (
		rule    Rule
		percent string
	)
	if err := row.Scan(&rule.ID, &rule.Code, &percent, &rule.ValidFrom, &rule.ValidUntil, &rule.UsageLimit, &rule.TimesUsed); err != nil {
		return Rule{}, err
	}
	d, err := decimal.NewFromString(percent)
	if err != nil {
		return Rule{}, fmt.Errorf("parse discount percent %q: %w", percent, err)
	}
	rule.DiscountPercent = d
	return rule, nil
}
