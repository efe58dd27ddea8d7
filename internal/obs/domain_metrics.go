package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// OrdersPlacedTotal counts order placement outcomes.
	OrdersPlacedTotal *prometheus.CounterVec
	// OrderTotalAmount records final order totals in currency units.
	OrderTotalAmount prometheus.Histogram
	// PromoValidationTotal counts promo code validation outcomes.
	PromoValidationTotal *prometheus.CounterVec
	// PromoRedemptionTotal counts promo redemption attempts by result.
	PromoRedemptionTotal *prometheus.CounterVec
	// MenuCacheTotal counts menu cache lookups by result.
	MenuCacheTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		OrdersPlacedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Count of order placement outcomes.",
		}, []string{"result"})
		OrderTotalAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_total_amount",
			Help:      "Distribution of final order totals.",
			Buckets:   []float64{5, 10, 20, 30, 50, 75, 100, 150, 250},
		})
		PromoValidationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_validation_total",
			Help:      "Count of promo code validation outcomes.",
		}, []string{"outcome"})
		PromoRedemptionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_redemption_total",
			Help:      "Count of promo code redemption attempts by result.",
		}, []string{"result"})
		MenuCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_cache_total",
			Help:      "Count of menu cache lookups by result.",
		}, []string{"result"})

		registerOrReuse(reg, OrdersPlacedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrdersPlacedTotal = v
			}
		})
		registerOrReuse(reg, OrderTotalAmount, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				OrderTotalAmount = v
			}
		})
		registerOrReuse(reg, PromoValidationTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PromoValidationTotal = v
			}
		})
		registerOrReuse(reg, PromoRedemptionTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PromoRedemptionTotal = v
			}
		})
		registerOrReuse(reg, MenuCacheTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				MenuCacheTotal = v
			}
		})
	})
}
