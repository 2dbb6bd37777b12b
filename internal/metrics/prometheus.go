package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CouponRedemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_coupon_redemptions_total",
		Help: "Coupon redemption attempts by result",
	}, []string{"result"})

	CouponApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_coupon_applications_total",
		Help: "Checkout-time coupon applications by result",
	}, []string{"result"})

	CouponDiscountAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_coupon_discount_amount_total",
		Help: "Sum of discount amounts recorded by redemptions",
	})

	PublicCouponListDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_public_coupon_list_duration_seconds",
		Help:    "Time to build the public coupon listing",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
)

// ObserveCouponRedemption 记录一次核销结果
func ObserveCouponRedemption(result string, discount float64) {
	CouponRedemptions.WithLabelValues(normalizeLabel(result)).Inc()
	if discount > 0 {
		CouponDiscountAmount.Add(discount)
	}
}

// ObserveCouponApplication 记录一次结算试算结果
func ObserveCouponApplication(result string) {
	CouponApplications.WithLabelValues(normalizeLabel(result)).Inc()
}

// ObservePublicCouponList 记录公开列表耗时
func ObservePublicCouponList(duration time.Duration) {
	PublicCouponListDuration.Observe(duration.Seconds())
}

// ObserveHTTPRequest 记录 HTTP 请求
func ObserveHTTPRequest(method, route, status string) {
	if strings.TrimSpace(route) == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, status).Inc()
}

func normalizeLabel(value string) string {
	label := strings.TrimSpace(value)
	if label == "" {
		return "unknown"
	}
	return label
}
