package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ServiceMetrics holds every counter the order and notification paths touch.
type ServiceMetrics struct {
	OrdersCreatedTotal    *prometheus.CounterVec
	OrdersCreatedAmount   *prometheus.CounterVec
	StatusTransitionTotal *prometheus.CounterVec

	PaymentCompletedTotal *prometheus.CounterVec
	PaymentFailedTotal    *prometheus.CounterVec
	// Tamper attempts are counted apart from ordinary failures so they can
	// be alerted on separately.
	PaymentTamperTotal *prometheus.CounterVec

	NotificationSentTotal     *prometheus.CounterVec
	NotificationFailedTotal   *prometheus.CounterVec
	NotificationDeferredTotal *prometheus.CounterVec
	DLQRetrySuccessTotal      prometheus.Counter
	DLQRetryFailedTotal       prometheus.Counter

	TokensCleanedTotal prometheus.Counter
}

func NewServiceMetrics() *ServiceMetrics {
	return &ServiceMetrics{
		OrdersCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders accepted by ingest",
		}, []string{"store_id", "order_type"}),
		OrdersCreatedAmount: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_created_amount_total",
			Help: "Total KRW amount of accepted orders",
		}, []string{"store_id"}),
		StatusTransitionTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Total number of committed status transitions",
		}, []string{"to_status"}),
		PaymentCompletedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payments_completed_total",
			Help: "Total number of completed payments",
		}, []string{"store_id"}),
		PaymentFailedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payments_failed_total",
			Help: "Total number of failed payments",
		}, []string{"store_id"}),
		PaymentTamperTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payments_tamper_total",
			Help: "Total number of amount-mismatch tampering attempts",
		}, []string{"store_id"}),
		NotificationSentTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of delivered notifications per channel",
		}, []string{"channel"}),
		NotificationFailedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Total number of failed notification sends per channel",
		}, []string{"channel"}),
		NotificationDeferredTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_deferred_total",
			Help: "Total number of quiet-hours deferrals",
		}, []string{"store_id"}),
		DLQRetrySuccessTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "notification_dlq_retry_success_total",
			Help: "Total number of DLQ entries retried successfully",
		}),
		DLQRetryFailedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "notification_dlq_retry_failed_total",
			Help: "Total number of DLQ retries that failed again",
		}),
		TokensCleanedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "push_tokens_cleaned_total",
			Help: "Total number of stale push registrations removed",
		}),
	}
}
