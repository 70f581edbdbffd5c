package payment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tuition_media",
		Subsystem: "ledger",
		Name:      "payments_created_total",
		Help:      "Payments committed in pending state.",
	})

	// result is "verified" for a pending payment and "reapplied" when an
	// already completed payment is verified again.
	paymentsVerified = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tuition_media",
		Subsystem: "ledger",
		Name:      "payments_verified_total",
		Help:      "Committed payment verifications.",
	}, []string{"result"})

	ledgerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tuition_media",
		Subsystem: "ledger",
		Name:      "failures_total",
		Help:      "Ledger operations that returned an error.",
	}, []string{"operation", "type"})
)
