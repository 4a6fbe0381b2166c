package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carwash",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carwash",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carwash",
			Name:      "bookings_created_total",
			Help:      "Count of bookings created.",
		},
	)

	statusUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carwash",
			Name:      "booking_status_updates_total",
			Help:      "Count of booking status updates.",
		},
	)

	signups = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carwash",
			Name:      "signups_total",
			Help:      "Count of registered users.",
		},
	)

	contacts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carwash",
			Name:      "contact_messages_total",
			Help:      "Count of contact messages received.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingsCreated, statusUpdates, signups, contacts)
	})
}

func ObserveRequest(method, route, code string, seconds float64) {
	httpRequests.WithLabelValues(method, route, code).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncStatusUpdated() {
	statusUpdates.Inc()
}

func IncSignup() {
	signups.Inc()
}

func IncContact() {
	contacts.Inc()
}
