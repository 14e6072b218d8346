package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Name:      "bookings_confirmed_total",
			Help:      "Bookings moved to CONFIRMED.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Name:      "booking_conflicts_total",
			Help:      "Booking operations rejected on date-range conflict.",
		},
	)

	bookingsArchived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Name:      "bookings_archived_total",
			Help:      "Bookings archived by the sweep.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsConfirmed, bookingConflicts, bookingsArchived)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncConfirmed() { bookingsConfirmed.Inc() }

func IncConflict() { bookingConflicts.Inc() }

// AddArchived adds the number of bookings archived by one sweep run.
func AddArchived(n int) { bookingsArchived.Add(float64(n)) }
