package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide Prometheus counters. Create once in main;
// promauto registers with the default registry.
type Metrics struct {
	SignIns             prometheus.Counter
	SignUps             prometheus.Counter
	ReservationsCreated prometheus.Counter
	ReservationsDeleted prometheus.Counter
	StatusUpdates       prometheus.Counter
	ClientLookups       prometheus.Counter
	ErrorsTotal         prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		SignIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservepro_sign_ins_total",
			Help: "Total number of successful sign-ins",
		}),
		SignUps: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservepro_sign_ups_total",
			Help: "Total number of created manager accounts",
		}),
		ReservationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservepro_reservations_created_total",
			Help: "Total number of reservations created",
		}),
		ReservationsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservepro_reservations_deleted_total",
			Help: "Total number of reservations deleted",
		}),
		StatusUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservepro_status_updates_total",
			Help: "Total number of reservation status changes",
		}),
		ClientLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservepro_client_lookups_total",
			Help: "Total number of client phone lookups",
		}),
		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservepro_errors_total",
			Help: "Total number of failed user actions",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reservepro_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
