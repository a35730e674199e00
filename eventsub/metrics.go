package eventsub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what a Handler does with incoming requests.
type Metrics struct {
	// Messages counts accepted messages by message type and subscription
	// type.
	Messages *prometheus.CounterVec
	// Rejected counts requests that were not accepted, by reason.
	Rejected *prometheus.CounterVec
	// Duplicates counts notifications dropped as already delivered.
	Duplicates prometheus.Counter
	// CallbackErrors counts callbacks that returned an error.
	CallbackErrors *prometheus.CounterVec
}

// NewMetrics creates the handler metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Messages: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "twitch_eventsub_messages_total",
				Help: "Total number of authenticated EventSub messages handled",
			},
			[]string{"message_type", "subscription_type"},
		),
		Rejected: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "twitch_eventsub_rejected_total",
				Help: "Total number of EventSub requests rejected",
			},
			[]string{"reason"},
		),
		Duplicates: f.NewCounter(
			prometheus.CounterOpts{
				Name: "twitch_eventsub_duplicates_total",
				Help: "Total number of duplicate notifications dropped",
			},
		),
		CallbackErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "twitch_eventsub_callback_errors_total",
				Help: "Total number of message callbacks that failed",
			},
			[]string{"message_type"},
		),
	}
}
