package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		flowTransitionsTotal,
		broadcastsSentTotal,
		flowDeleteFailuresTotal,
	)
}

var (
	flowTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "announce_flow_transitions_total",
			Help: "Conversation transitions taken, by transition name.",
		},
		[]string{"transition"},
	)

	broadcastsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "announce_broadcasts_total",
			Help: "Confirmed announcements by outcome (sent/failed/empty).",
		},
		[]string{"outcome"},
	)

	flowDeleteFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "announce_flow_delete_failures_total",
			Help: "Best-effort deletions of old flow messages that failed.",
		},
	)
)

func IncTransition(name string) {
	flowTransitionsTotal.WithLabelValues(norm(name)).Inc()
}

func IncBroadcast(outcome string) {
	broadcastsSentTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncDeleteFailure() {
	flowDeleteFailuresTotal.Inc()
}
