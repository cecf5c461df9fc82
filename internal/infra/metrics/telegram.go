package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramUpdatesReceivedTotal,
		telegramUnauthorizedTotal,
		telegramConflictsTotal,
	)
}

var (
	telegramUpdatesReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_updates_received_total",
			Help: "Inbound updates by kind (command/text/callback).",
		},
		[]string{"kind"},
	)

	telegramUnauthorizedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_unauthorized_dropped_total",
			Help: "Updates silently dropped because the sender is not the operator.",
		},
	)

	telegramConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_polling_conflicts_total",
			Help: "getUpdates calls rejected because another instance is polling.",
		},
	)
)

func IncUpdate(kind string) {
	telegramUpdatesReceivedTotal.WithLabelValues(norm(kind)).Inc()
}

func IncUnauthorized() {
	telegramUnauthorizedTotal.Inc()
}

func IncConflict() {
	telegramConflictsTotal.Inc()
}
