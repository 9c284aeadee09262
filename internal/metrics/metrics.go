package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "youapp_messages_sent_total",
		Help: "Messages successfully persisted by the messaging service.",
	})

	NotificationPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "youapp_notification_publish_failures_total",
		Help: "Notification events dropped because the broker publish failed.",
	})
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
