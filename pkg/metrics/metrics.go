package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the core link/support flows. Registered on the default
// registry and exposed via promhttp on /metrics.
var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenland_http_requests_total",
		Help: "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	LinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenland_links_created_total",
		Help: "Payment links created through the bot wizard.",
	})

	LinkOpens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenland_link_opens_total",
		Help: "Check-page opens across all links.",
	})

	SupportMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenland_support_messages_total",
		Help: "Support chat messages appended, by sender side.",
	}, []string{"from"})

	NotifyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenland_notify_failures_total",
		Help: "Fire-and-forget Telegram notification failures, by kind.",
	}, []string{"kind"})
)
