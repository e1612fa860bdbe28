package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	WebhooksReceived  prometheus.Counter
	AuthFailed        prometheus.Counter
	PublishFailed     prometheus.Counter
	PublishLatencySec prometheus.Histogram
	ImageLookupFailed prometheus.Counter
	BroadcastFailed   prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	received := prometheus.NewCounter(prometheus.CounterOpts{Name: "notify_webhooks_received_total"})
	authFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "notify_webhook_auth_failed_total"})
	publishFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "notify_publish_failed_total"})
	publishLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "notify_publish_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	imageFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "notify_image_lookup_failed_total"})
	broadcastFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "notify_broadcast_failed_total"})

	r.MustRegister(received, authFailed, publishFailed, publishLatency, imageFailed, broadcastFailed)

	return &Registry{
		reg:               r,
		WebhooksReceived:  received,
		AuthFailed:        authFailed,
		PublishFailed:     publishFailed,
		PublishLatencySec: publishLatency,
		ImageLookupFailed: imageFailed,
		BroadcastFailed:   broadcastFailed,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
