package bus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "findy_hook"
	subsystem = "bus"
)

const (
	reasonOverflow = "overflow"
	reasonClosed   = "closed"
	reasonDecode   = "decode"
)

var (
	registerOnce sync.Once
	collectors   *metrics
)

type metrics struct {
	ingested      *prometheus.CounterVec
	dropped       *prometheus.CounterVec
	delivered     *prometheus.CounterVec
	keepalives    *prometheus.CounterVec
	decodeErrors  *prometheus.CounterVec
	handlerErrors *prometheus.CounterVec
	queued        *prometheus.GaugeVec
	subscriptions *prometheus.GaugeVec
}

// getMetrics returns the process wide collectors, every bus reports with
// its own name label.
func getMetrics() *metrics {
	registerOnce.Do(func() {
		collectors = newMetrics()
		prometheus.MustRegister(
			collectors.ingested,
			collectors.dropped,
			collectors.delivered,
			collectors.keepalives,
			collectors.decodeErrors,
			collectors.handlerErrors,
			collectors.queued,
			collectors.subscriptions,
		)
	})
	return collectors
}

func newMetrics() *metrics {
	return &metrics{
		ingested: newCounterVec("ingested_total",
			"Number of notifications accepted to the queue.", "bus"),
		dropped: newCounterVec("dropped_total",
			"Number of notifications dropped before dispatch.", "bus", "reason"),
		delivered: newCounterVec("delivered_total",
			"Number of events delivered to subscriptions.", "bus"),
		keepalives: newCounterVec("keepalives_total",
			"Number of keepalive notifications skipped.", "bus"),
		decodeErrors: newCounterVec("decode_errors_total",
			"Number of notifications which couldn't be decoded.", "bus", "topic"),
		handlerErrors: newCounterVec("subscriber_errors_total",
			"Number of failed subscription handler calls.", "bus"),
		queued: newGaugeVec("queue_length",
			"Number of notifications waiting for dispatch.", "bus"),
		subscriptions: newGaugeVec("subscriptions",
			"Number of active subscriptions.", "bus"),
	}
}

func newCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func newGaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}
