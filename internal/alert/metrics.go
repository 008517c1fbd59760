package alert

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	activeSubscriptions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cryptovektor",
		Subsystem: "alerts",
		Name:      "subscriptions_active",
		Help:      "The current number of live alert subscriptions",
	})
	ticksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cryptovektor",
			Subsystem: "alerts",
			Name:      "ticks_total",
			Help:      "The total number of alert ticks by result",
		},
		[]string{"result"},
	)
	notificationsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptovektor",
		Subsystem: "alerts",
		Name:      "notifications_sent_total",
		Help:      "The total number of alert notifications delivered",
	})
	notificationErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptovektor",
		Subsystem: "alerts",
		Name:      "notification_errors_total",
		Help:      "The total number of alert notifications that failed to send",
	})
)

func init() {
	prometheus.MustRegister(activeSubscriptions)
	prometheus.MustRegister(ticksTotal)
	prometheus.MustRegister(notificationsSent)
	prometheus.MustRegister(notificationErrors)
}
