package notify

import "github.com/prometheus/client_golang/prometheus"

var activeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "admind",
	Subsystem: "notify",
	Name:      "active_notifications",
	Help:      "Currently visible notifications",
})

func init() {
	prometheus.MustRegister(activeGauge)
}
