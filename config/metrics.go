package config

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_scans_total",
		Help: "Scan frames processed, by outcome.",
	}, []string{"outcome"})

	EventsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_events_recorded_total",
		Help: "Attendance events recorded, by action.",
	}, []string{"action"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_notifications_total",
		Help: "Guardian notifications dispatched, by delivery status.",
	}, []string{"status"})
)

// ServeMetrics exposes prometheus metrics on a dedicated listener. Fiber
// cannot mount an http.Handler directly, so the exporter gets its own server.
func ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			GetLogrusInstance().Errorf("metrics listener stopped: %v", err)
		}
	}()
}
