// Package metrics exposes Prometheus counters for the backend API and dataset refreshes.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"RegimeBoard/internal/model"
)

// Refresh results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Registry holds every RegimeBoard metric on its own prometheus.Registry.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	Refreshes     *prometheus.CounterVec
	DatasetPoints *prometheus.GaugeVec
}

// NewRegistry creates and registers all metrics.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regimeboard_http_requests_total",
				Help: "Total number of API requests by route and status code",
			},
			[]string{"route", "status"},
		),

		Refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regimeboard_dataset_refresh_total",
				Help: "Total number of dataset refreshes by result",
			},
			[]string{"result"},
		),

		DatasetPoints: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "regimeboard_dataset_points",
				Help: "Number of records in the current snapshot by dataset",
			},
			[]string{"dataset"},
		),
	}

	r.reg.MustRegister(r.HTTPRequests, r.Refreshes, r.DatasetPoints)
	return r
}

// ObserveRequest counts one served request.
func (r *Registry) ObserveRequest(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	r.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// ObserveRefresh counts a refresh attempt. On success the dataset sizes are updated;
// a failure leaves them describing the snapshot still being served.
func (r *Registry) ObserveRefresh(prices int, changePoints map[model.Provider][]int, events int, err error) {
	if err != nil {
		r.Refreshes.WithLabelValues(ResultFailure).Inc()
		return
	}
	r.Refreshes.WithLabelValues(ResultSuccess).Inc()
	r.DatasetPoints.WithLabelValues("prices").Set(float64(prices))
	r.DatasetPoints.WithLabelValues("events").Set(float64(events))
	for _, p := range model.Providers {
		r.DatasetPoints.WithLabelValues("change_points_" + string(p)).Set(float64(len(changePoints[p])))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
