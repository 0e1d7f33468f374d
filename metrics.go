package ptnetwork

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/theoremus-urban-solutions/pt-network-browser/store"
)

var (
	metricElementsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptnetwork_elements_ingested_total",
			Help: "Entities added to the primary store, by class.",
		},
		[]string{"class"},
	)
	metricMalformedElements = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ptnetwork_malformed_elements_total",
			Help: "Query-response elements rejected during ingestion.",
		},
	)
	metricSelections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptnetwork_selections_total",
			Help: "Selection events, by resulting state.",
		},
		[]string{"state"},
	)
	metricSuggestionRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptnetwork_suggestion_runs_total",
			Help: "Route-group suggestion runs, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		metricElementsIngested,
		metricMalformedElements,
		metricSelections,
		metricSuggestionRuns,
	)
}

func observeIngest(sum store.IngestSummary) {
	metricElementsIngested.WithLabelValues("stop").Add(float64(sum.Stops))
	metricElementsIngested.WithLabelValues("route").Add(float64(sum.Routes))
	metricElementsIngested.WithLabelValues("route_group").Add(float64(sum.RouteGroups))
	metricElementsIngested.WithLabelValues("area").Add(float64(sum.Areas))
	metricElementsIngested.WithLabelValues("other").Add(float64(sum.Other))
	metricMalformedElements.Add(float64(sum.Malformed))
}
