package main

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TotalDnsQueriesCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sinkd_dns_queries",
		Help: "The total number of received DNS queries",
	})
	AnsweredQueriesCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sinkd_answered_queries",
		Help: "The total number of queries answered with a sinkholed address",
	})
	MalformedQueriesCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sinkd_malformed_queries",
		Help: "The total number of datagrams dropped because they didn't decode as DNS",
	})
	EmptyQuestionCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sinkd_empty_question_queries",
		Help: "The total number of queries dropped for carrying no question",
	})
	EncodeFailuresCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sinkd_encode_failures",
		Help: "The total number of responses that failed to serialize",
	})
	QueuedQueriesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sinkd_queued_queries",
		Help: "Queries received but not yet being handled",
	})
	QueryTimer = promauto.NewSummary(prometheus.SummaryOpts{
		Name: "sinkd_query_duration_seconds",
		Help: "Time spent handling a query, from decode to send",
	})
)

func InitPrometheus(router *mux.Router) {
	router.Handle("/metrics", promhttp.Handler())
}
