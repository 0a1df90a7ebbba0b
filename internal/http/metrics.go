package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	evaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trust_evaluations_total",
		Help: "Total de evaluaciones de metricas realizadas.",
	})

	publicationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trust_publications_total",
		Help: "Total de publicaciones de score por resultado.",
	}, []string{"outcome"})

	scoreDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trust_score_distribution",
		Help:    "Distribucion de trust scores calculados.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
)

func metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
