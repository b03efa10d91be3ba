package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insurebot_messages_total",
			Help: "Total user messages processed, by resolved intent",
		},
		[]string{"intent"},
	)

	InterruptionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "insurebot_interruptions_total",
			Help: "Messages short-circuited by the interruption handler",
		},
	)

	ResponseDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "insurebot_response_duration_seconds",
			Help:    "Message processing duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	RecordingsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insurebot_recordings_processed_total",
			Help: "Call recordings run through the training pipeline",
		},
		[]string{"status"},
	)

	ExtractionConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "insurebot_extraction_confidence",
			Help:    "Confidence scores of extracted knowledge items",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	KnowledgeItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "insurebot_knowledge_items",
			Help: "Items currently in the learned knowledge index",
		},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insurebot_cache_hits_total",
			Help: "Total cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insurebot_cache_misses_total",
			Help: "Total cache misses",
		},
		[]string{"cache_type"},
	)
)

func Init() {
	prometheus.MustRegister(MessagesTotal)
	prometheus.MustRegister(InterruptionsTotal)
	prometheus.MustRegister(ResponseDuration)
	prometheus.MustRegister(RecordingsProcessed)
	prometheus.MustRegister(ExtractionConfidence)
	prometheus.MustRegister(KnowledgeItems)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
