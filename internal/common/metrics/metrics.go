// Package metrics holds the Prometheus collectors served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "legal_docs"

// jobDurationBuckets span a small pagaré up to a long set of minutes with a
// large agenda.
var jobDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_jobs_completed_total",
			Help:      "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_jobs_failed_total",
			Help:      "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "worker_job_duration_seconds",
			Help:      "Duration of job processing in seconds",
			Buckets:   jobDurationBuckets,
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_jobs_active",
			Help:      "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_generated_total",
			Help:      "Total number of DOCX documents generated",
		},
		[]string{"document_type"},
	)

	SectionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "section_fallbacks_total",
			Help:      "Generations where the agenda anchor was missing and the fallback marker was used",
		},
		[]string{"document_type"},
	)

	PlaceholdersReplaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placeholders_replaced_total",
			Help:      "Paragraphs rewritten by placeholder substitution",
		},
		[]string{"document_type"},
	)

	ValueRenderingFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "value_rendering_failures_total",
			Help:      "Record fields that degraded to their missing text",
		},
		[]string{"document_type"},
	)
)
