package camunda

import (
	"fmt"
	"time"

	"legal-docs-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// WorkerOptions are the polling settings of one job type.
type WorkerOptions struct {
	MaxJobsActive  int
	Timeout        time.Duration
	FetchVariables []string
}

// Worker is an open job worker for a single task type.
type Worker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// StartWorker opens a job worker for taskType that dispatches to handler.
func StartWorker(client zbc.Client, taskType string, opts WorkerOptions, handler worker.JobHandler, log logger.Logger) *Worker {
	builder := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Name(fmt.Sprintf("%s-worker", taskType))
	if len(opts.FetchVariables) > 0 {
		builder = builder.FetchVariables(opts.FetchVariables...)
	}
	jobWorker := builder.Open()

	log.Info("Worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": opts.MaxJobsActive,
		"timeout":       opts.Timeout.String(),
	})

	return &Worker{worker: jobWorker, logger: log, taskType: taskType}
}

// Stop closes the worker and waits for in-flight jobs. The shared client stays open.
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}
