package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler fails or throws a job depending on the error code.
type ErrorHandler struct {
	logger     Logger
	maxRetries int
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// NewErrorHandler caps the retries handed back to the broker at maxRetries.
// Zero keeps the per-code counts of GetRetryCount.
func NewErrorHandler(logger Logger, maxRetries int) *ErrorHandler {
	return &ErrorHandler{logger: logger, maxRetries: maxRetries}
}

// HandleJobError reports err to the broker. Retryable codes fail the job with
// the remaining retries; everything else is thrown as a BPMN error so the
// process can route it.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	retries := h.remainingRetries(job, stdErr.Code)
	h.logError(job, stdErr, bpmnErr, retries)

	if retries > 0 {
		h.failJob(ctx, client, job, bpmnErr, retries)
		return
	}
	h.throwBPMNError(ctx, client, job, bpmnErr)
}

// Normalize unwraps err to a StandardError, wrapping unknown errors as INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// remainingRetries is zero for business errors and for jobs on their last attempt.
func (h *ErrorHandler) remainingRetries(job entities.Job, code ErrorCode) int {
	retries := GetRetryCount(code)
	if retries == 0 || job.Retries <= 0 {
		return 0
	}
	if h.maxRetries > 0 && retries > h.maxRetries {
		retries = h.maxRetries
	}
	if left := int(job.Retries) - 1; left < retries {
		retries = left
	}
	return retries
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))

	if withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables()); err == nil {
		_, err = withVars.Send(ctx)
		h.logSendFailure(job, "fail", err)
		return
	}
	_, err := cmd.Send(ctx)
	h.logSendFailure(job, "fail", err)
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables())
	if err != nil {
		varsJSON = []byte("{}")
	}
	if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
		_, err = withVars.Send(ctx)
		h.logSendFailure(job, "throw", err)
		return
	}
	_, err = cmd.Send(ctx)
	h.logSendFailure(job, "throw", err)
}

func (h *ErrorHandler) logSendFailure(job entities.Job, command string, err error) {
	if err == nil {
		return
	}
	h.logger.Error("Failed to report job error to Camunda", map[string]interface{}{
		"jobKey":  job.Key,
		"command": command,
		"error":   err.Error(),
	})
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, retries int) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":             job.Key,
		"jobType":            job.Type,
		"errorCode":          string(stdErr.Code),
		"bpmnErrorCode":      bpmnErr.Code,
		"message":            bpmnErr.Message,
		"details":            stdErr.Details,
		"retryable":          stdErr.Retryable,
		"retries":            retries,
		"errorCategory":      GetErrorCategory(stdErr.Code),
		"processInstanceKey": job.ProcessInstanceKey,
	})
}
