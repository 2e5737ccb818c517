package previewplaceholders

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"legal-docs-workers/internal/common/camunda"
	"legal-docs-workers/internal/common/config"
	"legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/common/metrics"
	"legal-docs-workers/internal/common/validation"
	"legal-docs-workers/internal/documents"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType   = "documents.placeholders.preview"
	WorkerName = "preview-placeholders"
)

type PreviewService interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Handler struct {
	config  *Config
	logger  logger.Logger
	camunda *camunda.Client
	service PreviewService
	errors  *errors.ErrorHandler
	worker  *camunda.Worker
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Camunda      *camunda.Client
	CustomConfig *Config
	Logger       logger.Logger
	Dependencies ServiceDependencies
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", WorkerName, err)
	}

	loggerInstance := opts.Logger
	if loggerInstance == nil {
		loggerInstance = logger.NewStructured("info", "json")
	}
	loggerInstance = loggerInstance.WithFields(map[string]interface{}{"worker": TaskType})

	deps := opts.Dependencies
	deps.Logger = loggerInstance

	return &Handler{
		config:  workerConfig,
		logger:  loggerInstance,
		camunda: opts.Camunda,
		service: NewService(deps, workerConfig),
		errors:  errors.NewErrorHandler(loggerInstance, workerConfig.MaxRetries),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing placeholder preview", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	if !h.config.Enabled {
		h.logger.Info("Worker disabled by configuration", nil)
		h.completeJob(ctx, client, job, &Output{Placeholders: map[string]string{}, Diagnostics: []Diagnostic{}})
		return
	}

	input, err := h.parseInput(job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.service.Execute(ctx, input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, &errors.StandardError{
			Code:      "INPUT_PARSING_FAILED",
			Message:   "Failed to parse job variables",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	result := validation.ValidateInput(variables, GetInputSchema())
	if !result.Valid {
		return nil, errors.NewValidationFailedError(
			fmt.Sprintf("Validation errors: %v", result.GetErrorMessages()),
		)
	}

	input := &Input{DocumentType: variables["documentType"].(string)}

	if raw, ok := variables["record"]; ok && raw != nil {
		record, err := decodeRecord(raw)
		if err != nil {
			return nil, errors.NewMalformedInputError("record", err.Error())
		}
		input.Record = record
		return input, nil
	}

	recordID, _ := variables["recordId"].(string)
	ownerID, _ := variables["ownerId"].(string)
	input.RecordID = strings.TrimSpace(recordID)
	input.OwnerID = strings.TrimSpace(ownerID)
	if input.RecordID == "" || input.OwnerID == "" {
		return nil, errors.NewValidationFailedError("either record or recordId and ownerId are required")
	}
	return input, nil
}

// decodeRecord round-trips the job variable through JSON so blocks keep
// their raw form.
func decodeRecord(raw interface{}) (*documents.Record, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var record documents.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func outputVariables(output *Output) map[string]interface{} {
	diagnostics := make([]map[string]interface{}, 0, len(output.Diagnostics))
	for _, d := range output.Diagnostics {
		diagnostics = append(diagnostics, map[string]interface{}{
			"code":    d.Code,
			"message": d.Message,
			"details": d.Details,
		})
	}
	return map[string]interface{}{
		"valid":        output.Valid,
		"filename":     output.Filename,
		"placeholders": output.Placeholders,
		"diagnostics":  diagnostics,
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(outputVariables(output))
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	if _, err := request.Send(ctx); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	h.logger.Info("Placeholder preview completed", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"valid":       output.Valid,
		"diagnostics": len(output.Diagnostics),
	})
}

// failJob leaves retryable failures to the broker's retry loop and throws
// everything else as a BPMN error the review process can catch.
func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	h.errors.HandleJobError(ctx, client, job, convertToStandardError(err))
}

func (h *Handler) Register() error {
	if !h.config.Enabled {
		h.logger.Info("Worker is disabled, skipping registration", nil)
		return nil
	}
	if h.camunda == nil {
		return fmt.Errorf("%s: camunda client is required to register", WorkerName)
	}

	h.worker = camunda.StartWorker(h.camunda.GetClient(), TaskType, camunda.WorkerOptions{
		MaxJobsActive:  h.config.MaxJobsActive,
		Timeout:        h.config.Timeout,
		FetchVariables: InputVariables,
	}, h.Handle, h.logger)
	return nil
}

func (h *Handler) Close() {
	if h.worker != nil {
		h.worker.Stop()
		h.worker = nil
	}
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func extractErrorCode(err error) string {
	if err == nil {
		return "UNKNOWN_ERROR"
	}
	return string(errors.Normalize(err).Code)
}

func convertToStandardError(err error) *errors.StandardError {
	std := errors.Normalize(err)
	if std.Code == "INTERNAL_ERROR" {
		std.Code = "PLACEHOLDER_PREVIEW_ERROR"
		std.Message = "Failed to render placeholders"
	}
	return std
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()

	if appConfig != nil {
		if workerCfg, exists := appConfig.Workers[WorkerName]; exists {
			cfg.Enabled = workerCfg.Enabled
			if workerCfg.MaxJobsActive > 0 {
				cfg.MaxJobsActive = workerCfg.MaxJobsActive
			}
			if workerCfg.Timeout > 0 {
				cfg.Timeout = config.GetDuration(workerCfg.Timeout)
			}
			if workerCfg.MaxRetries > 0 {
				cfg.MaxRetries = workerCfg.MaxRetries
			}
		}
	}

	return cfg
}
