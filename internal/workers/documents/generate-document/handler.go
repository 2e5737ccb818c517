package generatedocument

import (
	"context"
	"fmt"
	"strings"
	"time"

	"legal-docs-workers/internal/common/camunda"
	"legal-docs-workers/internal/common/config"
	"legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/common/metrics"
	"legal-docs-workers/internal/common/observability"
	"legal-docs-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType   = "documents.generate"
	WorkerName = "generate-document"
)

// DocumentService generates one document per job.
type DocumentService interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Handler struct {
	config  *Config
	logger  logger.Logger
	camunda *camunda.Client
	service DocumentService
	obs     *observability.Observability
	worker  *camunda.Worker
}

type HandlerOptions struct {
	AppConfig     *config.Config
	Camunda       *camunda.Client
	CustomConfig  *Config
	Logger        logger.Logger
	Observability *observability.Observability
	Dependencies  ServiceDependencies
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
		obs:     opts.Observability,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing document generation request", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	if !h.config.Enabled {
		h.logger.Info("Worker disabled by configuration", nil)
		h.completeJob(ctx, client, job, &Output{DocumentGenerated: false, Diagnostics: []Diagnostic{}})
		return
	}

	input, err := h.parseInput(job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.obs.RecordJobProcessed(ctx, "failed")
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.obs.RecordJobProcessed(ctx, "failed")
		h.obs.RecordJobDuration(ctx, time.Since(startTime), "failed")
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.obs.RecordJobProcessed(ctx, "success")
	h.obs.RecordJobDuration(ctx, time.Since(startTime), "success")
}

// Execute runs the generation for an already parsed input.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.service.Execute(ctx, input)
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

	input := &Input{
		RecordID:     strings.TrimSpace(variables["recordId"].(string)),
		OwnerID:      strings.TrimSpace(variables["ownerId"].(string)),
		DocumentType: variables["documentType"].(string),
	}

	if email, ok := variables["notifyEmail"].(string); ok {
		input.NotifyEmail = email
	}

	return input, nil
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

	variables := map[string]interface{}{
		"documentGenerated": output.DocumentGenerated,
		"diagnostics":       diagnostics,
	}
	if output.GenerationID != "" {
		variables["generationId"] = output.GenerationID
		variables["filename"] = output.Filename
		variables["contentType"] = output.ContentType
		variables["sizeBytes"] = output.SizeBytes
		variables["outputKey"] = output.OutputKey
	}
	return variables
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

	h.logger.Info("Document generation completed", map[string]interface{}{
		"jobKey":       job.GetKey(),
		"generationId": output.GenerationID,
		"filename":     output.Filename,
		"diagnostics":  len(output.Diagnostics),
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := convertToStandardError(err)
	bpmnErr := errors.ConvertToBPMNError(stdErr)

	retries := bpmnErr.Retries
	if retries > h.config.MaxRetries {
		retries = h.config.MaxRetries
	}

	h.logger.Error("Document generation job failed", map[string]interface{}{
		"jobKey":       job.GetKey(),
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"details":      bpmnErr.Details,
		"retryable":    bpmnErr.Retryable,
		"retries":      retries,
	})

	failCmd := client.NewFailJobCommand().
		JobKey(job.GetKey()).
		Retries(int32(retries)).
		ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))

	var finalCmd interface {
		Send(context.Context) (*pb.FailJobResponse, error)
	} = failCmd
	if varCmd, varErr := failCmd.VariablesFromMap(bpmnErr.ToErrorVariables()); varErr == nil {
		finalCmd = varCmd
	} else {
		h.logger.Error("Failed to set error variables, sending without them", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  varErr.Error(),
		})
	}

	if _, failErr := finalCmd.Send(ctx); failErr != nil {
		h.logger.Error("Failed to send job failure to Camunda", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  failErr.Error(),
		})
	}
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

func (h *Handler) HealthCheck(ctx context.Context) error {
	if h.camunda == nil {
		return fmt.Errorf("camunda client not configured")
	}
	if err := h.camunda.HealthCheck(ctx); err != nil {
		return fmt.Errorf("camunda health check failed: %w", err)
	}
	return nil
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
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
		std.Code = "DOCUMENT_GENERATION_ERROR"
		std.Message = "Failed to generate document"
		std.Retryable = true
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
