package generatedocument

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"legal-docs-workers/internal/common/config"
	"legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Service Implementation
// ==========================

type MockService struct {
	mock.Mock
}

func (m *MockService) Execute(ctx context.Context, input *Input) (*Output, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Output), args.Error(1)
}

// ==========================
// Mock Job Helper
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	activatedJob := &pb.ActivatedJob{
		Key:                      key,
		Type:                     TaskType,
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "generar-acta",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_GenerateDocument",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Deadline:                 0,
		Variables:                string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

func createValidConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
		MaxRetries:    3,
	}
}

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid configuration",
			opts: HandlerOptions{
				CustomConfig: createValidConfig(),
				Logger:       logger.NewTestLogger(t),
			},
		},
		{
			name: "invalid timeout",
			opts: HandlerOptions{
				CustomConfig: &Config{Enabled: true, MaxJobsActive: 5, Timeout: -1 * time.Second},
			},
			wantErr: true,
			errMsg:  "timeout must be positive",
		},
		{
			name: "invalid max jobs active",
			opts: HandlerOptions{
				CustomConfig: &Config{Enabled: true, MaxJobsActive: 0, Timeout: 30 * time.Second},
			},
			wantErr: true,
			errMsg:  "max_jobs_active must be positive",
		},
		{
			name: "default logger created when not provided",
			opts: HandlerOptions{CustomConfig: createValidConfig()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewHandler(tt.opts)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, handler)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, handler.config)
			assert.NotNil(t, handler.logger)
			assert.NotNil(t, handler.service)
			assert.Equal(t, TaskType, handler.GetTaskType())
		})
	}
}

func TestHandler_RegisterWithoutCamunda(t *testing.T) {
	handler, err := NewHandler(HandlerOptions{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	assert.Error(t, handler.Register())
	assert.Error(t, handler.HealthCheck(context.Background()))

	cfg := createValidConfig()
	cfg.Enabled = false
	disabled, err := NewHandler(HandlerOptions{CustomConfig: cfg, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	assert.NoError(t, disabled.Register())
	assert.False(t, disabled.IsEnabled())
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	handler := &Handler{
		config: createValidConfig(),
		logger: logger.NewTestLogger(t),
	}

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		errCode   string
		validate  func(*testing.T, *Input)
	}{
		{
			name: "valid input with notification",
			variables: map[string]interface{}{
				"recordId":     "42",
				"ownerId":      "user-1",
				"documentType": "acta_consejo",
				"notifyEmail":  "abogado@despacho.mx",
			},
			validate: func(t *testing.T, input *Input) {
				assert.Equal(t, "42", input.RecordID)
				assert.Equal(t, "user-1", input.OwnerID)
				assert.Equal(t, "acta_consejo", input.DocumentType)
				assert.Equal(t, "abogado@despacho.mx", input.NotifyEmail)
			},
		},
		{
			name: "valid input minimal fields",
			variables: map[string]interface{}{
				"recordId":     " 42 ",
				"ownerId":      "user-1",
				"documentType": "pagare",
			},
			validate: func(t *testing.T, input *Input) {
				assert.Equal(t, "42", input.RecordID)
				assert.Empty(t, input.NotifyEmail)
			},
		},
		{
			name: "empty notification address is ignored",
			variables: map[string]interface{}{
				"recordId":     "42",
				"ownerId":      "user-1",
				"documentType": "pagare",
				"notifyEmail":  "",
			},
			validate: func(t *testing.T, input *Input) {
				assert.Empty(t, input.NotifyEmail)
			},
		},
		{
			name: "missing record id",
			variables: map[string]interface{}{
				"ownerId":      "user-1",
				"documentType": "pagare",
			},
			wantErr: true,
			errCode: "VALIDATION_FAILED",
		},
		{
			name: "unknown document type",
			variables: map[string]interface{}{
				"recordId":     "42",
				"ownerId":      "user-1",
				"documentType": "testamento",
			},
			wantErr: true,
			errCode: "VALIDATION_FAILED",
		},
		{
			name: "numeric record id",
			variables: map[string]interface{}{
				"recordId":     42,
				"ownerId":      "user-1",
				"documentType": "pagare",
			},
			wantErr: true,
			errCode: "VALIDATION_FAILED",
		},
		{
			name: "invalid notification address",
			variables: map[string]interface{}{
				"recordId":     "42",
				"ownerId":      "user-1",
				"documentType": "pagare",
				"notifyEmail":  "no-es-correo",
			},
			wantErr: true,
			errCode: "VALIDATION_FAILED",
		},
		{
			name: "unexpected variable",
			variables: map[string]interface{}{
				"recordId":     "42",
				"ownerId":      "user-1",
				"documentType": "pagare",
				"template":     "otra.docx",
			},
			wantErr: true,
			errCode: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := createMockJob(12345, tt.variables)

			input, err := handler.parseInput(job)

			if tt.wantErr {
				require.Error(t, err)
				stdErr, ok := err.(*errors.StandardError)
				require.True(t, ok, "error should be StandardError")
				assert.Equal(t, errors.ErrorCode(tt.errCode), stdErr.Code)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, input)
			if tt.validate != nil {
				tt.validate(t, input)
			}
		})
	}
}

// ==========================
// Execution and Output Tests
// ==========================

func TestHandler_Execute_DelegatesToService(t *testing.T) {
	svc := new(MockService)
	input := &Input{RecordID: "42", OwnerID: "user-1", DocumentType: "pagare"}
	want := &Output{DocumentGenerated: true, GenerationID: "gen-1", Filename: "pagare_42_20250801.docx"}
	svc.On("Execute", mock.Anything, input).Return(want, nil)

	handler := &Handler{config: createValidConfig(), logger: logger.NewTestLogger(t), service: svc}
	got, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	svc.AssertExpectations(t)
}

func TestOutputVariables(t *testing.T) {
	t.Run("generated document", func(t *testing.T) {
		vars := outputVariables(&Output{
			DocumentGenerated: true,
			GenerationID:      "gen-1",
			Filename:          "acta_consejo_42_20250801.docx",
			ContentType:       "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			SizeBytes:         2048,
			OutputKey:         "docx:gen-1",
			Diagnostics: []Diagnostic{
				{Code: "ANCHOR_NOT_FOUND", Message: "Agenda anchor not found", Details: "{{ORDENES_Y_RESOLUCIONES}}"},
			},
		})

		assert.Equal(t, true, vars["documentGenerated"])
		assert.Equal(t, "gen-1", vars["generationId"])
		assert.Equal(t, 2048, vars["sizeBytes"])
		assert.Equal(t, "docx:gen-1", vars["outputKey"])
		diags := vars["diagnostics"].([]map[string]interface{})
		require.Len(t, diags, 1)
		assert.Equal(t, "ANCHOR_NOT_FOUND", diags[0]["code"])
	})

	t.Run("disabled worker", func(t *testing.T) {
		vars := outputVariables(&Output{DocumentGenerated: false})

		assert.Equal(t, false, vars["documentGenerated"])
		assert.NotContains(t, vars, "generationId")
		assert.Empty(t, vars["diagnostics"])
	})
}

func TestHandler_ExtractErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "template not found",
			err:      errors.NewTemplateNotFoundError("pagare", "plantillas/pagare.docx"),
			expected: "TEMPLATE_NOT_FOUND",
		},
		{
			name:     "wrapped record not found",
			err:      fmt.Errorf("load: %w", errors.NewRecordNotFoundError("42", "user-1")),
			expected: "RECORD_NOT_FOUND",
		},
		{
			name:     "generic error",
			err:      fmt.Errorf("generic error"),
			expected: "INTERNAL_ERROR",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "UNKNOWN_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractErrorCode(tt.err))
		})
	}
}

func TestHandler_ConvertToStandardError(t *testing.T) {
	t.Run("standard error preserved", func(t *testing.T) {
		stdErr := convertToStandardError(errors.NewQueryTimeoutError("get_record"))
		assert.Equal(t, errors.ErrCodeQueryTimeout, stdErr.Code)
		assert.True(t, stdErr.Retryable)
	})

	t.Run("generic error converted", func(t *testing.T) {
		stdErr := convertToStandardError(fmt.Errorf("disk full"))
		assert.Equal(t, errors.ErrorCode("DOCUMENT_GENERATION_ERROR"), stdErr.Code)
		assert.Equal(t, "Failed to generate document", stdErr.Message)
		assert.Contains(t, stdErr.Details, "disk full")
		assert.False(t, stdErr.Timestamp.IsZero())
	})
}

// ==========================
// Configuration Tests
// ==========================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{name: "valid config", config: createValidConfig()},
		{name: "zero timeout", config: &Config{MaxJobsActive: 5}, wantErr: "timeout must be positive"},
		{name: "zero max jobs", config: &Config{Timeout: time.Second}, wantErr: "max_jobs_active must be positive"},
		{
			name:    "negative retries",
			config:  &Config{Timeout: time.Second, MaxJobsActive: 1, MaxRetries: -1},
			wantErr: "max_retries must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	t.Run("custom config takes precedence", func(t *testing.T) {
		custom := createValidConfig()
		assert.Same(t, custom, createConfigFromAppConfig(&config.Config{}, custom))
	})

	t.Run("loads from app config", func(t *testing.T) {
		cfg := createConfigFromAppConfig(&config.Config{
			Workers: map[string]config.WorkerConfig{
				WorkerName: {Enabled: true, MaxJobsActive: 10, Timeout: 45000, MaxRetries: 1},
			},
		}, nil)

		assert.True(t, cfg.Enabled)
		assert.Equal(t, 10, cfg.MaxJobsActive)
		assert.Equal(t, 45*time.Second, cfg.Timeout)
		assert.Equal(t, 1, cfg.MaxRetries)
	})

	t.Run("defaults without worker section", func(t *testing.T) {
		cfg := createConfigFromAppConfig(nil, nil)
		assert.Equal(t, DefaultConfig(), cfg)
	})
}
