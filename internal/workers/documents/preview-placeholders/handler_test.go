package previewplaceholders

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"legal-docs-workers/internal/common/config"
	"legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/documents"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockRecords struct {
	mock.Mock
}

func (m *MockRecords) GetRecordByID(ctx context.Context, id, ownerID string) (*documents.Record, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Record), args.Error(1)
}

// ==========================
// Test Helpers
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "revisar-acta",
		ElementId:          "Activity_PreviewPlaceholders",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            2,
		Variables:          string(variablesJSON),
	}}
}

func createValidConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 10,
		Timeout:       5 * time.Second,
		MaxRetries:    2,
	}
}

func inlineRecord() map[string]interface{} {
	return map[string]interface{}{
		"id": "42",
		"fields": map[string]interface{}{
			"razon_social": "Grupo Norte S.A. de C.V.",
			"fecha":        "2025-08-01",
		},
		"blocks": map[string]interface{}{
			"invitados": []interface{}{
				map[string]interface{}{"nombre": "Ana Ruiz", "cargo": "Licenciada"},
			},
		},
	}
}

func newTestService(t *testing.T, records *MockRecords) *Service {
	deps := ServiceDependencies{Logger: logger.NewTestLogger(t)}
	if records != nil {
		deps.Records = records
	}
	return NewService(deps, createValidConfig())
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	handler := &Handler{config: createValidConfig(), logger: logger.NewTestLogger(t)}

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantCode  errors.ErrorCode
		validate  func(*testing.T, *Input)
	}{
		{
			name: "inline record",
			variables: map[string]interface{}{
				"documentType": "acta_consejo",
				"record":       inlineRecord(),
			},
			validate: func(t *testing.T, input *Input) {
				require.NotNil(t, input.Record)
				assert.Equal(t, "42", input.Record.ID)
				assert.Equal(t, "Grupo Norte S.A. de C.V.", input.Record.String("razon_social"))
				assert.JSONEq(t, `[{"nombre":"Ana Ruiz","cargo":"Licenciada"}]`, string(input.Record.Blocks["invitados"]))
			},
		},
		{
			name: "stored record reference",
			variables: map[string]interface{}{
				"documentType": "pagare",
				"recordId":     " 7 ",
				"ownerId":      "user-1",
			},
			validate: func(t *testing.T, input *Input) {
				assert.Nil(t, input.Record)
				assert.Equal(t, "7", input.RecordID)
				assert.Equal(t, "user-1", input.OwnerID)
			},
		},
		{
			name:      "neither record nor reference",
			variables: map[string]interface{}{"documentType": "pagare"},
			wantCode:  errors.ErrCodeValidationFailed,
		},
		{
			name:      "reference without owner",
			variables: map[string]interface{}{"documentType": "pagare", "recordId": "7"},
			wantCode:  errors.ErrCodeValidationFailed,
		},
		{
			name: "record missing fields",
			variables: map[string]interface{}{
				"documentType": "pagare",
				"record":       map[string]interface{}{"id": "7"},
			},
			wantCode: errors.ErrCodeValidationFailed,
		},
		{
			name: "record is not an object",
			variables: map[string]interface{}{
				"documentType": "pagare",
				"record":       "42",
			},
			wantCode: errors.ErrCodeValidationFailed,
		},
		{
			name: "unknown document type",
			variables: map[string]interface{}{
				"documentType": "poder_notarial",
				"record":       inlineRecord(),
			},
			wantCode: errors.ErrCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := handler.parseInput(createMockJob(1, tt.variables))

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.Normalize(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.variables["documentType"], input.DocumentType)
			if tt.validate != nil {
				tt.validate(t, input)
			}
		})
	}
}

// ==========================
// Service Tests
// ==========================

func TestService_Execute_InlineRecord(t *testing.T) {
	record, err := decodeRecord(inlineRecord())
	require.NoError(t, err)

	output, err := newTestService(t, nil).Execute(context.Background(), &Input{
		DocumentType: documents.TypeActaConsejo,
		Record:       record,
	})
	require.NoError(t, err)

	assert.True(t, output.Valid)
	assert.Empty(t, output.Diagnostics)
	assert.Equal(t, "acta_consejo_42_20250801.docx", output.Filename)
	assert.Equal(t, "Grupo Norte S.A. de C.V.", output.Placeholders["{{SOCIEDAD}}"])
	assert.Equal(t, "Ciudad de México", output.Placeholders["{{CIUDAD}}"])
	assert.Equal(t, "Ana Ruiz", output.Placeholders["{{INVITADO_1}}"])
}

func TestService_Execute_MalformedBlocksAreDiagnostics(t *testing.T) {
	record := &documents.Record{
		ID:     "42",
		Fields: map[string]interface{}{"razon_social": "Grupo Norte"},
		Blocks: map[string]json.RawMessage{
			documents.BlockGuests: json.RawMessage(`[{"cargo":"Contador"}]`),
		},
	}

	output, err := newTestService(t, nil).Execute(context.Background(), &Input{
		DocumentType: documents.TypeActaConsejo,
		Record:       record,
	})
	require.NoError(t, err)

	assert.False(t, output.Valid)
	require.NotEmpty(t, output.Diagnostics)
	assert.Equal(t, string(errors.ErrCodeMalformedInput), output.Diagnostics[0].Code)
	assert.Equal(t, "Grupo Norte", output.Placeholders["{{SOCIEDAD}}"])
}

func TestService_Execute_StoredRecord(t *testing.T) {
	records := new(MockRecords)
	records.On("GetRecordByID", mock.Anything, "7", "user-1").Return(&documents.Record{
		ID:     "7",
		Type:   documents.TypePagare,
		Fields: map[string]interface{}{"fecha_emision": "2025-03-15"},
	}, nil)

	output, err := newTestService(t, records).Execute(context.Background(), &Input{
		DocumentType: documents.TypePagare,
		RecordID:     "7",
		OwnerID:      "user-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, output.Placeholders)
	assert.Contains(t, output.Filename, "pagare_7_")
	records.AssertExpectations(t)
}

func TestService_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		records  func() *MockRecords
		input    *Input
		wantCode errors.ErrorCode
	}{
		{
			name: "inline record of another type",
			input: &Input{
				DocumentType: documents.TypeActaConsejo,
				Record:       &documents.Record{Type: documents.TypePagare},
			},
			wantCode: errors.ErrCodeValidationFailed,
		},
		{
			name:     "reference without a record store",
			input:    &Input{DocumentType: documents.TypePagare, RecordID: "7", OwnerID: "user-1"},
			wantCode: errors.ErrCodeValidationFailed,
		},
		{
			name: "stored record missing",
			records: func() *MockRecords {
				m := new(MockRecords)
				m.On("GetRecordByID", mock.Anything, "7", "user-1").
					Return(nil, errors.NewRecordNotFoundError("7", "user-1"))
				return m
			},
			input:    &Input{DocumentType: documents.TypePagare, RecordID: "7", OwnerID: "user-1"},
			wantCode: errors.ErrCodeRecordNotFound,
		},
		{
			name: "stored record of another type",
			records: func() *MockRecords {
				m := new(MockRecords)
				m.On("GetRecordByID", mock.Anything, "7", "user-1").
					Return(&documents.Record{ID: "7", Type: documents.TypeActaAsamblea}, nil)
				return m
			},
			input:    &Input{DocumentType: documents.TypePagare, RecordID: "7", OwnerID: "user-1"},
			wantCode: errors.ErrCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records *MockRecords
			if tt.records != nil {
				records = tt.records()
			}

			output, err := newTestService(t, records).Execute(context.Background(), tt.input)

			assert.Nil(t, output)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.Normalize(err).Code)
		})
	}
}

// ==========================
// Output and Error Mapping Tests
// ==========================

func TestOutputVariables(t *testing.T) {
	vars := outputVariables(&Output{
		Valid:        false,
		Filename:     "pagare_7_20250315.docx",
		Placeholders: map[string]string{"{{MONTO}}": "$1,000.00"},
		Diagnostics:  []Diagnostic{{Code: "MALFORMED_INPUT", Message: "Malformed input"}},
	})

	assert.Equal(t, false, vars["valid"])
	assert.Equal(t, "pagare_7_20250315.docx", vars["filename"])
	assert.Equal(t, map[string]string{"{{MONTO}}": "$1,000.00"}, vars["placeholders"])
	assert.Len(t, vars["diagnostics"], 1)
}

func TestConvertToStandardError(t *testing.T) {
	std := convertToStandardError(fmt.Errorf("boom"))
	assert.Equal(t, errors.ErrorCode("PLACEHOLDER_PREVIEW_ERROR"), std.Code)

	std = convertToStandardError(errors.NewUnsupportedDocumentTypeError("poder"))
	assert.Equal(t, errors.ErrCodeUnsupportedDocumentType, std.Code)

	assert.Equal(t, "UNKNOWN_ERROR", extractErrorCode(nil))
}

// ==========================
// Configuration Tests
// ==========================

func TestNewHandler(t *testing.T) {
	handler, err := NewHandler(HandlerOptions{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, TaskType, handler.GetTaskType())
	assert.True(t, handler.IsEnabled())
	assert.Error(t, handler.Register())

	_, err = NewHandler(HandlerOptions{CustomConfig: &Config{MaxJobsActive: 1}})
	assert.ErrorContains(t, err, "timeout must be positive")
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	cfg := createConfigFromAppConfig(&config.Config{
		Workers: map[string]config.WorkerConfig{
			WorkerName: {Enabled: false, MaxJobsActive: 3, Timeout: 2000},
		},
	}, nil)

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.MaxJobsActive)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultConfig().MaxRetries, cfg.MaxRetries)
}
