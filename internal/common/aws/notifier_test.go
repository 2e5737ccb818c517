package aws

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-docs-workers/internal/common/config"
	"legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       int
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	return m.PublishFunc(ctx, params, optFns...)
}

func okSES() *MockSESService {
	return &MockSESService{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return &ses.SendEmailOutput{}, nil
	}}
}

func okSNS() *MockSNSService {
	return &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return &sns.PublishOutput{}, nil
	}}
}

func sampleEvent() DocumentEvent {
	return DocumentEvent{
		GenerationID: "gen-1",
		RecordID:     "42",
		OwnerID:      "user-1",
		DocumentType: "acta_consejo",
		Filename:     "acta_consejo_42_20250801.docx",
		OutputKey:    "docx:gen-1",
		Diagnostics:  1,
		NotifyEmail:  "abogado@despacho.mx",
	}
}

// ==========================
// DocumentGenerated
// ==========================

func TestNotifier_DocumentGenerated(t *testing.T) {
	var published map[string]interface{}
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			assert.Equal(t, "arn:aws:sns:us-east-1:123:documents", *params.TopicArn)
			assert.Equal(t, "acta_consejo", *params.MessageAttributes["documentType"].StringValue)
			require.NoError(t, json.Unmarshal([]byte(*params.Message), &published))
			return &sns.PublishOutput{}, nil
		},
	}
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			assert.Equal(t, []string{"abogado@despacho.mx"}, params.Destination.ToAddresses)
			assert.Equal(t, "documentos@despacho.mx", *params.Source)
			assert.Contains(t, *params.Message.Subject.Data, "acta_consejo_42_20250801.docx")
			assert.Contains(t, *params.Message.Body.Text.Data, "1 advertencias")
			return &ses.SendEmailOutput{}, nil
		},
	}

	n := NewNotifier(snsMock, sesMock, "arn:aws:sns:us-east-1:123:documents", "documentos@despacho.mx", logger.NewTestLogger(t))
	require.NoError(t, n.DocumentGenerated(context.Background(), sampleEvent()))

	assert.Equal(t, 1, snsMock.calls)
	assert.Equal(t, 1, sesMock.calls)
	assert.Equal(t, "document.generated", published["event"])
	assert.Equal(t, "gen-1", published["generationId"])
	assert.NotContains(t, published, "NotifyEmail")
}

func TestNotifier_Channels(t *testing.T) {
	tests := []struct {
		name        string
		topicARN    string
		fromEmail   string
		notifyEmail string
		wantSNS     int
		wantSES     int
	}{
		{name: "both channels", topicARN: "arn", fromEmail: "from@x.mx", notifyEmail: "to@x.mx", wantSNS: 1, wantSES: 1},
		{name: "no recipient skips email", topicARN: "arn", fromEmail: "from@x.mx", wantSNS: 1},
		{name: "no topic skips publish", fromEmail: "from@x.mx", notifyEmail: "to@x.mx", wantSES: 1},
		{name: "no sender skips email", topicARN: "arn", notifyEmail: "to@x.mx", wantSNS: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snsMock, sesMock := okSNS(), okSES()
			n := NewNotifier(snsMock, sesMock, tt.topicARN, tt.fromEmail, logger.NewTestLogger(t))

			evt := sampleEvent()
			evt.NotifyEmail = tt.notifyEmail
			require.NoError(t, n.DocumentGenerated(context.Background(), evt))

			assert.Equal(t, tt.wantSNS, snsMock.calls)
			assert.Equal(t, tt.wantSES, sesMock.calls)
		})
	}
}

func TestNotifier_PublishFailureStillSendsEmail(t *testing.T) {
	snsMock := &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return nil, stderrors.New("throttled")
	}}
	sesMock := okSES()

	n := NewNotifier(snsMock, sesMock, "arn", "from@x.mx", logger.NewTestLogger(t))
	err := n.DocumentGenerated(context.Background(), sampleEvent())

	require.Error(t, err)
	std := errors.Normalize(err)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, std.Code)
	assert.Contains(t, std.Details, "sns")
	assert.Equal(t, 1, sesMock.calls)
}

func TestNotifier_NilClients(t *testing.T) {
	n := NewNotifier(nil, nil, "arn", "from@x.mx", logger.NewTestLogger(t))
	assert.NoError(t, n.DocumentGenerated(context.Background(), sampleEvent()))
}

func TestNewNotifierFromConfig_Disabled(t *testing.T) {
	n, err := NewNotifierFromConfig(context.Background(), &config.Config{}, logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestNotifier_NilReceiver(t *testing.T) {
	var n *Notifier
	assert.NoError(t, n.DocumentGenerated(context.Background(), sampleEvent()))
}
