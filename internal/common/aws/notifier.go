// Package aws publishes generation events to SNS and mails requesters through SES.
package aws

import (
	"context"
	"encoding/json"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"legal-docs-workers/internal/common/config"
	"legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
)

// DocumentEvent is published once per generated document.
type DocumentEvent struct {
	Event        string `json:"event"`
	GenerationID string `json:"generationId"`
	RecordID     string `json:"recordId"`
	OwnerID      string `json:"ownerId"`
	DocumentType string `json:"documentType"`
	Filename     string `json:"filename"`
	OutputKey    string `json:"outputKey,omitempty"`
	Diagnostics  int    `json:"diagnostics"`
	NotifyEmail  string `json:"-"`
}

const eventDocumentGenerated = "document.generated"

// EventPublisher is the slice of the SNS client the notifier needs.
type EventPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// MailSender is the slice of the SES client the notifier needs.
type MailSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Notifier fans a generation out to SNS and, when the job asked for it, to
// an email. Either channel may be nil.
type Notifier struct {
	sns       EventPublisher
	ses       MailSender
	topicARN  string
	fromEmail string
	logger    logger.Logger
}

func NewNotifier(snsClient EventPublisher, sesClient MailSender, topicARN, fromEmail string, log logger.Logger) *Notifier {
	return &Notifier{sns: snsClient, ses: sesClient, topicARN: topicARN, fromEmail: fromEmail, logger: log}
}

// NewNotifierFromConfig loads the default AWS credential chain and enables
// the channels switched on in the integrations section. It returns nil when
// both are off.
func NewNotifierFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Notifier, error) {
	integ := cfg.Integrations.AWS
	if !integ.SNS.Enabled && !integ.SES.Enabled {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(integ.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	n := &Notifier{logger: log}
	if integ.SNS.Enabled {
		n.sns = sns.NewFromConfig(awsCfg)
		n.topicARN = integ.SNS.TopicARN
	}
	if integ.SES.Enabled {
		n.ses = ses.NewFromConfig(awsCfg)
		n.fromEmail = integ.SES.FromEmail
	}
	return n, nil
}

// DocumentGenerated publishes evt and mails evt.NotifyEmail. Both channels are
// attempted; the first failure is returned. A nil Notifier does nothing.
func (n *Notifier) DocumentGenerated(ctx context.Context, evt DocumentEvent) error {
	if n == nil {
		return nil
	}
	if evt.Event == "" {
		evt.Event = eventDocumentGenerated
	}

	var firstErr error
	if n.sns != nil && n.topicARN != "" {
		if err := n.publish(ctx, evt); err != nil {
			firstErr = errors.NewNotificationSendFailedError("sns", err)
		}
	}
	if n.ses != nil && n.fromEmail != "" && evt.NotifyEmail != "" {
		if err := n.sendEmail(ctx, evt); err != nil && firstErr == nil {
			firstErr = errors.NewNotificationSendFailedError("ses", err)
		}
	}
	return firstErr
}

func (n *Notifier) publish(ctx context.Context, evt DocumentEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_, err = n.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Message:  awssdk.String(string(body)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"event":        {DataType: awssdk.String("String"), StringValue: awssdk.String(evt.Event)},
			"documentType": {DataType: awssdk.String("String"), StringValue: awssdk.String(evt.DocumentType)},
		},
	})
	if err == nil {
		n.logger.Debug("Generation event published", map[string]interface{}{"generationId": evt.GenerationID})
	}
	return err
}

func (n *Notifier) sendEmail(ctx context.Context, evt DocumentEvent) error {
	subject := fmt.Sprintf("Documento generado: %s", evt.Filename)
	body := fmt.Sprintf(
		"Se generó el documento %s para el expediente %s.\nClave de descarga: %s\n",
		evt.Filename, evt.RecordID, evt.OutputKey,
	)
	if evt.Diagnostics > 0 {
		body += fmt.Sprintf("El documento tiene %d advertencias; revíselo antes de firmar.\n", evt.Diagnostics)
	}

	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{ToAddresses: []string{evt.NotifyEmail}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: awssdk.String(subject), Charset: awssdk.String("UTF-8")},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: awssdk.String(body), Charset: awssdk.String("UTF-8")},
			},
		},
		Source: awssdk.String(n.fromEmail),
	})
	return err
}
