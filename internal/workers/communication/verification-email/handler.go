// internal/workers/communication/verification-email/handler.go
package verificationemail

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	commonerrors "fruitcenter-events/internal/common/errors"
	"fruitcenter-events/internal/common/logger"
)

const (
	TaskType = "verification-email"
)

var (
	ErrMissingFields   = errors.New("EMAIL_AND_CODE_REQUIRED")
	ErrEmailSendFailed = errors.New("EMAIL_SEND_FAILED")
)

// SESService is the email provider surface, defined here for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Handler sends sign-up verification codes by email. Unlike push delivery
// this is not best effort: the caller is blocked on the code arriving, so
// failures are surfaced.
type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewHandlerWithService(config, ses.NewFromConfig(awsCfg), log), nil
}

func NewHandlerWithService(config *Config, client SESService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.With(map[string]interface{}{"taskType": TaskType}),
		sesClient: client,
	}
}

func (h *Handler) Execute(ctx context.Context, input *VerificationRequest) (*VerificationResult, error) {
	if input.Email == "" || input.Code == "" {
		return nil, ErrMissingFields
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	text := fmt.Sprintf("Your verification code is: %s", input.Code)
	html := fmt.Sprintf("<p>Your verification code is: <b>%s</b></p>", input.Code)

	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(h.config.FromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{input.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(text)},
				Html: &types.Content{Data: aws.String(html)},
			},
		},
	})
	if err != nil {
		stdErr := commonerrors.NewEmailSendFailedError(err)
		h.logger.Error("verification email send failed", map[string]interface{}{
			"code":  string(stdErr.Code),
			"email": input.Email,
			"error": stdErr.Details,
		})
		return nil, fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
	}

	h.logger.Info("verification email sent", map[string]interface{}{
		"email": input.Email,
	})
	return &VerificationResult{Success: true}, nil
}
