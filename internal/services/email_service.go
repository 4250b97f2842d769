package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// EmailService defines the interface for sending maintenance summaries
type EmailService interface {
	SendMaintenanceReport(ctx context.Context, to string, report *models.MaintenanceReport) error
}

// AWSSESEmailService sends emails using AWS SES
type AWSSESEmailService struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

// NewAWSSESEmailService creates a new AWS SES email service
func NewAWSSESEmailService(region, fromAddress string, logger *slog.Logger) (*AWSSESEmailService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailService{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// SendMaintenanceReport mails a plain-text summary of one maintenance run.
func (s *AWSSESEmailService) SendMaintenanceReport(ctx context.Context, to string, report *models.MaintenanceReport) error {
	textBody := fmt.Sprintf(`Maintenance run completed at %s.

Chat messages deleted:        %d
Stale match requests deleted: %d
Users activated:              %d
Users flagged for deletion:   %d
Users permanently deleted:    %d

This is an automated message from the admin gateway.
`,
		report.Timestamp,
		report.Tasks.ChatMessagesDeleted.DeletedCount,
		report.Tasks.StaleRequestsDeleted.DeletedCount,
		report.Tasks.UsersActivated.UpdatedCount,
		report.Tasks.UsersMarkedDeleted.MatchedCount,
		report.Tasks.UsersMarkedDeleted.PermanentlyDeleted,
	)

	subject := fmt.Sprintf("Maintenance report %s", time.Now().UTC().Format("2006-01-02"))

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send maintenance report via SES",
			slog.String("to", to),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("maintenance report sent",
		slog.String("to", to),
		slog.String("message_id", *result.MessageId))

	return nil
}
