package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"typepet/internal/models"
)

// EmailService sends parent-facing progress emails via Amazon SES. It
// implements Notifier so the achievement engine can announce milestones.
type EmailService struct {
	client      *sesv2.Client
	fromEmail   string
	fromName    string
	parentEmail string
	enabled     bool
	debug       bool
}

// NewEmailService creates a new email service. When no from or parent address
// is configured the service is disabled and every send is a logged no-op.
func NewEmailService(awsRegion, fromEmail, fromName, parentEmail string, debug bool) (*EmailService, error) {
	if fromEmail == "" || parentEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL or PARENT_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From Email: %s", fromEmail)
		log.Printf("[DEBUG] Parent Email: %s", parentEmail)
	}

	// Load AWS configuration
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)
	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:      client,
		fromEmail:   fromEmail,
		fromName:    fromName,
		parentEmail: parentEmail,
		enabled:     true,
		debug:       debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// WeeklyGoalCompleted emails the parent that a weekly goal was reached
func (s *EmailService) WeeklyGoalCompleted(ctx context.Context, goal models.WeeklyGoal, totalPoints int) error {
	if !s.enabled {
		if s.debug {
			log.Printf("[DEBUG] Skipping weekly goal email (service disabled): %s", goal.Description)
		}
		return nil
	}

	subject := "TypePet: a weekly goal was completed!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Weekly goal reached 🎉</h1>
		</div>
		<div class="content">
			<p>Great news! Your child just completed a typing goal:</p>
			<p><strong>%s</strong></p>
			<p>Total reward points so far: <strong>%d</strong></p>
			<p>Keep the streak going!</p>
		</div>
		<div class="footer">
			<p>Sent by TypePet</p>
		</div>
	</div>
</body>
</html>`, goal.Description, totalPoints)

	textBody := fmt.Sprintf("Weekly goal reached: %s\nTotal reward points: %d\n", goal.Description, totalPoints)

	return s.send(ctx, subject, htmlBody, textBody)
}

func (s *EmailService) send(ctx context.Context, subject, htmlBody, textBody string) error {
	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{s.parentEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if s.debug {
		log.Printf("[DEBUG] Email sent to %s: %s", s.parentEmail, subject)
	}
	return nil
}
