package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/jiaebaek/CurriMap/internal/models"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service whose sends are silently skipped.
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to new parents
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to CurriMap!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>Welcome to CurriMap!</h1>
	<p>Hi %s,</p>
	<p>Thank you for creating your CurriMap account! We're excited to help your
	children grow as English readers, one book a day.</p>
	<ul>
		<li>Add your children and pick their interests</li>
		<li>Answer a few onboarding questions to place each child's level</li>
		<li>Get a daily book pick matched to level and interests</li>
		<li>Log reading, video and listening activity as you go</li>
	</ul>
	<p style="font-size: 12px; color: #666;">This is an automated email from CurriMap. Please do not reply.</p>
</body>
</html>
`, toName)

	textBody := fmt.Sprintf(`Hi %s,

Thank you for creating your CurriMap account! We're excited to help your
children grow as English readers, one book a day.

- Add your children and pick their interests
- Answer a few onboarding questions to place each child's level
- Get a daily book pick matched to level and interests
- Log reading, video and listening activity as you go

---
This is an automated email from CurriMap. Please do not reply.
`, toName)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendMonthlyReportEmail sends a child's monthly reading digest
func (s *EmailService) SendMonthlyReportEmail(ctx context.Context, toEmail, toName, childName string, report *models.MonthlyReport) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): monthly report to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("%s's reading report for %d-%02d", childName, report.Period.Year, report.Period.Month)

	days := make([]string, 0, len(report.DailyStats))
	for day := range report.DailyStats {
		days = append(days, day)
	}
	sort.Strings(days)

	var dayLines strings.Builder
	for _, day := range days {
		stat := report.DailyStats[day]
		fmt.Fprintf(&dayLines, "<li>%s: %d activities</li>", day, stat.Count)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>%s's month in books</h1>
	<p>Hi %s,</p>
	<p>Here's how %s did between %s and %s:</p>
	<ul>
		<li>Missions completed: %d</li>
		<li>Books read: %d</li>
		<li>Words read: %d</li>
		<li>Reading sessions: %d, videos: %d, listening: %d</li>
	</ul>
	<h2>Active days</h2>
	<ul>%s</ul>
	<p style="font-size: 12px; color: #666;">This is an automated email from CurriMap. Please do not reply.</p>
</body>
</html>
`, childName, toName, childName,
		report.Period.StartDate, report.Period.EndDate,
		report.Summary.TotalMissions, report.Summary.UniqueBooksRead,
		report.Summary.TotalWordCount, report.Summary.ReadingCount,
		report.Summary.VideoCount, report.Summary.ListeningCount,
		dayLines.String())

	textBody := fmt.Sprintf(`Hi %s,

Here's how %s did between %s and %s:

- Missions completed: %d
- Books read: %d
- Words read: %d
- Reading sessions: %d, videos: %d, listening: %d

---
This is an automated email from CurriMap. Please do not reply.
`, toName, childName,
		report.Period.StartDate, report.Period.EndDate,
		report.Summary.TotalMissions, report.Summary.UniqueBooksRead,
		report.Summary.TotalWordCount, report.Summary.ReadingCount,
		report.Summary.VideoCount, report.Summary.ListeningCount)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
