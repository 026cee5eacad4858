package email

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"course-feedback/internal/models"
	"course-feedback/web"

	"github.com/labstack/echo/v4"
	resend "github.com/resend/resend-go/v2"
)

// EmailClient is an interface for sending emails
type EmailClient interface {
	SendAsync(toEmail, subject, htmlBody string)
	SendLowRatingAlert(toEmail string, f *models.Feedback)
}

// Sender is the part of the resend client used here.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendEmailClient implements EmailClient using the Resend service
type ResendEmailClient struct {
	sender        Sender
	defaultSender string
	logger        echo.Logger
}

// NewResendEmailClient creates a new ResendEmailClient
func NewResendEmailClient(client *resend.Client, defaultSender string, logger echo.Logger) *ResendEmailClient {
	return NewEmailClientWithSender(client.Emails, defaultSender, logger)
}

func NewEmailClientWithSender(sender Sender, defaultSender string, logger echo.Logger) *ResendEmailClient {
	return &ResendEmailClient{
		sender:        sender,
		defaultSender: defaultSender,
		logger:        logger,
	}
}

// SendAsync sends an email asynchronously
func (c *ResendEmailClient) SendAsync(toEmail, subject, htmlBody string) {
	if c == nil || c.sender == nil {
		return
	}

	if c.defaultSender == "" {
		c.logger.Errorf("Resend default sender not configured, skipping email.")
		return
	}

	go c.send(toEmail, subject, htmlBody)
}

func (c *ResendEmailClient) send(toEmail, subject, htmlBody string) {
	params := &resend.SendEmailRequest{
		From:    c.defaultSender,
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlBody,
	}

	_, err := c.sender.Send(params)
	if err != nil {
		c.logger.Errorf("Failed to send email to %s (Subject: %s): %v", toEmail, subject, err)
	} else {
		c.logger.Infof("Email sent successfully to %s (Subject: %s)", toEmail, subject)
	}
}

// SendLowRatingAlert tells staff about a submission rated 2 or below
func (c *ResendEmailClient) SendLowRatingAlert(toEmail string, f *models.Feedback) {
	if toEmail == "" || f == nil {
		c.logger.Error("Cannot send low rating alert without recipient or feedback")
		return
	}

	subject, htmlBody, err := RenderLowRatingAlert(f)
	if err != nil {
		c.logger.Errorf("Failed to render low rating alert: %v", err)
		return
	}

	c.SendAsync(toEmail, subject, htmlBody)
}

// RenderLowRatingAlert fills the alert template for f.
func RenderLowRatingAlert(f *models.Feedback) (subject, body string, err error) {
	templateBytes, err := web.FS.ReadFile("emails/low-rating-alert.html")
	if err != nil {
		return "", "", fmt.Errorf("reading low rating alert template: %w", err)
	}

	comments := f.CommentText()
	if strings.TrimSpace(comments) == "" {
		comments = "No comment left."
	}

	replacer := strings.NewReplacer(
		"{subject}", html.EscapeString(f.Subject),
		"{faculty_name}", html.EscapeString(f.FacultyName),
		"{department}", html.EscapeString(f.Department),
		"{rating}", strconv.Itoa(f.Rating),
		"{student}", html.EscapeString(f.DisplayName()),
		"{comments}", html.EscapeString(comments),
	)

	subject = fmt.Sprintf("Low rating for %s (%d/5)", f.Subject, f.Rating)
	return subject, replacer.Replace(string(templateBytes)), nil
}
