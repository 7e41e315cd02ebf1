package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
)

type EmailService struct {
	host     string
	port     string
	username string
	password string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     config.MailHost,
		port:     config.MailPort,
		username: config.MailUsername,
		password: config.MailPassword,
	}
}

// SubmissionCreated emails the submitter a receipt for their entry. Satisfies
// the Notifier interface; callers treat failures as log-and-forget.
func (s *EmailService) SubmissionCreated(user *models.User, submission *models.Submission) error {
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	submissionLink := fmt.Sprintf("%s/submissions/%s", config.ClientUrl, submission.ID)

	htmlTemplate := strings.TrimSpace(`
To: %s
MIME-version: 1.0
Content-Type: text/html; charset="UTF-8"
Subject: We received your StoryMaps contest entry

<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Submission Received</title>
</head>
<body style="background-color: #f9fafb; margin: 0; padding: 0; font-family: Arial, sans-serif;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <tr>
            <td style="background-color: #1a1a2e; padding: 40px 20px; text-align: center; border-radius: 12px;">
                <h1 style="color: #ffffff; margin-bottom: 20px; font-size: 24px;">Thanks, %s!</h1>
                <p style="color: #9ca3af; margin-bottom: 30px; font-size: 16px;">Your entry "%s" has been received and is waiting for review. We'll email you when its status changes.</p>
                <a href="%s" style="display: inline-block; background-color: #0d7377; color: #ffffff; text-decoration: none; padding: 12px 30px; border-radius: 25px; font-weight: bold;">View your submission</a>
            </td>
        </tr>
        <tr>
            <td style="text-align: center; padding-top: 20px;">
                <p style="color: #6b7280; font-size: 14px;">StoryMaps Contest</p>
            </td>
        </tr>
    </table>
</body>
</html>`)

	msg := fmt.Sprintf(htmlTemplate, user.Email, user.FirstName, submission.Title, submissionLink)

	return smtp.SendMail(
		fmt.Sprintf("%s:%s", s.host, s.port),
		auth,
		s.username,
		[]string{user.Email},
		[]byte(msg),
	)
}

// SendSupportEmail forwards a support-form request to the support inbox
func (s *EmailService) SendSupportEmail(name, email, issueType, subject, message string) error {
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	body := strings.TrimSpace(`
To: %s
Subject: [Support] [%s] %s

From: %s <%s>

%s`)

	msg := fmt.Sprintf(body, config.SupportEmail, issueType, subject, name, email, message)

	return smtp.SendMail(
		fmt.Sprintf("%s:%s", s.host, s.port),
		auth,
		s.username,
		[]string{config.SupportEmail},
		[]byte(msg),
	)
}
