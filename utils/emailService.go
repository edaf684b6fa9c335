package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"registra/config"
)

// SendEmail delivers an HTML mail through the configured SMTP account.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.EmailSender == "" {
		return nil
	}

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Office of the Registrar <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

// SendEnrollmentEmail notifies the student after a successful enrollment.
func SendEnrollmentEmail(email, studentName, courseCode, courseName string) error {
	body := emailTemplate("Enrollment Confirmed", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in:</p>
		<h3 style="text-align: center; color: #2E7D32; margin: 20px 0;">%s — %s</h3>
		<p>Your seat is reserved. You can review your schedule any time from your dashboard.</p>
	`, studentName, courseCode, courseName))

	return SendEmail([]string{email}, "Enrollment Confirmation", body)
}

// SendDropEmail notifies the student after a course is dropped.
func SendDropEmail(email, studentName, courseCode, courseName string) error {
	body := emailTemplate("Course Dropped", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have been withdrawn from:</p>
		<h3 style="text-align: center; color: #B71C1C; margin: 20px 0;">%s — %s</h3>
		<p>The seat has been released. If this was a mistake you can re-enroll while seats remain.</p>
	`, studentName, courseCode, courseName))

	return SendEmail([]string{email}, "Course Drop Confirmation", body)
}

// emailTemplate wraps body content in the standard university layout.
func emailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>OFFICE OF THE REGISTRAR</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message from the course registration system.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
