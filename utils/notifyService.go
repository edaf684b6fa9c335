package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"registra/config"
)

// NotifyEnrollmentEvent posts an enrollment event to the configured
// webhook. Callers run it in a goroutine; delivery is best-effort and
// failures are only logged.
func NotifyEnrollmentEvent(action string, studentID, courseID uint, reference string) {
	webhookURL := config.AppConfig.NotifyWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"action":     action,
			"student_id": studentID,
			"course_id":  courseID,
			"reference":  reference,
			"occurred":   time.Now().Format(time.RFC3339),
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("Error posting enrollment event webhook: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Enrollment event webhook returned status %d", resp.StatusCode())
	}
}
