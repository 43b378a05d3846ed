package models

type SystemWebhookConfig struct {
	WebhookCallbackURL string `json:"webhook_callback_url" form:"webhook_callback_url" binding:"required"`
	WebhookSecret      string `json:"webhook_secret" form:"webhook_secret"`
}

// TestResult is returned by the connection test endpoints.
type TestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
