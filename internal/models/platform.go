package models

import (
	"net/url"
	"strings"
	"time"
)

const PlatformGitLab = "gitlab"

type GitPlatformConfig struct {
	ID              uint       `json:"id,omitempty"`
	PlatformType    string     `json:"platform_type" form:"platform_type"`
	BaseURL         string     `json:"base_url" form:"base_url"`
	AccessToken     string     `json:"access_token,omitempty" form:"access_token"`
	WebhookSecret   string     `json:"webhook_secret,omitempty" form:"webhook_secret"`
	IsActive        bool       `json:"is_active" form:"is_active"`
	LastTestedAt    *time.Time `json:"last_tested_at,omitempty"`
	LastTestStatus  string     `json:"last_test_status,omitempty"`
	LastTestMessage string     `json:"last_test_message,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`

	// Exists is false when the backend answered {"exists": false}.
	Exists bool `json:"-"`
}

type PlatformTestRequest struct {
	PlatformType string `json:"platform_type"`
	BaseURL      string `json:"base_url"`
	AccessToken  string `json:"access_token"`
}

// Validate checks the platform form before it is saved.
func (c *GitPlatformConfig) Validate() error {
	if strings.TrimSpace(c.PlatformType) == "" {
		return &ValidationError{Field: "platform_type", Message: "Platform type is required"}
	}
	if err := ValidateURL("base_url", c.BaseURL); err != nil {
		return err
	}
	return nil
}

// TestRequest builds the connection test payload. The access token is
// write-only on the backend, so testing needs it typed into the form.
func (c *GitPlatformConfig) TestRequest() (*PlatformTestRequest, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		return nil, &ValidationError{Field: "access_token", Message: "Access token is required to test the connection"}
	}
	return &PlatformTestRequest{
		PlatformType: c.PlatformType,
		BaseURL:      c.BaseURL,
		AccessToken:  c.AccessToken,
	}, nil
}

// ValidateURL checks that raw is an absolute http(s) URL.
func ValidateURL(field, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &ValidationError{Field: field, Message: "URL is required"}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: field, Message: "Please enter a valid http(s) URL"}
	}
	return nil
}
