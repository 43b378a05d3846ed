package models

import (
	"strings"
	"time"
)

// LLMProvider is a configured LLM backend. The selected model lives on the
// provider itself; there is no separate model entity.
type LLMProvider struct {
	ID              uint       `json:"id,omitempty"`
	Name            string     `json:"name"`
	BaseURL         string     `json:"base_url"`
	APIKey          string     `json:"api_key,omitempty"`
	Model           string     `json:"model"`
	IsActive        bool       `json:"is_active"`
	LastTestedAt    *time.Time `json:"last_tested_at,omitempty"`
	LastTestStatus  string     `json:"last_test_status,omitempty"`
	LastTestMessage string     `json:"last_test_message,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ProviderForm is the provider create/edit form. APIKey is optional when
// editing; an empty key leaves the stored one untouched.
type ProviderForm struct {
	Name     string `form:"name" binding:"required"`
	BaseURL  string `form:"base_url" binding:"required"`
	APIKey   string `form:"api_key"`
	Model    string `form:"model" binding:"required"`
	IsActive bool   `form:"is_active"`
}

// Validate checks the form; creating requires an API key.
func (f *ProviderForm) Validate(creating bool) error {
	if err := ValidateURL("base_url", f.BaseURL); err != nil {
		return err
	}
	if creating && strings.TrimSpace(f.APIKey) == "" {
		return &ValidationError{Field: "api_key", Message: "API key is required"}
	}
	return nil
}

func (f *ProviderForm) Provider() *LLMProvider {
	return &LLMProvider{
		Name:     strings.TrimSpace(f.Name),
		BaseURL:  strings.TrimSpace(f.BaseURL),
		APIKey:   strings.TrimSpace(f.APIKey),
		Model:    strings.TrimSpace(f.Model),
		IsActive: f.IsActive,
	}
}

// ModelsRequest asks the backend to list models for unsaved credentials.
// ProviderID is set when editing a saved provider; with no new key typed the
// saved credentials are used instead.
type ModelsRequest struct {
	ProviderID uint   `json:"-" form:"provider_id"`
	BaseURL    string `json:"base_url" form:"base_url"`
	APIKey     string `json:"api_key" form:"api_key"`
}

// UsesSavedProvider reports whether the saved provider's credentials apply.
func (r *ModelsRequest) UsesSavedProvider() bool {
	return r.ProviderID != 0 && strings.TrimSpace(r.APIKey) == ""
}

func (r *ModelsRequest) Validate() error {
	if r.UsesSavedProvider() {
		return nil
	}
	if strings.TrimSpace(r.BaseURL) == "" || strings.TrimSpace(r.APIKey) == "" {
		return &ValidationError{Field: "base_url", Message: "Please fill in the base URL and API key first"}
	}
	return ValidateURL("base_url", r.BaseURL)
}

type ModelsResponse struct {
	Models []string `json:"models"`
}

// TestModelRequest tests a provider configuration that has not been saved.
type TestModelRequest struct {
	ProviderID uint   `json:"-" form:"provider_id"`
	BaseURL    string `json:"base_url" form:"base_url"`
	APIKey     string `json:"api_key" form:"api_key"`
	Model      string `json:"model" form:"model"`
}

func (r *TestModelRequest) UsesSavedProvider() bool {
	return r.ProviderID != 0 && strings.TrimSpace(r.APIKey) == ""
}

// Validate requires a model, then credentials unless the saved provider's
// are used.
func (r *TestModelRequest) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return &ValidationError{Field: "model", Message: "Please select a model first"}
	}
	if r.UsesSavedProvider() {
		return nil
	}
	creds := ModelsRequest{BaseURL: r.BaseURL, APIKey: r.APIKey}
	return creds.Validate()
}

// MaskAPIKey returns a display-safe version of a key.
func MaskAPIKey(key string) string {
	if len(key) < 8 {
		return "****"
	}
	return key[:3] + "****" + key[len(key)-4:]
}
