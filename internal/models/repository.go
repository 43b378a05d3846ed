package models

import (
	"strings"
	"time"
)

type Repository struct {
	ID                    uint         `json:"id"`
	PlatformID            uint         `json:"platform_id"`
	PlatformRepoID        int64        `json:"platform_repo_id"`
	Name                  string       `json:"name"`
	FullPath              string       `json:"full_path"`
	HTTPURL               string       `json:"http_url"`
	SSHURL                string       `json:"ssh_url"`
	DefaultBranch         string       `json:"default_branch"`
	LLMProviderID         *uint        `json:"llm_provider_id"`
	LLMProvider           *LLMProvider `json:"llm_provider,omitempty"`
	WebhookID             *int64       `json:"webhook_id"`
	WebhookURL            string       `json:"webhook_url"`
	LastWebhookTestStatus string       `json:"last_webhook_test_status"`
	LastWebhookTestAt     *time.Time   `json:"last_webhook_test_at"`
	LastWebhookTestError  string       `json:"last_webhook_test_error"`
	IsActive              bool         `json:"is_active"`
	CreatedAt             *time.Time   `json:"created_at,omitempty"`
	UpdatedAt             *time.Time   `json:"updated_at,omitempty"`
}

// Matches reports whether the repository name or path contains q,
// case-insensitively. An empty q matches everything.
func (r *Repository) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.FullPath), q)
}

// FilterRepositories keeps the repositories matching q, preserving order.
func FilterRepositories(repos []Repository, q string) []Repository {
	filtered := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r.Matches(q) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// RepositoryPage is the response of GET /repositories.
type RepositoryPage struct {
	Repositories []Repository `json:"repositories"`
	Page         int          `json:"page"`
	PageSize     int          `json:"page_size"`
	Total        int64        `json:"total"`
}

// GitLabRepository is a project on the Git host that can be imported.
type GitLabRepository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullPath      string `json:"full_path"`
	HTTPURL       string `json:"http_url"`
	SSHURL        string `json:"ssh_url"`
	DefaultBranch string `json:"default_branch"`
	Description   string `json:"description"`
}

// GitLabRepositoryPage is the response of GET /repositories/gitlab.
type GitLabRepositoryPage struct {
	Repositories []GitLabRepository `json:"repositories"`
	Page         int                `json:"page"`
	PerPage      int                `json:"per_page"`
	TotalPages   int                `json:"total_pages"`
}

type BatchImportRequest struct {
	RepositoryIDs      []int64 `json:"repository_ids"`
	WebhookCallbackURL string  `json:"webhook_callback_url"`
}

type BatchImportResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type UpdateLLMProviderRequest struct {
	LLMProviderID *uint `json:"llm_provider_id"`
}

// WebhookTestResult is returned by POST /repositories/:id/webhook/test.
type WebhookTestResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (r *WebhookTestResult) Succeeded() bool {
	return r.Status == WebhookTestSuccess
}
