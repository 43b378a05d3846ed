package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/handsoff/console/internal/models"
)

type RepositoryAPI struct {
	r *requester
}

// ListFromGitLab pages through the projects on the Git host.
func (a *RepositoryAPI) ListFromGitLab(ctx context.Context, page, perPage int, search string) (*models.GitLabRepositoryPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("search", search)

	var resp models.GitLabRepositoryPage
	if err := a.r.get(ctx, "/repositories/gitlab", q, &resp); err != nil {
		return nil, err
	}
	if resp.Repositories == nil {
		resp.Repositories = []models.GitLabRepository{}
	}
	return &resp, nil
}

// List pages through imported repositories.
func (a *RepositoryAPI) List(ctx context.Context, page, pageSize int) (*models.RepositoryPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var resp models.RepositoryPage
	if err := a.r.get(ctx, "/repositories", q, &resp); err != nil {
		return nil, err
	}
	if resp.Repositories == nil {
		resp.Repositories = []models.Repository{}
	}
	return &resp, nil
}

func (a *RepositoryAPI) Get(ctx context.Context, id uint) (*models.Repository, error) {
	var repo models.Repository
	if err := a.r.get(ctx, idPath("/repositories/%d", id), nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// BatchImport imports Git host projects. An empty callback URL makes the
// backend use the system webhook configuration.
func (a *RepositoryAPI) BatchImport(ctx context.Context, ids []int64, webhookCallbackURL string) (*models.BatchImportResponse, error) {
	req := &models.BatchImportRequest{RepositoryIDs: ids, WebhookCallbackURL: webhookCallbackURL}
	var resp models.BatchImportResponse
	if err := a.r.post(ctx, "/repositories/batch", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateLLMProvider links a provider to the repository; nil unlinks it.
func (a *RepositoryAPI) UpdateLLMProvider(ctx context.Context, id uint, providerID *uint) error {
	req := &models.UpdateLLMProviderRequest{LLMProviderID: providerID}
	return a.r.put(ctx, idPath("/repositories/%d/llm", id), req, nil)
}

func (a *RepositoryAPI) Delete(ctx context.Context, id uint) error {
	return a.r.delete(ctx, idPath("/repositories/%d", id), nil)
}

func (a *RepositoryAPI) TestWebhook(ctx context.Context, id uint) (*models.WebhookTestResult, error) {
	var result models.WebhookTestResult
	if err := a.r.post(ctx, idPath("/repositories/%d/webhook/test", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RecreateWebhook deletes the repository's hook and registers a new one from
// the system webhook configuration.
func (a *RepositoryAPI) RecreateWebhook(ctx context.Context, id uint) error {
	return a.r.put(ctx, idPath("/repositories/%d/webhook", id), nil, nil)
}
