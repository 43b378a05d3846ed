package apiclient

import (
	"context"

	"github.com/handsoff/console/internal/models"
)

type LLMAPI struct {
	r *requester
}

func (a *LLMAPI) ListProviders(ctx context.Context) ([]models.LLMProvider, error) {
	var providers []models.LLMProvider
	if err := a.r.get(ctx, "/llm/providers", nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (a *LLMAPI) GetProvider(ctx context.Context, id uint) (*models.LLMProvider, error) {
	var provider models.LLMProvider
	if err := a.r.get(ctx, idPath("/llm/providers/%d", id), nil, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (a *LLMAPI) CreateProvider(ctx context.Context, p *models.LLMProvider) (*models.LLMProvider, error) {
	var created models.LLMProvider
	if err := a.r.post(ctx, "/llm/providers", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProvider sends a partial update; an empty APIKey is omitted so the
// stored key is kept.
func (a *LLMAPI) UpdateProvider(ctx context.Context, id uint, p *models.LLMProvider) (*models.LLMProvider, error) {
	var updated models.LLMProvider
	if err := a.r.put(ctx, idPath("/llm/providers/%d", id), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *LLMAPI) DeleteProvider(ctx context.Context, id uint) error {
	return a.r.delete(ctx, idPath("/llm/providers/%d", id), nil)
}

// TestProvider checks a saved provider's connectivity.
func (a *LLMAPI) TestProvider(ctx context.Context, id uint) (*models.TestResult, error) {
	var result models.TestResult
	if err := a.r.post(ctx, idPath("/llm/providers/%d/test", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchModels lists the models available for unsaved credentials.
func (a *LLMAPI) FetchModels(ctx context.Context, req *models.ModelsRequest) ([]string, error) {
	var resp models.ModelsResponse
	if err := a.r.post(ctx, "/llm/providers/models", req, &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// FetchProviderModels lists the models available to a saved provider.
func (a *LLMAPI) FetchProviderModels(ctx context.Context, id uint) ([]string, error) {
	var resp models.ModelsResponse
	if err := a.r.get(ctx, idPath("/llm/providers/%d/models", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// TestTemporaryModel tests credentials and a model without saving them.
func (a *LLMAPI) TestTemporaryModel(ctx context.Context, req *models.TestModelRequest) (*models.TestResult, error) {
	var result models.TestResult
	if err := a.r.post(ctx, "/llm/providers/test-model", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
