package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/handsoff/console/internal/apiclient"
	"github.com/handsoff/console/internal/debounce"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/pkg/logger"
)

const (
	RepositoryPageSize = 20
	ImportPageSize     = 20

	MsgWebhookNotConfigured = "System webhook URL is not configured, please configure it in Settings first"
)

// RepositoryList is the imported repositories page after local filtering.
type RepositoryList struct {
	*models.RepositoryPage
	Query    string
	Filtered []models.Repository
}

// ImportPage is the Git host listing plus the system webhook URL that new
// imports will be registered with.
type ImportPage struct {
	Projects       *models.GitLabRepositoryPage
	Search         string
	WebhookURL     string
	WebhookWarning string
}

type RepositoryService struct {
	client   *apiclient.Client
	searches *debounce.Group
}

func NewRepositoryService(client *apiclient.Client, searches *debounce.Group) *RepositoryService {
	return &RepositoryService{
		client:   client,
		searches: searches,
	}
}

// List loads one page of imported repositories and filters it by q on name
// and path. Filtering never calls the backend.
func (s *RepositoryService) List(ctx context.Context, token string, page int, q string) (*RepositoryList, error) {
	if page < 1 {
		page = 1
	}
	result, err := s.client.WithToken(token).Repositories.List(ctx, page, RepositoryPageSize)
	if err != nil {
		return nil, err
	}
	return &RepositoryList{
		RepositoryPage: result,
		Query:          q,
		Filtered:       models.FilterRepositories(result.Repositories, q),
	}, nil
}

func (s *RepositoryService) Get(ctx context.Context, token string, id uint) (*models.Repository, error) {
	return s.client.WithToken(token).Repositories.Get(ctx, id)
}

// ImportPage loads the importable projects and the system webhook URL. A
// failed webhook lookup is downgraded to a warning.
func (s *RepositoryService) ImportPage(ctx context.Context, token string, page int, search string) (*ImportPage, error) {
	if page < 1 {
		page = 1
	}
	api := s.client.WithToken(token)

	projects, err := api.Repositories.ListFromGitLab(ctx, page, ImportPageSize, search)
	if err != nil {
		return nil, err
	}

	result := &ImportPage{Projects: projects, Search: search}
	cfg, err := api.System.GetWebhookConfig(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrAuthExpired) {
			return nil, err
		}
		logger.WithError(err).Warn("failed to load system webhook config")
		result.WebhookWarning = MsgWebhookNotConfigured
		return result, nil
	}
	result.WebhookURL = cfg.WebhookCallbackURL
	if result.WebhookURL == "" {
		result.WebhookWarning = MsgWebhookNotConfigured
	}
	return result, nil
}

// SearchImportable runs a live search for the given session. Calls arriving
// within the debounce window supersede each other and only the last one
// reaches the backend; an empty search runs at once. Superseded calls get
// debounce.ErrSuperseded.
func (s *RepositoryService) SearchImportable(ctx context.Context, sessionID, token, search string, page int) (*models.GitLabRepositoryPage, error) {
	if page < 1 {
		page = 1
	}
	search = strings.TrimSpace(search)

	var result *models.GitLabRepositoryPage
	err := s.searches.Do(ctx, sessionID, search == "", func(ctx context.Context) error {
		var err error
		result, err = s.client.WithToken(token).Repositories.ListFromGitLab(ctx, page, ImportPageSize, search)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Import registers the selected projects. Nothing is sent unless at least
// one project is selected and the system webhook URL is configured.
func (s *RepositoryService) Import(ctx context.Context, token string, ids []int64) (*models.BatchImportResponse, error) {
	if len(ids) == 0 {
		return nil, &models.ValidationError{Field: "repository_ids", Message: "Please select at least one repository"}
	}

	api := s.client.WithToken(token)
	cfg, err := api.System.GetWebhookConfig(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrAuthExpired) {
			return nil, err
		}
		logger.WithError(err).Warn("failed to load system webhook config")
		cfg = &models.SystemWebhookConfig{}
	}
	if strings.TrimSpace(cfg.WebhookCallbackURL) == "" {
		return nil, &models.ValidationError{Field: "webhook_callback_url", Message: MsgWebhookNotConfigured}
	}

	// an empty callback makes the backend use the system configuration
	resp, err := api.Repositories.BatchImport(ctx, ids, "")
	if err != nil {
		return nil, err
	}
	if resp.Count == 0 {
		resp.Count = len(ids)
	}
	logger.WithField("count", resp.Count).Info("repositories imported")
	return resp, nil
}

// SetLLMProvider links providerID to the repository, or unlinks it when nil.
func (s *RepositoryService) SetLLMProvider(ctx context.Context, token string, id uint, providerID *uint) error {
	if err := s.client.WithToken(token).Repositories.UpdateLLMProvider(ctx, id, providerID); err != nil {
		return fmt.Errorf("failed to update LLM provider for repository %d: %w", id, err)
	}
	return nil
}

func (s *RepositoryService) Delete(ctx context.Context, token string, id uint) error {
	if err := s.client.WithToken(token).Repositories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete repository %d: %w", id, err)
	}
	logger.WithField("repository_id", id).Info("repository deleted")
	return nil
}

func (s *RepositoryService) TestWebhook(ctx context.Context, token string, id uint) (*models.WebhookTestResult, error) {
	return s.client.WithToken(token).Repositories.TestWebhook(ctx, id)
}

func (s *RepositoryService) RecreateWebhook(ctx context.Context, token string, id uint) error {
	if err := s.client.WithToken(token).Repositories.RecreateWebhook(ctx, id); err != nil {
		return fmt.Errorf("failed to recreate webhook for repository %d: %w", id, err)
	}
	return nil
}
