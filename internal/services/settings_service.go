package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/handsoff/console/internal/apiclient"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Settings is everything the settings page renders.
type Settings struct {
	Platform      *models.GitPlatformConfig
	Providers     []models.LLMProvider
	SystemWebhook *models.SystemWebhookConfig
	APIBaseURL    string
}

type SettingsService struct {
	client *apiclient.Client
}

func NewSettingsService(client *apiclient.Client) *SettingsService {
	return &SettingsService{
		client: client,
	}
}

// Load fetches the platform configuration, providers and system webhook
// configuration concurrently.
func (s *SettingsService) Load(ctx context.Context, token string) (*Settings, error) {
	api := s.client.WithToken(token)
	g, ctx := errgroup.WithContext(ctx)

	settings := &Settings{APIBaseURL: s.client.BaseURL()}

	g.Go(func() error {
		cfg, err := api.Platform.GetConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load platform config: %w", err)
		}
		settings.Platform = cfg
		return nil
	})
	g.Go(func() error {
		providers, err := api.LLM.ListProviders(ctx)
		if err != nil {
			return fmt.Errorf("failed to load providers: %w", err)
		}
		settings.Providers = providers
		return nil
	})
	g.Go(func() error {
		cfg, err := api.System.GetWebhookConfig(ctx)
		if err != nil {
			// an unset system webhook is reported as an empty form
			if errors.Is(err, apiclient.ErrAuthExpired) {
				return err
			}
			logger.WithError(err).Warn("failed to load system webhook config")
			cfg = &models.SystemWebhookConfig{}
		}
		settings.SystemWebhook = cfg
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if settings.Providers == nil {
		settings.Providers = []models.LLMProvider{}
	}
	return settings, nil
}

// ActiveProviders returns the providers that can be linked to repositories.
func (s *SettingsService) ActiveProviders(ctx context.Context, token string) ([]models.LLMProvider, error) {
	providers, err := s.client.WithToken(token).LLM.ListProviders(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]models.LLMProvider, 0, len(providers))
	for _, p := range providers {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

// SavePlatform saves the Git platform configuration. The access token is
// required the first time; afterwards an empty token keeps the stored one.
func (s *SettingsService) SavePlatform(ctx context.Context, token string, cfg *models.GitPlatformConfig) (string, error) {
	if cfg.PlatformType == "" {
		cfg.PlatformType = models.PlatformGitLab
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.AccessToken = strings.TrimSpace(cfg.AccessToken)
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	api := s.client.WithToken(token)
	if cfg.AccessToken == "" {
		existing, err := api.Platform.GetConfig(ctx)
		if err != nil {
			return "", err
		}
		if !existing.Exists {
			return "", &models.ValidationError{Field: "access_token", Message: "Please enter the personal access token"}
		}
	}

	cfg.IsActive = true
	msg, err := api.Platform.UpdateConfig(ctx, cfg)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Platform configuration saved"
	}
	return msg, nil
}

// TestPlatform tests the connection settings as typed, without saving them.
func (s *SettingsService) TestPlatform(ctx context.Context, token string, cfg *models.GitPlatformConfig) (*models.TestResult, error) {
	if cfg.PlatformType == "" {
		cfg.PlatformType = models.PlatformGitLab
	}
	req, err := cfg.TestRequest()
	if err != nil {
		return nil, err
	}
	return s.client.WithToken(token).Platform.TestConnection(ctx, req)
}

func (s *SettingsService) CreateProvider(ctx context.Context, token string, form *models.ProviderForm) (*models.LLMProvider, error) {
	if err := form.Validate(true); err != nil {
		return nil, err
	}
	return s.client.WithToken(token).LLM.CreateProvider(ctx, form.Provider())
}

// UpdateProvider saves an edited provider. An empty API key is omitted from
// the request so the backend keeps the stored key.
func (s *SettingsService) UpdateProvider(ctx context.Context, token string, id uint, form *models.ProviderForm) (*models.LLMProvider, error) {
	if err := form.Validate(false); err != nil {
		return nil, err
	}
	return s.client.WithToken(token).LLM.UpdateProvider(ctx, id, form.Provider())
}

func (s *SettingsService) DeleteProvider(ctx context.Context, token string, id uint) error {
	if err := s.client.WithToken(token).LLM.DeleteProvider(ctx, id); err != nil {
		return fmt.Errorf("failed to delete provider %d: %w", id, err)
	}
	return nil
}

func (s *SettingsService) TestProvider(ctx context.Context, token string, id uint) (*models.TestResult, error) {
	return s.client.WithToken(token).LLM.TestProvider(ctx, id)
}

// FetchModels lists models for the typed credentials, or for the saved
// provider when editing without a new key.
func (s *SettingsService) FetchModels(ctx context.Context, token string, req *models.ModelsRequest) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	api := s.client.WithToken(token).LLM
	var (
		names []string
		err   error
	)
	if req.UsesSavedProvider() {
		names, err = api.FetchProviderModels(ctx, req.ProviderID)
	} else {
		names, err = api.FetchModels(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// TestModel tests a model with the typed credentials, or the saved provider
// when editing without a new key.
func (s *SettingsService) TestModel(ctx context.Context, token string, req *models.TestModelRequest) (*models.TestResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	api := s.client.WithToken(token).LLM
	if req.UsesSavedProvider() {
		return api.TestProvider(ctx, req.ProviderID)
	}
	return api.TestTemporaryModel(ctx, req)
}

func (s *SettingsService) SaveSystemWebhook(ctx context.Context, token string, cfg *models.SystemWebhookConfig) error {
	cfg.WebhookCallbackURL = strings.TrimSpace(cfg.WebhookCallbackURL)
	if err := models.ValidateURL("webhook_callback_url", cfg.WebhookCallbackURL); err != nil {
		return err
	}
	return s.client.WithToken(token).System.UpdateWebhookConfig(ctx, cfg)
}
