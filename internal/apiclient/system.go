package apiclient

import (
	"context"

	"github.com/handsoff/console/internal/models"
)

type SystemAPI struct {
	r *requester
}

func (a *SystemAPI) GetWebhookConfig(ctx context.Context) (*models.SystemWebhookConfig, error) {
	var cfg models.SystemWebhookConfig
	if err := a.r.get(ctx, "/system/webhook", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (a *SystemAPI) UpdateWebhookConfig(ctx context.Context, cfg *models.SystemWebhookConfig) error {
	return a.r.put(ctx, "/system/webhook", cfg, nil)
}
