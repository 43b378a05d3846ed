package apiclient

import (
	"context"
	"encoding/json"

	"github.com/handsoff/console/internal/models"
)

type PlatformAPI struct {
	r *requester
}

type platformConfigUpdate struct {
	Message string                    `json:"message"`
	Config  *models.GitPlatformConfig `json:"config,omitempty"`
}

// GetConfig returns the Git platform configuration. When the backend has
// none it answers {"exists": false}, reported as Exists == false.
func (a *PlatformAPI) GetConfig(ctx context.Context) (*models.GitPlatformConfig, error) {
	var raw json.RawMessage
	if err := a.r.get(ctx, "/platform/config", nil, &raw); err != nil {
		return nil, err
	}

	var marker struct {
		Exists *bool `json:"exists"`
	}
	if err := json.Unmarshal(raw, &marker); err != nil {
		return nil, &Error{Kind: KindDecode, Message: MsgDecodeFailed, Err: err}
	}
	if marker.Exists != nil && !*marker.Exists {
		return &models.GitPlatformConfig{PlatformType: models.PlatformGitLab, IsActive: true}, nil
	}

	var cfg models.GitPlatformConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, &Error{Kind: KindDecode, Message: MsgDecodeFailed, Err: err}
	}
	cfg.Exists = true
	return &cfg, nil
}

// UpdateConfig saves the configuration and returns the backend's message.
func (a *PlatformAPI) UpdateConfig(ctx context.Context, cfg *models.GitPlatformConfig) (string, error) {
	var resp platformConfigUpdate
	if err := a.r.put(ctx, "/platform/config", cfg, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// TestConnection tests the given (possibly unsaved) connection settings.
func (a *PlatformAPI) TestConnection(ctx context.Context, req *models.PlatformTestRequest) (*models.TestResult, error) {
	var result models.TestResult
	if err := a.r.post(ctx, "/platform/test", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
