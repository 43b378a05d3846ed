package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/handsoff/console/internal/models"
)

type DashboardAPI struct {
	r *requester
}

func (a *DashboardAPI) Statistics(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := a.r.get(ctx, "/dashboard/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (a *DashboardAPI) Recent(ctx context.Context, limit int) ([]models.Review, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var reviews []models.Review
	if err := a.r.get(ctx, "/dashboard/recent", q, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (a *DashboardAPI) Trends(ctx context.Context, days int) ([]models.TrendPoint, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var trends []models.TrendPoint
	if err := a.r.get(ctx, "/dashboard/trends", q, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

func (a *DashboardAPI) TokenUsage(ctx context.Context, days int) (*models.TokenUsage, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var usage models.TokenUsage
	if err := a.r.get(ctx, "/dashboard/token-usage", q, &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}
