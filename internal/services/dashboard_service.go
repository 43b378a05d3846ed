package services

import (
	"context"
	"fmt"

	"github.com/handsoff/console/internal/apiclient"
	"github.com/handsoff/console/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	DashboardRecentLimit = 10
	DashboardTrendDays   = 30
)

type DashboardService struct {
	client *apiclient.Client
}

func NewDashboardService(client *apiclient.Client) *DashboardService {
	return &DashboardService{
		client: client,
	}
}

// Load fetches statistics, recent reviews, trends and token usage
// concurrently. The first failure cancels the remaining calls and fails the
// whole load; there are no partial dashboards.
func (s *DashboardService) Load(ctx context.Context, token string) (*models.Dashboard, error) {
	api := s.client.WithToken(token).Dashboard
	g, ctx := errgroup.WithContext(ctx)

	var dashboard models.Dashboard

	g.Go(func() error {
		stats, err := api.Statistics(ctx)
		if err != nil {
			return fmt.Errorf("failed to load statistics: %w", err)
		}
		dashboard.Stats = stats
		return nil
	})
	g.Go(func() error {
		recent, err := api.Recent(ctx, DashboardRecentLimit)
		if err != nil {
			return fmt.Errorf("failed to load recent reviews: %w", err)
		}
		dashboard.Recent = recent
		return nil
	})
	g.Go(func() error {
		trends, err := api.Trends(ctx, DashboardTrendDays)
		if err != nil {
			return fmt.Errorf("failed to load trends: %w", err)
		}
		dashboard.Trends = trends
		return nil
	})
	g.Go(func() error {
		usage, err := api.TokenUsage(ctx, DashboardTrendDays)
		if err != nil {
			return fmt.Errorf("failed to load token usage: %w", err)
		}
		dashboard.TokenUsage = usage
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if dashboard.Recent == nil {
		dashboard.Recent = []models.Review{}
	}
	if dashboard.Trends == nil {
		dashboard.Trends = []models.TrendPoint{}
	}
	return &dashboard, nil
}
