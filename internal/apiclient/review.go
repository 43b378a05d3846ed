package apiclient

import (
	"context"

	"github.com/handsoff/console/internal/models"
)

type ReviewAPI struct {
	r *requester
}

// List returns one page of reviews matching q.
func (a *ReviewAPI) List(ctx context.Context, q models.ReviewQuery) (*models.ReviewPage, error) {
	var page models.ReviewPage
	if err := a.r.get(ctx, "/reviews", q.Values(), &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []models.Review{}
	}
	return &page, nil
}

func (a *ReviewAPI) Get(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := a.r.get(ctx, idPath("/reviews/%d", id), nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
