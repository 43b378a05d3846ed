package services

import (
	"context"
	"fmt"
	"io"

	"github.com/handsoff/console/internal/apiclient"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	exportPageSize = 100
	// MaxExportRows caps a single export.
	MaxExportRows = 5000
)

type ReviewService struct {
	client *apiclient.Client
}

func NewReviewService(client *apiclient.Client) *ReviewService {
	return &ReviewService{
		client: client,
	}
}

func (s *ReviewService) List(ctx context.Context, token string, q models.ReviewQuery) (*models.ReviewPage, error) {
	q.Normalize()
	page, err := s.client.WithToken(token).Reviews.List(ctx, q)
	if err != nil {
		return nil, err
	}
	warnUnknownStatuses(page.Data)
	return page, nil
}

func (s *ReviewService) Get(ctx context.Context, token string, id uint) (*models.Review, error) {
	review, err := s.client.WithToken(token).Reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	warnUnknownStatuses([]models.Review{*review})
	return review, nil
}

// warnUnknownStatuses logs statuses the console has no presentation for.
func warnUnknownStatuses(reviews []models.Review) {
	for _, r := range reviews {
		if _, err := models.ParseReviewStatus(r.Status); err != nil {
			logger.WithFields(logrus.Fields{"review_id": r.ID, "status": r.Status}).Warn("unknown review status")
		}
	}
}

var exportHeaders = []string{
	"ID", "Repository", "MR", "Title", "Author", "Source Branch", "Target Branch",
	"Status", "Score", "Issues", "Critical", "High", "Medium", "Low",
	"Total Tokens", "LLM Duration", "Created At", "Reviewed At",
}

// Export writes every review matching q (up to MaxExportRows) to w as an
// XLSX workbook. The tab and filters of q apply; its paging does not.
func (s *ReviewService) Export(ctx context.Context, token string, q models.ReviewQuery, w io.Writer) (int, error) {
	api := s.client.WithToken(token).Reviews

	var reviews []models.Review
	q.Page = 1
	q.PageSize = exportPageSize
	for len(reviews) < MaxExportRows {
		page, err := api.List(ctx, q)
		if err != nil {
			return 0, err
		}
		reviews = append(reviews, page.Data...)
		if len(page.Data) < q.PageSize || int64(q.Page) >= page.Pagination.TotalPages {
			break
		}
		q.Page++
	}
	if len(reviews) > MaxExportRows {
		reviews = reviews[:MaxExportRows]
	}

	f, err := buildReviewWorkbook(reviews)
	if err != nil {
		return 0, fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return len(reviews), nil
}

func buildReviewWorkbook(reviews []models.Review) (*excelize.File, error) {
	const sheet = "Reviews"

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range reviews {
		row := i + 2
		presentation, _ := models.PresentStatus(r.Status)
		values := []any{
			r.ID, r.RepositoryName(), r.MRIID, r.MRTitle, r.MRAuthor, r.SourceBranch, r.TargetBranch,
			presentation.Text,
		}
		if r.IsCompleted() {
			values = append(values,
				r.Score, r.IssuesFound, r.CriticalIssuesCount, r.HighIssuesCount, r.MediumIssuesCount, r.LowIssuesCount,
				r.TotalTokens, models.FormatDuration(r.LLMDurationMS),
			)
		} else {
			values = append(values, "-", "-", "-", "-", "-", "-", "-", "-")
		}
		values = append(values, r.CreatedAt.Format("2006-01-02 15:04:05"))
		if r.ReviewedAt != nil {
			values = append(values, r.ReviewedAt.Format("2006-01-02 15:04:05"))
		} else {
			values = append(values, "-")
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.SetColWidth(sheet, "D", "D", 48); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(sheet, "Q", "R", 20); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
