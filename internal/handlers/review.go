package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/middleware"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/internal/services"
	"github.com/handsoff/console/pkg/logger"
)

const (
	reviewsPath = "/reviews"
	xlsxType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
	errors        *ErrorHandler
}

func NewReviewHandler(reviewService *services.ReviewService, errors *ErrorHandler) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		errors:        errors,
	}
}

func bindReviewQuery(c *gin.Context) models.ReviewQuery {
	var q models.ReviewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.WithError(err).Debug("ignoring malformed review query")
		q = models.ReviewQuery{}
	}
	q.Normalize()
	return q
}

// List renders the review history with its tab and filters.
func (h *ReviewHandler) List(c *gin.Context) {
	q := bindReviewQuery(c)
	data := gin.H{
		"Title": "Reviews",
		"Query": q,
		"Tabs":  models.ReviewTabs,
	}

	page, err := h.reviewService.List(c.Request.Context(), middleware.Token(c), q)
	if err != nil {
		if h.errors.HandleAuth(c, err) {
			return
		}
		logError(c, err)
		data["Error"] = ErrorMessage(err)
		page = &models.ReviewPage{
			Data:       []models.Review{},
			Pagination: models.Pagination{Page: q.Page, PageSize: q.PageSize},
		}
	}
	data["Reviews"] = page
	data["Pager"] = newPager(reviewsPath, url.Values{
		"tab":       {string(q.Tab)},
		"status":    {q.Status},
		"author":    {q.Author},
		"page_size": {strconv.Itoa(q.PageSize)},
	}, q.Page, int(page.Pagination.TotalPages))
	data["ExportURL"] = template.URL(reviewsPath + "/export?" + url.Values{
		"tab":    {string(q.Tab)},
		"status": {q.Status},
		"author": {q.Author},
	}.Encode())

	render(c, http.StatusOK, "reviews", data)
}

// Detail shows one review with its fix suggestions.
func (h *ReviewHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), middleware.Token(c), id)
	if err != nil {
		h.errors.Redirect(c, err, reviewsPath)
		return
	}

	render(c, http.StatusOK, "review_detail", gin.H{
		"Title":  fmt.Sprintf("Review #%d", review.ID),
		"Review": review,
	})
}

// Export downloads the filtered review list as an XLSX workbook. The file is
// built in memory so a failure can still redirect back to the list.
func (h *ReviewHandler) Export(c *gin.Context) {
	q := bindReviewQuery(c)

	var buf bytes.Buffer
	count, err := h.reviewService.Export(c.Request.Context(), middleware.Token(c), q, &buf)
	if err != nil {
		h.errors.Redirect(c, err, reviewsPath)
		return
	}

	logger.WithField("rows", count).WithField("request_id", middleware.RequestID(c)).Info("exported reviews")

	filename := fmt.Sprintf("reviews-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxType, buf.Bytes())
}
