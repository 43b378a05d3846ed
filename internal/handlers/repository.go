package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/debounce"
	"github.com/handsoff/console/internal/middleware"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/internal/services"
	"github.com/handsoff/console/pkg/logger"
)

const repositoriesPath = "/repositories"

type RepositoryHandler struct {
	repositoryService *services.RepositoryService
	settingsService   *services.SettingsService
	errors            *ErrorHandler
}

func NewRepositoryHandler(repositoryService *services.RepositoryService, settingsService *services.SettingsService, errors *ErrorHandler) *RepositoryHandler {
	return &RepositoryHandler{
		repositoryService: repositoryService,
		settingsService:   settingsService,
		errors:            errors,
	}
}

// List shows imported repositories with their webhook state. The q filter
// applies to the current page only.
func (h *RepositoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	token := middleware.Token(c)
	q := strings.TrimSpace(c.Query("q"))

	data := gin.H{
		"Title": "Repositories",
		"Query": q,
	}

	list, err := h.repositoryService.List(ctx, token, queryInt(c, "page", 1), q)
	if err != nil {
		if h.errors.HandleAuth(c, err) {
			return
		}
		logError(c, err)
		data["Error"] = ErrorMessage(err)
		data["List"] = &services.RepositoryList{RepositoryPage: &models.RepositoryPage{Page: 1, PageSize: services.RepositoryPageSize}}
		render(c, http.StatusOK, "repositories", data)
		return
	}
	data["List"] = list
	data["Pager"] = newPager(repositoriesPath, url.Values{"q": {q}}, list.Page, totalPages(list.Total, list.PageSize))

	providers, err := h.settingsService.ActiveProviders(ctx, token)
	if err != nil {
		if h.errors.HandleAuth(c, err) {
			return
		}
		logger.WithError(err).Warn("failed to load LLM providers")
	}
	data["Providers"] = providers

	render(c, http.StatusOK, "repositories", data)
}

// ImportPage lists Git host projects available for import.
func (h *RepositoryHandler) ImportPage(c *gin.Context) {
	search := strings.TrimSpace(c.Query("q"))
	page, err := h.repositoryService.ImportPage(c.Request.Context(), middleware.Token(c), queryInt(c, "page", 1), search)
	if err != nil {
		h.errors.Redirect(c, err, repositoriesPath)
		return
	}

	render(c, http.StatusOK, "repositories_import", gin.H{
		"Title":  "Import Repositories",
		"Import": page,
		"Pager":  newPager(repositoriesPath+"/import", url.Values{"q": {search}}, page.Projects.Page, page.Projects.TotalPages),
	})
}

// Search is the live search behind the import page. Rapid calls from one
// session are debounced; superseded calls answer 204 without reaching the
// backend.
func (h *RepositoryHandler) Search(c *gin.Context) {
	result, err := h.repositoryService.SearchImportable(
		c.Request.Context(),
		middleware.SessionID(c),
		middleware.Token(c),
		c.Query("q"),
		queryInt(c, "page", 1),
	)
	if err != nil {
		if errors.Is(err, debounce.ErrSuperseded) || errors.Is(err, context.Canceled) {
			c.Status(http.StatusNoContent)
			return
		}
		h.errors.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Import registers the selected projects.
func (h *RepositoryHandler) Import(c *gin.Context) {
	var ids []int64
	for _, raw := range c.PostFormArray("repository_ids") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.errors.Redirect(c, &models.ValidationError{Field: "repository_ids", Message: "Invalid repository selection"}, repositoriesPath+"/import")
			return
		}
		ids = append(ids, id)
	}

	resp, err := h.repositoryService.Import(c.Request.Context(), middleware.Token(c), ids)
	if err != nil {
		h.errors.Redirect(c, err, repositoriesPath+"/import")
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, fmt.Sprintf("Successfully imported %d repositories", resp.Count))
	c.Redirect(http.StatusSeeOther, repositoriesPath)
}

// Webhook shows the webhook details of one repository.
func (h *RepositoryHandler) Webhook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	repo, err := h.repositoryService.Get(c.Request.Context(), middleware.Token(c), id)
	if err != nil {
		h.errors.Redirect(c, err, repositoriesPath)
		return
	}

	render(c, http.StatusOK, "repository_webhook", gin.H{
		"Title":      "Webhook - " + repo.Name,
		"Repository": repo,
	})
}

func (h *RepositoryHandler) TestWebhook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	back := returnPath(c, repositoriesPath)

	result, err := h.repositoryService.TestWebhook(c.Request.Context(), middleware.Token(c), id)
	if err != nil {
		h.errors.Redirect(c, err, back)
		return
	}

	if result.Succeeded() {
		middleware.AddFlash(c, middleware.FlashSuccess, "Webhook test succeeded")
	} else {
		middleware.AddFlash(c, middleware.FlashError, "Webhook test failed: "+result.Message)
	}
	c.Redirect(http.StatusSeeOther, back)
}

func (h *RepositoryHandler) RecreateWebhook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	back := returnPath(c, repositoriesPath)

	if err := h.repositoryService.RecreateWebhook(c.Request.Context(), middleware.Token(c), id); err != nil {
		h.errors.Redirect(c, err, back)
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, "Webhook has been reconfigured")
	c.Redirect(http.StatusSeeOther, back)
}

// SetLLMProvider links or, with an empty value, unlinks a provider.
func (h *RepositoryHandler) SetLLMProvider(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var providerID *uint
	if raw := strings.TrimSpace(c.PostForm("llm_provider_id")); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.errors.Redirect(c, &models.ValidationError{Field: "llm_provider_id", Message: "Invalid LLM provider"}, repositoriesPath)
			return
		}
		pid := uint(v)
		providerID = &pid
	}

	if err := h.repositoryService.SetLLMProvider(c.Request.Context(), middleware.Token(c), id, providerID); err != nil {
		h.errors.Redirect(c, err, repositoriesPath)
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, "LLM provider updated")
	c.Redirect(http.StatusSeeOther, repositoriesPath)
}

// Delete removes a repository. The success message is only queued after the
// backend confirmed the deletion.
func (h *RepositoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.repositoryService.Delete(c.Request.Context(), middleware.Token(c), id); err != nil {
		h.errors.Redirect(c, err, repositoriesPath)
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, "Repository deleted")
	c.Redirect(http.StatusSeeOther, repositoriesPath)
}

// returnPath reads the local path a form wants to come back to.
func returnPath(c *gin.Context, def string) string {
	p := c.PostForm("return_to")
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return def
	}
	return p
}
