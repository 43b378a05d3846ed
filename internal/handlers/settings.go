package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/middleware"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/internal/services"
)

const settingsPath = "/settings"

type SettingsHandler struct {
	settingsService *services.SettingsService
	errors          *ErrorHandler
}

func NewSettingsHandler(settingsService *services.SettingsService, errors *ErrorHandler) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		errors:          errors,
	}
}

// Page renders the Git platform, LLM provider and system webhook settings.
// ?edit=<id> opens the provider form for an existing provider.
func (h *SettingsHandler) Page(c *gin.Context) {
	data := gin.H{
		"Title": "Settings",
		"Tab":   c.DefaultQuery("tab", "platform"),
	}

	settings, err := h.settingsService.Load(c.Request.Context(), middleware.Token(c))
	if err != nil {
		if h.errors.HandleAuth(c, err) {
			return
		}
		logError(c, err)
		data["Error"] = "Failed to load settings"
		settings = &services.Settings{
			Platform:      &models.GitPlatformConfig{PlatformType: models.PlatformGitLab},
			Providers:     []models.LLMProvider{},
			SystemWebhook: &models.SystemWebhookConfig{},
		}
	}
	data["Settings"] = settings

	if raw := c.Query("edit"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			for i := range settings.Providers {
				if settings.Providers[i].ID == uint(id) {
					data["Editing"] = &settings.Providers[i]
					data["Tab"] = "llm"
					break
				}
			}
		}
	}

	render(c, http.StatusOK, "settings", data)
}

func (h *SettingsHandler) SavePlatform(c *gin.Context) {
	var cfg models.GitPlatformConfig
	if err := c.ShouldBind(&cfg); err != nil {
		h.errors.Redirect(c, &models.ValidationError{Message: "Invalid platform configuration"}, settingsPath)
		return
	}

	msg, err := h.settingsService.SavePlatform(c.Request.Context(), middleware.Token(c), &cfg)
	if err != nil {
		h.errors.Redirect(c, err, settingsPath)
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, msg)
	c.Redirect(http.StatusSeeOther, settingsPath)
}

// TestPlatform tests the typed connection settings and answers JSON.
func (h *SettingsHandler) TestPlatform(c *gin.Context) {
	var cfg models.GitPlatformConfig
	if err := c.ShouldBind(&cfg); err != nil {
		h.errors.JSON(c, &models.ValidationError{Message: "Invalid platform configuration"})
		return
	}

	result, err := h.settingsService.TestPlatform(c.Request.Context(), middleware.Token(c), &cfg)
	if err != nil {
		h.errors.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SettingsHandler) CreateProvider(c *gin.Context) {
	var form models.ProviderForm
	if err := c.ShouldBind(&form); err != nil {
		h.errors.Redirect(c, &models.ValidationError{Message: "Please fill in the name, base URL and model"}, settingsPath+"?tab=llm")
		return
	}

	provider, err := h.settingsService.CreateProvider(c.Request.Context(), middleware.Token(c), &form)
	if err != nil {
		h.errors.Redirect(c, err, settingsPath+"?tab=llm")
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, "Provider "+provider.Name+" created")
	c.Redirect(http.StatusSeeOther, settingsPath+"?tab=llm")
}

func (h *SettingsHandler) UpdateProvider(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	back := settingsPath + "?tab=llm&edit=" + strconv.FormatUint(uint64(id), 10)

	var form models.ProviderForm
	if err := c.ShouldBind(&form); err != nil {
		h.errors.Redirect(c, &models.ValidationError{Message: "Please fill in the name, base URL and model"}, back)
		return
	}

	if _, err := h.settingsService.UpdateProvider(c.Request.Context(), middleware.Token(c), id, &form); err != nil {
		h.errors.Redirect(c, err, back)
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, "Provider updated")
	c.Redirect(http.StatusSeeOther, settingsPath+"?tab=llm")
}

func (h *SettingsHandler) DeleteProvider(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.settingsService.DeleteProvider(c.Request.Context(), middleware.Token(c), id); err != nil {
		h.errors.Redirect(c, err, settingsPath+"?tab=llm")
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, "Provider deleted")
	c.Redirect(http.StatusSeeOther, settingsPath+"?tab=llm")
}

// TestProvider tests a saved provider and flashes the outcome.
func (h *SettingsHandler) TestProvider(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.settingsService.TestProvider(c.Request.Context(), middleware.Token(c), id)
	if err != nil {
		h.errors.Redirect(c, err, settingsPath+"?tab=llm")
		return
	}

	flashTestResult(c, result, "Connection test succeeded")
	c.Redirect(http.StatusSeeOther, settingsPath+"?tab=llm")
}

// FetchModels answers {"models": [...]} for the provider form's model picker.
func (h *SettingsHandler) FetchModels(c *gin.Context) {
	var req models.ModelsRequest
	if err := c.ShouldBind(&req); err != nil {
		h.errors.JSON(c, &models.ValidationError{Message: "Invalid request"})
		return
	}

	names, err := h.settingsService.FetchModels(c.Request.Context(), middleware.Token(c), &req)
	if err != nil {
		h.errors.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ModelsResponse{Models: names})
}

func (h *SettingsHandler) TestModel(c *gin.Context) {
	var req models.TestModelRequest
	if err := c.ShouldBind(&req); err != nil {
		h.errors.JSON(c, &models.ValidationError{Message: "Invalid request"})
		return
	}

	result, err := h.settingsService.TestModel(c.Request.Context(), middleware.Token(c), &req)
	if err != nil {
		h.errors.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SettingsHandler) SaveSystem(c *gin.Context) {
	var cfg models.SystemWebhookConfig
	if err := c.ShouldBind(&cfg); err != nil {
		h.errors.Redirect(c, &models.ValidationError{Field: "webhook_callback_url", Message: "Please enter the webhook callback URL"}, settingsPath+"?tab=system")
		return
	}

	if err := h.settingsService.SaveSystemWebhook(c.Request.Context(), middleware.Token(c), &cfg); err != nil {
		h.errors.Redirect(c, err, settingsPath+"?tab=system")
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, "System configuration saved")
	c.Redirect(http.StatusSeeOther, settingsPath+"?tab=system")
}

func flashTestResult(c *gin.Context, result *models.TestResult, okMessage string) {
	if result.Success {
		msg := result.Message
		if msg == "" {
			msg = okMessage
		}
		middleware.AddFlash(c, middleware.FlashSuccess, msg)
		return
	}
	middleware.AddFlash(c, middleware.FlashError, "Connection test failed: "+result.Message)
}
