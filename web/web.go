// Package web holds the console's HTML templates and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/handsoff/console/internal/models"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page template. Pages are addressed by the name in
// their {{define}} block.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS,
		"templates/layouts/*.html",
		"templates/*.html",
		"templates/*/*.html",
	)
}

// Static is the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatTokens":   func(v any) string { return models.FormatTokens(toInt64(v)) },
		"formatDuration": func(v any) string { return models.FormatDuration(toInt64(v)) },
		"scoreColor":     models.ScoreColor,
		"status":         statusPresentation,
		"webhook":        webhookPresentation,
		"severityColor":  severityColor,
		"formatTime":     formatTime,
		"maskKey":        models.MaskAPIKey,
		"percent":        percent,
		"add":            func(a, b int) int { return a + b },
		"deref":          deref[uint],
		"list":           func(items ...string) []string { return items },
		"deref64":        deref[int64],
	}
}

func statusPresentation(raw string) models.StatusPresentation {
	// unknown statuses carry their own presentation
	p, _ := models.PresentStatus(raw)
	return p
}

func webhookPresentation(r models.Repository) models.WebhookPresentation {
	return models.WebhookStateOf(&r).Presentation()
}

func severityColor(raw string) string {
	sev, err := models.ParseSeverity(raw)
	if err != nil {
		return "default"
	}
	return sev.Color()
}

// formatTime renders a time or *time.Time as local "2006-01-02 15:04"; nil
// and zero times render "-".
func formatTime(v any) string {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case *time.Time:
		if x == nil {
			return "-"
		}
		t = *x
	default:
		return "-"
	}
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// percent is part/whole in 0..100, for bar widths.
func percent(part, whole any) string {
	w := toFloat(whole)
	if w <= 0 {
		return "0"
	}
	p := toFloat(part) / w * 100
	if p > 100 {
		p = 100
	}
	return fmt.Sprintf("%.1f", p)
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int64:
		return x
	case float64:
		return int64(x)
	case uint:
		return int64(x)
	default:
		return 0
	}
}

func toFloat(v any) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return float64(toInt64(v))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
