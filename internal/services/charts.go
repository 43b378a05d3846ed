package services

import (
	"encoding/json"
	"html/template"
	"time"

	"github.com/handsoff/console/internal/models"
)

// Chart is an ECharts option object ready to be embedded in a page.
type Chart struct {
	ID     string
	Option template.JS
}

// DashboardCharts holds the charts that have data to show. A nil field means
// the chart is hidden.
type DashboardCharts struct {
	Trend      *Chart
	Severity   *Chart
	Category   *Chart
	TokenTrend *Chart
}

// BuildDashboardCharts renders chart options. Pie charts are only produced
// when their total is positive, series charts when they have points.
func BuildDashboardCharts(d *models.Dashboard) (*DashboardCharts, error) {
	charts := &DashboardCharts{}
	if d == nil {
		return charts, nil
	}

	var err error
	if len(d.Trends) > 0 {
		if charts.Trend, err = newChart("trend-chart", trendOption(d.Trends)); err != nil {
			return nil, err
		}
	}
	if d.Stats.SeverityTotal() > 0 {
		if charts.Severity, err = newChart("severity-chart", severityOption(d.Stats)); err != nil {
			return nil, err
		}
	}
	if d.Stats.CategoryTotal() > 0 {
		if charts.Category, err = newChart("category-chart", categoryOption(d.Stats)); err != nil {
			return nil, err
		}
	}
	if d.TokenUsage != nil && len(d.TokenUsage.DailyTrend) > 0 {
		if charts.TokenTrend, err = newChart("token-trend-chart", tokenTrendOption(d.TokenUsage.DailyTrend)); err != nil {
			return nil, err
		}
	}
	return charts, nil
}

func newChart(id string, option map[string]any) (*Chart, error) {
	data, err := json.Marshal(option)
	if err != nil {
		return nil, err
	}
	// json.Marshal escapes <, > and & so the output is safe inside <script>
	return &Chart{ID: id, Option: template.JS(data)}, nil
}

// shortDate renders backend dates (YYYY-MM-DD or RFC 3339) as MM-DD.
func shortDate(s string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("01-02")
		}
	}
	return s
}

func trendOption(trends []models.TrendPoint) map[string]any {
	dates := make([]string, len(trends))
	counts := make([]int, len(trends))
	scores := make([]float64, len(trends))
	critical := make([]int, len(trends))
	for i, t := range trends {
		dates[i] = shortDate(t.Date)
		counts[i] = t.ReviewCount
		scores[i] = t.AverageScore
		critical[i] = t.CriticalIssues
	}

	return map[string]any{
		"title":   map[string]any{"text": "Review Trends (30 Days)", "left": "center"},
		"tooltip": map[string]any{"trigger": "axis"},
		"legend":  map[string]any{"data": []string{"Reviews", "Avg Score", "Critical Issues"}, "bottom": 0},
		"xAxis":   map[string]any{"type": "category", "data": dates},
		"yAxis": []map[string]any{
			{"type": "value", "name": "Count"},
			{"type": "value", "name": "Score", "max": 100},
		},
		"series": []map[string]any{
			{"name": "Reviews", "type": "bar", "data": counts},
			{"name": "Avg Score", "type": "line", "yAxisIndex": 1, "data": scores},
			{"name": "Critical Issues", "type": "line", "data": critical, "itemStyle": map[string]any{"color": "#f5222d"}},
		},
	}
}

func pieItem(name string, value int, color string) map[string]any {
	item := map[string]any{"name": name, "value": value}
	if color != "" {
		item["itemStyle"] = map[string]any{"color": color}
	}
	return item
}

func severityOption(stats *models.DashboardStats) map[string]any {
	return map[string]any{
		"title":   map[string]any{"text": "Issue Distribution", "left": "center"},
		"tooltip": map[string]any{"trigger": "item"},
		"legend":  map[string]any{"orient": "vertical", "left": "left"},
		"series": []map[string]any{{
			"name":   "Issues",
			"type":   "pie",
			"radius": "50%",
			"data": []map[string]any{
				pieItem("Critical", stats.CriticalIssues, "#f5222d"),
				pieItem("High", stats.HighIssues, "#fa8c16"),
				pieItem("Medium", stats.MediumIssues, "#faad14"),
				pieItem("Low", stats.LowIssues, "#52c41a"),
			},
		}},
	}
}

func categoryOption(stats *models.DashboardStats) map[string]any {
	return map[string]any{
		"title":   map[string]any{"text": "Issue Category", "left": "center"},
		"tooltip": map[string]any{"trigger": "item"},
		"series": []map[string]any{{
			"name":   "Category",
			"type":   "pie",
			"radius": []string{"40%", "70%"},
			"data": []map[string]any{
				pieItem("Security", stats.SecurityIssues, ""),
				pieItem("Performance", stats.PerformanceIssues, ""),
				pieItem("Quality", stats.QualityIssues, ""),
			},
		}},
	}
}

func tokenTrendOption(points []models.TokenUsagePoint) map[string]any {
	dates := make([]string, len(points))
	tokens := make([]int64, len(points))
	reviews := make([]int64, len(points))
	for i, p := range points {
		dates[i] = shortDate(p.Date)
		tokens[i] = p.TotalTokens
		reviews[i] = p.ReviewCount
	}

	return map[string]any{
		"title":   map[string]any{"text": "Token Usage Trend (30 Days)", "left": "center"},
		"tooltip": map[string]any{"trigger": "axis"},
		"legend":  map[string]any{"data": []string{"Tokens", "Reviews"}, "bottom": 0},
		"xAxis":   map[string]any{"type": "category", "data": dates},
		"yAxis": []map[string]any{
			{"type": "value", "name": "Tokens"},
			{"type": "value", "name": "Reviews"},
		},
		"series": []map[string]any{
			{"name": "Tokens", "type": "bar", "data": tokens, "itemStyle": map[string]any{"color": "#722ed1"}},
			{"name": "Reviews", "type": "line", "yAxisIndex": 1, "data": reviews, "itemStyle": map[string]any{"color": "#1890ff"}},
		},
	}
}
