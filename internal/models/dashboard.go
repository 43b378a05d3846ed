package models

type DashboardStats struct {
	TotalReviews      int     `json:"total_reviews"`
	CompletedReviews  int     `json:"completed_reviews"`
	PendingReviews    int     `json:"pending_reviews"`
	FailedReviews     int     `json:"failed_reviews"`
	AverageScore      float64 `json:"average_score"`
	TotalIssuesFound  int     `json:"total_issues_found"`
	CriticalIssues    int     `json:"critical_issues"`
	HighIssues        int     `json:"high_issues"`
	MediumIssues      int     `json:"medium_issues"`
	LowIssues         int     `json:"low_issues"`
	SecurityIssues    int     `json:"security_issues"`
	PerformanceIssues int     `json:"performance_issues"`
	QualityIssues     int     `json:"quality_issues"`
}

// SeverityTotal sums the issue counts shown in the severity chart.
func (s *DashboardStats) SeverityTotal() int {
	if s == nil {
		return 0
	}
	return s.CriticalIssues + s.HighIssues + s.MediumIssues + s.LowIssues
}

// CategoryTotal sums the issue counts shown in the category chart.
func (s *DashboardStats) CategoryTotal() int {
	if s == nil {
		return 0
	}
	return s.SecurityIssues + s.PerformanceIssues + s.QualityIssues
}

type TrendPoint struct {
	Date           string  `json:"date"`
	ReviewCount    int     `json:"review_count"`
	AverageScore   float64 `json:"average_score"`
	TotalIssues    int     `json:"total_issues"`
	CriticalIssues int     `json:"critical_issues"`
}

type TokenUsageSummary struct {
	TotalCalls       int64   `json:"total_calls"`
	SuccessfulCalls  int64   `json:"successful_calls"`
	FailedCalls      int64   `json:"failed_calls"`
	TotalTokens      int64   `json:"total_tokens"`
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	AvgDurationMS    float64 `json:"avg_duration_ms"`
	SuccessRate      float64 `json:"success_rate"`
}

type RepositoryTokenUsage struct {
	RepositoryID   uint    `json:"repository_id"`
	RepositoryName string  `json:"repository_name"`
	TotalTokens    int64   `json:"total_tokens"`
	ReviewCount    int64   `json:"review_count"`
	AvgTokens      float64 `json:"avg_tokens"`
}

type TokenUsagePoint struct {
	Date          string  `json:"date"`
	TotalTokens   int64   `json:"total_tokens"`
	ReviewCount   int64   `json:"review_count"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	SuccessRate   float64 `json:"success_rate"`
}

type TokenUsage struct {
	Summary         TokenUsageSummary      `json:"summary"`
	TopRepositories []RepositoryTokenUsage `json:"top_repositories"`
	DailyTrend      []TokenUsagePoint      `json:"daily_trend"`
}

// MaxRepositoryTokens is the largest per-repository total, used to scale the
// usage bars. It is never less than 1.
func (u *TokenUsage) MaxRepositoryTokens() int64 {
	var max int64 = 1
	if u == nil {
		return max
	}
	for _, r := range u.TopRepositories {
		if r.TotalTokens > max {
			max = r.TotalTokens
		}
	}
	return max
}

// Dashboard is everything the dashboard page renders.
type Dashboard struct {
	Stats      *DashboardStats
	Recent     []Review
	Trends     []TrendPoint
	TokenUsage *TokenUsage
}
