package models

import (
	"net/url"
	"strconv"
	"time"
)

type ReviewRepository struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	FullPath string `json:"full_path"`
}

type FixSuggestion struct {
	ID          uint   `json:"id"`
	FilePath    string `json:"file_path"`
	LineStart   int    `json:"line_start"`
	LineEnd     int    `json:"line_end"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
	CodeSnippet string `json:"code_snippet,omitempty"`
}

// Lines renders the line range as "L12" or "L12-18".
func (f *FixSuggestion) Lines() string {
	if f.LineEnd == 0 || f.LineEnd == f.LineStart {
		return "L" + strconv.Itoa(f.LineStart)
	}
	return "L" + strconv.Itoa(f.LineStart) + "-" + strconv.Itoa(f.LineEnd)
}

type Review struct {
	ID                  uint              `json:"id"`
	Repository          *ReviewRepository `json:"repository,omitempty"`
	MRIID               int               `json:"mr_iid"`
	MRTitle             string            `json:"mr_title"`
	MRAuthor            string            `json:"mr_author"`
	MRWebURL            string            `json:"mr_web_url"`
	SourceBranch        string            `json:"source_branch"`
	TargetBranch        string            `json:"target_branch"`
	Status              string            `json:"status"`
	Score               float64           `json:"score"`
	IssuesFound         int               `json:"issues_found"`
	CriticalIssuesCount int               `json:"critical_issues_count"`
	HighIssuesCount     int               `json:"high_issues_count"`
	MediumIssuesCount   int               `json:"medium_issues_count"`
	LowIssuesCount      int               `json:"low_issues_count"`
	Summary             string            `json:"summary"`
	FixSuggestions      []FixSuggestion   `json:"fix_suggestions"`
	CommentPosted       bool              `json:"comment_posted"`
	CommentURL          string            `json:"comment_url,omitempty"`
	PromptTokens        int64             `json:"prompt_tokens"`
	CompletionTokens    int64             `json:"completion_tokens"`
	TotalTokens         int64             `json:"total_tokens"`
	LLMDurationMS       int64             `json:"llm_duration_ms"`
	CreatedAt           time.Time         `json:"created_at"`
	ReviewedAt          *time.Time        `json:"reviewed_at,omitempty"`
	ErrorMessage        string            `json:"error_message,omitempty"`
}

// IsCompleted reports whether score, issue and token columns are meaningful.
func (r *Review) IsCompleted() bool {
	return r.Status == string(ReviewCompleted)
}

func (r *Review) RepositoryName() string {
	if r.Repository == nil || r.Repository.Name == "" {
		return "-"
	}
	return r.Repository.Name
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// ReviewPage is the response of GET /reviews.
type ReviewPage struct {
	Data       []Review   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ReviewTab is a predefined review list filter.
type ReviewTab string

const (
	ReviewTabAll       ReviewTab = "all"
	ReviewTabFailed    ReviewTab = "failed"
	ReviewTabCritical  ReviewTab = "critical"
	ReviewTabHighScore ReviewTab = "high_score"
)

var ReviewTabs = []ReviewTab{ReviewTabAll, ReviewTabFailed, ReviewTabCritical, ReviewTabHighScore}

var reviewTabFilters = map[ReviewTab]map[string]string{
	ReviewTabAll:       {},
	ReviewTabFailed:    {"status": string(ReviewFailed)},
	ReviewTabCritical:  {"has_critical": "true"},
	ReviewTabHighScore: {"min_score": "80"},
}

// ParseReviewTab maps unknown tabs to ReviewTabAll.
func ParseReviewTab(s string) ReviewTab {
	if _, ok := reviewTabFilters[ReviewTab(s)]; ok {
		return ReviewTab(s)
	}
	return ReviewTabAll
}

// ReviewQuery is the filter state of the review list page.
type ReviewQuery struct {
	Page     int       `form:"page"`
	PageSize int       `form:"page_size"`
	Status   string    `form:"status"`
	Author   string    `form:"author"`
	Tab      ReviewTab `form:"tab"`
}

// Normalize clamps paging to the backend limits.
func (q *ReviewQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	q.Tab = ParseReviewTab(string(q.Tab))
}

// Values encodes the query for GET /reviews. Tab filters are applied last so
// a tab wins over a conflicting status filter.
func (q ReviewQuery) Values() url.Values {
	q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Author != "" {
		v.Set("author", q.Author)
	}
	for k, val := range reviewTabFilters[q.Tab] {
		v.Set(k, val)
	}
	return v
}
