package models

import "fmt"

// ReviewStatus is the lifecycle state of a review on the backend.
type ReviewStatus string

const (
	ReviewPending    ReviewStatus = "pending"
	ReviewProcessing ReviewStatus = "processing"
	ReviewCompleted  ReviewStatus = "completed"
	ReviewFailed     ReviewStatus = "failed"
)

// StatusPresentation is how a status is drawn in tables and detail views.
type StatusPresentation struct {
	Color    string
	TagColor string
	Icon     string
	Text     string
	Spin     bool
}

var statusPresentations = map[ReviewStatus]StatusPresentation{
	ReviewCompleted:  {Color: "#52c41a", TagColor: "success", Icon: "check-circle", Text: "Completed"},
	ReviewFailed:     {Color: "#ff4d4f", TagColor: "error", Icon: "close-circle", Text: "Failed"},
	ReviewProcessing: {Color: "#1890ff", TagColor: "processing", Icon: "clock-circle", Text: "Processing", Spin: true},
	ReviewPending:    {Color: "#d9d9d9", TagColor: "default", Icon: "clock-circle", Text: "Pending"},
}

// UnknownStatusError is returned for status strings outside ReviewStatus.
type UnknownStatusError struct {
	Value string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown review status %q", e.Value)
}

// ParseReviewStatus accepts only the four known statuses.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	st := ReviewStatus(s)
	if _, ok := statusPresentations[st]; !ok {
		return "", &UnknownStatusError{Value: s}
	}
	return st, nil
}

func (s ReviewStatus) Presentation() StatusPresentation {
	return statusPresentations[s]
}

// PresentStatus resolves a raw backend status. Unknown values get an explicit
// "Unknown" presentation together with the parse error.
func PresentStatus(raw string) (StatusPresentation, error) {
	st, err := ParseReviewStatus(raw)
	if err != nil {
		return StatusPresentation{
			Color:    "#8c8c8c",
			TagColor: "default",
			Icon:     "question-circle",
			Text:     "Unknown (" + raw + ")",
		}, err
	}
	return st.Presentation(), nil
}

// Severity of a fix suggestion.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

var severityColors = map[Severity]string{
	SeverityCritical: "red",
	SeverityHigh:     "orange",
	SeverityMedium:   "gold",
	SeverityLow:      "green",
}

func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if _, ok := severityColors[sev]; !ok {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

func (s Severity) Color() string {
	return severityColors[s]
}
