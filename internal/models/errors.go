package models

// ValidationError reports a form field that failed local validation before
// any request reached the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
