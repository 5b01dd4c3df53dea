package readme

// ValidationError is a malformed request; nothing was fetched
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	errMissingURL = &ValidationError{Message: "Repository URL is required"}
	errInvalidURL = &ValidationError{Message: "Invalid GitHub repository URL"}
)
