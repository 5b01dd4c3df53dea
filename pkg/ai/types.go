package ai

import "fmt"

// GenerationError carries the upstream failure of a completion call
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Message is the upstream error text without the wrapper prefix
func (e *GenerationError) Message() string {
	return e.Err.Error()
}
