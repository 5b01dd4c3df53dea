package ai

import (
	"context"
	"time"

	"github.com/saint0x/gitreadme/pkg/log"
)

// Completer is the hosted completion backend
type Completer interface {
	Complete(ctx context.Context, model string, temperature float64, prompt string) (string, error)
}

// Generator turns a synthesized prompt into a cleaned README
type Generator struct {
	logger      *log.Logger
	completer   Completer
	model       string
	temperature float64
	timeout     time.Duration
}

// New creates a new Generator instance
func New(logger *log.Logger, completer Completer, model string, temperature float64, timeout time.Duration) *Generator {
	return &Generator{
		logger:      logger,
		completer:   completer,
		model:       model,
		temperature: temperature,
		timeout:     timeout,
	}
}

// Generate makes a single completion call, no retries, and strips reasoning blocks
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := g.completer.Complete(ctx, g.model, g.temperature, prompt)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	g.logger.Debug("Completion from %s took %s (%d bytes)", g.model, time.Since(start).Round(time.Millisecond), len(raw))
	return StripReasoning(raw), nil
}
