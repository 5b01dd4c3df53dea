package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(false)
	logger.SetOutput(&buf)

	logger.Info("hello %s", "world")
	logger.Debug("hidden")
	logger.Warning("careful\nnow")

	out := buf.String()
	assert.Contains(t, out, "hello world")
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "careful now")
	assert.False(t, logger.IsDebug())
}

func TestLoggerWithField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(true)
	logger.SetOutput(&buf)

	logger.WithField("repo", "octo/cat").Debug("walking")

	assert.Contains(t, buf.String(), "repo=octo/cat")
	assert.Contains(t, buf.String(), "walking")
}
