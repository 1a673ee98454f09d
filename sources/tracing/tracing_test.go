package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportExecutionForRE(t *testing.T) {
	log := NewDiscardLogger()
	reported := false

	result, err := ReportExecutionForRE(log,
		func() (int, error) { return 42, errors.New("boom") },
		func(l *Logger) { reported = l != nil },
	)

	assert.Equal(t, 42, result)
	assert.EqualError(t, err, "boom")
	assert.True(t, reported)
}

func TestReportExecution(t *testing.T) {
	calls := 0
	ReportExecution(NewDiscardLogger(), func() { calls++ }, func(l *Logger) { calls++ })
	assert.Equal(t, 2, calls)
}

func TestLoggerFatalPanics(t *testing.T) {
	assert.PanicsWithValue(t, "fatal", func() {
		NewDiscardLogger().With(Scope, "test").F("fatal")
	})
}
