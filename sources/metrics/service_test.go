package metrics

import (
	"testing"
	"time"

	"pgbot/sources/tracing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordParseError(t *testing.T) {
	s := NewMetricsService(tracing.NewDiscardLogger())
	before := testutil.ToFloat64(parseErrors.WithLabelValues("UnclosedGroup"))

	s.RecordParseError("UnclosedGroup")
	s.RecordParseError("UnclosedGroup")

	assert.Equal(t, before+2, testutil.ToFloat64(parseErrors.WithLabelValues("UnclosedGroup")))
}

func TestGauges(t *testing.T) {
	s := NewMetricsService(tracing.NewDiscardLogger())

	s.SetEmotion("confused", -7)
	s.SetBlacklistSize(3)

	assert.Equal(t, float64(-7), testutil.ToFloat64(emotionLevel.WithLabelValues("confused")))
	assert.Equal(t, float64(3), testutil.ToFloat64(blacklistSize))
}

func TestProcessingDurationObserved(t *testing.T) {
	s := NewMetricsService(tracing.NewDiscardLogger())
	s.RecordMessageProcessingDuration(150 * time.Millisecond)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(messageProcessingDuration), 1)
}
