package metrics

import (
	"time"

	"pgbot/sources/tracing"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsService struct {
	log *tracing.Logger
}

var (
	messagesHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgbot_messages_handled_total",
			Help: "Total number of messages handled by the poller",
		},
		[]string{"status"},
	)

	messagesIgnored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgbot_messages_ignored_total",
			Help: "Total number of messages ignored",
		},
		[]string{"reason"},
	)

	commandsUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgbot_commands_used_total",
			Help: "Total number of commands executed, by route",
		},
		[]string{"command"},
	)

	parseErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgbot_parse_errors_total",
			Help: "Total number of command bodies rejected by the parser",
		},
		[]string{"kind"},
	)

	commandErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgbot_command_errors_total",
			Help: "Total number of commands that failed after parsing",
		},
		[]string{"title"},
	)

	messagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgbot_messages_sent_total",
			Help: "Total number of messages sent by the diplomat",
		},
		[]string{"status"},
	)

	messageProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pgbot_message_processing_duration_seconds",
			Help:    "Total duration of message processing",
			Buckets: prometheus.DefBuckets,
		},
	)

	emotionLevel = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pgbot_emotion_level",
			Help: "Current value of each emotion counter",
		},
		[]string{"emotion"},
	)

	blacklistSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pgbot_blacklisted_commands",
			Help: "Number of blacklisted command paths",
		},
	)
)

func init() {
	prometheus.MustRegister(messagesHandled)
	prometheus.MustRegister(messagesIgnored)
	prometheus.MustRegister(commandsUsed)
	prometheus.MustRegister(parseErrors)
	prometheus.MustRegister(commandErrors)
	prometheus.MustRegister(messagesSent)
	prometheus.MustRegister(messageProcessingDuration)
	prometheus.MustRegister(emotionLevel)
	prometheus.MustRegister(blacklistSize)
}

func NewMetricsService(log *tracing.Logger) *MetricsService {
	return &MetricsService{
		log: log,
	}
}

func (s *MetricsService) RecordMessageHandled(status string) {
	messagesHandled.WithLabelValues(status).Inc()
}

func (s *MetricsService) RecordMessageIgnored(reason string) {
	messagesIgnored.WithLabelValues(reason).Inc()
}

func (s *MetricsService) RecordCommandUsed(command string) {
	commandsUsed.WithLabelValues(command).Inc()
}

func (s *MetricsService) RecordParseError(kind string) {
	parseErrors.WithLabelValues(kind).Inc()
}

func (s *MetricsService) RecordCommandError(title string) {
	commandErrors.WithLabelValues(title).Inc()
}

func (s *MetricsService) RecordMessageSent(status string) {
	messagesSent.WithLabelValues(status).Inc()
}

func (s *MetricsService) RecordMessageProcessingDuration(duration time.Duration) {
	messageProcessingDuration.Observe(duration.Seconds())
}

func (s *MetricsService) SetEmotion(name string, value int64) {
	emotionLevel.WithLabelValues(name).Set(float64(value))
}

func (s *MetricsService) SetBlacklistSize(count int) {
	blacklistSize.Set(float64(count))
}
