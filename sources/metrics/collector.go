package metrics

import (
	"context"
	"time"

	"pgbot/sources/repository"
	"pgbot/sources/tracing"

	"go.uber.org/fx"
)

const collectInterval = time.Minute

// StatsCollector mirrors redis-held state into gauges once a minute.
type StatsCollector struct {
	log       *tracing.Logger
	metrics   *MetricsService
	emotions  *repository.EmotionsRepository
	blacklist *repository.BlacklistRepository
	stop      chan struct{}
}

func NewStatsCollector(
	lc fx.Lifecycle,
	log *tracing.Logger,
	metrics *MetricsService,
	emotions *repository.EmotionsRepository,
	blacklist *repository.BlacklistRepository,
) *StatsCollector {
	s := &StatsCollector{
		log:       log,
		metrics:   metrics,
		emotions:  emotions,
		blacklist: blacklist,
		stop:      make(chan struct{}),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go s.start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(s.stop)
			return nil
		},
	})

	return s
}

func (s *StatsCollector) start() {
	ticker := time.NewTicker(collectInterval)
	defer ticker.Stop()

	s.collect()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.collect()
		}
	}
}

func (s *StatsCollector) collect() {
	tracing.ReportExecution(s.log, s.collectStats, func(l *tracing.Logger) {
		l.D("Stats collected")
	})
}

func (s *StatsCollector) collectStats() {
	ctx := context.Background()

	if emotions, err := s.emotions.All(ctx); err == nil {
		for _, emotion := range emotions {
			s.metrics.SetEmotion(emotion.Name, emotion.Value)
		}
	} else {
		s.log.E("Failed to collect emotion stats", tracing.InnerError, err)
	}

	if commands, err := s.blacklist.List(ctx); err == nil {
		s.metrics.SetBlacklistSize(len(commands))
	} else {
		s.log.E("Failed to collect blacklist stats", tracing.InnerError, err)
	}
}
