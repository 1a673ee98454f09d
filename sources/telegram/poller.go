package telegram

import (
	"context"

	"pgbot/sources/metrics"
	"pgbot/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Poller struct {
	bot     *tgbotapi.BotAPI
	log     *tracing.Logger
	config  *PollerConfig
	handler *TelegramHandler
	metrics *metrics.MetricsService
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewPoller(bot *tgbotapi.BotAPI, log *tracing.Logger, handler *TelegramHandler, config *PollerConfig, metrics *metrics.MetricsService) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{bot: bot, log: log, handler: handler, config: config, metrics: metrics, ctx: ctx, cancel: cancel}
}

func (x *Poller) Start() {
	update := tgbotapi.NewUpdate(0)
	update.Timeout = x.config.Timeout
	update.AllowedUpdates = x.config.AllowedUpdates

	for update := range x.bot.GetUpdatesChan(update) {
		msg := update.Message
		if msg == nil {
			continue
		}

		log := x.log.With(
			tracing.ChatType, msg.Chat.Type,
			tracing.ChatId, msg.Chat.ID,
			tracing.MessageId, msg.MessageID,
			tracing.MessageDate, msg.Date,
		)
		if user := update.SentFrom(); user != nil {
			log = log.With(tracing.UserId, user.ID, tracing.UserName, user.UserName)
		}

		if err := x.handler.HandleMessage(x.ctx, log, msg); err != nil {
			log.E("Message handling failed", tracing.InnerError, err)
			x.metrics.RecordMessageHandled("error")
			continue
		}

		x.metrics.RecordMessageHandled("success")
		log.D("Message handled")
	}
}

func (x *Poller) Stop() {
	x.cancel()
	x.bot.StopReceivingUpdates()
}
