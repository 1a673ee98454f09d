package telegram

import (
	"fmt"
	"net/http"

	"pgbot/sources/configuration"
	"pgbot/sources/platform"
	"pgbot/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func NewBotAPI(log *tracing.Logger, config *configuration.Config, client *http.Client) (*tgbotapi.BotAPI, error) {
	if err := platform.ValidateTelegramBotToken(config.Telegram.BotToken); err != nil {
		log.E("Telegram bot token is invalid", tracing.InnerError, err)
		return nil, err
	}

	endpoint := tgbotapi.APIEndpoint
	if config.Telegram.APIEndpoint != "" {
		endpoint = config.Telegram.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(config.Telegram.BotToken, endpoint, client)
	if err != nil {
		log.E("Failed to initialize telegram bot", tracing.InnerError, err)
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	log.I("Telegram bot initialized", "bot_user", bot.Self.UserName, "custom_endpoint", config.Telegram.APIEndpoint != "")
	return bot, nil
}
