package telegram

import (
	"strings"

	"pgbot/sources/framework/dispatch"
	"pgbot/sources/metrics"
	"pgbot/sources/texting"
	"pgbot/sources/texting/transform"
	"pgbot/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	cardMarkerFailure = "🟥"
	cardMarkerInfo    = "🟦"
	// room left in a chunk for the markup wrapped around a card or code block
	markupReserve = 256
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Diplomat owns every outgoing message; replies are MarkdownV2 and split into chunks.
type Diplomat struct {
	bot     sender
	config  *DiplomatConfig
	metrics *metrics.MetricsService
}

func NewDiplomat(bot *tgbotapi.BotAPI, config *DiplomatConfig, metrics *metrics.MetricsService) *Diplomat {
	return &Diplomat{bot: bot, config: config, metrics: metrics}
}

func (x *Diplomat) Reply(logger *tracing.Logger, msg *tgbotapi.Message, text string) error {
	defer tracing.ProfilePoint(logger, "Diplomat reply completed", "diplomat.reply")()

	for _, chunk := range transform.Chunks(text, x.config.ChunkSize-markupReserve) {
		if err := x.send(logger, msg, texting.EscapeInline(chunk)); err != nil {
			return err
		}
	}
	return nil
}

func (x *Diplomat) Code(logger *tracing.Logger, msg *tgbotapi.Message, lang, text string) error {
	defer tracing.ProfilePoint(logger, "Diplomat code completed", "diplomat.code")()

	for _, chunk := range transform.Chunks(text, x.config.ChunkSize-markupReserve) {
		if err := x.send(logger, msg, texting.CodeBlock(lang, chunk)); err != nil {
			return err
		}
	}
	return nil
}

func (x *Diplomat) Card(logger *tracing.Logger, msg *tgbotapi.Message, card dispatch.Card) error {
	defer tracing.ProfilePoint(logger, "Diplomat card completed", "diplomat.card", "failure", card.Failure)()

	if limit := x.config.ChunkSize - markupReserve; limit > 0 {
		if chunks := transform.Chunks(card.Description, limit); len(chunks) > 1 {
			card.Description = chunks[0] + "…"
		}
	}
	return x.send(logger, msg, RenderCard(card))
}

func (x *Diplomat) send(logger *tracing.Logger, msg *tgbotapi.Message, body string) error {
	chattable := tgbotapi.NewMessage(msg.Chat.ID, body)
	chattable.ReplyToMessageID = msg.MessageID
	chattable.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := x.bot.Send(chattable); err != nil {
		logger.E("Message chunk sending error", tracing.InnerError, err)
		x.metrics.RecordMessageSent("error")
		return err
	}
	x.metrics.RecordMessageSent("success")
	return nil
}

// RenderCard lays a card out as a MarkdownV2 message: marker and bold title,
// description with inline code kept, italic footer.
func RenderCard(card dispatch.Card) string {
	marker := cardMarkerInfo
	if card.Failure {
		marker = cardMarkerFailure
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(" ")
	b.WriteString(texting.Bold(card.Title))
	if card.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(texting.EscapeInline(card.Description))
	}
	if card.Footer != "" {
		b.WriteString("\n\n")
		b.WriteString(texting.Italic(card.Footer))
	}
	return b.String()
}

type chatResponder struct {
	diplomat messenger
	log      *tracing.Logger
	msg      *tgbotapi.Message
}

func (r chatResponder) Reply(text string) error {
	return r.diplomat.Reply(r.log, r.msg, text)
}

func (r chatResponder) Code(lang, text string) error {
	return r.diplomat.Code(r.log, r.msg, lang, text)
}

func (r chatResponder) Card(card dispatch.Card) error {
	return r.diplomat.Card(r.log, r.msg, card)
}
