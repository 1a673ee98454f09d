package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	"pgbot/sources/configuration"
	"pgbot/sources/features"
	"pgbot/sources/framework/commands"
	"pgbot/sources/framework/dispatch"
	"pgbot/sources/localization"
	"pgbot/sources/metrics"
	"pgbot/sources/repository"
	"pgbot/sources/throttler"
	"pgbot/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

type messenger interface {
	Reply(log *tracing.Logger, msg *tgbotapi.Message, text string) error
	Code(log *tracing.Logger, msg *tgbotapi.Message, lang, text string) error
	Card(log *tracing.Logger, msg *tgbotapi.Message, card dispatch.Card) error
}

type gate interface {
	IsAllowed(ctx context.Context, userId int64) bool
}

type moods interface {
	Update(ctx context.Context, name string, delta int64) (int64, error)
}

// footers of parser and dispatcher errors
var categoryMessages = map[string]string{
	"Literal Error":          "CategoryLiteralError",
	"Keyword argument Error": "CategoryKeywordError",
	"Argument Error":         "CategoryArgumentError",
	"Command Error":          "CategoryCommandError",
	"BotException":           "CategoryBotException",
}

var userErrorMessages = map[string]string{
	"Unrecognized command!":   "UserErrorUnknownCommand",
	"Invalid sub-command!":    "UserErrorInvalidSubCommand",
	"Permissions Error!":      "UserErrorPermissionDenied",
	"Cannot execute command!": "UserErrorCannotExecute",
	"Invalid Arguments!":      "UserErrorInvalidArgument",
	"Invalid timezone!":       "UserErrorInvalidTimezone",
}

var userErrorReasons = []struct {
	err    error
	reason string
}{
	{dispatch.ErrUnknownCommand, "unknown_command"},
	{dispatch.ErrPermissionDenied, "permission_denied"},
	{dispatch.ErrBlacklisted, "blacklisted"},
	{dispatch.ErrCommandDisabled, "disabled"},
	{dispatch.ErrInvalidArgument, "invalid_argument"},
}

type TelegramHandler struct {
	diplomat     messenger
	dispatcher   *dispatch.Dispatcher
	parser       *commands.Parser
	throttler    gate
	emotions     moods
	features     dispatch.Toggles
	localization *localization.LocalizationManager
	config       *configuration.Config
	metrics      *metrics.MetricsService
}

func NewTelegramHandler(
	diplomat *Diplomat,
	dispatcher *dispatch.Dispatcher,
	parser *commands.Parser,
	throttler *throttler.Throttler,
	emotions *repository.EmotionsRepository,
	fm *features.FeatureManager,
	localization *localization.LocalizationManager,
	config *configuration.Config,
	metrics *metrics.MetricsService,
) *TelegramHandler {
	return &TelegramHandler{
		diplomat:     diplomat,
		dispatcher:   dispatcher,
		parser:       parser,
		throttler:    throttler,
		emotions:     emotions,
		features:     fm,
		localization: localization,
		config:       config,
		metrics:      metrics,
	}
}

// CommandBody strips the configured prefix (matched case-insensitively) and
// reports whether text is a command at all.
func CommandBody(text, prefix string) (string, bool) {
	if prefix == "" || len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
		return "", false
	}
	return text[len(prefix):], true
}

func (x *TelegramHandler) HandleMessage(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message) error {
	defer tracing.ProfilePoint(log, "Telegram handler message completed", "telegram.handler.message")()

	started := time.Now()
	defer func() { x.metrics.RecordMessageProcessingDuration(time.Since(started)) }()

	if msg.From == nil || msg.From.IsBot {
		x.metrics.RecordMessageIgnored("bot")
		return nil
	}

	body, ok := CommandBody(strings.TrimLeft(msg.Text, " \t\n"), x.config.Commands.Prefix)
	if !ok {
		x.metrics.RecordMessageIgnored("not_command")
		return nil
	}

	log = log.With(tracing.InputLength, len(body))
	log.I("Got command message")

	loc := x.localization.Localizer(msg.From.LanguageCode)

	if !x.throttler.IsAllowed(ctx, msg.From.ID) {
		log.W("User exceeded rate throttler")
		x.metrics.RecordMessageIgnored("throttled")
		return x.diplomat.Card(log, msg, dispatch.Card{
			Title:       x.localization.LocalizeBy(msg, "ThrottledTitle"),
			Description: x.localization.LocalizeBy(msg, "ThrottledDescription"),
			Failure:     true,
		})
	}

	if limit := x.config.Commands.MaxInputLength; limit > 0 && len(body) > limit {
		log.W("Command body exceeds input limit", "limit", limit)
		x.metrics.RecordCommandError("input_too_long")
		x.feel(ctx, log, true)
		return x.diplomat.Card(log, msg, dispatch.Card{
			Title: x.localization.LocalizeBy(msg, "InputTooLongTitle"),
			Description: x.localization.LocalizeByTd(msg, "InputTooLongDescription", map[string]interface{}{
				"Length": len(body),
				"Limit":  limit,
			}),
			Footer:  x.localization.LocalizeOr(loc, "CategoryBotException", "BotException"),
			Failure: true,
		})
	}

	result, err := tracing.ReportExecutionForRE(log,
		func() (*commands.ParseResult, error) {
			return x.parser.Parse(body)
		},
		func(l *tracing.Logger) {
			l.D("Command body parsed")
		},
	)
	if err != nil {
		return x.fail(ctx, log, msg, loc, err)
	}

	log = log.With(
		tracing.CommandIssued, result.Command,
		tracing.PositionalCount, len(result.Positionals),
		tracing.KeywordCount, len(result.Keywords),
	)

	caller := dispatch.Caller{
		UserID:   msg.From.ID,
		UserName: msg.From.UserName,
		ChatID:   msg.Chat.ID,
		Admin:    x.config.IsAdmin(msg.From.ID),
		Language: msg.From.LanguageCode,
	}

	if err := x.dispatcher.Dispatch(ctx, log, result, caller, chatResponder{diplomat: x.diplomat, log: log, msg: msg}); err != nil {
		return x.fail(ctx, log, msg, loc, err)
	}

	x.metrics.RecordCommandUsed(strings.ToLower(result.Command))
	x.feel(ctx, log, false)
	log.I("Command completed")
	return nil
}

// fail renders a rejected command as a red card. Only unexpected errors are
// returned to the caller; user-facing rejections count as handled.
func (x *TelegramHandler) fail(ctx context.Context, log *tracing.Logger, msg *tgbotapi.Message, loc *i18n.Localizer, err error) error {
	x.feel(ctx, log, true)

	var perr *commands.ParseError
	var uerr *dispatch.UserError

	switch {
	case errors.As(err, &perr):
		log.W("Command rejected by parser", tracing.ParseErrorKind, perr.Kind.String(), tracing.InnerError, err)
		x.metrics.RecordParseError(perr.Kind.String())
		return x.diplomat.Card(log, msg, dispatch.Card{
			Title:       x.localization.LocalizeOr(loc, "ParseError"+perr.Kind.String(), perr.Title),
			Description: perr.Detail,
			Footer:      x.localizeCategory(loc, perr.Kind.Category()),
			Failure:     true,
		})

	case errors.As(err, &uerr):
		log.W("Command rejected", tracing.ErrorTitle, uerr.Title, tracing.InnerError, err)
		x.metrics.RecordCommandError(userErrorReason(uerr))
		title := uerr.Title
		if id, ok := userErrorMessages[uerr.Title]; ok {
			title = x.localization.LocalizeOr(loc, id, uerr.Title)
		}
		return x.diplomat.Card(log, msg, dispatch.Card{
			Title:       title,
			Description: uerr.Detail,
			Footer:      x.localizeCategory(loc, uerr.Footer),
			Failure:     true,
		})

	default:
		log.E("Command failed", tracing.InnerError, err)
		x.metrics.RecordCommandError("internal")
		card := dispatch.Card{
			Title:       x.localization.Localize(loc, "InternalErrorTitle"),
			Description: x.localization.Localize(loc, "InternalErrorDescription"),
			Footer:      x.localizeCategory(loc, "BotException"),
			Failure:     true,
		}
		if cerr := x.diplomat.Card(log, msg, card); cerr != nil {
			log.E("Failed to send error card", tracing.InnerError, cerr)
		}
		return err
	}
}

func (x *TelegramHandler) localizeCategory(loc *i18n.Localizer, category string) string {
	if id, ok := categoryMessages[category]; ok {
		return x.localization.LocalizeOr(loc, id, category)
	}
	return category
}

// feel moves the confused counter: up after a failed command, down after a good one.
func (x *TelegramHandler) feel(ctx context.Context, log *tracing.Logger, failed bool) {
	if !x.features.IsEnabledDefault(features.FeatureEmotionCounts, true) {
		return
	}

	delta := int64(-1)
	if failed {
		delta = 1
	}

	value, err := x.emotions.Update(ctx, repository.EmotionConfused, delta)
	if err != nil {
		log.W("Failed to update emotion", tracing.Emotion, repository.EmotionConfused, tracing.InnerError, err)
		return
	}
	log.D("Emotion changed", tracing.Emotion, repository.EmotionConfused, "value", value)
}

func userErrorReason(err *dispatch.UserError) string {
	for _, r := range userErrorReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "user_error"
}
