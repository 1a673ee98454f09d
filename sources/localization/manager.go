package localization

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pgbot/sources/tracing"

	"github.com/BurntSushi/toml"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localesFS embed.FS

// Telegram clients report regional languages we have no catalog for; these read Russian comfortably.
var languageAliases = map[string]string{
	"uk": "ru",
	"be": "ru",
	"kk": "ru",
}

type LocalizationManager struct {
	bundle  *i18n.Bundle
	matcher language.Matcher
	tags    []language.Tag
	config  *LocalizationConfig
	log     *tracing.Logger
	locbuff sync.Map
}

func NewLocalizationManager(config *LocalizationConfig, log *tracing.Logger) (*LocalizationManager, error) {
	defaultTag, err := language.Parse(config.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("parse default language %q: %w", config.DefaultLanguage, err)
	}

	bundle := i18n.NewBundle(defaultTag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	tags := []language.Tag{defaultTag}
	for _, lang := range config.SupportedLanguages {
		filename := fmt.Sprintf("locales/active.%s.toml", lang)

		data, err := localesFS.ReadFile(filename)
		if err != nil {
			log.E("Failed to read locale file", "filename", filename, tracing.InnerError, err)
			return nil, fmt.Errorf("failed to read locale file %s: %w", filename, err)
		}

		file, err := bundle.ParseMessageFileBytes(data, filename)
		if err != nil {
			log.E("Failed to parse locale file", "filename", filename, tracing.InnerError, err)
			return nil, fmt.Errorf("failed to parse locale file %s: %w", filename, err)
		}

		if file.Tag != defaultTag {
			tags = append(tags, file.Tag)
		}
		log.I("Loaded locale file", "filename", filename, "messages", len(file.Messages))
	}

	log.I("LocalizationManager initialized successfully", "default", defaultTag.String())
	return &LocalizationManager{
		bundle:  bundle,
		matcher: language.NewMatcher(tags),
		tags:    tags,
		config:  config,
		log:     log,
	}, nil
}

// Resolve maps a Telegram language code ("en-US", "uk", "") to the best supported catalog.
func (x *LocalizationManager) Resolve(languageCode string) string {
	code := strings.ToLower(strings.TrimSpace(languageCode))
	if code == "" {
		return x.config.DefaultLanguage
	}

	base, _, _ := strings.Cut(strings.ReplaceAll(code, "_", "-"), "-")
	if alias, ok := languageAliases[base]; ok {
		code = alias
	}

	_, index, confidence := x.matcher.Match(language.Make(code))
	if confidence == language.No {
		return x.config.DefaultLanguage
	}

	matched, _ := x.tags[index].Base()
	return matched.String()
}

func (x *LocalizationManager) Localizer(languageCode string) *i18n.Localizer {
	lang := x.Resolve(languageCode)
	if cached, ok := x.locbuff.Load(lang); ok {
		return cached.(*i18n.Localizer)
	}

	localizer := i18n.NewLocalizer(x.bundle, lang, x.config.DefaultLanguage)
	x.locbuff.Store(lang, localizer)
	return localizer
}

func (x *LocalizationManager) Localize(localizer *i18n.Localizer, messageID string) string {
	return x.LocalizeTd(localizer, messageID, nil)
}

func (x *LocalizationManager) LocalizeTd(localizer *i18n.Localizer, messageID string, templateData map[string]interface{}) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: templateData})
	if err != nil {
		x.log.E("Failed to localize message", "message_id", messageID, tracing.InnerError, err)
		return messageID
	}

	return msg
}

// LocalizeOr returns fallback when no catalog knows messageID.
func (x *LocalizationManager) LocalizeOr(localizer *i18n.Localizer, messageID, fallback string) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if !errors.As(err, &notFound) {
			x.log.W("Failed to localize message", "message_id", messageID, tracing.InnerError, err)
		}
		return fallback
	}

	return msg
}

func (x *LocalizationManager) LocalizeBy(msg *tgbotapi.Message, messageID string) string {
	return x.LocalizeByTd(msg, messageID, nil)
}

func (x *LocalizationManager) LocalizeByTd(msg *tgbotapi.Message, messageID string, templateData map[string]interface{}) string {
	return x.LocalizeTd(x.Localizer(languageOf(msg)), messageID, templateData)
}

func languageOf(msg *tgbotapi.Message) string {
	if msg == nil || msg.From == nil {
		return ""
	}
	return msg.From.LanguageCode
}
