package telegram

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"pgbot/sources/configuration"
	"pgbot/sources/framework/commands"
	"pgbot/sources/framework/dispatch"
	"pgbot/sources/localization"
	"pgbot/sources/metrics"
	"pgbot/sources/repository"
	"pgbot/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const adminID = 1

var clockNow = time.Date(2024, time.March, 2, 10, 30, 15, 0, time.UTC)

type recordingMessenger struct {
	replies []string
	code    []string
	langs   []string
	cards   []dispatch.Card
}

func (m *recordingMessenger) Reply(_ *tracing.Logger, _ *tgbotapi.Message, text string) error {
	m.replies = append(m.replies, text)
	return nil
}

func (m *recordingMessenger) Code(_ *tracing.Logger, _ *tgbotapi.Message, lang, text string) error {
	m.code = append(m.code, text)
	m.langs = append(m.langs, lang)
	return nil
}

func (m *recordingMessenger) Card(_ *tracing.Logger, _ *tgbotapi.Message, card dispatch.Card) error {
	m.cards = append(m.cards, card)
	return nil
}

type fakeGate struct{ deny bool }

func (g *fakeGate) IsAllowed(context.Context, int64) bool {
	return !g.deny
}

type fakeMoods struct {
	value  int64
	deltas []int64
}

func (m *fakeMoods) Update(_ context.Context, _ string, delta int64) (int64, error) {
	m.deltas = append(m.deltas, delta)
	m.value = min(max(m.value+delta, repository.EmotionFloor), repository.EmotionCeiling)
	return m.value, nil
}

func (m *fakeMoods) All(context.Context) ([]repository.Emotion, error) {
	if len(m.deltas) == 0 {
		return nil, nil
	}
	return []repository.Emotion{{Name: repository.EmotionConfused, Value: m.value}}, nil
}

type brokenMoods struct{}

func (brokenMoods) All(context.Context) ([]repository.Emotion, error) {
	return nil, errors.New("redis down")
}

func (brokenMoods) Update(context.Context, string, int64) (int64, error) {
	return 0, errors.New("redis down")
}

type memoryBlacklist struct {
	commands []string
}

func (b *memoryBlacklist) IsBlacklisted(_ context.Context, command string) (bool, error) {
	return slices.Contains(b.commands, command), nil
}

func (b *memoryBlacklist) Add(_ context.Context, command string) (bool, error) {
	if slices.Contains(b.commands, command) {
		return false, nil
	}
	b.commands = append(b.commands, command)
	return true, nil
}

func (b *memoryBlacklist) Remove(_ context.Context, command string) (bool, error) {
	i := slices.Index(b.commands, command)
	if i < 0 {
		return false, nil
	}
	b.commands = slices.Delete(b.commands, i, i+1)
	return true, nil
}

func (b *memoryBlacklist) List(context.Context) ([]string, error) {
	if len(b.commands) == 0 {
		return nil, nil
	}
	sorted := slices.Clone(b.commands)
	slices.Sort(sorted)
	return sorted, nil
}

type fakeToggles map[string]bool

func (f fakeToggles) IsEnabledDefault(feature string, defaultValue bool) bool {
	if enabled, ok := f[feature]; ok {
		return enabled
	}
	return defaultValue
}

type harness struct {
	handler   *TelegramHandler
	builtins  *Builtins
	out       *recordingMessenger
	gate      *fakeGate
	moods     *fakeMoods
	blacklist *memoryBlacklist
	toggles   fakeToggles
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := tracing.NewDiscardLogger()
	loc, err := localization.NewLocalizationManager(&localization.LocalizationConfig{
		DefaultLanguage:    "en",
		SupportedLanguages: []string{"en", "ru"},
	}, log)
	require.NoError(t, err)

	config := &configuration.Config{
		Telegram: configuration.TelegramConfig{Admins: []int64{adminID}},
		Commands: configuration.CommandsConfig{Prefix: "pg!", Fallback: "help", MaxInputLength: 64},
	}

	h := &harness{
		out:       &recordingMessenger{},
		gate:      &fakeGate{},
		moods:     &fakeMoods{},
		blacklist: &memoryBlacklist{},
		toggles:   fakeToggles{},
	}
	h.builtins = &Builtins{
		emotions:     h.moods,
		blacklist:    h.blacklist,
		localization: loc,
		config:       &BuiltinsConfig{ClockOffset: decimal.Zero},
		now:          func() time.Time { return clockNow },
	}

	registry := dispatch.NewRegistry(config.Commands.Prefix).MustRegister(h.builtins.Routes()...)

	h.handler = &TelegramHandler{
		diplomat:     h.out,
		dispatcher:   dispatch.NewDispatcher(registry, h.blacklist, h.toggles),
		parser:       commands.NewParser(config.Commands.Fallback),
		throttler:    h.gate,
		emotions:     h.moods,
		features:     h.toggles,
		localization: loc,
		config:       config,
		metrics:      metrics.NewMetricsService(log),
	}
	return h
}

func (h *harness) send(t *testing.T, userID int64, lang, text string) error {
	t.Helper()
	msg := &tgbotapi.Message{
		MessageID: 10,
		From:      &tgbotapi.User{ID: userID, UserName: "tester", LanguageCode: lang},
		Chat:      &tgbotapi.Chat{ID: 100, Type: "private"},
		Text:      text,
	}
	return h.handler.HandleMessage(context.Background(), tracing.NewDiscardLogger(), msg)
}

func (h *harness) lastCard(t *testing.T) dispatch.Card {
	t.Helper()
	require.NotEmpty(t, h.out.cards, "no card was sent")
	return h.out.cards[len(h.out.cards)-1]
}
