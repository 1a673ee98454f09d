package dispatch

import (
	"context"
	"errors"
	"testing"

	"pgbot/sources/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlacklist struct {
	blocked map[string]bool
	err     error
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, command string) (bool, error) {
	return f.blocked[command], f.err
}

type fakeToggles map[string]bool

func (f fakeToggles) IsEnabledDefault(feature string, defaultValue bool) bool {
	if enabled, ok := f[feature]; ok {
		return enabled
	}
	return defaultValue
}

type recordingResponder struct {
	replies []string
	code    []string
	cards   []Card
}

func (r *recordingResponder) Reply(text string) error {
	r.replies = append(r.replies, text)
	return nil
}

func (r *recordingResponder) Code(_, text string) error {
	r.code = append(r.code, text)
	return nil
}

func (r *recordingResponder) Card(card Card) error {
	r.cards = append(r.cards, card)
	return nil
}

func TestDispatchCallsHandler(t *testing.T) {
	registry := NewRegistry("pg!")
	var got *Invocation
	registry.MustRegister(Route{Name: "echo", Handler: func(inv *Invocation) error {
		got = inv
		text, err := inv.Args.Rest(0)
		if err != nil {
			return err
		}
		return inv.Reply(text)
	}})

	responder := &recordingResponder{}
	dispatcher := NewDispatcher(registry, &fakeBlacklist{}, fakeToggles{})
	caller := Caller{UserID: 7, UserName: "user"}

	err := dispatcher.Dispatch(context.Background(), tracing.NewDiscardLogger(), mustParse(t, `echo hello "big world"`), caller, responder)
	require.NoError(t, err)

	assert.Equal(t, []string{"hello big world"}, responder.replies)
	require.NotNil(t, got)
	assert.Equal(t, caller, got.Caller)
	assert.Equal(t, "echo", got.Route.Path())
	assert.NotEmpty(t, got.ID.String())
	assert.Equal(t, "For help on this bot command, do `pg!help echo`", got.HelpHint())
}

func TestDispatchRejections(t *testing.T) {
	registry := NewRegistry("pg!")
	registry.MustRegister(
		Route{Name: "secret", Admin: true, Handler: noop},
		Route{Name: "fun", Feature: "commands/fun", Handler: noop},
		Route{Name: "broken", Handler: noop},
	)

	blacklist := &fakeBlacklist{blocked: map[string]bool{"broken": true, "secret": true}}
	toggles := fakeToggles{"commands/fun": false}
	dispatcher := NewDispatcher(registry, blacklist, toggles)
	log := tracing.NewDiscardLogger()

	tests := []struct {
		input    string
		caller   Caller
		sentinel error
	}{
		{"missing", Caller{}, ErrUnknownCommand},
		{"secret", Caller{}, ErrPermissionDenied},
		{"fun", Caller{Admin: true}, ErrCommandDisabled},
		{"broken", Caller{}, ErrBlacklisted},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := dispatcher.Dispatch(context.Background(), log, mustParse(t, tt.input), tt.caller, &recordingResponder{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v, got %v", tt.sentinel, err)

			var uerr *UserError
			assert.True(t, errors.As(err, &uerr))
		})
	}

	// admin routes are never blacklisted
	err := dispatcher.Dispatch(context.Background(), log, mustParse(t, "secret"), Caller{Admin: true}, &recordingResponder{})
	assert.NoError(t, err)
}

func TestDispatchBlacklistFailure(t *testing.T) {
	registry := NewRegistry("pg!").MustRegister(Route{Name: "say", Handler: noop})
	dispatcher := NewDispatcher(registry, &fakeBlacklist{err: errors.New("redis down")}, nil)

	err := dispatcher.Dispatch(context.Background(), tracing.NewDiscardLogger(), mustParse(t, "say"), Caller{}, &recordingResponder{})
	require.Error(t, err)

	var uerr *UserError
	assert.False(t, errors.As(err, &uerr))
	assert.Contains(t, err.Error(), "redis down")
}

func TestDispatchBlacklistedSubCommand(t *testing.T) {
	registry := NewRegistry("pg!").MustRegister(
		Route{Name: "tag", Group: []string{"add"}, Handler: noop},
		Route{Name: "tag", Group: []string{"show"}, Handler: noop},
	)
	blacklist := &fakeBlacklist{blocked: map[string]bool{"tag add": true}}
	dispatcher := NewDispatcher(registry, blacklist, nil)
	log := tracing.NewDiscardLogger()

	err := dispatcher.Dispatch(context.Background(), log, mustParse(t, "tag add x"), Caller{}, &recordingResponder{})
	assert.ErrorIs(t, err, ErrBlacklisted)

	err = dispatcher.Dispatch(context.Background(), log, mustParse(t, "tag show x"), Caller{}, &recordingResponder{})
	assert.NoError(t, err)
}
