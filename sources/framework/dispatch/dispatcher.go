package dispatch

import (
	"context"
	"fmt"

	"pgbot/sources/framework/commands"
	"pgbot/sources/tracing"

	"github.com/google/uuid"
)

// Caller identifies who issued a command.
type Caller struct {
	UserID   int64
	UserName string
	ChatID   int64
	Admin    bool
	// Language is the client language code as reported by the chat platform.
	Language string
}

// Card is a structured reply: a title, a body and a small footer line.
type Card struct {
	Title       string
	Description string
	Footer      string
	Failure     bool
}

type Responder interface {
	Reply(text string) error
	// Code sends text verbatim as a preformatted block.
	Code(lang, text string) error
	Card(card Card) error
}

type Blacklist interface {
	IsBlacklisted(ctx context.Context, command string) (bool, error)
}

type Toggles interface {
	IsEnabledDefault(feature string, defaultValue bool) bool
}

type Invocation struct {
	Context   context.Context
	ID        uuid.UUID
	Route     *Route
	Result    *commands.ParseResult
	Args      *Args
	Caller    Caller
	Registry  *Registry
	Log       *tracing.Logger
	responder Responder
}

func (i *Invocation) Reply(text string) error {
	return i.responder.Reply(text)
}

func (i *Invocation) Code(lang, text string) error {
	return i.responder.Code(lang, text)
}

func (i *Invocation) Card(card Card) error {
	return i.responder.Card(card)
}

// HelpHint is appended to argument errors of the invoked command.
func (i *Invocation) HelpHint() string {
	return helpHint(i.Registry.Prefix(), i.Route.Name)
}

func helpHint(prefix, name string) string {
	return fmt.Sprintf("For help on this bot command, do `%shelp %s`", prefix, name)
}

type Dispatcher struct {
	registry  *Registry
	blacklist Blacklist
	toggles   Toggles
}

func NewDispatcher(registry *Registry, blacklist Blacklist, toggles Toggles) *Dispatcher {
	return &Dispatcher{registry: registry, blacklist: blacklist, toggles: toggles}
}

func (x *Dispatcher) Registry() *Registry {
	return x.registry
}

// Dispatch resolves the route of a parse result, runs the access checks and
// calls the handler.
func (x *Dispatcher) Dispatch(ctx context.Context, log *tracing.Logger, result *commands.ParseResult, caller Caller, responder Responder) error {
	route, rest, err := x.registry.Resolve(result)
	if err != nil {
		return err
	}

	if route.Admin && !caller.Admin {
		return &UserError{
			Title:  "Permissions Error!",
			Detail: fmt.Sprintf("The command '%s' is an admin command, and you do not have access to that", route.Path()),
			Footer: "BotException",
			Err:    ErrPermissionDenied,
		}
	}

	if route.Feature != "" && x.toggles != nil && !x.toggles.IsEnabledDefault(route.Feature, true) {
		return &UserError{
			Title:  "Cannot execute command!",
			Detail: fmt.Sprintf("The command '%s' is currently disabled", route.Path()),
			Footer: "BotException",
			Err:    ErrCommandDisabled,
		}
	}

	if !route.Admin && x.blacklist != nil {
		if err := x.checkBlacklist(ctx, route); err != nil {
			return err
		}
	}

	id := uuid.New()
	inv := &Invocation{
		Context:   ctx,
		ID:        id,
		Route:     route,
		Result:    result,
		Args:      NewArgs(rest, result.Keywords, helpHint(x.registry.Prefix(), route.Name)),
		Caller:    caller,
		Registry:  x.registry,
		Log:       log.With(tracing.InvocationId, id.String(), tracing.CommandRoute, route.Path()),
		responder: responder,
	}

	inv.Log.D("Dispatching command", tracing.PositionalCount, inv.Args.Len(), tracing.KeywordCount, len(result.Keywords))
	return route.Handler(inv)
}

// checkBlacklist rejects a route blocked either by command name or by its full path.
func (x *Dispatcher) checkBlacklist(ctx context.Context, route *Route) error {
	targets := []string{route.Name}
	if len(route.Group) > 0 {
		targets = append(targets, route.Path())
	}

	for _, target := range targets {
		blocked, err := x.blacklist.IsBlacklisted(ctx, target)
		if err != nil {
			return fmt.Errorf("check blacklist for %q: %w", target, err)
		}
		if blocked {
			return &UserError{
				Title: "Cannot execute command!",
				Detail: fmt.Sprintf("The command '%s' has been temporarily blocked from running, "+
					"while wizards are casting their spells on it!\n"+
					"Please try running the command after the maintenance work has been finished", target),
				Footer: "BotException",
				Err:    ErrBlacklisted,
			}
		}
	}
	return nil
}
