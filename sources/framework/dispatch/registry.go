package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"pgbot/sources/framework/commands"
)

type Handler func(inv *Invocation) error

// Route binds a command name, optionally followed by sub-command words, to a
// handler.
type Route struct {
	Name    string
	Group   []string
	Usage   string
	Help    string
	Admin   bool
	Feature string
	Handler Handler
}

// Path is the full invocation of the route, e.g. "blacklist add".
func (r *Route) Path() string {
	if len(r.Group) == 0 {
		return r.Name
	}
	return r.Name + " " + strings.Join(r.Group, " ")
}

func (r *Route) matches(positionals []commands.Value) bool {
	if len(positionals) < len(r.Group) {
		return false
	}
	for i, sub := range r.Group {
		word, ok := positionals[i].(commands.Word)
		if !ok || !strings.EqualFold(string(word), sub) {
			return false
		}
	}
	return true
}

type Registry struct {
	prefix string
	routes map[string][]*Route
}

func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		routes: make(map[string][]*Route),
	}
}

func (x *Registry) Prefix() string {
	return x.prefix
}

func (x *Registry) Register(route Route) error {
	if route.Name == "" || strings.ContainsAny(route.Name, " \t\n=()\"'`") {
		return fmt.Errorf("register route %q: invalid command name", route.Name)
	}
	if route.Handler == nil {
		return fmt.Errorf("register route %q: handler is nil", route.Path())
	}

	name := strings.ToLower(route.Name)
	for _, existing := range x.routes[name] {
		if strings.EqualFold(existing.Path(), route.Path()) {
			return fmt.Errorf("register route %q: already registered", route.Path())
		}
	}

	r := route
	r.Name = name
	routes := append(x.routes[name], &r)
	// longest sub-command chains are tried first
	sort.SliceStable(routes, func(i, j int) bool {
		return len(routes[i].Group) > len(routes[j].Group)
	})
	x.routes[name] = routes
	return nil
}

func (x *Registry) MustRegister(routes ...Route) *Registry {
	for _, route := range routes {
		if err := x.Register(route); err != nil {
			panic(err)
		}
	}
	return x
}

// Lookup returns every route registered under a command name.
func (x *Registry) Lookup(name string) []*Route {
	return x.routes[strings.ToLower(name)]
}

// Routes returns all routes ordered by path.
func (x *Registry) Routes() []*Route {
	var all []*Route
	for _, routes := range x.routes {
		all = append(all, routes...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Path() < all[j].Path()
	})
	return all
}

// UnknownCommand is the rejection for a name nothing is registered under.
func (x *Registry) UnknownCommand(name string) *UserError {
	return unknownCommand(name, x.prefix)
}

// Resolve picks the route for a parse result and returns the positionals left
// after the sub-command words.
func (x *Registry) Resolve(result *commands.ParseResult) (*Route, []commands.Value, error) {
	routes := x.Lookup(result.Command)
	if len(routes) == 0 {
		return nil, nil, unknownCommand(result.Command, x.prefix)
	}

	for _, route := range routes {
		if route.matches(result.Positionals) {
			return route, result.Positionals[len(route.Group):], nil
		}
	}

	paths := make([]string, 0, len(routes))
	for _, route := range routes {
		paths = append(paths, "`"+x.prefix+route.Path()+"`")
	}
	return nil, nil, &UserError{
		Title:  "Invalid sub-command!",
		Detail: fmt.Sprintf("The command '%s' must be used as one of: %s", result.Command, strings.Join(paths, ", ")),
		Footer: "BotException",
		Err:    ErrUnknownCommand,
	}
}
