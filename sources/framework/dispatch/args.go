package dispatch

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"pgbot/sources/framework/commands"

	"github.com/shopspring/decimal"
)

// Args gives handlers typed access to the parsed arguments. Every failed
// coercion is an argument error carrying the help hint of the command.
type Args struct {
	positionals []commands.Value
	keywords    map[string]commands.Value
	hint        string
}

func NewArgs(positionals []commands.Value, keywords map[string]commands.Value, hint string) *Args {
	if keywords == nil {
		keywords = map[string]commands.Value{}
	}
	return &Args{positionals: positionals, keywords: keywords, hint: hint}
}

func (a *Args) Len() int {
	return len(a.positionals)
}

func (a *Args) Value(i int) (commands.Value, bool) {
	if i < 0 || i >= len(a.positionals) {
		return nil, false
	}
	return a.positionals[i], true
}

// Expect checks the number of positionals; most < 0 means unbounded.
func (a *Args) Expect(least, most int) error {
	n := len(a.positionals)
	if n < least {
		return argumentError(a.hint, "%d arguments were given, but at least %d expected", n, least)
	}
	if most >= 0 && n > most {
		return argumentError(a.hint, "Too many args were given (`%d`)", n)
	}
	return nil
}

// ExpectKeywords rejects keywords not in the allowed list.
func (a *Args) ExpectKeywords(allowed ...string) error {
	for _, name := range a.KeywordNames() {
		if !slices.Contains(allowed, name) {
			return argumentError(a.hint, "Received invalid keyword argument `%s`", name)
		}
	}
	return nil
}

func (a *Args) KeywordNames() []string {
	names := make([]string, 0, len(a.keywords))
	for name := range a.keywords {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (a *Args) at(i int) (commands.Value, error) {
	v, ok := a.Value(i)
	if !ok {
		return nil, argumentError(a.hint, "Missed required argument at index %d", i)
	}
	return v, nil
}

func (a *Args) Word(i int) (string, error) {
	v, err := a.at(i)
	if err != nil {
		return "", err
	}
	return asWord(v, fmt.Sprintf("argument at index %d", i), a.hint)
}

// Text accepts a bare word or a quoted string.
func (a *Args) Text(i int) (string, error) {
	v, err := a.at(i)
	if err != nil {
		return "", err
	}
	return asText(v, fmt.Sprintf("argument at index %d", i), a.hint)
}

func (a *Args) Int(i int) (int64, error) {
	v, err := a.at(i)
	if err != nil {
		return 0, err
	}
	return asInt(v, fmt.Sprintf("argument at index %d", i), a.hint)
}

func (a *Args) Decimal(i int) (decimal.Decimal, error) {
	v, err := a.at(i)
	if err != nil {
		return decimal.Zero, err
	}
	return asDecimal(v, fmt.Sprintf("argument at index %d", i), a.hint)
}

func (a *Args) Code(i int) (commands.FencedLiteral, error) {
	v, err := a.at(i)
	if err != nil {
		return commands.FencedLiteral{}, err
	}
	code, ok := v.(commands.FencedLiteral)
	if !ok {
		return commands.FencedLiteral{}, argumentError(a.hint,
			"The argument at index %d must be a codeblock, code surrounded in code ticks", i)
	}
	return code, nil
}

// Rest joins the words and strings from index i onwards with single spaces.
func (a *Args) Rest(i int) (string, error) {
	if i >= len(a.positionals) {
		return "", nil
	}
	parts := make([]string, 0, len(a.positionals)-i)
	for j := i; j < len(a.positionals); j++ {
		text, err := asText(a.positionals[j], fmt.Sprintf("argument at index %d", j), a.hint)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " "), nil
}

func (a *Args) KwText(name, def string) (string, error) {
	v, ok := a.keywords[name]
	if !ok {
		return def, nil
	}
	return asText(v, fmt.Sprintf("keyword `%s`", name), a.hint)
}

func (a *Args) KwBool(name string, def bool) (bool, error) {
	v, ok := a.keywords[name]
	if !ok {
		return def, nil
	}
	word, err := asWord(v, fmt.Sprintf("keyword `%s`", name), a.hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(word) {
	case "enable", "true", "yes", "on", "1":
		return true, nil
	case "disable", "false", "no", "off", "0":
		return false, nil
	}
	return false, argumentError(a.hint, "The keyword `%s` must be a boolean (yes/no, true/false, 1/0)", name)
}

func asWord(v commands.Value, what, hint string) (string, error) {
	word, ok := v.(commands.Word)
	if !ok {
		return "", argumentError(hint, "The %s must be a normal argument", what)
	}
	return string(word), nil
}

func asText(v commands.Value, what, hint string) (string, error) {
	switch v := v.(type) {
	case commands.Word:
		return string(v), nil
	case commands.QuotedLiteral:
		return v.Text, nil
	}
	return "", argumentError(hint, "The %s must be a normal argument or a string, surrounded in quotes", what)
}

func asInt(v commands.Value, what, hint string) (int64, error) {
	word, err := asWord(v, what, hint)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		return 0, argumentError(hint, "The %s must be an integer, got `%s`", what, word)
	}
	return n, nil
}

func asDecimal(v commands.Value, what, hint string) (decimal.Decimal, error) {
	word, err := asWord(v, what, hint)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(word)
	if err != nil {
		return decimal.Zero, argumentError(hint, "The %s must be a number, got `%s`", what, word)
	}
	return d, nil
}
