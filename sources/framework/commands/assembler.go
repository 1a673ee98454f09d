package commands

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Applied in order: commas are treated as spaces and tuples may start right
// after '='.
var normalizations = [][2]string{
	{" =", "="},
	{",", " "},
	{")(", ") ("},
	{"=(", "= ("},
}

// assembler holds the grouping state machine. Every transition either
// updates the state or fails; nothing is shared between parse calls.
type assembler struct {
	positionals []Value
	keywords    map[string]Value
	groups      []Group
	pending     string
	kwStarted   bool
}

func newAssembler() *assembler {
	return &assembler{
		positionals: make([]Value, 0),
		keywords:    make(map[string]Value),
	}
}

// Assemble builds the parse result out of a token sequence. fallback is the
// command name used when the tokens carry no arguments at all.
func Assemble(tokens []Token, fallback string) (*ParseResult, error) {
	a := newAssembler()

	for _, tok := range tokens {
		var err error
		switch tok := tok.(type) {
		case PlainText:
			for _, word := range splitWords(tok.Text) {
				if err = a.word(word, tok.Span.Start); err != nil {
					break
				}
			}
		case QuotedLiteral:
			offset := tok.Span.Start
			tok.Span = Span{}
			err = a.append(tok, offset)
		case FencedLiteral:
			offset := tok.Span.Start
			tok.Span = Span{}
			err = a.append(tok, offset)
		}
		if err != nil {
			return nil, err
		}
	}

	return a.finish(fallback)
}

// splitWords normalizes spacing around '=', ',' and parentheses, then splits
// on whitespace.
func splitWords(text string) []string {
	for _, n := range normalizations {
		text = strings.ReplaceAll(text, n[0], n[1])
	}
	return strings.Fields(text)
}

func (a *assembler) word(w string, offset int) error {
	switch strings.Count(w, "=") {
	case 0:
		return a.plain(w, offset)
	case 1:
		return a.keyword(w, offset)
	default:
		return newError(KindMalformedKeywordAssignment, offset, w,
			"Invalid number of '=' in keyword argument expression `%s`", w)
	}
}

func (a *assembler) keyword(w string, offset int) error {
	name, value, _ := strings.Cut(w, "=")

	if len(a.groups) > 0 {
		return newError(KindKeywordInsideGroup, offset, w, "Keyword arguments cannot come inside a tuple")
	}

	if name == "" {
		return newError(KindInvalidKeywordName, offset, w, "Missing keyword before '=' symbol")
	}

	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsLetter(r) {
		return newError(KindInvalidKeywordName, offset, w,
			"Keyword argument `%s` must begin with an alphabet", name)
	}

	if a.pending != "" {
		return newError(KindMissingKeywordValue, offset, a.pending,
			"Did not specify argument after '=' for `%s`", a.pending)
	}

	a.kwStarted = true
	a.pending = name

	if value != "" {
		return a.append(Word(value), offset)
	}
	return nil
}

func (a *assembler) plain(w string, offset int) error {
	for strings.HasPrefix(w, "(") {
		a.groups = append(a.groups, Group{})
		w = w[1:]
	}

	residual := strings.TrimRight(w, ")")
	if residual != "" {
		if err := a.append(Word(residual), offset); err != nil {
			return err
		}
	}

	for i, n := 0, len(w)-len(residual); i < n; i++ {
		if err := a.close(offset); err != nil {
			return err
		}
	}
	return nil
}

func (a *assembler) close(offset int) error {
	n := len(a.groups)
	if n == 0 {
		return newError(KindUnmatchedGroupClose, offset, ")", "Invalid closing tuple bracket")
	}

	group := a.groups[n-1]
	a.groups = a.groups[:n-1]
	return a.append(group, offset)
}

func (a *assembler) append(v Value, offset int) error {
	if n := len(a.groups); n > 0 {
		a.groups[n-1] = append(a.groups[n-1], v)
		return nil
	}

	if a.pending != "" {
		a.keywords[a.pending] = v
		a.pending = ""
		return nil
	}

	if a.kwStarted {
		return newError(KindKeywordBeforePositional, offset, v.Source(),
			"Keyword arguments cannot come before positional arguments")
	}

	a.positionals = append(a.positionals, v)
	return nil
}

func (a *assembler) finish(fallback string) (*ParseResult, error) {
	if len(a.groups) > 0 {
		return nil, newError(KindUnclosedGroup, -1, "", "Tuple was not closed")
	}

	if a.pending != "" {
		return nil, newError(KindMissingKeywordValue, -1, a.pending,
			"Did not specify argument after '=' for `%s`", a.pending)
	}

	if len(a.positionals) == 0 {
		if len(a.keywords) > 0 {
			return nil, newError(KindInvalidCommandName, -1, "",
				"Command name must be given before keyword arguments")
		}
		return &ParseResult{Command: fallback, Positionals: a.positionals, Keywords: a.keywords}, nil
	}

	command, ok := a.positionals[0].(Word)
	if !ok {
		return nil, newError(KindInvalidCommandName, -1, a.positionals[0].Source(),
			"Command name must be a plain word, not a string, code block or tuple")
	}

	return &ParseResult{
		Command:     string(command),
		Positionals: a.positionals[1:],
		Keywords:    a.keywords,
	}, nil
}
