package commands

import (
	"sort"
	"strconv"
	"strings"
)

// Value is a parsed argument: Word, QuotedLiteral, FencedLiteral or Group.
type Value interface {
	// Source re-encodes the value as command text that parses back to it.
	Source() string
	value()
}

// Word is a bare whitespace-delimited word.
type Word string

// Group is a parenthesized tuple of values.
type Group []Value

func (Word) value()          {}
func (QuotedLiteral) value() {}
func (FencedLiteral) value() {}
func (Group) value()         {}

func (w Word) String() string {
	return string(w)
}

func (w Word) Source() string {
	var b strings.Builder
	for i := 0; i < len(w); i++ {
		if isDelimiter(w[i]) {
			b.WriteByte('\\')
		}
		b.WriteByte(w[i])
	}
	return b.String()
}

func (q QuotedLiteral) String() string {
	return strconv.Quote(q.Text)
}

func (q QuotedLiteral) Source() string {
	return `"` + Escape(q.Text) + `"`
}

func (f FencedLiteral) String() string {
	if f.Lang != "" {
		return "code[" + f.Lang + "](" + strconv.Quote(f.Body) + ")"
	}
	return "code(" + strconv.Quote(f.Body) + ")"
}

// Source prefers an inline fence and falls back to a block. The closer of a
// block goes on its own line so a body ending in a backtick stays intact.
func (f FencedLiteral) Source() string {
	block := "```" + f.Lang + "\n" + f.Body + "\n```"
	if inline := "`" + f.Body + "`"; f.Lang == "" && f.encodedBy(inline) {
		return inline
	}
	return block
}

func (f FencedLiteral) encodedBy(src string) bool {
	tokens, err := Tokenize(src)
	if err != nil || len(tokens) != 1 {
		return false
	}
	got, ok := tokens[0].(FencedLiteral)
	return ok && got.Lang == f.Lang && got.Body == f.Body
}

func (g Group) String() string {
	parts := make([]string, len(g))
	for i, v := range g {
		parts[i] = describe(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (g Group) Source() string {
	parts := make([]string, len(g))
	for i, v := range g {
		parts[i] = v.Source()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func describe(v Value) string {
	switch v := v.(type) {
	case Word:
		return v.String()
	case QuotedLiteral:
		return v.String()
	case FencedLiteral:
		return v.String()
	case Group:
		return v.String()
	default:
		return "?"
	}
}

// ParseResult is the outcome of parsing one command body.
type ParseResult struct {
	Command     string
	Positionals []Value
	Keywords    map[string]Value
}

// KeywordNames returns the keyword names in lexical order.
func (r *ParseResult) KeywordNames() []string {
	names := make([]string, 0, len(r.Keywords))
	for name := range r.Keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source rebuilds a command body equivalent to the parsed one.
func (r *ParseResult) Source() string {
	parts := []string{r.Command}
	for _, v := range r.Positionals {
		parts = append(parts, v.Source())
	}
	for _, name := range r.KeywordNames() {
		parts = append(parts, name+"="+r.Keywords[name].Source())
	}
	return strings.Join(parts, " ")
}

func (r *ParseResult) String() string {
	var b strings.Builder
	b.WriteString("command: ")
	b.WriteString(r.Command)
	b.WriteString("\npositionals: [")
	for i, v := range r.Positionals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(describe(v))
	}
	b.WriteString("]\nkeywords: {")
	for i, name := range r.KeywordNames() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(describe(r.Keywords[name]))
	}
	b.WriteString("}")
	return b.String()
}
