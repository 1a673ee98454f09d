package commands

import (
	"strings"
)

const (
	quoteDouble = '"'
	quoteSingle = '\''
	fence       = '`'
)

func isDelimiter(c byte) bool {
	return c == quoteDouble || c == quoteSingle || c == fence
}

func literalName(delim byte) string {
	if delim == fence {
		return "Code block"
	}
	return "String"
}

type tokenizer struct {
	raw    string
	pos    int
	start  int
	plain  strings.Builder
	tokens []Token
}

// Tokenize splits a raw command body into plain text fragments and literals.
// The spans of the returned tokens partition raw.
func Tokenize(raw string) ([]Token, error) {
	t := &tokenizer{raw: raw}

	for t.pos < len(raw) {
		c := raw[t.pos]

		switch {
		case c == '\\' && t.pos+1 < len(raw) && raw[t.pos+1] == '\\':
			t.plain.WriteString(`\\`)
			t.pos += 2
		case c == '\\' && t.pos+1 < len(raw) && isDelimiter(raw[t.pos+1]):
			t.plain.WriteByte(raw[t.pos+1])
			t.pos += 2
		case isDelimiter(c):
			t.flush()
			if err := t.literal(c); err != nil {
				return nil, err
			}
		default:
			t.plain.WriteByte(c)
			t.pos++
		}
	}

	t.flush()
	return t.tokens, nil
}

func (t *tokenizer) flush() {
	if t.pos > t.start {
		t.tokens = append(t.tokens, PlainText{Text: t.plain.String(), Span: Span{Start: t.start, End: t.pos}})
	}
	t.plain.Reset()
	t.start = t.pos
}

// literal scans one literal opened by delim at t.pos and appends it.
func (t *tokenizer) literal(delim byte) error {
	open := t.pos
	closer := string(delim)
	if strings.HasPrefix(t.raw[open:], strings.Repeat(closer, 3)) {
		closer = strings.Repeat(closer, 3)
	}
	multiline := len(closer) == 3
	bodyStart := open + len(closer)

	singleLine := func(at int) error {
		return newError(KindInvalidLiteralFormat, at, "",
			"%s cannot span multiple lines, use triple delimiters (%s) for multiline content",
			literalName(delim), strings.Repeat(string(delim), 3))
	}

	for i := bodyStart; i < len(t.raw); {
		switch c := t.raw[i]; {
		case c == '\\':
			// an escaped line break is still a line break
			if !multiline && i+1 < len(t.raw) && t.raw[i+1] == '\n' {
				return singleLine(i + 1)
			}
			i += 2
			continue
		case c == '\n' && !multiline:
			return singleLine(i)
		case strings.HasPrefix(t.raw[i:], closer):
			span := Span{Start: open, End: i + len(closer)}
			tok, err := makeLiteral(delim, multiline, t.raw[bodyStart:i], bodyStart, span)
			if err != nil {
				return err
			}
			t.tokens = append(t.tokens, tok)
			t.pos, t.start = span.End, span.End
			return nil
		}
		i++
	}

	return newError(KindUnterminatedLiteral, open, closer, "%s was not properly closed", literalName(delim))
}

func makeLiteral(delim byte, multiline bool, body string, offset int, span Span) (Token, error) {
	if delim != fence {
		text, err := Unescape(body, offset)
		if err != nil {
			return nil, err
		}
		return QuotedLiteral{Text: text, Quote: delim, Span: span}, nil
	}

	var lang string
	if multiline {
		if head, rest, ok := strings.Cut(body, "\n"); ok {
			lang = strings.ToLower(strings.TrimSpace(head))
			body = rest
		}
		body = strings.TrimSpace(body)
	}

	body = strings.TrimPrefix(body, `\`)
	body = strings.TrimSuffix(body, `\`)
	return FencedLiteral{Lang: lang, Body: body, Span: span}, nil
}
