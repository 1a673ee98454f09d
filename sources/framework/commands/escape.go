package commands

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var escapes = map[byte]rune{
	'0':  0,
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'b':  '\b',
	'f':  '\f',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'`':  '`',
}

var hexEscapes = map[byte]int{
	'x': 2,
	'u': 4,
	'U': 8,
}

// Unescape decodes the escape sequences of a quoted literal body. offset is the
// position of text in the raw command body and only feeds error reporting.
func Unescape(text string, offset int) (string, error) {
	if !strings.ContainsRune(text, '\\') {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		if text[i] != '\\' {
			b.WriteByte(text[i])
			continue
		}

		if i+1 >= len(text) {
			return "", newError(KindInvalidEscape, offset+i, `\`, "Escape character at the end of the string")
		}

		c := text[i+1]
		if r, ok := escapes[c]; ok {
			b.WriteRune(r)
			i++
			continue
		}

		n, ok := hexEscapes[c]
		if !ok {
			_, width := utf8.DecodeRuneInString(text[i+1:])
			fragment := text[i : i+1+width]
			return "", newError(KindInvalidEscape, offset+i, fragment, "Unknown escape sequence `%s` in string", fragment)
		}

		end := min(i+2+n, len(text))
		digits := text[i+2 : end]
		fragment := text[i:end]
		if len(digits) < n {
			return "", newError(KindInvalidEscape, offset+i, fragment,
				"Escape sequence `%s` is too short, expected %d hex digits", fragment, n)
		}

		code, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return "", newError(KindInvalidEscape, offset+i, fragment,
				"Escape sequence `%s` contains non-hex digits", fragment)
		}

		r := rune(code)
		if !utf8.ValidRune(r) {
			return "", newError(KindInvalidEscape, offset+i, fragment,
				"Escape sequence `%s` is not a valid unicode code point", fragment)
		}

		b.WriteRune(r)
		i = end - 1
	}

	return b.String(), nil
}

// Escape is the inverse of Unescape for text placed between double quotes.
func Escape(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)

	for i, w := 0, 0; i < len(text); i += w {
		var r rune
		r, w = utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && w == 1 {
			// Unescape copies raw bytes, so invalid UTF-8 is kept as is
			b.WriteByte(text[i])
			continue
		}

		switch r {
		case 0:
			b.WriteString(`\0`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			switch {
			case unicode.IsPrint(r) || r == ' ':
				b.WriteRune(r)
			case r <= 0xFFFF:
				fmt.Fprintf(&b, `\u%04x`, r)
			default:
				fmt.Fprintf(&b, `\U%08x`, r)
			}
		}
	}

	return b.String()
}
