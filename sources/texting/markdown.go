package texting

import (
	"strings"
)

const (
	markdownEscapable = "_*[]()~`>#+-=|{}.!\\"
	codeEscapable     = "`\\"
)

// EscapeMarkdown prepares plain text for a MarkdownV2 message body.
func EscapeMarkdown(input string) string {
	return escapeWith(input, markdownEscapable)
}

// EscapeCode prepares text for the inside of a MarkdownV2 `code` span or ``` block.
func EscapeCode(input string) string {
	return escapeWith(input, codeEscapable)
}

// EscapeInline escapes text like EscapeMarkdown but keeps `code` spans as code.
// An unpaired backtick is escaped as a literal character.
func EscapeInline(input string) string {
	parts := strings.Split(input, "`")
	if len(parts)%2 == 0 {
		last := len(parts) - 1
		parts[last-1] = parts[last-1] + "`" + parts[last]
		parts = parts[:last]
	}

	var str strings.Builder
	for i, part := range parts {
		if i%2 == 1 {
			str.WriteString(Code(part))
			continue
		}
		str.WriteString(EscapeMarkdown(part))
	}
	return str.String()
}

func Bold(input string) string {
	return "*" + EscapeMarkdown(input) + "*"
}

func Italic(input string) string {
	return "_" + EscapeMarkdown(input) + "_"
}

func Code(input string) string {
	return "`" + EscapeCode(input) + "`"
}

func CodeBlock(lang, input string) string {
	return "```" + lang + "\n" + EscapeCode(input) + "\n```"
}

func escapeWith(input, escapable string) string {
	var str strings.Builder
	str.Grow(len(input))
	for _, char := range input {
		if strings.ContainsRune(escapable, char) {
			str.WriteRune('\\')
		}
		str.WriteRune(char)
	}
	return str.String()
}
