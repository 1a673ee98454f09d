package platform

import (
	"fmt"
	"regexp"
)

var (
	TelegramBotTokenPattern = regexp.MustCompile(`^[0-9]+:AA[0-9A-Za-z\-_]{33}$`)
	CommandPrefixPattern    = regexp.MustCompile(`^[^\s"'` + "`" + `=(),]{1,8}$`)
)

func ValidateTelegramBotToken(token string) error {
	if token == "" {
		return fmt.Errorf("Telegram Bot API token is required")
	}

	if !TelegramBotTokenPattern.MatchString(token) {
		return fmt.Errorf("invalid Telegram Bot API token format: expected [0-9]+:AA[0-9A-Za-z\\-_]{33}")
	}

	return nil
}

func ValidateCommandPrefix(prefix string) error {
	if !CommandPrefixPattern.MatchString(prefix) {
		return fmt.Errorf("invalid command prefix %q: expected 1-8 characters without spaces, quotes, '=', ',' or parentheses", prefix)
	}
	return nil
}

func ValidateNotEmpty(value string, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}
