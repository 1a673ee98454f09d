package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrPermissionDenied = errors.New("permission denied")
	ErrBlacklisted      = errors.New("command is blacklisted")
	ErrCommandDisabled  = errors.New("command is disabled")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// UserError is a rejection meant to be displayed to the user as a card.
type UserError struct {
	Title  string
	Detail string
	Footer string
	Err    error
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func NewUserError(title, detail string) *UserError {
	return &UserError{Title: title, Detail: detail, Footer: "BotException"}
}

func unknownCommand(name, prefix string) *UserError {
	return &UserError{
		Title:  "Unrecognized command!",
		Detail: fmt.Sprintf("The command '%s' does not exist.\nFor help on bot commands, do `%shelp`", name, prefix),
		Footer: "BotException",
		Err:    ErrUnknownCommand,
	}
}

func argumentError(hint, format string, args ...any) *UserError {
	detail := fmt.Sprintf(format, args...)
	if hint != "" {
		detail += "\n" + hint
	}
	return &UserError{
		Title:  "Invalid Arguments!",
		Detail: detail,
		Footer: "Argument Error",
		Err:    ErrInvalidArgument,
	}
}
