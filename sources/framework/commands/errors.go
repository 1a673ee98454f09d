package commands

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInvalidEscape Kind = iota + 1
	KindInvalidLiteralFormat
	KindUnterminatedLiteral
	KindInvalidKeywordName
	KindMalformedKeywordAssignment
	KindKeywordBeforePositional
	KindKeywordInsideGroup
	KindMissingKeywordValue
	KindUnmatchedGroupClose
	KindUnclosedGroup
	KindInvalidCommandName
)

var (
	ErrInvalidEscape              = errors.New("invalid escape sequence")
	ErrInvalidLiteralFormat       = errors.New("invalid literal format")
	ErrUnterminatedLiteral        = errors.New("unterminated literal")
	ErrInvalidKeywordName         = errors.New("invalid keyword name")
	ErrMalformedKeywordAssignment = errors.New("malformed keyword assignment")
	ErrKeywordBeforePositional    = errors.New("keyword before positional")
	ErrKeywordInsideGroup         = errors.New("keyword inside group")
	ErrMissingKeywordValue        = errors.New("missing keyword value")
	ErrUnmatchedGroupClose        = errors.New("unmatched group close")
	ErrUnclosedGroup              = errors.New("unclosed group")
	ErrInvalidCommandName         = errors.New("invalid command name")
)

var kinds = map[Kind]struct {
	name     string
	sentinel error
	title    string
}{
	KindInvalidEscape:              {"InvalidEscape", ErrInvalidEscape, "Invalid escape character"},
	KindInvalidLiteralFormat:       {"InvalidLiteralFormat", ErrInvalidLiteralFormat, "Invalid literal!"},
	KindUnterminatedLiteral:        {"UnterminatedLiteral", ErrUnterminatedLiteral, "Invalid literal!"},
	KindInvalidKeywordName:         {"InvalidKeywordName", ErrInvalidKeywordName, "Invalid Keyword Arguments!"},
	KindMalformedKeywordAssignment: {"MalformedKeywordAssignment", ErrMalformedKeywordAssignment, "Invalid Keyword Arguments!"},
	KindKeywordBeforePositional:    {"KeywordBeforePositional", ErrKeywordBeforePositional, "Invalid Keyword Arguments!"},
	KindKeywordInsideGroup:         {"KeywordInsideGroup", ErrKeywordInsideGroup, "Invalid Keyword Arguments!"},
	KindMissingKeywordValue:        {"MissingKeywordValue", ErrMissingKeywordValue, "Invalid Keyword Arguments!"},
	KindUnmatchedGroupClose:        {"UnmatchedGroupClose", ErrUnmatchedGroupClose, "Invalid Arguments!"},
	KindUnclosedGroup:              {"UnclosedGroup", ErrUnclosedGroup, "Invalid Arguments!"},
	KindInvalidCommandName:         {"InvalidCommandName", ErrInvalidCommandName, "Invalid Command name!"},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Category groups kinds the way they are shown in the footer of an error card.
func (k Kind) Category() string {
	switch k {
	case KindInvalidEscape, KindInvalidLiteralFormat, KindUnterminatedLiteral:
		return "Literal Error"
	case KindInvalidKeywordName, KindMalformedKeywordAssignment, KindKeywordBeforePositional,
		KindKeywordInsideGroup, KindMissingKeywordValue:
		return "Keyword argument Error"
	case KindUnmatchedGroupClose, KindUnclosedGroup:
		return "Argument Error"
	default:
		return "Command Error"
	}
}

// ParseError is a user-facing rejection of a command line. Title and Detail are
// meant to be shown as-is to whoever typed the command.
type ParseError struct {
	Kind     Kind
	Title    string
	Detail   string
	Fragment string
	// Offset is the byte position in the command body, -1 when the error
	// concerns the input as a whole.
	Offset int
}

func (e *ParseError) Error() string {
	if e.Fragment != "" && e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (%q at %d)", e.Title, e.Detail, e.Fragment, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return kinds[e.Kind].sentinel
}

func newError(kind Kind, offset int, fragment, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:     kind,
		Title:    kinds[kind].title,
		Detail:   fmt.Sprintf(format, args...),
		Fragment: fragment,
		Offset:   offset,
	}
}
