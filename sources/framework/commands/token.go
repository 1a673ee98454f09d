package commands

// Span is a half-open byte range [Start, End) of the raw command body.
// Literal spans include their delimiters.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Token is one item of the tokenizer output: PlainText, QuotedLiteral or
// FencedLiteral. The set is closed.
type Token interface {
	Pos() Span
	token()
}

// PlainText is a fragment between literals, still to be split into words.
type PlainText struct {
	Text string
	Span Span
}

// QuotedLiteral is the content of a '...' or "..." literal with escapes decoded.
type QuotedLiteral struct {
	Text  string
	Quote byte
	Span  Span
}

// FencedLiteral is the content of a `...` or ```...``` block, copied verbatim.
type FencedLiteral struct {
	Lang string
	Body string
	Span Span
}

func (t PlainText) Pos() Span     { return t.Span }
func (t QuotedLiteral) Pos() Span { return t.Span }
func (t FencedLiteral) Pos() Span { return t.Span }

func (PlainText) token()     {}
func (QuotedLiteral) token() {}
func (FencedLiteral) token() {}
