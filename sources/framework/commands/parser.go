package commands

// Parser turns command bodies into ParseResults. It is stateless and safe for
// concurrent use.
type Parser struct {
	fallback string
}

func NewParser(fallback string) *Parser {
	return &Parser{fallback: fallback}
}

func (p *Parser) Fallback() string {
	return p.fallback
}

func (p *Parser) Parse(input string) (*ParseResult, error) {
	return Parse(input, p.fallback)
}

// Parse tokenizes and assembles a command body (the text after the prefix).
// An empty or whitespace-only body yields the fallback command.
func Parse(input, fallback string) (*ParseResult, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Assemble(tokens, fallback)
}
