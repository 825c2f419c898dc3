package parser

// TokenKind classifies a lexical token.
type TokenKind int

const (
	// TokenEOF marks the end of the input stream. It is produced by the
	// tokenizer as a sentinel and never appears inside token runs handed
	// to the converter or stored in node bodies.
	TokenEOF TokenKind = iota

	TokenName         // identifier or keyword
	TokenNumber       // numeric literal, including suffixes
	TokenString       // string or character literal, quotes included
	TokenSyntax       // punctuation, possibly multi-character (::, <<, >>)
	TokenPreprocessor // a whole #-directive line, continuations included
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenName:         "Name",
	TokenNumber:       "Number",
	TokenString:       "String",
	TokenSyntax:       "Syntax",
	TokenPreprocessor: "Preprocessor",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexical token. Start and End are byte offsets into the
// source buffer. Tokens are immutable once produced.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
}

func (t Token) String() string {
	return t.Text
}

// tokenTexts flattens a token run to its texts, the form in which token
// sequences are compared and reproduced.
func tokenTexts(tokens []Token) []string {
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	return texts
}
