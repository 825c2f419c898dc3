package parser

// Tokenizer turns a source buffer into a lazy sequence of tokens. It owns
// no parser state; the AstBuilder layers pushback and lookahead on top.
type Tokenizer struct {
	input []byte
	file  string
	pos   int
}

func NewTokenizer(input []byte, file string) *Tokenizer {
	return &Tokenizer{input: input, file: file}
}

// Tokenize scans src eagerly and returns every significant token. It is a
// convenience for callers that want a materialized run (tests, body
// round-trips); NextToken is the streaming form.
func Tokenize(src []byte, file string) []Token {
	tz := NewTokenizer(src, file)
	var tokens []Token
	for {
		tok := tz.NextToken()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (t *Tokenizer) peek() byte {
	if t.pos >= len(t.input) {
		return 0
	}
	return t.input[t.pos]
}

func (t *Tokenizer) peekN(n int) byte {
	if t.pos+n >= len(t.input) {
		return 0
	}
	return t.input[t.pos+n]
}

func (t *Tokenizer) advance() byte {
	ch := t.peek()
	if t.pos < len(t.input) {
		t.pos++
	}
	return ch
}

func (t *Tokenizer) advanceN(n int) {
	t.pos += n
	if t.pos > len(t.input) {
		t.pos = len(t.input)
	}
}

// skipInsignificant consumes whitespace, comments, and backslash-newline
// continuations, so that NextToken always starts on token text.
func (t *Tokenizer) skipInsignificant() {
	for t.pos < len(t.input) {
		ch := t.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			t.advance()
		case ch == '\\' && (t.peekN(1) == '\n' || (t.peekN(1) == '\r' && t.peekN(2) == '\n')):
			// Line continuation between tokens.
			t.advance()
			for t.peek() == '\r' || t.peek() == '\n' {
				t.advance()
			}
		case ch == '/' && t.peekN(1) == '/':
			for t.peek() != 0 && t.peek() != '\n' {
				t.advance()
			}
		case ch == '/' && t.peekN(1) == '*':
			t.advanceN(2)
			for t.pos < len(t.input) {
				if t.peek() == '*' && t.peekN(1) == '/' {
					t.advanceN(2)
					break
				}
				t.advance()
			}
		default:
			return
		}
	}
}

// NextToken returns the next significant token, or a TokenEOF sentinel
// once the input is exhausted. Unterminated strings and comments are
// closed implicitly at end of input; the tokenizer never fails.
func (t *Tokenizer) NextToken() Token {
	for {
		t.skipInsignificant()

		start := t.pos
		if t.pos >= len(t.input) {
			return Token{Kind: TokenEOF, Start: start, End: start}
		}

		ch := t.peek()
		switch {
		case isIdentStart(ch):
			return t.scanName(start)
		case isDigit(ch) || (ch == '.' && isDigit(t.peekN(1))):
			return t.scanNumber(start)
		case ch == '"' || ch == '\'':
			return t.scanString(start, ch)
		case ch == '#':
			return t.scanPreprocessor(start)
		case ch == '\\':
			// Stray backslash in code; drop it and keep scanning.
			t.advance()
		default:
			return t.scanSyntax(start)
		}
	}
}

func (t *Tokenizer) token(kind TokenKind, start int) Token {
	return Token{
		Kind:  kind,
		Text:  string(t.input[start:t.pos]),
		Start: start,
		End:   t.pos,
	}
}

func (t *Tokenizer) scanName(start int) Token {
	for isIdentChar(t.peek()) {
		t.advance()
	}
	return t.token(TokenName, start)
}

func (t *Tokenizer) scanNumber(start int) Token {
	if t.peek() == '0' && (t.peekN(1) == 'x' || t.peekN(1) == 'X') {
		t.advanceN(2)
		for isHexDigit(t.peek()) || isIntSuffix(t.peek()) {
			t.advance()
		}
		return t.token(TokenNumber, start)
	}
	for {
		ch := t.peek()
		if isDigit(ch) || ch == '.' || isIntSuffix(ch) || ch == 'f' || ch == 'F' {
			t.advance()
		} else if ch == 'e' || ch == 'E' {
			t.advance()
			if t.peek() == '+' || t.peek() == '-' {
				t.advance()
			}
		} else {
			break
		}
	}
	return t.token(TokenNumber, start)
}

// scanString handles both string and character literals. An escaped quote
// does not terminate the literal; end of input does.
func (t *Tokenizer) scanString(start int, quote byte) Token {
	t.advance()
	for t.pos < len(t.input) && t.peek() != quote {
		if t.peek() == '\\' {
			t.advance()
		}
		t.advance()
	}
	if t.peek() == quote {
		t.advance()
	}
	return t.token(TokenString, start)
}

// scanPreprocessor consumes a whole directive line, following
// backslash-newline continuations, and emits it as one token.
func (t *Tokenizer) scanPreprocessor(start int) Token {
	for t.pos < len(t.input) {
		ch := t.advance()
		if ch != '\n' {
			continue
		}
		// A backslash immediately before the newline continues the
		// directive on the next physical line.
		i := t.pos - 2
		if i >= 0 && t.input[i] == '\r' {
			i--
		}
		if i < 0 || t.input[i] != '\\' {
			break
		}
	}
	end := t.pos
	for end > start && (t.input[end-1] == '\n' || t.input[end-1] == '\r') {
		end--
	}
	return Token{
		Kind:  TokenPreprocessor,
		Text:  string(t.input[start:end]),
		Start: start,
		End:   end,
	}
}

func (t *Tokenizer) scanSyntax(start int) Token {
	ch := t.advance()
	// Doubled operators are one token. ">>" in particular must stay
	// mergeable so the template-closer ambiguity is resolved downstream
	// rather than guessed at here.
	switch ch {
	case ':', '<', '>', '&', '|', '=', '+', '-':
		if t.peek() == ch {
			t.advance()
		}
	}
	return t.token(TokenSyntax, start)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIntSuffix(ch byte) bool {
	return ch == 'u' || ch == 'U' || ch == 'l' || ch == 'L'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
