package parser

import (
	"fmt"
	"io"
	"strings"
)

// ParseError reports a structural parse failure (unmatched delimiter,
// input exhausted mid-construct) scoped to the top-level construct being
// parsed. Nodes yielded before the error remain valid; the builder skips
// to the next plausible top-level boundary before returning it, so the
// caller may keep pulling.
type ParseError struct {
	Filename string
	Offset   int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: offset %d: %s", e.Filename, e.Offset, e.Message)
}

// AstBuilder consumes a token stream and produces top-level AST nodes on
// demand. Each builder owns its cursor, namespace stack, and template
// scope; independent builders may run concurrently.
type AstBuilder struct {
	tokenizer *Tokenizer
	filename  string
	queue     []Token // pushback stack, local lookahead only
	offset    int     // offset of the most recent token, for diagnostics

	namespaceStack  []string
	inClass         string
	pendingMods     Modifiers
	pendingTemplate TemplateParams
	converter       *TypeConverter
}

func NewAstBuilder(src []byte, filename string) *AstBuilder {
	return &AstBuilder{
		tokenizer: NewTokenizer(src, filename),
		filename:  filename,
		converter: NewTypeConverter(nil),
	}
}

// Next returns the next top-level AST node. It returns io.EOF once the
// input is exhausted, and a *ParseError when the current construct is
// structurally broken; after a ParseError the stream is positioned at
// the next top-level boundary.
func (b *AstBuilder) Next() (Node, error) {
	for {
		tok, ok := b.nextToken()
		if !ok {
			return nil, io.EOF
		}
		node, err := b.handleToken(tok)
		if err != nil {
			b.recoverToBoundary()
			b.pendingMods = 0
			b.pendingTemplate = nil
			return nil, err
		}
		if node != nil {
			b.pendingMods = 0
			b.pendingTemplate = nil
			return node, nil
		}
	}
}

// Generate pulls the remaining nodes eagerly. On a ParseError it returns
// the nodes produced so far together with the error.
func (b *AstBuilder) Generate() ([]Node, error) {
	var nodes []Node
	for {
		node, err := b.Next()
		if err == io.EOF {
			return nodes, nil
		}
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, node)
	}
}

func (b *AstBuilder) nextToken() (Token, bool) {
	if n := len(b.queue); n > 0 {
		tok := b.queue[n-1]
		b.queue = b.queue[:n-1]
		b.offset = tok.Start
		return tok, true
	}
	tok := b.tokenizer.NextToken()
	b.offset = tok.Start
	if tok.Kind == TokenEOF {
		return tok, false
	}
	return tok, true
}

func (b *AstBuilder) pushBack(tok Token) {
	b.queue = append(b.queue, tok)
}

func (b *AstBuilder) parseError(format string, args ...any) *ParseError {
	return &ParseError{
		Filename: b.filename,
		Offset:   b.offset,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (b *AstBuilder) handleToken(tok Token) (Node, error) {
	switch tok.Kind {
	case TokenPreprocessor:
		return b.handleDirective(tok)

	case TokenName:
		switch tok.Text {
		case "namespace":
			return nil, b.handleNamespace()
		case "template":
			return nil, b.handleTemplate()
		case "class":
			return b.handleClass(false, tok)
		case "struct":
			return b.handleClass(true, tok)
		case "typedef", "using", "enum", "union":
			b.skipTo(";")
			b.dropPending()
			return nil, nil
		case "extern":
			return nil, b.handleExtern()
		case "virtual":
			b.pendingMods |= ModifierVirtual
			return nil, nil
		case "static":
			b.pendingMods |= ModifierStatic
			return nil, nil
		case "inline":
			b.pendingMods |= ModifierInline
			return nil, nil
		case "explicit":
			b.pendingMods |= ModifierExplicit
			return nil, nil
		case "friend":
			return nil, nil
		case "public", "private", "protected":
			if t, ok := b.nextToken(); ok && t.Text != ":" {
				b.pushBack(t)
			}
			return nil, nil
		default:
			return b.generateOne(tok)
		}

	case TokenSyntax:
		switch tok.Text {
		case ";":
			b.pendingMods = 0
			b.pendingTemplate = nil
			return nil, nil
		case "}":
			// Class bodies consume their own closer, so a stray "}"
			// here always ends a namespace region.
			if n := len(b.namespaceStack); n > 0 {
				b.namespaceStack = b.namespaceStack[:n-1]
			}
			return nil, nil
		case "~":
			if b.inClass != "" {
				return b.handleDtor()
			}
			return nil, nil
		default:
			return nil, nil
		}

	default:
		// Stray literal at declaration scope; not modeled.
		return nil, nil
	}
}

// handleDirective interprets one preprocessor token: includes become
// nodes, "#if 0" regions are skipped wholesale, everything else is
// ignored.
func (b *AstBuilder) handleDirective(tok Token) (Node, error) {
	text := strings.TrimLeft(strings.TrimPrefix(tok.Text, "#"), " \t")

	if rest, ok := strings.CutPrefix(text, "include"); ok {
		rest = strings.TrimSpace(rest)
		// A directive split as "#include \<newline> "file.h"" keeps the
		// continuation backslash in its text.
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "\\"))
		if len(rest) >= 2 {
			switch rest[0] {
			case '<':
				if end := strings.IndexByte(rest, '>'); end > 0 {
					return &Include{Filename: rest[1:end], System: true, Start: tok.Start, End: tok.End}, nil
				}
			case '"':
				if end := strings.IndexByte(rest[1:], '"'); end >= 0 {
					return &Include{Filename: rest[1 : end+1], System: false, Start: tok.Start, End: tok.End}, nil
				}
			}
		}
		return nil, nil
	}

	if rest, ok := strings.CutPrefix(text, "if"); ok {
		// "#ifdef FOO" also lands here; its condition never looks
		// like a literal zero.
		cond := strings.TrimSpace(rest)
		if strings.HasPrefix(cond, "0") || strings.HasPrefix(cond, "(0)") {
			b.skipIf0Blocks()
		}
	}
	return nil, nil
}

// skipIf0Blocks consumes tokens through the #endif matching the #if 0
// that was just seen, keeping nested #if/#endif pairs balanced.
func (b *AstBuilder) skipIf0Blocks() {
	depth := 1
	for {
		tok, ok := b.nextToken()
		if !ok {
			return
		}
		if tok.Kind != TokenPreprocessor {
			continue
		}
		text := strings.TrimLeft(strings.TrimPrefix(tok.Text, "#"), " \t")
		switch {
		case strings.HasPrefix(text, "endif"):
			depth--
			if depth == 0 {
				return
			}
		case strings.HasPrefix(text, "if"):
			depth++
		}
	}
}

func (b *AstBuilder) handleNamespace() error {
	tok, ok := b.nextToken()
	if !ok {
		return b.parseError("unexpected end of input after namespace")
	}
	name := ""
	if tok.Kind == TokenName {
		name = tok.Text
		tok, ok = b.nextToken()
		if !ok {
			return b.parseError("unexpected end of input after namespace %s", name)
		}
	}
	if tok.Text == "=" {
		// Namespace alias; nothing to track.
		b.skipTo(";")
		return nil
	}
	for tok.Text != "{" {
		// Tolerate qualifiers we do not model (e.g. nested "A::B").
		tok, ok = b.nextToken()
		if !ok {
			return b.parseError("namespace %s has no body", name)
		}
		if tok.Text == ";" {
			return nil
		}
	}
	b.namespaceStack = append(b.namespaceStack, name)
	return nil
}

func (b *AstBuilder) handleTemplate() error {
	tok, ok := b.nextToken()
	if !ok || tok.Text != "<" {
		if ok {
			b.pushBack(tok)
		}
		return nil
	}
	scope, err := b.getTemplatedTypes()
	if err != nil {
		return err
	}
	b.pendingTemplate = scope
	return nil
}

// getTemplatedTypes parses a template parameter list, the cursor sitting
// just past the opening "<". Entries map a parameter name to an optional
// kind token and an optional default type list, in declaration order.
func (b *AstBuilder) getTemplatedTypes() (TemplateParams, error) {
	header, err := b.collectMatching("<", ">")
	if err != nil {
		return nil, err
	}
	header = splitTemplateClosers(header)

	var result TemplateParams
	addEntry := func(seg []Token) {
		if len(seg) == 0 {
			return
		}
		var def []*Type
		depth := 0
		for i, t := range seg {
			switch t.Text {
			case "<", "(":
				depth++
			case ">", ")":
				depth--
			case "=":
				if depth == 0 {
					def = b.converter.ToType(seg[i+1:])
					seg = seg[:i]
				}
			}
			if def != nil {
				break
			}
		}
		nameIdx := -1
		for i := len(seg) - 1; i >= 0; i-- {
			if seg[i].Kind == TokenName && !isKeyword(seg[i].Text) {
				nameIdx = i
				break
			}
		}
		if nameIdx < 0 {
			return
		}
		entry := TemplateParam{Name: seg[nameIdx].Text, Default: def}
		if nameIdx > 0 && seg[0].Kind == TokenName && !isKeyword(seg[0].Text) {
			kind := seg[0]
			entry.TypeName = &kind
		}
		result = append(result, entry)
	}

	depth := 0
	segStart := 0
	for i, t := range header {
		switch t.Text {
		case "<", "(":
			depth++
		case ">", ")":
			depth--
		case ",":
			if depth == 0 {
				addEntry(header[segStart:i])
				segStart = i + 1
			}
		}
	}
	addEntry(header[segStart:])
	return result, nil
}

func (b *AstBuilder) handleClass(isStruct bool, keyword Token) (Node, error) {
	tmpl := b.takePendingTemplate()
	name := b.getClassName()

	tok, ok := b.nextToken()
	if !ok {
		return nil, b.parseError("unexpected end of input in class %s", name)
	}

	var bases []*Type
	if tok.Text == ":" {
		baseTokens, last, err := b.collectUntil("{", ";")
		if err != nil {
			return nil, err
		}
		bases = b.convertBases(baseTokens)
		tok = last
	}

	var body []Node
	switch tok.Text {
	case ";":
		body = nil
	case "{":
		var err error
		body, err = b.parseClassBody(name)
		if err != nil {
			return nil, err
		}
		if t, ok := b.nextToken(); ok && t.Text != ";" {
			b.pushBack(t)
		}
	default:
		// "class Foo x;" style elaborated declarator; not modeled.
		b.pushBack(tok)
		b.skipTo(";")
		return nil, nil
	}

	cls := Class{
		Name:           name,
		Bases:          bases,
		TemplatedTypes: tmpl,
		Body:           body,
		Namespace:      b.namespaceSnapshot(),
		Start:          keyword.Start,
		End:            b.offset,
	}
	if isStruct {
		return &Struct{cls}, nil
	}
	return &cls, nil
}

// getClassName reads a possibly colon-qualified, possibly templated class
// name and returns it verbatim ("Foo::Bar", "Foo<int>"). An anonymous
// class yields "".
func (b *AstBuilder) getClassName() string {
	var parts []string
	for {
		tok, ok := b.nextToken()
		if !ok {
			break
		}
		if tok.Kind != TokenName || isKeyword(tok.Text) {
			b.pushBack(tok)
			break
		}
		parts = append(parts, tok.Text)

		next, ok := b.nextToken()
		if !ok {
			break
		}
		if next.Text == "<" {
			args, err := b.collectMatching("<", ">")
			if err != nil {
				break
			}
			parts = append(parts, "<"+joinTypeName(tokenTexts(args))+">")
			next, ok = b.nextToken()
			if !ok {
				break
			}
		}
		if next.Text != "::" {
			b.pushBack(next)
			break
		}
		parts = append(parts, "::")
	}
	return strings.Join(parts, "")
}

// convertBases drops access specifiers and inheritance qualifiers, keeping
// only the base types themselves.
func (b *AstBuilder) convertBases(tokens []Token) []*Type {
	kept := tokens[:0:0]
	for _, t := range tokens {
		switch t.Text {
		case "public", "private", "protected", "virtual":
		default:
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return b.converter.ToType(kept)
}

// parseClassBody parses the member region of a class or struct, the
// cursor sitting just past the opening "{". The returned slice is
// non-nil even when empty, distinguishing "{}" from a forward
// declaration.
func (b *AstBuilder) parseClassBody(name string) ([]Node, error) {
	saved := b.inClass
	savedMods := b.pendingMods
	savedTemplate := b.pendingTemplate
	b.inClass = name
	b.pendingMods = 0
	b.pendingTemplate = nil

	restore := func() {
		b.inClass = saved
		b.pendingMods = savedMods
		b.pendingTemplate = savedTemplate
	}

	body := []Node{}
	for {
		tok, ok := b.nextToken()
		if !ok {
			restore()
			return nil, b.parseError("unterminated body of %s", name)
		}
		if tok.Text == "}" {
			restore()
			return body, nil
		}
		node, err := b.handleToken(tok)
		if err != nil {
			restore()
			return nil, err
		}
		if node != nil {
			b.pendingMods = 0
			b.pendingTemplate = nil
			body = append(body, node)
		}
	}
}

// handleDtor parses a destructor member, the cursor sitting on the token
// after "~".
func (b *AstBuilder) handleDtor() (Node, error) {
	nameTok, ok := b.nextToken()
	if !ok {
		return nil, b.parseError("unexpected end of input after ~")
	}
	if nameTok.Kind != TokenName {
		b.pushBack(nameTok)
		return nil, nil
	}
	open, ok := b.nextToken()
	if !ok || open.Text != "(" {
		if ok {
			b.pushBack(open)
		}
		b.skipTo(";")
		return nil, nil
	}
	mods := b.takePendingMods() | ModifierDtor
	return b.parseFunctionRest([]Token{nameTok}, mods, b.takePendingTemplate())
}

// generateOne parses a declaration starting at tok: it gathers declarator
// tokens up to a decisive boundary and dispatches. Only function-shaped
// declarations produce nodes; data declarations and expressions are
// consumed silently.
func (b *AstBuilder) generateOne(tok Token) (Node, error) {
	decl := []Token{tok}
	for {
		t, ok := b.nextToken()
		if !ok {
			return nil, b.parseError("unexpected end of input in declaration")
		}
		switch t.Text {
		case "(":
			for _, d := range decl {
				if d.Text == "=" {
					// Assignment before the paren: an initializing
					// expression, not a declarator.
					b.skipTo(";")
					b.dropPending()
					return nil, nil
				}
			}
			return b.parseFunctionRest(decl, b.takePendingMods(), b.takePendingTemplate())
		case ";":
			b.dropPending()
			return nil, nil
		case "{":
			if err := b.skipMatching("{", "}"); err != nil {
				return nil, err
			}
			b.dropPending()
			return nil, nil
		case "}":
			b.pushBack(t)
			b.dropPending()
			return nil, nil
		default:
			decl = append(decl, t)
		}
	}
}

// parseFunctionRest parses a function or method whose declarator tokens
// (everything before the parameter list) are in decl and whose opening
// "(" has been consumed.
func (b *AstBuilder) parseFunctionRest(decl []Token, mods Modifiers, tmpl TemplateParams) (Node, error) {
	decl = splitTemplateClosers(decl)
	start := b.offset
	if len(decl) > 0 {
		start = decl[0].Start
	}

	var name string
	var inClassTokens []Token
	var returnTokens []Token

	if idx := indexOfOperator(decl); idx >= 0 {
		name = operatorName(decl[idx+1:])
		returnTokens = decl[:idx]
	} else {
		if len(decl) == 0 || decl[len(decl)-1].Kind != TokenName {
			// No plausible declared name; consume and move on.
			b.skipTo(";")
			return nil, nil
		}
		name = decl[len(decl)-1].Text
		returnTokens = decl[:len(decl)-1]
		// Out-of-line destructor: the "~" sits between the qualified
		// prefix and the name.
		if n := len(returnTokens); n > 0 && returnTokens[n-1].Text == "~" {
			mods |= ModifierDtor
			returnTokens = returnTokens[:n-1]
		}
		if n := len(returnTokens); n > 0 && returnTokens[n-1].Text == "::" {
			rem := returnTokens[:n-1]
			ci := classPrefixStart(rem)
			if ci < len(rem) {
				inClassTokens = append([]Token(nil), rem[ci:]...)
				returnTokens = rem[:ci]
			} else {
				returnTokens = rem
			}
		}
	}

	// Leading declaration keywords fold into the modifier bitset rather
	// than qualifying the return type.
	var rts []Token
	for _, t := range returnTokens {
		switch t.Text {
		case "virtual":
			mods |= ModifierVirtual
		case "static":
			mods |= ModifierStatic
		case "inline":
			mods |= ModifierInline
		case "explicit":
			mods |= ModifierExplicit
		case "friend":
		default:
			rts = append(rts, t)
		}
	}

	paramTokens, err := b.collectMatching("(", ")")
	if err != nil {
		return nil, err
	}
	if name == "operator" && len(paramTokens) == 0 {
		// operator(): the first "()" pair belongs to the name.
		if t, ok := b.nextToken(); ok {
			if t.Text == "(" {
				name = "operator()"
				paramTokens, err = b.collectMatching("(", ")")
				if err != nil {
					return nil, err
				}
			} else {
				b.pushBack(t)
			}
		}
	}

	if mods.Has(ModifierDtor) {
		rts = nil
	}
	if !mods.Has(ModifierDtor) && len(rts) == 0 {
		switch {
		case inClassTokens != nil && name == lastNameText(inClassTokens):
			mods |= ModifierCtor
		case inClassTokens == nil && b.inClass != "" && name == lastSegment(b.inClass):
			mods |= ModifierCtor
		}
	}

	conv := b.converter
	if len(tmpl) > 0 {
		conv = NewTypeConverter(tmpl.Names())
	}
	returnType := conv.CreateReturnType(rts)
	parameters := conv.ToParameters(paramTokens)

	var body []Token
	hasBody := false
	for !hasBody {
		t, ok := b.nextToken()
		if !ok {
			return nil, b.parseError("unexpected end of declaration of %s", name)
		}
		switch t.Text {
		case ";":
			body = nil
			hasBody = true
		case "{":
			body, err = b.collectMatching("{", "}")
			if err != nil {
				return nil, err
			}
			hasBody = true
		case "const":
			mods |= ModifierConst
		case "override":
			mods |= ModifierOverride
		case "final":
		case "throw":
			mods |= ModifierThrow
			if err := b.skipParenGroup(); err != nil {
				return nil, err
			}
		case "noexcept":
			if err := b.skipParenGroup(); err != nil {
				return nil, err
			}
		case "=":
			if t2, ok := b.nextToken(); ok && t2.Text == "0" {
				mods |= ModifierPureVirtual
			}
		case ":":
			// Constructor initializer list: consume up to the body.
			if err := b.skipInitializerList(); err != nil {
				return nil, err
			}
		default:
			// Unknown trailing annotation or macro; ignored.
		}
	}

	fn := Function{
		Name:           name,
		ReturnType:     returnType,
		Parameters:     parameters,
		Modifiers:      mods,
		TemplatedTypes: tmpl,
		Body:           body,
		Namespace:      b.namespaceSnapshot(),
		Start:          start,
		End:            b.offset,
	}
	if inClassTokens != nil {
		return &Method{Function: fn, InClass: inClassTokens}, nil
	}
	return &fn, nil
}

func (b *AstBuilder) skipParenGroup() error {
	t, ok := b.nextToken()
	if !ok {
		return nil
	}
	if t.Text != "(" {
		b.pushBack(t)
		return nil
	}
	return b.skipMatching("(", ")")
}

func (b *AstBuilder) skipInitializerList() error {
	for {
		t, ok := b.nextToken()
		if !ok {
			return b.parseError("unterminated constructor initializer list")
		}
		switch t.Text {
		case "(":
			if err := b.skipMatching("(", ")"); err != nil {
				return err
			}
		case "{", ";":
			b.pushBack(t)
			return nil
		}
	}
}

// collectMatching consumes tokens through the closer matching an
// already-consumed opener, returning the tokens in between. For "<" the
// ">>" token counts as two closers, one of which is materialized into
// the collected run.
func (b *AstBuilder) collectMatching(open, close string) ([]Token, error) {
	tokens := []Token{}
	depth := 1
	for {
		tok, ok := b.nextToken()
		if !ok {
			return nil, b.parseError("no matching %q for %q", close, open)
		}
		switch tok.Text {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return tokens, nil
			}
		case ">>":
			if open == "<" {
				depth -= 2
				if depth <= 0 {
					if depth == 0 {
						tokens = append(tokens, Token{Kind: TokenSyntax, Text: ">", Start: tok.Start, End: tok.Start + 1})
					}
					return tokens, nil
				}
			}
		}
		tokens = append(tokens, tok)
	}
}

func (b *AstBuilder) skipMatching(open, close string) error {
	_, err := b.collectMatching(open, close)
	return err
}

// collectUntil gathers tokens up to the first occurrence of one of the
// stop texts, which is consumed and returned separately.
func (b *AstBuilder) collectUntil(stops ...string) ([]Token, Token, error) {
	var tokens []Token
	for {
		tok, ok := b.nextToken()
		if !ok {
			return nil, Token{}, b.parseError("expected one of %v before end of input", stops)
		}
		for _, s := range stops {
			if tok.Text == s {
				return tokens, tok, nil
			}
		}
		tokens = append(tokens, tok)
	}
}

// skipTo consumes tokens through the first terminator found at bracket
// depth zero. A "}" closing an enclosing region is pushed back, not
// swallowed.
func (b *AstBuilder) skipTo(terminators ...string) {
	depth := 0
	for {
		tok, ok := b.nextToken()
		if !ok {
			return
		}
		switch tok.Text {
		case "{", "(", "[":
			depth++
		case ")", "]":
			if depth > 0 {
				depth--
			}
		case "}":
			if depth > 0 {
				depth--
			} else {
				b.pushBack(tok)
				return
			}
		}
		if depth == 0 {
			for _, t := range terminators {
				if tok.Text == t {
					return
				}
			}
		}
	}
}

// recoverToBoundary repositions the stream after a ParseError so the
// next Next call starts at a plausible top-level construct.
func (b *AstBuilder) recoverToBoundary() {
	b.skipTo(";")
}

func (b *AstBuilder) handleExtern() error {
	tok, ok := b.nextToken()
	if !ok {
		return nil
	}
	if tok.Kind != TokenString {
		// "extern int x;": the linkage keyword adds nothing we track.
		b.pushBack(tok)
		return nil
	}
	next, ok := b.nextToken()
	if !ok {
		return nil
	}
	if next.Text != "{" {
		b.pushBack(next)
		return nil
	}
	// extern "C" { ... }: consumed without descending, since the brace
	// region is not a namespace.
	return b.skipMatching("{", "}")
}

// dropPending discards declaration state that turned out to qualify a
// construct we do not model, so it cannot bleed into the next one.
func (b *AstBuilder) dropPending() {
	b.pendingMods = 0
	b.pendingTemplate = nil
}

func (b *AstBuilder) takePendingMods() Modifiers {
	m := b.pendingMods
	b.pendingMods = 0
	return m
}

func (b *AstBuilder) takePendingTemplate() TemplateParams {
	t := b.pendingTemplate
	b.pendingTemplate = nil
	return t
}

func (b *AstBuilder) namespaceSnapshot() []string {
	if len(b.namespaceStack) == 0 {
		return nil
	}
	return append([]string(nil), b.namespaceStack...)
}

// indexOfOperator returns the index of the "operator" keyword in a
// declarator, or -1.
func indexOfOperator(tokens []Token) int {
	for i, t := range tokens {
		if t.Kind == TokenName && t.Text == "operator" {
			return i
		}
	}
	return -1
}

// operatorName assembles the logical name of an operator from the tokens
// following the keyword: "operator[]", "operator<<", "operator bool".
func operatorName(tokens []Token) string {
	var sb strings.Builder
	sb.WriteString("operator")
	for _, t := range tokens {
		if t.Kind == TokenName {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// classPrefixStart walks a declarator backward to find where the
// qualified class prefix of an out-of-line definition begins: a chain of
// identifier segments, each optionally templated, joined by "::".
func classPrefixStart(tokens []Token) int {
	i := len(tokens)
	for {
		j := i
		if j > 0 && tokens[j-1].Text == ">" {
			depth := 1
			j--
			for j > 0 && depth > 0 {
				j--
				switch tokens[j].Text {
				case ">":
					depth++
				case "<":
					depth--
				}
			}
		}
		if j > 0 && tokens[j-1].Kind == TokenName && !isKeyword(tokens[j-1].Text) {
			j--
		} else {
			return i
		}
		i = j
		if i > 0 && tokens[i-1].Text == "::" {
			i--
			continue
		}
		return i
	}
}

func lastNameText(tokens []Token) string {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Kind == TokenName {
			return tokens[i].Text
		}
	}
	return ""
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	return name
}
