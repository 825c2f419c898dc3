package parser

import "strings"

// cppKeywords is the set of reserved words. Tokens in this set are never
// part of a declared name; outside builtinTypes they are collected as
// declaration modifiers in encountered order.
var cppKeywords = map[string]bool{
	"and": true, "and_eq": true, "asm": true, "auto": true, "bitand": true,
	"bitor": true, "break": true, "case": true, "catch": true, "compl": true,
	"const": true, "const_cast": true, "continue": true, "default": true,
	"delete": true, "do": true, "dynamic_cast": true, "else": true,
	"enum": true, "explicit": true, "export": true, "extern": true,
	"false": true, "for": true, "friend": true, "goto": true, "if": true,
	"inline": true, "mutable": true, "namespace": true, "new": true,
	"not": true, "not_eq": true, "operator": true, "or": true, "or_eq": true,
	"private": true, "protected": true, "public": true, "register": true,
	"reinterpret_cast": true, "return": true, "sizeof": true, "static": true,
	"static_cast": true, "switch": true, "template": true, "this": true,
	"throw": true, "true": true, "try": true, "typedef": true,
	"typeid": true, "typename": true, "union": true, "using": true,
	"virtual": true, "volatile": true, "while": true, "xor": true,
	"xor_eq": true, "class": true, "struct": true,
	"bool": true, "char": true, "double": true, "float": true, "int": true,
	"long": true, "short": true, "signed": true, "unsigned": true,
	"void": true, "wchar_t": true,
}

// builtinTypes are the keywords that name fundamental types. They belong
// to the type name, not to the modifier list.
var builtinTypes = map[string]bool{
	"bool": true, "char": true, "double": true, "float": true, "int": true,
	"long": true, "short": true, "signed": true, "unsigned": true,
	"void": true, "wchar_t": true,
}

func isKeyword(text string) bool {
	return cppKeywords[text]
}

func isBuiltinType(text string) bool {
	return builtinTypes[text]
}

// isTypeModifier reports whether a keyword qualifies a type rather than
// naming one.
func isTypeModifier(text string) bool {
	return isKeyword(text) && !isBuiltinType(text)
}

// TypeConverter converts flat token runs into structured types and
// parameters. It is stateless per call; templateNames is the set of
// template parameter names currently in scope, used only to keep
// parameter-name heuristics honest inside templated declarations.
type TypeConverter struct {
	templateNames []string
}

func NewTypeConverter(templateNames []string) *TypeConverter {
	return &TypeConverter{templateNames: templateNames}
}

// splitTemplateClosers rewrites every ">>" token as two ">" tokens so the
// nesting-aware scans below see one closer per level. Inside a type
// expression ">>" can only ever be two template closers.
func splitTemplateClosers(tokens []Token) []Token {
	needSplit := false
	for _, t := range tokens {
		if t.Text == ">>" {
			needSplit = true
			break
		}
	}
	if !needSplit {
		return tokens
	}
	out := make([]Token, 0, len(tokens)+1)
	for _, t := range tokens {
		if t.Text == ">>" {
			out = append(out,
				Token{Kind: TokenSyntax, Text: ">", Start: t.Start, End: t.Start + 1},
				Token{Kind: TokenSyntax, Text: ">", Start: t.Start + 1, End: t.End})
			continue
		}
		out = append(out, t)
	}
	return out
}

// templateEnd returns the tokens between start and the ">" matching the
// "<" just before start, plus the index one past that closer. The input
// must already be split by splitTemplateClosers. An unterminated list
// degrades to the remainder of the run.
func templateEnd(tokens []Token, start int) ([]Token, int) {
	depth := 1
	for i := start; i < len(tokens); i++ {
		switch tokens[i].Text {
		case "<":
			depth++
		case ">":
			depth--
			if depth == 0 {
				return tokens[start:i], i + 1
			}
		}
	}
	return tokens[start:], len(tokens)
}

// ToType splits a comma-separated, template-nesting-aware token run into
// one Type per top-level entry.
func (c *TypeConverter) ToType(tokens []Token) []*Type {
	tokens = splitTemplateClosers(tokens)

	var result []*Type
	var nameTokens []Token
	var reference, pointer, array bool

	addType := func(templated []*Type) {
		if len(nameTokens) == 0 {
			return
		}
		var names []string
		modifiers := []string{}
		for _, t := range nameTokens {
			if isTypeModifier(t.Text) {
				modifiers = append(modifiers, t.Text)
			} else {
				names = append(names, t.Text)
			}
		}
		if templated == nil {
			templated = []*Type{}
		}
		result = append(result, &Type{
			Name:           joinTypeName(names),
			TemplatedTypes: templated,
			Modifiers:      modifiers,
			Reference:      reference,
			Pointer:        pointer,
			Array:          array,
			Start:          nameTokens[0].Start,
			End:            nameTokens[len(nameTokens)-1].End,
		})
		nameTokens = nil
	}

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Text {
		case "<":
			inner, next := templateEnd(tokens, i+1)
			addType(c.ToType(inner))
			reference, pointer, array = false, false, false
			i = next
			continue
		case ",":
			addType(nil)
			reference, pointer, array = false, false, false
		case "*":
			pointer = true
		case "&":
			reference = true
		case "[":
			array = true
		case "]":
		default:
			nameTokens = append(nameTokens, tok)
		}
		i++
	}
	addType(nil)
	return result
}

// DeclarationParts is the decomposition of one declarator. Other holds
// tokens that carry no structural meaning for the declared type (for a
// nameless declarator these include the trailing "*"/"&" run, which
// CreateReturnType folds back into flags).
type DeclarationParts struct {
	Name           string
	TypeName       string
	TemplatedTypes []*Type
	Modifiers      []string
	Reference      bool
	Pointer        bool
	Array          bool
	Default        []Token
	Other          []Token
}

// DeclarationToParts parses one declarator. When derefIsPointer is true
// the declarator carries a declared name (parameter or member style) and
// trailing "*"/"&" tokens set the pointer/reference flags; otherwise the
// run is a bare type and those tokens are left in Other. "[]" always
// sets the array flag. Malformed input degrades to partial results; this
// never fails.
func (c *TypeConverter) DeclarationToParts(tokens []Token, derefIsPointer bool) DeclarationParts {
	parts := DeclarationParts{
		TemplatedTypes: []*Type{},
		Modifiers:      []string{},
	}
	tokens = splitTemplateClosers(tokens)

	// Everything after a top-level "=" is the default value, verbatim.
	depth := 0
	for i, t := range tokens {
		switch t.Text {
		case "<", "(", "[", "{":
			depth++
		case ">", ")", "]", "}":
			depth--
		case "=":
			if depth == 0 {
				parts.Default = append([]Token(nil), tokens[i+1:]...)
				tokens = tokens[:i]
			}
		}
		if parts.Default != nil {
			break
		}
	}

	if derefIsPointer {
		tokens = c.extractName(tokens, &parts)
	}

	var names []string
	prevName := false
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch {
		case tok.Text == "<":
			inner, next := templateEnd(tokens, i+1)
			parts.TemplatedTypes = c.ToType(inner)
			i = next
			continue
		case isTypeModifier(tok.Text):
			parts.Modifiers = append(parts.Modifiers, tok.Text)
			prevName = false
		case tok.Text == "*" || tok.Text == "&":
			if derefIsPointer {
				if tok.Text == "*" {
					parts.Pointer = true
				} else {
					parts.Reference = true
				}
			} else {
				parts.Other = append(parts.Other, tok)
			}
			prevName = false
		case tok.Text == "[":
			parts.Array = true
			parts.Other = append(parts.Other, tok)
			prevName = false
		case tok.Text == "]":
			parts.Other = append(parts.Other, tok)
			prevName = false
		case tok.Kind == TokenName:
			if prevName {
				names = append(names, " ")
			}
			names = append(names, tok.Text)
			prevName = true
		default:
			names = append(names, tok.Text)
			prevName = false
		}
		i++
	}
	parts.TypeName = strings.Join(names, "")
	return parts
}

// extractName removes the declared identifier (and any array suffix after
// it) from the end of the declarator, recording it in parts.
func (c *TypeConverter) extractName(tokens []Token, parts *DeclarationParts) []Token {
	end := len(tokens)
	// "name[...]" puts the array suffix after the identifier.
	if end > 0 && tokens[end-1].Text == "]" {
		open := end - 1
		for open > 0 && tokens[open].Text != "[" {
			open--
		}
		if open > 0 {
			parts.Array = true
			end = open
		}
	}
	if end == 0 {
		return tokens[:0]
	}
	last := tokens[end-1]
	if last.Kind != TokenName || isKeyword(last.Text) {
		// No confident name; leave the run intact and degrade.
		return tokens[:end]
	}
	if end == 1 {
		// A single identifier is a type, not a name (unnamed parameter).
		return tokens
	}
	parts.Name = last.Text
	return tokens[:end-1]
}

// ToParameters splits a token run on top-level commas, respecting
// template, parenthesis, and brace nesting, and parses each segment as
// one Parameter.
func (c *TypeConverter) ToParameters(tokens []Token) []*Parameter {
	tokens = splitTemplateClosers(tokens)
	if len(tokens) == 0 {
		return nil
	}

	var result []*Parameter
	segStart := 0
	depth := 0

	addParameter := func(seg []Token) {
		if len(seg) == 0 {
			return
		}
		parts := c.DeclarationToParts(seg, true)
		typ := &Type{
			Name:           parts.TypeName,
			TemplatedTypes: parts.TemplatedTypes,
			Modifiers:      parts.Modifiers,
			Reference:      parts.Reference,
			Pointer:        parts.Pointer,
			Array:          parts.Array,
			Start:          seg[0].Start,
			End:            seg[len(seg)-1].End,
		}
		result = append(result, &Parameter{
			Name:    parts.Name,
			Type:    typ,
			Default: parts.Default,
			Start:   seg[0].Start,
			End:     seg[len(seg)-1].End,
		})
	}

	for i, tok := range tokens {
		switch tok.Text {
		case "<", "(", "[", "{":
			depth++
		case ">", ")", "]", "}":
			depth--
		case ",":
			if depth == 0 {
				addParameter(tokens[segStart:i])
				segStart = i + 1
			}
		}
	}
	addParameter(tokens[segStart:])
	return result
}

// CreateReturnType parses a bare declarator without a trailing name.
// nil and empty runs yield nil, which covers constructors, destructors,
// and other constructs with no return type.
func (c *TypeConverter) CreateReturnType(tokens []Token) *Type {
	if len(tokens) == 0 {
		return nil
	}
	parts := c.DeclarationToParts(tokens, false)
	pointer, reference := parts.Pointer, parts.Reference
	for _, t := range parts.Other {
		switch t.Text {
		case "*":
			pointer = true
		case "&":
			reference = true
		}
	}
	return &Type{
		Name:           parts.TypeName,
		TemplatedTypes: parts.TemplatedTypes,
		Modifiers:      parts.Modifiers,
		Reference:      reference,
		Pointer:        pointer,
		Array:          parts.Array,
		Start:          tokens[0].Start,
		End:            tokens[len(tokens)-1].End,
	}
}

// joinTypeName joins name fragments, keeping a space between adjacent
// identifiers ("unsigned int") and none around "::".
func joinTypeName(names []string) string {
	var sb strings.Builder
	prevIdent := false
	for _, n := range names {
		ident := n != "" && (isIdentStart(n[0]) || isDigit(n[0]))
		if ident && prevIdent {
			sb.WriteByte(' ')
		}
		sb.WriteString(n)
		prevIdent = ident
	}
	return sb.String()
}
