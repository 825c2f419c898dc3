package parser

import "strings"

// NodeKind identifies the concrete kind of a top-level AST node.
type NodeKind int

const (
	KindInclude NodeKind = iota
	KindClass
	KindStruct
	KindFunction
	KindMethod
)

var nodeKindNames = map[NodeKind]string{
	KindInclude:  "Include",
	KindClass:    "Class",
	KindStruct:   "Struct",
	KindFunction: "Function",
	KindMethod:   "Method",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is one structural declaration produced by the AstBuilder. The
// concrete types are *Include, *Class, *Struct, *Function, and *Method.
// Nodes are never mutated after being yielded.
type Node interface {
	Kind() NodeKind
}

// Modifiers is a bit set of declaration modifiers on a function or method.
type Modifiers uint16

const (
	ModifierConst Modifiers = 1 << iota
	ModifierVirtual
	ModifierPureVirtual
	ModifierCtor
	ModifierDtor
	ModifierStatic
	ModifierInline
	ModifierExplicit
	ModifierOverride
	ModifierThrow
)

func (m Modifiers) Has(flag Modifiers) bool {
	return m&flag != 0
}

var modifierNames = []struct {
	flag Modifiers
	name string
}{
	{ModifierConst, "const"},
	{ModifierVirtual, "virtual"},
	{ModifierPureVirtual, "pure-virtual"},
	{ModifierCtor, "ctor"},
	{ModifierDtor, "dtor"},
	{ModifierStatic, "static"},
	{ModifierInline, "inline"},
	{ModifierExplicit, "explicit"},
	{ModifierOverride, "override"},
	{ModifierThrow, "throw"},
}

func (m Modifiers) String() string {
	var names []string
	for _, mn := range modifierNames {
		if m.Has(mn.flag) {
			names = append(names, mn.name)
		}
	}
	return strings.Join(names, "|")
}

// Type is the structural description of a type expression.
// TemplatedTypes and Modifiers are never nil on converter output.
type Type struct {
	Name           string
	TemplatedTypes []*Type
	Modifiers      []string
	Reference      bool
	Pointer        bool
	Array          bool
	Start          int
	End            int
}

func (t *Type) String() string {
	var sb strings.Builder
	for _, m := range t.Modifiers {
		sb.WriteString(m)
		sb.WriteByte(' ')
	}
	sb.WriteString(t.Name)
	if len(t.TemplatedTypes) > 0 {
		sb.WriteByte('<')
		for i, tt := range t.TemplatedTypes {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(tt.String())
		}
		sb.WriteByte('>')
	}
	if t.Pointer {
		sb.WriteByte('*')
	}
	if t.Reference {
		sb.WriteByte('&')
	}
	if t.Array {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Parameter is one declarator in a parameter list. Default holds the
// tokens after "=" verbatim; it is empty when no default is given.
type Parameter struct {
	Name    string
	Type    *Type
	Default []Token
	Start   int
	End     int
}

func (p *Parameter) String() string {
	s := p.Type.String()
	if p.Name != "" {
		s += " " + p.Name
	}
	if len(p.Default) > 0 {
		s += " = " + strings.Join(tokenTexts(p.Default), " ")
	}
	return s
}

// TemplateParam is one entry of a template parameter list. TypeName is
// the kind token for parameters declared with a user-defined type
// ("Type t"); it is nil for plain type parameters ("typename T").
type TemplateParam struct {
	Name     string
	TypeName *Token
	Default  []*Type
}

// TemplateParams is a template parameter scope. Declaration order is
// preserved; lookups go through Get.
type TemplateParams []TemplateParam

func (tp TemplateParams) Get(name string) (TemplateParam, bool) {
	for _, p := range tp {
		if p.Name == name {
			return p, true
		}
	}
	return TemplateParam{}, false
}

func (tp TemplateParams) Names() []string {
	names := make([]string, len(tp))
	for i, p := range tp {
		names[i] = p.Name
	}
	return names
}

// Include is a #include directive. System is true for the angle-bracket
// form.
type Include struct {
	Filename string
	System   bool
	Start    int
	End      int
}

func (n *Include) Kind() NodeKind { return KindInclude }

func (n *Include) String() string {
	if n.System {
		return "#include <" + n.Filename + ">"
	}
	return "#include \"" + n.Filename + "\""
}

// Class is a class declaration or definition. Body is nil for a forward
// declaration and non-nil (possibly empty) when a braced body was seen.
// Namespace is the enclosing namespace stack captured by value at the
// point of declaration; an empty string entry marks an anonymous
// namespace level.
type Class struct {
	Name           string
	Bases          []*Type
	TemplatedTypes TemplateParams
	Body           []Node
	Namespace      []string
	Start          int
	End            int
}

func (n *Class) Kind() NodeKind { return KindClass }

func (n *Class) String() string {
	return "class " + n.FullName()
}

// FullName is the declared name qualified by the captured namespace
// stack. Anonymous levels render as "(anonymous)".
func (n *Class) FullName() string {
	return qualifiedName(n.Namespace, n.Name)
}

// Struct is a struct declaration or definition. It carries the same
// shape as Class.
type Struct struct {
	Class
}

func (n *Struct) Kind() NodeKind { return KindStruct }

func (n *Struct) String() string {
	return "struct " + n.FullName()
}

// Function is a free function declaration or definition. Body is nil for
// a declaration without a body and an empty slice for an empty body.
// ReturnType is nil for constructs with no return type.
type Function struct {
	Name           string
	ReturnType     *Type
	Parameters     []*Parameter
	Modifiers      Modifiers
	TemplatedTypes TemplateParams
	Body           []Token
	Namespace      []string
	Start          int
	End            int
}

func (n *Function) Kind() NodeKind { return KindFunction }

func (n *Function) String() string {
	return qualifiedName(n.Namespace, n.Name) + "()"
}

// Method is a function whose declarator names an out-of-class scope.
// InClass holds the qualified (possibly templated) class prefix verbatim.
type Method struct {
	Function
	InClass []Token
}

func (n *Method) Kind() NodeKind { return KindMethod }

func (n *Method) String() string {
	return strings.Join(tokenTexts(n.InClass), "") + "::" + n.Name + "()"
}

func qualifiedName(namespace []string, name string) string {
	if len(namespace) == 0 {
		return name
	}
	parts := make([]string, 0, len(namespace)+1)
	for _, ns := range namespace {
		if ns == "" {
			ns = "(anonymous)"
		}
		parts = append(parts, ns)
	}
	parts = append(parts, name)
	return strings.Join(parts, "::")
}
