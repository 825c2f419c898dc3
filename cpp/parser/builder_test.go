package parser

import (
	"io"
	"reflect"
	"strings"
	"testing"
)

func parseAll(t *testing.T, src string) []Node {
	t.Helper()
	nodes, err := NewAstBuilder([]byte(src), "test.h").Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return nodes
}

func parseOne(t *testing.T, src string) Node {
	t.Helper()
	nodes := parseAll(t, src)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes %v, want 1", len(nodes), nodes)
	}
	return nodes[0]
}

func asClass(t *testing.T, n Node) *Class {
	t.Helper()
	switch v := n.(type) {
	case *Class:
		return v
	case *Struct:
		return &v.Class
	}
	t.Fatalf("got %T, want class or struct", n)
	return nil
}

func asFunction(t *testing.T, n Node) *Function {
	t.Helper()
	switch v := n.(type) {
	case *Function:
		return v
	case *Method:
		return &v.Function
	}
	t.Fatalf("got %T, want function or method", n)
	return nil
}

func TestBuilderIncludes(t *testing.T) {
	tests := []struct {
		input    string
		filename string
		system   bool
	}{
		{`#include <stdio.h>`, "stdio.h", true},
		{`#include "foo/bar.h"`, "foo/bar.h", false},
		{"#include \\\n   \"test.h\"", "test.h", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			inc, ok := parseOne(t, tt.input).(*Include)
			if !ok {
				t.Fatal("not an Include")
			}
			if inc.Filename != tt.filename {
				t.Errorf("filename %q, want %q", inc.Filename, tt.filename)
			}
			if inc.System != tt.system {
				t.Errorf("system %v, want %v", inc.System, tt.system)
			}
		})
	}
}

func TestBuilderClass(t *testing.T) {
	t.Run("forward declaration", func(t *testing.T) {
		c, ok := parseOne(t, "class Foo;").(*Class)
		if !ok {
			t.Fatal("not a Class")
		}
		if c.Name != "Foo" {
			t.Errorf("name %q, want Foo", c.Name)
		}
		if c.Body != nil {
			t.Errorf("body %v, want nil for forward declaration", c.Body)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		c := parseOne(t, "class Foo {};").(*Class)
		if c.Body == nil || len(c.Body) != 0 {
			t.Errorf("body %v, want empty non-nil", c.Body)
		}
	})

	t.Run("struct is distinct", func(t *testing.T) {
		n := parseOne(t, "struct Foo {};")
		if n.Kind() != KindStruct {
			t.Errorf("kind %v, want Struct", n.Kind())
		}
	})

	t.Run("bases", func(t *testing.T) {
		c := parseOne(t, "class Foo : public Bar, private virtual Baz {};").(*Class)
		if len(c.Bases) != 2 || c.Bases[0].Name != "Bar" || c.Bases[1].Name != "Baz" {
			t.Errorf("bases %v, want [Bar Baz]", c.Bases)
		}
	})

	t.Run("qualified name", func(t *testing.T) {
		c := parseOne(t, "class Foo::Bar {};").(*Class)
		if c.Name != "Foo::Bar" {
			t.Errorf("name %q, want Foo::Bar", c.Name)
		}
	})

	t.Run("data members yield no nodes", func(t *testing.T) {
		c := parseOne(t, "class Foo { int a; char* b; static const int c = 3; };").(*Class)
		if len(c.Body) != 0 {
			t.Errorf("body %v, want empty", c.Body)
		}
	})

	t.Run("templated", func(t *testing.T) {
		c := parseOne(t, "template <typename T, typename U> class Map {};").(*Class)
		if got := c.TemplatedTypes.Names(); !reflect.DeepEqual(got, []string{"T", "U"}) {
			t.Errorf("template names %v, want [T U]", got)
		}
	})

	t.Run("nested struct", func(t *testing.T) {
		c := asClass(t, parseOne(t, `
template <class T> struct Alloc {
	template <class U> struct rebind { typedef Alloc<U> other; };
};`))
		if len(c.Body) != 1 {
			t.Fatalf("body %v, want one nested node", c.Body)
		}
		inner := asClass(t, c.Body[0])
		if inner.Name != "rebind" {
			t.Errorf("nested name %q, want rebind", inner.Name)
		}
		if got := inner.TemplatedTypes.Names(); !reflect.DeepEqual(got, []string{"U"}) {
			t.Errorf("nested template names %v, want [U]", got)
		}
	})
}

func TestBuilderTemplateParams(t *testing.T) {
	t.Run("kind token", func(t *testing.T) {
		c := parseOne(t, "template <class C, Type t> class X {};").(*Class)
		if len(c.TemplatedTypes) != 2 {
			t.Fatalf("got %d template params, want 2", len(c.TemplatedTypes))
		}
		if c.TemplatedTypes[0].Name != "C" || c.TemplatedTypes[0].TypeName != nil {
			t.Errorf("param 0 = %+v, want C with no kind", c.TemplatedTypes[0])
		}
		p, ok := c.TemplatedTypes.Get("t")
		if !ok || p.TypeName == nil || p.TypeName.Text != "Type" {
			t.Errorf("param t = %+v, want kind token Type", p)
		}
	})

	t.Run("default", func(t *testing.T) {
		c := parseOne(t, "template <typename T = Foo<int> > class X {};").(*Class)
		p, ok := c.TemplatedTypes.Get("T")
		if !ok {
			t.Fatal("no param T")
		}
		if len(p.Default) != 1 || p.Default[0].Name != "Foo" {
			t.Errorf("default %v, want [Foo<int>]", p.Default)
		}
		if len(p.Default) == 1 && len(p.Default[0].TemplatedTypes) != 1 {
			t.Errorf("default templated types %v, want [int]", p.Default[0].TemplatedTypes)
		}
	})
}

func TestBuilderNamespaces(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single", "namespace A { class Foo {}; }", []string{"A"}},
		{"nested", "namespace A { namespace B { class Foo {}; } }", []string{"A", "B"}},
		{"anonymous", "namespace { class Foo {}; }", []string{""}},
		{
			"anonymous level between named ones",
			"namespace A { namespace { namespace B { class Foo; }}}",
			[]string{"A", "", "B"},
		},
		{
			"sibling closed before",
			"namespace A { namespace B { } namespace C { class Foo {}; } }",
			[]string{"A", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parseOne(t, tt.input).(*Class)
			if !reflect.DeepEqual(c.Namespace, tt.expected) {
				t.Errorf("namespace %v, want %v", c.Namespace, tt.expected)
			}
		})
	}

	t.Run("alias ignored", func(t *testing.T) {
		nodes := parseAll(t, "namespace io = boost::iostreams; class Foo {};")
		if len(nodes) != 1 || asClass(t, nodes[0]).Namespace != nil {
			t.Errorf("nodes %v, want one Foo at global scope", nodes)
		}
	})
}

func TestBuilderFunctions(t *testing.T) {
	t.Run("declaration", func(t *testing.T) {
		f := parseOne(t, "void foo();").(*Function)
		if f.Name != "foo" {
			t.Errorf("name %q, want foo", f.Name)
		}
		if f.ReturnType == nil || f.ReturnType.Name != "void" {
			t.Errorf("return type %v, want void", f.ReturnType)
		}
		if f.Body != nil {
			t.Errorf("body %v, want nil for declaration", f.Body)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		f := parseOne(t, "void foo() {}").(*Function)
		if f.Body == nil || len(f.Body) != 0 {
			t.Errorf("body %v, want empty non-nil", f.Body)
		}
	})

	t.Run("body round-trips through the tokenizer", func(t *testing.T) {
		body := `if (a < b) { return a; } return b;`
		f := parseOne(t, "int min(int a, int b) { "+body+" }").(*Function)
		want := tokenTexts(Tokenize([]byte(body), "test.h"))
		if got := tokenTexts(f.Body); !reflect.DeepEqual(got, want) {
			t.Errorf("body %v, want %v", got, want)
		}
	})

	t.Run("parameters", func(t *testing.T) {
		f := parseOne(t, "int foo(int a, char* b = NULL);").(*Function)
		if len(f.Parameters) != 2 {
			t.Fatalf("got %d parameters, want 2", len(f.Parameters))
		}
		if f.Parameters[0].Name != "a" || f.Parameters[1].Name != "b" {
			t.Errorf("parameter names %q %q, want a b", f.Parameters[0].Name, f.Parameters[1].Name)
		}
		if !f.Parameters[1].Type.Pointer {
			t.Error("parameter b not a pointer")
		}
		if got := tokenTexts(f.Parameters[1].Default); !reflect.DeepEqual(got, []string{"NULL"}) {
			t.Errorf("default %v, want [NULL]", got)
		}
	})

	t.Run("leading keywords fold into modifiers", func(t *testing.T) {
		tests := []struct {
			input string
			mods  Modifiers
		}{
			{"inline void foo() {}", ModifierInline},
			{"static int foo();", ModifierStatic},
			{"static inline int foo();", ModifierStatic | ModifierInline},
		}
		for _, tt := range tests {
			f := asFunction(t, parseOne(t, tt.input))
			if f.Modifiers != tt.mods {
				t.Errorf("%s: modifiers %v, want %v", tt.input, f.Modifiers, tt.mods)
			}
			if f.ReturnType == nil || f.ReturnType.Name == "" {
				t.Errorf("%s: return type %v, want plain type", tt.input, f.ReturnType)
			}
		}
	})

	t.Run("operator", func(t *testing.T) {
		f := parseOne(t, "ostream& operator<<(ostream& os, const Foo& f) { return os; }").(*Function)
		if f.Name != "operator<<" {
			t.Errorf("name %q, want operator<<", f.Name)
		}
		if f.ReturnType == nil || f.ReturnType.Name != "ostream" || !f.ReturnType.Reference {
			t.Errorf("return type %v, want ostream&", f.ReturnType)
		}
		if len(f.Parameters) != 2 {
			t.Errorf("got %d parameters, want 2", len(f.Parameters))
		}
	})

	t.Run("templated", func(t *testing.T) {
		f := parseOne(t, "template <typename T> T identity(T t) { return t; }").(*Function)
		if got := f.TemplatedTypes.Names(); !reflect.DeepEqual(got, []string{"T"}) {
			t.Errorf("template names %v, want [T]", got)
		}
	})
}

func TestBuilderMethods(t *testing.T) {
	t.Run("out-of-line definition", func(t *testing.T) {
		m, ok := parseOne(t, "void Foo::bar() { baz(); }").(*Method)
		if !ok {
			t.Fatal("not a Method")
		}
		if m.Name != "bar" {
			t.Errorf("name %q, want bar", m.Name)
		}
		if got := tokenTexts(m.InClass); !reflect.DeepEqual(got, []string{"Foo"}) {
			t.Errorf("in-class %v, want [Foo]", got)
		}
	})

	t.Run("templated class prefix", func(t *testing.T) {
		m, ok := parseOne(t, "template <typename T> void EVM::VH<T>::Write() {}").(*Method)
		if !ok {
			t.Fatal("not a Method")
		}
		if m.Name != "Write" {
			t.Errorf("name %q, want Write", m.Name)
		}
		want := []string{"EVM", "::", "VH", "<", "T", ">"}
		if got := tokenTexts(m.InClass); !reflect.DeepEqual(got, want) {
			t.Errorf("in-class %v, want %v", got, want)
		}
		if m.ReturnType == nil || m.ReturnType.Name != "void" {
			t.Errorf("return type %v, want void", m.ReturnType)
		}
	})

	t.Run("out-of-line destructor", func(t *testing.T) {
		m, ok := parseOne(t, "Foo::~Foo() {}").(*Method)
		if !ok {
			t.Fatal("not a Method")
		}
		if m.Name != "Foo" || !m.Modifiers.Has(ModifierDtor) {
			t.Errorf("got %q %v, want dtor Foo", m.Name, m.Modifiers)
		}
		if got := tokenTexts(m.InClass); !reflect.DeepEqual(got, []string{"Foo"}) {
			t.Errorf("in-class %v, want [Foo]", got)
		}
		if m.ReturnType != nil {
			t.Errorf("return type %v, want nil", m.ReturnType)
		}
		if m.Modifiers.Has(ModifierCtor) {
			t.Errorf("modifiers %v, ctor bit set on a destructor", m.Modifiers)
		}
		if m.Body == nil {
			t.Error("body nil, want empty")
		}
	})

	t.Run("qualified destructor with leading keyword", func(t *testing.T) {
		m := parseOne(t, "inline NS::Conn::~Conn() { close(); }").(*Method)
		want := []string{"NS", "::", "Conn"}
		if got := tokenTexts(m.InClass); !reflect.DeepEqual(got, want) {
			t.Errorf("in-class %v, want %v", got, want)
		}
		if !m.Modifiers.Has(ModifierDtor) || !m.Modifiers.Has(ModifierInline) {
			t.Errorf("modifiers %v, want dtor|inline", m.Modifiers)
		}
	})

	t.Run("out-of-line constructor", func(t *testing.T) {
		m := parseOne(t, "Foo::Foo() : x_(0) {}").(*Method)
		if !m.Modifiers.Has(ModifierCtor) {
			t.Errorf("modifiers %v, want ctor", m.Modifiers)
		}
		if m.ReturnType != nil {
			t.Errorf("return type %v, want nil", m.ReturnType)
		}
		if m.Body == nil {
			t.Error("body nil, want empty")
		}
	})
}

func TestBuilderClassMembers(t *testing.T) {
	t.Run("constructor and destructor", func(t *testing.T) {
		c := parseOne(t, "class Foo { public: Foo(); ~Foo(); };").(*Class)
		if len(c.Body) != 2 {
			t.Fatalf("body %v, want ctor and dtor", c.Body)
		}
		ctor := asFunction(t, c.Body[0])
		if ctor.Name != "Foo" || !ctor.Modifiers.Has(ModifierCtor) {
			t.Errorf("ctor = %s %v", ctor.Name, ctor.Modifiers)
		}
		dtor := asFunction(t, c.Body[1])
		if dtor.Name != "Foo" || !dtor.Modifiers.Has(ModifierDtor) {
			t.Errorf("dtor = %s %v", dtor.Name, dtor.Modifiers)
		}
		if ctor.ReturnType != nil || dtor.ReturnType != nil {
			t.Error("ctor/dtor return types must be nil")
		}
	})

	t.Run("virtual inline destructor", func(t *testing.T) {
		c := parseOne(t, "class Foo { virtual inline ~Foo() {} };").(*Class)
		dtor := asFunction(t, c.Body[0])
		want := ModifierDtor | ModifierVirtual | ModifierInline
		if dtor.Modifiers != want {
			t.Errorf("modifiers %v, want %v", dtor.Modifiers, want)
		}
	})

	t.Run("pure virtual", func(t *testing.T) {
		c := parseOne(t, "class Foo { virtual void f() = 0; };").(*Class)
		f := asFunction(t, c.Body[0])
		if !f.Modifiers.Has(ModifierVirtual) || !f.Modifiers.Has(ModifierPureVirtual) {
			t.Errorf("modifiers %v, want virtual|pure-virtual", f.Modifiers)
		}
		if f.Body != nil {
			t.Errorf("body %v, want nil", f.Body)
		}
	})

	t.Run("const index operator", func(t *testing.T) {
		c := parseOne(t, "class Foo { const B& operator[](const int i) const {} };").(*Class)
		f := asFunction(t, c.Body[0])
		if f.Name != "operator[]" {
			t.Errorf("name %q, want operator[]", f.Name)
		}
		if !f.Modifiers.Has(ModifierConst) {
			t.Errorf("modifiers %v, want const", f.Modifiers)
		}
		if f.ReturnType == nil || f.ReturnType.Name != "B" || !f.ReturnType.Reference {
			t.Errorf("return type %v, want const B&", f.ReturnType)
		}
	})

	t.Run("call operator", func(t *testing.T) {
		c := parseOne(t, "class Less { bool operator()(int a, int b) const { return a < b; } };").(*Class)
		f := asFunction(t, c.Body[0])
		if f.Name != "operator()" {
			t.Errorf("name %q, want operator()", f.Name)
		}
		if len(f.Parameters) != 2 {
			t.Errorf("got %d parameters, want 2", len(f.Parameters))
		}
	})

	t.Run("override and throw", func(t *testing.T) {
		c := parseOne(t, "class Foo { void f() throw(Err) override; };").(*Class)
		f := asFunction(t, c.Body[0])
		if !f.Modifiers.Has(ModifierThrow) || !f.Modifiers.Has(ModifierOverride) {
			t.Errorf("modifiers %v, want throw|override", f.Modifiers)
		}
	})
}

func TestBuilderSkipsUnmodeledDeclarations(t *testing.T) {
	src := `
typedef struct { int x; } Handle;
enum Color { Red, Green };
union U { int i; float f; };
using namespace std;
int counter = 0;
extern "C" { void c_only(); }
class Kept {};
`
	nodes := parseAll(t, src)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1: %v", len(nodes), nodes)
	}
	if asClass(t, nodes[0]).Name != "Kept" {
		t.Errorf("got %v, want class Kept", nodes[0])
	}
}

func TestBuilderIfZero(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"nested", `
#if 0
class Skipped {};
#if 1
class AlsoSkipped {};
#endif
class StillSkipped {};
#endif
class Kept {};
`},
		{"parenthesized without space", `
#if(0)
class Skipped {};
#endif
class Kept {};
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := parseAll(t, tt.src)
			if len(nodes) != 1 || asClass(t, nodes[0]).Name != "Kept" {
				t.Errorf("nodes %v, want only class Kept", nodes)
			}
		})
	}
}

func TestBuilderParseError(t *testing.T) {
	t.Run("unterminated class", func(t *testing.T) {
		b := NewAstBuilder([]byte("class Foo {"), "broken.h")
		_, err := b.Next()
		perr, ok := err.(*ParseError)
		if !ok {
			t.Fatalf("got %v, want *ParseError", err)
		}
		if perr.Filename != "broken.h" {
			t.Errorf("filename %q, want broken.h", perr.Filename)
		}
		if _, err := b.Next(); err != io.EOF {
			t.Errorf("after error got %v, want io.EOF", err)
		}
	})

	t.Run("generate keeps earlier nodes", func(t *testing.T) {
		nodes, err := NewAstBuilder([]byte("class Good {}; class Bad {"), "test.h").Generate()
		if err == nil {
			t.Fatal("want an error for the broken class")
		}
		if !strings.Contains(err.Error(), "test.h") {
			t.Errorf("error %q does not name the file", err)
		}
		if len(nodes) != 1 || asClass(t, nodes[0]).Name != "Good" {
			t.Errorf("nodes %v, want [Good]", nodes)
		}
	})

	t.Run("truncated input terminates", func(t *testing.T) {
		inputs := []string{
			"void foo(",
			"namespace A",
			"template <typename T",
			"class",
			"~",
		}
		for _, src := range inputs {
			b := NewAstBuilder([]byte(src), "test.h")
			for i := 0; i < 10; i++ {
				if _, err := b.Next(); err == io.EOF {
					break
				}
			}
			if _, err := b.Next(); err != io.EOF {
				t.Errorf("%q: builder did not drain to io.EOF", src)
			}
		}
	})
}

func TestBuilderNextIsLazy(t *testing.T) {
	b := NewAstBuilder([]byte("class A {}; class B {};"), "test.h")
	first, err := b.Next()
	if err != nil {
		t.Fatal(err)
	}
	if asClass(t, first).Name != "A" {
		t.Errorf("first node %v, want A", first)
	}
	second, err := b.Next()
	if err != nil {
		t.Fatal(err)
	}
	if asClass(t, second).Name != "B" {
		t.Errorf("second node %v, want B", second)
	}
	if _, err := b.Next(); err != io.EOF {
		t.Errorf("got %v, want io.EOF", err)
	}
}
