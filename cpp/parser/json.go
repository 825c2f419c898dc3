package parser

import "encoding/json"

type jsonNode struct {
	Kind       string       `json:"kind"`
	Name       string       `json:"name,omitempty"`
	Span       *jsonSpan    `json:"span,omitempty"`
	System     bool         `json:"system,omitempty"`
	Namespace  []string     `json:"namespace,omitempty"`
	Bases      []*jsonType  `json:"bases,omitempty"`
	Templates  []*jsonTmpl  `json:"templates,omitempty"`
	ReturnType *jsonType    `json:"return_type,omitempty"`
	Parameters []*jsonParam `json:"parameters,omitempty"`
	Modifiers  []string     `json:"modifiers,omitempty"`
	InClass    string       `json:"in_class,omitempty"`
	Body       []*jsonNode  `json:"body,omitempty"`
	BodyTokens []string     `json:"body_tokens,omitempty"`
	Forward    bool         `json:"forward,omitempty"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonType struct {
	Name      string      `json:"name"`
	Templates []*jsonType `json:"templates,omitempty"`
	Modifiers []string    `json:"modifiers,omitempty"`
	Reference bool        `json:"reference,omitempty"`
	Pointer   bool        `json:"pointer,omitempty"`
	Array     bool        `json:"array,omitempty"`
}

type jsonTmpl struct {
	Name    string      `json:"name"`
	Kind    string      `json:"type,omitempty"`
	Default []*jsonType `json:"default,omitempty"`
}

type jsonParam struct {
	Name    string    `json:"name,omitempty"`
	Type    *jsonType `json:"type"`
	Default []string  `json:"default,omitempty"`
}

func (n *Include) MarshalJSON() ([]byte, error) { return json.Marshal(nodeToJSON(n)) }
func (n *Class) MarshalJSON() ([]byte, error)   { return json.Marshal(nodeToJSON(n)) }
func (n *Struct) MarshalJSON() ([]byte, error)  { return json.Marshal(nodeToJSON(n)) }
func (n *Function) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeToJSON(n))
}
func (n *Method) MarshalJSON() ([]byte, error) { return json.Marshal(nodeToJSON(n)) }

func nodeToJSON(n Node) *jsonNode {
	switch v := n.(type) {
	case *Include:
		return &jsonNode{
			Kind:   v.Kind().String(),
			Name:   v.Filename,
			System: v.System,
			Span:   &jsonSpan{Start: v.Start, End: v.End},
		}
	case *Struct:
		jn := classToJSON(&v.Class)
		jn.Kind = v.Kind().String()
		return jn
	case *Class:
		return classToJSON(v)
	case *Method:
		jn := functionToJSON(&v.Function)
		jn.Kind = v.Kind().String()
		jn.InClass = joinTypeName(tokenTexts(v.InClass))
		return jn
	case *Function:
		return functionToJSON(v)
	}
	return nil
}

func classToJSON(c *Class) *jsonNode {
	jn := &jsonNode{
		Kind:      c.Kind().String(),
		Name:      c.Name,
		Span:      &jsonSpan{Start: c.Start, End: c.End},
		Namespace: c.Namespace,
		Templates: templatesToJSON(c.TemplatedTypes),
		Forward:   c.Body == nil,
	}
	for _, base := range c.Bases {
		jn.Bases = append(jn.Bases, typeToJSON(base))
	}
	if c.Body != nil {
		jn.Body = make([]*jsonNode, 0, len(c.Body))
		for _, child := range c.Body {
			jn.Body = append(jn.Body, nodeToJSON(child))
		}
	}
	return jn
}

func functionToJSON(f *Function) *jsonNode {
	jn := &jsonNode{
		Kind:       f.Kind().String(),
		Name:       f.Name,
		Span:       &jsonSpan{Start: f.Start, End: f.End},
		Namespace:  f.Namespace,
		Templates:  templatesToJSON(f.TemplatedTypes),
		ReturnType: typeToJSON(f.ReturnType),
		Modifiers:  modifierStrings(f.Modifiers),
		Forward:    f.Body == nil,
	}
	for _, p := range f.Parameters {
		jp := &jsonParam{Name: p.Name, Type: typeToJSON(p.Type)}
		jp.Default = tokenTexts(p.Default)
		jn.Parameters = append(jn.Parameters, jp)
	}
	if f.Body != nil {
		jn.BodyTokens = tokenTexts(f.Body)
	}
	return jn
}

func typeToJSON(t *Type) *jsonType {
	if t == nil {
		return nil
	}
	jt := &jsonType{
		Name:      t.Name,
		Modifiers: t.Modifiers,
		Reference: t.Reference,
		Pointer:   t.Pointer,
		Array:     t.Array,
	}
	for _, tt := range t.TemplatedTypes {
		jt.Templates = append(jt.Templates, typeToJSON(tt))
	}
	return jt
}

func templatesToJSON(params TemplateParams) []*jsonTmpl {
	var out []*jsonTmpl
	for _, p := range params {
		jt := &jsonTmpl{Name: p.Name}
		if p.TypeName != nil {
			jt.Kind = p.TypeName.Text
		}
		for _, d := range p.Default {
			jt.Default = append(jt.Default, typeToJSON(d))
		}
		out = append(out, jt)
	}
	return out
}

func modifierStrings(m Modifiers) []string {
	var out []string
	for _, mn := range modifierNames {
		if m.Has(mn.flag) {
			out = append(out, mn.name)
		}
	}
	return out
}
