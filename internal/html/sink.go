package html

import (
	"strings"

	"htmlhead/internal/escape"
)

// Attr is a single attribute. Boolean attributes set Bool and render without
// a value.
type Attr struct {
	Name  string
	Value string
	Bool  bool
}

// A is shorthand for a valued attribute.
func A(name, value string) Attr { return Attr{Name: name, Value: value} }

// BoolAttr returns a boolean attribute such as async or defer.
func BoolAttr(name string) Attr { return Attr{Name: name, Bool: true} }

// Script is a script element. An empty Body writes an empty element, which is
// what external scripts (with a src attribute) need.
type Script struct {
	Attrs []Attr
	Body  string
}

// ScriptSupportingSink accepts script elements only.
type ScriptSupportingSink interface {
	Script(s Script) error
}

// MetadataPhrasingSink is a head-like context that accepts link, meta and
// script elements and knows the document's declared type.
type MetadataPhrasingSink interface {
	ScriptSupportingSink
	Link(attrs ...Attr) error
	Meta(attrs ...Attr) error
	Doctype() Doctype
	// Encoding is the canonical name of the document's character encoding.
	Encoding() string
}

// ScriptBuilder assembles a script body in memory. Literal text is appended as
// is; values passed to Text are embedded as string literals.
type ScriptBuilder struct {
	b strings.Builder
}

// Append writes trusted script text.
func (s *ScriptBuilder) Append(literal string) *ScriptBuilder {
	s.b.WriteString(literal)
	return s
}

// Text writes value as a quoted string literal.
func (s *ScriptBuilder) Text(value string) *ScriptBuilder {
	s.b.WriteString(escape.ScriptString(value))
	return s
}

// Nl starts a new line.
func (s *ScriptBuilder) Nl() *ScriptBuilder {
	s.b.WriteByte('\n')
	return s
}

func (s *ScriptBuilder) String() string { return s.b.String() }
