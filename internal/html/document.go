// Package html writes head markup element by element to an io.Writer. A
// Document satisfies both sink interfaces used by the snippet helpers in
// htmlutil.
package html

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrUnsafeScript is returned for a script body that would end its own element.
var ErrUnsafeScript = errors.New("script body contains a closing script tag")

// Document is an open document context. It is not safe for concurrent use.
type Document struct {
	w        io.Writer
	doctype  Doctype
	encoding string
	indent   string
	depth    int
	nonce    string
}

// Option configures a Document.
type Option func(*Document) error

// WithDoctype sets the declared document type. The default is HTML5.
func WithDoctype(dt Doctype) Option {
	return func(d *Document) error {
		if _, ok := doctypeNames[dt]; !ok {
			return fmt.Errorf("unknown doctype %d", int(dt))
		}
		d.doctype = dt
		return nil
	}
}

// WithEncoding sets the character encoding by any W3C encoding label, e.g.
// "UTF-8", "latin1" or "windows-1252". The stored name is canonical.
func WithEncoding(label string) Option {
	return func(d *Document) error {
		name, err := CanonicalEncoding(label)
		if err != nil {
			return err
		}
		d.encoding = name
		return nil
	}
}

// WithIndent indents elements by depth repetitions of unit. Script bodies are
// indented one level further.
func WithIndent(unit string, depth int) Option {
	return func(d *Document) error {
		d.indent = unit
		d.depth = depth
		return nil
	}
}

// WithNonce adds a CSP nonce attribute to every script element.
func WithNonce(nonce string) Option {
	return func(d *Document) error {
		d.nonce = nonce
		return nil
	}
}

// NewDocument returns a Document writing to w.
func NewDocument(w io.Writer, opts ...Option) (*Document, error) {
	d := &Document{w: w, doctype: HTML5, encoding: "utf-8"}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// LookupEncoding returns the encoding for a W3C encoding label.
func LookupEncoding(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("unsupported document encoding %q: %w", label, err)
	}
	return enc, nil
}

// CanonicalEncoding resolves an encoding label to its canonical W3C name.
func CanonicalEncoding(label string) (string, error) {
	enc, err := LookupEncoding(label)
	if err != nil {
		return "", err
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "", fmt.Errorf("unsupported document encoding %q: %w", label, err)
	}
	return name, nil
}

func (d *Document) Doctype() Doctype { return d.doctype }

func (d *Document) Encoding() string { return d.encoding }

// WriteDoctype writes the document type declaration, if the doctype has one.
func (d *Document) WriteDoctype() error {
	decl := d.doctype.Declaration()
	if decl == "" {
		return nil
	}
	return d.write([]byte(decl + "\n"))
}

func (d *Document) Link(attrs ...Attr) error { return d.void(atom.Link, attrs) }

func (d *Document) Meta(attrs ...Attr) error { return d.void(atom.Meta, attrs) }

// Script writes a complete script element in a single write.
func (d *Document) Script(s Script) error {
	if strings.Contains(strings.ToLower(s.Body), "</script") {
		return ErrUnsafeScript
	}

	attrs := make([]Attr, 0, len(s.Attrs)+2)
	if !d.doctype.IsModern() {
		attrs = append(attrs, A("type", "text/javascript"))
	}
	attrs = append(attrs, s.Attrs...)
	if d.nonce != "" {
		attrs = append(attrs, A("nonce", d.nonce))
	}

	var buf bytes.Buffer
	prefix := strings.Repeat(d.indent, d.depth)
	buf.WriteString(prefix)
	writeStartTag(&buf, atom.Script, attrs)
	if s.Body != "" {
		buf.WriteByte('\n')
		inner := prefix + d.indent
		for _, line := range strings.Split(s.Body, "\n") {
			if line != "" {
				buf.WriteString(inner)
				buf.WriteString(line)
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(prefix)
	}
	buf.WriteString("</script>\n")
	return d.write(buf.Bytes())
}

func (d *Document) void(tag atom.Atom, attrs []Attr) error {
	var buf bytes.Buffer
	buf.WriteString(strings.Repeat(d.indent, d.depth))
	writeStartTag(&buf, tag, attrs)
	buf.WriteByte('\n')
	return d.write(buf.Bytes())
}

func (d *Document) write(p []byte) error {
	_, err := d.w.Write(p)
	return err
}

func writeStartTag(buf *bytes.Buffer, tag atom.Atom, attrs []Attr) {
	buf.WriteByte('<')
	buf.WriteString(tag.String())
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		if a.Bool {
			continue
		}
		buf.WriteString(`="`)
		buf.WriteString(xhtml.EscapeString(a.Value))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')
}
