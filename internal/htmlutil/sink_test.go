package htmlutil

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	xhtml "golang.org/x/net/html"

	"htmlhead/internal/html"
)

// recorder is a sink that keeps one line per element written to it.
type recorder struct {
	doctype html.Doctype
	writes  []string
	// failAt makes the n-th write (1-based) fail with err.
	failAt int
	err    error
}

func (r *recorder) record(tag string, attrs []html.Attr, body string) error {
	if r.failAt > 0 && len(r.writes)+1 == r.failAt {
		return r.err
	}
	var b strings.Builder
	b.WriteString(tag)
	for _, a := range attrs {
		b.WriteString(" " + a.Name)
		if !a.Bool {
			b.WriteString("=" + a.Value)
		}
	}
	if body != "" {
		b.WriteString(" {" + body + "}")
	}
	r.writes = append(r.writes, b.String())
	return nil
}

func (r *recorder) Script(s html.Script) error    { return r.record("script", s.Attrs, s.Body) }
func (r *recorder) Link(attrs ...html.Attr) error { return r.record("link", attrs, "") }
func (r *recorder) Meta(attrs ...html.Attr) error { return r.record("meta", attrs, "") }
func (r *recorder) Doctype() html.Doctype         { return r.doctype }
func (r *recorder) Encoding() string              { return "utf-8" }

var errClosed = errors.New("writer closed")

// failingWriter accepts ok writes and then fails.
type failingWriter struct {
	ok     int
	writes int
	buf    bytes.Buffer
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.ok {
		return 0, errClosed
	}
	return w.buf.Write(p)
}

type element struct {
	tag   string
	attrs map[string]string
	text  string
}

// parseHead returns the link, meta and script elements of a rendered fragment
// in document order.
func parseHead(t *testing.T, fragment string) []element {
	t.Helper()
	doc, err := xhtml.Parse(strings.NewReader("<!DOCTYPE html><html><head>" + fragment + "</head><body></body></html>"))
	if err != nil {
		t.Fatalf("failed to parse rendered markup: %v", err)
	}

	var out []element
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode {
			switch n.Data {
			case "link", "meta", "script":
				e := element{tag: n.Data, attrs: map[string]string{}}
				for _, a := range n.Attr {
					e.attrs[a.Key] = a.Val
				}
				if n.FirstChild != nil && n.FirstChild.Type == xhtml.TextNode {
					e.text = n.FirstChild.Data
				}
				out = append(out, e)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func render(t *testing.T, write func(*html.Document) error, opts ...html.Option) string {
	t.Helper()
	var buf bytes.Buffer
	doc, err := html.NewDocument(&buf, opts...)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if err := write(doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf.String()
}
