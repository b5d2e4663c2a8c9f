package html

import (
	"fmt"
	"strings"
)

// Doctype is the declared document type of a Document.
type Doctype int

const (
	HTML5 Doctype = iota
	Strict
	Transitional
	Frameset
	// None writes no declaration; the document is treated as legacy markup.
	None
)

var doctypeNames = map[Doctype]string{
	HTML5:        "html5",
	Strict:       "strict",
	Transitional: "transitional",
	Frameset:     "frameset",
	None:         "none",
}

var doctypeDecls = map[Doctype]string{
	HTML5:        `<!DOCTYPE html>`,
	Strict:       `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`,
	Transitional: `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd">`,
	Frameset:     `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Frameset//EN" "http://www.w3.org/TR/html4/frameset.dtd">`,
}

// ParseDoctype maps a configuration name such as "html5" or "transitional"
// to a Doctype. Matching is case-insensitive.
func ParseDoctype(name string) (Doctype, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d, n := range doctypeNames {
		if n == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown doctype %q", name)
}

// IsModern reports whether d is HTML5. Every other doctype gets the legacy
// http-equiv metadata and typed script elements.
func (d Doctype) IsModern() bool { return d == HTML5 }

func (d Doctype) String() string {
	if n, ok := doctypeNames[d]; ok {
		return n
	}
	return fmt.Sprintf("Doctype(%d)", int(d))
}

// Declaration returns the <!DOCTYPE> line, or "" for None.
func (d Doctype) Declaration() string { return doctypeDecls[d] }
