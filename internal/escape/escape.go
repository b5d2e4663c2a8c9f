// Package escape embeds untrusted strings into generated markup. It covers
// exactly two contexts: a URL query parameter value and a double-quoted
// JavaScript string literal inside a script element.
package escape

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf16"
)

// QueryParam percent-encodes value for use as a single query parameter value.
// Only the RFC 3986 unreserved characters (ALPHA, DIGIT, "-", ".", "_", "~")
// are left as is; every other UTF-8 byte is written as %XX, so a space becomes
// %20 and a plus sign %2B.
func QueryParam(value string) string {
	// QueryEscape already escapes everything outside the unreserved set,
	// including a literal '+', except that it writes space as '+'.
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// ScriptString returns value as a double-quoted JavaScript string literal that
// is safe to place inside a <script> element.
//
// Besides backslash, quote and the usual control escapes, the angle brackets
// are written as \u003c and \u003e so the result never contains "</script" or
// "<!--". Every rune outside printable ASCII is written as a \uXXXX escape
// (a surrogate pair above U+FFFF), so the literal is pure ASCII and survives
// transcoding to any document encoding. The literal is also valid JSON.
// Invalid UTF-8 is replaced by U+FFFD.
func ScriptString(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '<':
			b.WriteString(`\u003c`)
		case '>':
			b.WriteString(`\u003e`)
		default:
			switch {
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
			case r < 0x20 || r >= 0x7f:
				fmt.Fprintf(&b, `\u%04x`, r)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
