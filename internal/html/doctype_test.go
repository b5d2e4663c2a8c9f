package html

import "testing"

func TestParseDoctype(t *testing.T) {
	tests := map[string]Doctype{
		"html5":        HTML5,
		"HTML5":        HTML5,
		" strict ":     Strict,
		"Transitional": Transitional,
		"frameset":     Frameset,
		"none":         None,
	}
	for in, want := range tests {
		got, err := ParseDoctype(in)
		if err != nil {
			t.Fatalf("ParseDoctype(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseDoctype(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseDoctype("xhtml2"); err == nil {
		t.Fatal("expected error for unknown doctype")
	}
}

func TestDoctypeIsModern(t *testing.T) {
	if !HTML5.IsModern() {
		t.Error("HTML5 should be modern")
	}
	for _, d := range []Doctype{Strict, Transitional, Frameset, None} {
		if d.IsModern() {
			t.Errorf("%v should not be modern", d)
		}
	}
}

func TestDoctypeString(t *testing.T) {
	if got := Transitional.String(); got != "transitional" {
		t.Errorf("got %q", got)
	}
	if got := Doctype(9).String(); got != "Doctype(9)" {
		t.Errorf("got %q", got)
	}
}
