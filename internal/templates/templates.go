package templates

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"htmlhead/internal/config"
	"htmlhead/internal/html"
	"htmlhead/internal/htmlutil"
)

//go:embed *.html
var htmlFiles embed.FS

var Page *template.Template

// PageData is the per-request input of Page.
type PageData struct {
	Title string
	// Nonce is the CSP nonce placed on every generated script element.
	Nonce string
}

// Init parses the embedded templates. The head helpers it registers render
// through htmlutil, so templates never contain script text of their own.
func Init(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	h := &head{cfg: cfg}
	funcs := template.FuncMap{
		"DoctypeDecl":  h.doctypeDecl,
		"Modern":       h.modern,
		"StandardMeta": h.standardMeta,
		"GoogleTag":    h.googleTag,
		"AnalyticsJs":  h.analyticsJs,
		"Clarity":      h.clarity,
		"ImagePreload": h.imagePreload,
	}
	tmpls, err := template.New("all").Funcs(funcs).ParseFS(htmlFiles, "*.html")
	if err != nil {
		return err
	}
	Page = ensure(tmpls, "page.html")
	return nil
}

// Render executes Page. Init must have been called.
func Render(w io.Writer, data PageData) error {
	return Page.Execute(w, data)
}

func ensure(templates *template.Template, name string) *template.Template {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		panic("template " + name + " not found")
	}
	return tmpl
}

type head struct {
	cfg *config.Config
}

func (h *head) render(nonce string, write func(*html.Document) error) (template.HTML, error) {
	var buf bytes.Buffer
	opts := append(h.cfg.DocumentOptions(), html.WithIndent("  ", 1), html.WithNonce(nonce))
	doc, err := html.NewDocument(&buf, opts...)
	if err != nil {
		return "", err
	}
	if err := write(doc); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (h *head) doctypeDecl() (template.HTML, error) {
	doctype, err := html.ParseDoctype(h.cfg.Document.Doctype)
	if err != nil {
		return "", err
	}
	return template.HTML(doctype.Declaration()), nil
}

func (h *head) modern() bool {
	doctype, err := html.ParseDoctype(h.cfg.Document.Doctype)
	return err == nil && doctype.IsModern()
}

func (h *head) standardMeta() (template.HTML, error) {
	return h.render("", func(d *html.Document) error {
		return htmlutil.WriteStandardMeta(d, h.cfg.Document.ContentType)
	})
}

func (h *head) googleTag(nonce string) (template.HTML, error) {
	return h.render(nonce, func(d *html.Document) error {
		return htmlutil.WriteGlobalSiteTag(d, h.cfg.Analytics.GoogleTagID)
	})
}

func (h *head) analyticsJs(nonce string) (template.HTML, error) {
	return h.render(nonce, func(d *html.Document) error {
		//nolint:staticcheck // legacy doctypes still get analytics.js
		return htmlutil.WriteAnalyticsJs(d, h.cfg.Analytics.LegacyTrackingID)
	})
}

func (h *head) clarity(nonce string) (template.HTML, error) {
	return h.render(nonce, func(d *html.Document) error {
		return htmlutil.WriteClarityTag(d, h.cfg.Analytics.ClarityProjectID)
	})
}

func (h *head) imagePreload(nonce string) (template.HTML, error) {
	return h.render(nonce, func(d *html.Document) error {
		for _, url := range h.cfg.Document.PreloadImages {
			if err := htmlutil.WriteImagePreloadScript(d, url); err != nil {
				return err
			}
		}
		return nil
	})
}
