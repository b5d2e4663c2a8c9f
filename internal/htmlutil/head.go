package htmlutil

import "htmlhead/internal/html"

// WriteStandardMeta writes the minimal meta tags for the sink's doctype: a
// charset declaration for HTML5, or the Content-Type, Content-Style-Type and
// Content-Script-Type http-equiv tags otherwise. contentType is only used by
// the legacy form.
func WriteStandardMeta(sink html.MetadataPhrasingSink, contentType string) error {
	if sink.Doctype().IsModern() {
		return sink.Meta(html.A("charset", sink.Encoding()))
	}

	legacy := [][]html.Attr{
		{html.A("http-equiv", "Content-Type"), html.A("content", contentType)},
		// default style and script languages
		{html.A("http-equiv", "Content-Style-Type"), html.A("content", "text/css")},
		{html.A("http-equiv", "Content-Script-Type"), html.A("content", "text/javascript")},
	}
	for _, attrs := range legacy {
		if err := sink.Meta(attrs...); err != nil {
			return err
		}
	}
	return nil
}
