package htmlutil

import "htmlhead/internal/html"

// WriteImagePreloadScript writes a script that starts loading the image at
// url. The url should already be URL-encoded and use a bare "&" between
// parameters (not "&amp;"); it is only escaped as a string literal.
//
// Unlike the analytics helpers, an empty url is written as given.
func WriteImagePreloadScript(sink html.ScriptSupportingSink, url string) error {
	var body html.ScriptBuilder
	body.Append("var img=new Image();").Nl().
		Append("img.src=").Text(url).Append(";")
	return sink.Script(html.Script{Body: body.String()})
}
