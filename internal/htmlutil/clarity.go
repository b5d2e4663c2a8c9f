package htmlutil

import "htmlhead/internal/html"

// WriteClarityTag writes the Microsoft Clarity tracking script. Nothing is
// written when projectID is empty after trimming.
func WriteClarityTag(sink html.ScriptSupportingSink, projectID string) error {
	id, ok := NormalizeID(projectID)
	if !ok {
		return nil
	}

	var body html.ScriptBuilder
	body.Append("(function(c,l,a,r,i,t,y){").Nl().
		Append("    c[a]=c[a]||function(){(c[a].q=c[a].q||[]).push(arguments)};").Nl().
		Append(`    t=l.createElement(r);t.async=1;t.src="https://www.clarity.ms/tag/"+i;`).Nl().
		Append("    y=l.getElementsByTagName(r)[0];y.parentNode.insertBefore(t,y);").Nl().
		Append(`})(window, document, "clarity", "script", `).Text(id).Append(");")
	return sink.Script(html.Script{Body: body.String()})
}
