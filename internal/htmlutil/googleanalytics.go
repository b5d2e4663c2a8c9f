// Package htmlutil writes fixed head snippets (analytics tags, preload
// scripts, standard meta) into an open document.
package htmlutil

import (
	"htmlhead/internal/escape"
	"htmlhead/internal/html"
)

const (
	analyticsOrigin = "https://www.google-analytics.com/"
	gtagScriptURL   = "https://www.googletagmanager.com/gtag/js?id="
)

// WriteGlobalSiteTag writes the Google Analytics Global Site Tag (gtag.js),
// preceded by dns-prefetch and preconnect hints for the analytics host. It is
// meant for HTML5 documents and belongs near the top of the head.
//
// Nothing is written when trackingID is empty after trimming. The first write
// error is returned as is and the remaining elements are skipped.
func WriteGlobalSiteTag(sink html.MetadataPhrasingSink, trackingID string) error {
	id, ok := NormalizeID(trackingID)
	if !ok {
		return nil
	}

	if err := sink.Link(html.A("rel", "dns-prefetch"), html.A("href", analyticsOrigin)); err != nil {
		return err
	}
	if err := sink.Link(html.A("rel", "preconnect"), html.A("href", analyticsOrigin), html.A("crossorigin", "anonymous")); err != nil {
		return err
	}
	if err := sink.Script(html.Script{
		Attrs: []html.Attr{html.BoolAttr("async"), html.A("src", gtagScriptURL+escape.QueryParam(id))},
	}); err != nil {
		return err
	}

	var body html.ScriptBuilder
	body.Append("window.dataLayer = window.dataLayer || [];").Nl().
		Append("function gtag(){dataLayer.push(arguments);}").Nl().
		Append(`gtag("js", new Date());`).Nl().
		Append(`gtag("config", `).Text(id).Append(");")
	return sink.Script(html.Script{Body: body.String()})
}

// WriteAnalyticsJs writes the older analytics.js tracking snippet, for
// doctypes before HTML5. The snippet text follows the vendor's published
// loader exactly.
//
// Nothing is written when trackingID is empty after trimming.
//
// Deprecated: All sites should be HTML5 now; use WriteGlobalSiteTag.
func WriteAnalyticsJs(sink html.ScriptSupportingSink, trackingID string) error {
	id, ok := NormalizeID(trackingID)
	if !ok {
		return nil
	}

	var body html.ScriptBuilder
	body.Append(`(function(i,s,o,g,r,a,m){i["GoogleAnalyticsObject"]=r;i[r]=i[r] || function(){`).Nl().
		Append(`(i[r].q=i[r].q || []).push(arguments)},i[r].l=1*new Date();a=s.createElement(o),`).Nl().
		Append(`m=s.getElementsByTagName(o)[0];a.async=1;a.src=g;m.parentNode.insertBefore(a,m)`).Nl().
		Append(`})(window,document,"script","https://www.google-analytics.com/analytics.js","ga");`).Nl().
		Append(`ga("create",`).Text(id).Append(`,"auto");`).Nl().
		Append(`ga("send","pageview");`)
	return sink.Script(html.Script{Body: body.String()})
}
