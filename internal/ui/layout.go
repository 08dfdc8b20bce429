package ui

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Static asset paths served by the server.
const (
	StylesheetPath = "/static/site.css"
	LiveScriptPath = "/static/live.js"
	iconifyScript  = "https://code.iconify.design/3/3.1.1/iconify.min.js"
)

// Document renders the full page with every registered section.
func Document(v View, reg *Registry) g.Node {
	site := v.Catalog.Site

	sections := make([]g.Node, 0, reg.Count())
	for _, s := range reg.All() {
		sections = append(sections, s.Render(v))
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		h.HTML(
			h.Lang(v.Locale.Lang()),
			g.Attr("dir", v.Locale.Dir()),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0")),
				h.TitleEl(g.Text(site.Title)),
				h.Meta(h.Name("description"), h.Content(site.Description)),
				h.Meta(h.Name("keywords"), h.Content(site.Keywords)),
				h.Meta(g.Attr("property", "og:type"), h.Content("website")),
				h.Meta(g.Attr("property", "og:title"), h.Content(site.Title)),
				h.Meta(g.Attr("property", "og:description"), h.Content(site.Description)),
				h.Meta(g.Attr("property", "og:site_name"), h.Content(site.Name)),
				g.If(site.URL != "", h.Meta(g.Attr("property", "og:url"), h.Content(site.URL))),
				g.If(site.OGImage != "", h.Meta(g.Attr("property", "og:image"), h.Content(site.OGImage))),
				h.Link(h.Rel("stylesheet"), h.Href(StylesheetPath)),
				h.Script(h.Src(iconifyScript), g.Attr("defer")),
			),
			h.Body(
				h.Class("page"),
				g.Group(sections),
				g.If(v.Live, h.Script(h.Src(LiveScriptPath), g.Attr("defer"))),
			),
		),
	})
}

// Page returns the full document as a templ component.
func Page(v View, reg *Registry) templ.Component {
	return Templ(Document(v, reg))
}

// Fragment returns one section as a templ component.
func Fragment(v View, s Section) templ.Component {
	return Templ(s.Render(v))
}
