package ui

import (
	"strconv"

	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/deltafood/delta/internal/carousel"
)

// Testimonials renders the paged testimonial slider. The visible page and
// the dot indicators come from the view's pager.
func Testimonials(v View) g.Node {
	section := v.Catalog.Testimonials
	p := v.Testimonials
	enter, exit := p.Direction.Offsets()

	return h.Section(
		h.ID(TargetTestimonials),
		h.Class("section testimonials"),
		g.Attr("data-page", strconv.Itoa(p.Index)),
		g.Attr("data-page-size", strconv.Itoa(p.PageSize)),
		h.Div(
			h.Class("container"),
			SectionHeader(HeaderProps{Title: section.Heading, Subtitle: section.Subheading, Decoration: DecorationIcon}),
			h.Div(
				h.Class("testimonial-page"),
				g.Attr("data-exit"),
				g.Attr("data-direction", p.Direction.String()),
				g.Attr("style", "--enter-x: "+strconv.Itoa(enter)+"px; --exit-x: "+strconv.Itoa(exit)+"px"),
				g.Map(carousel.Visible(section.Items, p), testimonialCard),
			),
			g.If(p.PageCount() > 1, h.Div(
				h.Class("testimonial-controls"),
				h.Button(
					h.Type("button"),
					h.Class("round-button"),
					g.Attr("aria-label", "הקודם"),
					onClick("testimonials.prev", nil),
					Icon("chevron-right", ""),
				),
				h.Div(h.Class("dots"), g.Group(dots(p))),
				h.Button(
					h.Type("button"),
					h.Class("round-button"),
					g.Attr("aria-label", "הבא"),
					onClick("testimonials.next", nil),
					Icon("chevron-left", ""),
				),
			)),
		),
	)
}

func dots(p carousel.Pager) []g.Node {
	nodes := make([]g.Node, 0, p.PageCount())
	for i := 0; i < p.PageCount(); i++ {
		nodes = append(nodes, h.Button(
			h.Type("button"),
			gc.Classes{"dot": true, "dot-active": i == p.Index},
			g.Attr("aria-label", "עבור לעמוד "+strconv.Itoa(i+1)),
			g.If(i == p.Index, g.Attr("aria-current", "true")),
			onClick("testimonials.goto", map[string]int{"page": i}),
		))
	}
	return nodes
}

func testimonialCard(t testimonial) g.Node {
	return h.Article(
		h.Class("testimonial glass"),
		g.Attr("data-id", strconv.Itoa(t.ID)),
		h.Div(h.Class("testimonial-quote-icon"), Icon("quote", "")),
		g.El("blockquote", h.Class("testimonial-quote"), g.Text(t.Quote)),
		h.Div(
			h.Class("testimonial-author"),
			g.If(t.Image != "", h.Img(h.Class("avatar"), h.Src(t.Image), h.Alt(t.Name), g.Attr("loading", "lazy"))),
			h.Div(
				h.H3(h.Class("testimonial-name"), g.Text(t.Name)),
				Stars(t.Rating),
			),
		),
	)
}
