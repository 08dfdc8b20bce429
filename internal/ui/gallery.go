package ui

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/deltafood/delta/internal/carousel"
	"github.com/deltafood/delta/internal/lightbox"
)

// Gallery renders the photo grid and the lightbox container.
func Gallery(v View) g.Node {
	gallery := v.Catalog.Gallery
	return h.Section(
		h.ID("gallery"),
		h.Class("section gallery"),
		h.Div(
			h.Class("container"),
			reveal(),
			SectionHeader(HeaderProps{Title: gallery.Heading, Subtitle: gallery.Subheading, Size: SizeLarge}),
			h.Div(
				h.Class("gallery-grid"),
				g.Map(gallery.Images, func(img photo) g.Node {
					return h.Button(
						h.Type("button"),
						h.Class("gallery-item"),
						g.Attr("aria-label", img.Alt),
						onClick("gallery.open", map[string]int{"id": img.ID}),
						h.Img(h.Src(img.Src), h.Alt(img.Alt), g.Attr("loading", "lazy")),
						h.Span(h.Class("gallery-caption"), g.Text(img.Alt)),
					)
				}),
			),
			g.If(gallery.MoreLabel != "", h.Div(h.Class("section-footer"),
				LinkButton(ButtonProps{Variant: ButtonOutline, Label: gallery.MoreLabel}, gallery.MoreHref))),
		),
		Lightbox(v),
	)
}

// Lightbox renders the modal for the selected photo, or an empty
// placeholder when closed so the live session has a stable patch target.
func Lightbox(v View) g.Node {
	img, open := v.SelectedImage()
	if !open {
		return h.Div(h.ID(TargetLightbox), h.Class("lightbox-host"), g.Attr("data-state", "closed"))
	}

	direction := carousel.None
	if o, ok := v.Lightbox.(lightbox.Open[photo]); ok {
		direction = o.Direction
	}
	enter, _ := direction.Offsets()

	return h.Div(
		h.ID(TargetLightbox),
		h.Class("lightbox-host"),
		g.Attr("data-state", "open"),
		h.Div(
			h.Class("lightbox-backdrop"),
			h.Div(
				h.Class("lightbox"),
				g.Attr("role", "dialog"),
				g.Attr("aria-modal", "true"),
				g.Attr("aria-label", img.Alt),
				g.Attr("data-live-root", "lightbox"),
				g.Attr("data-direction", direction.String()),
				g.Attr("style", "--enter-x: "+strconv.Itoa(enter)+"px"),
				h.Button(
					h.Type("button"),
					h.Class("lightbox-close"),
					g.Attr("aria-label", "סגור"),
					onClick("gallery.close", nil),
					Icon("close", ""),
				),
				g.El("figure",
					h.Img(
						h.Src(img.Src),
						h.Alt(img.Alt),
						g.Attr("width", strconv.Itoa(img.Width)),
						g.Attr("height", strconv.Itoa(img.Height)),
					),
					g.El("figcaption", g.Text(img.Alt)),
				),
				h.Button(
					h.Type("button"),
					h.Class("lightbox-nav lightbox-prev"),
					g.Attr("aria-label", "הקודם"),
					onClick("gallery.prev", nil),
					Icon("chevron-right", ""),
				),
				h.Button(
					h.Type("button"),
					h.Class("lightbox-nav lightbox-next"),
					g.Attr("aria-label", "הבא"),
					onClick("gallery.next", nil),
					Icon("chevron-left", ""),
				),
			),
		),
	)
}
