package ui

import (
	"github.com/deltafood/delta/internal/carousel"
	"github.com/deltafood/delta/internal/contact"
	"github.com/deltafood/delta/internal/content"
	"github.com/deltafood/delta/internal/lightbox"
	"github.com/deltafood/delta/internal/locale"
)

// ScrolledOffset is the scroll position past which the navigation bar
// switches to its compact style.
const ScrolledOffset = 50

// CTAParallax is how far the call-to-action backdrop moves per pixel
// scrolled.
const CTAParallax = 0.3

// Patch targets. Each is the id of an element the live session replaces.
const (
	TargetNav          = "nav"
	TargetTestimonials = "testimonials"
	TargetLightbox     = "lightbox"
	TargetContactForm  = "contact-form"
	TargetNewsletter   = "newsletter"
)

// NavState is the navigation bar state.
type NavState struct {
	Open     bool
	Scrolled bool
}

// View is everything needed to render the page for one visitor: the shared
// catalog plus that visitor's interactive state.
type View struct {
	Catalog *content.Catalog
	Locale  locale.Locale

	Nav          NavState
	Testimonials carousel.Pager
	Lightbox     lightbox.State
	Contact      *contact.Controller
	Newsletter   *contact.Newsletter

	// Live adds the client script that connects to the live endpoint.
	Live bool
}

// NewView returns the initial view of c with pageSize testimonials per
// page.
func NewView(c *content.Catalog, pageSize int) View {
	return View{
		Catalog:      c,
		Locale:       locale.Parse(c.Site.Locale),
		Testimonials: carousel.New(len(c.Testimonials.Items), pageSize),
		Lightbox:     lightbox.Closed{},
		Contact:      &contact.Controller{},
		Newsletter:   &contact.Newsletter{},
	}
}

// SelectedImage returns the photo shown in the lightbox, if open.
func (v View) SelectedImage() (content.Image, bool) {
	return lightbox.Selected[content.Image](v.Lightbox)
}

type (
	navItem     = content.NavItem
	highlight   = content.Highlight
	dish        = content.Dish
	service     = content.Service
	link        = content.Link
	hoursRow    = content.Hours
	photo       = content.Image
	testimonial = content.Testimonial
)
