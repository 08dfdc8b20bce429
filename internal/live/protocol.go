// Package live runs the interactive part of the page on the server. Each
// websocket connection gets a Session: the mounted instance of the page's
// interactive components. A session owns its pager, autoplay timer,
// lightbox, navigation and form state, processes every event on one
// goroutine, and answers with HTML patches for the elements that changed.
package live

import "encoding/json"

// Client events.
const (
	EventViewport         = "viewport"
	EventTestimonialsNext = "testimonials.next"
	EventTestimonialsPrev = "testimonials.prev"
	EventTestimonialsGoTo = "testimonials.goto"
	EventGalleryOpen      = "gallery.open"
	EventGalleryNext      = "gallery.next"
	EventGalleryPrev      = "gallery.prev"
	EventGalleryClose     = "gallery.close"
	EventPointerDown      = "document.pointerdown"
	EventKeyDown          = "document.keydown"
	EventScroll           = "document.scroll"
	EventNavToggle        = "nav.toggle"
	EventNavClose         = "nav.close"
	EventContactSubmit    = "contact.submit"
	EventNewsletterSubmit = "newsletter.submit"
)

// Document-level listeners the client attaches on request.
const (
	ListenPointerDown = "pointerdown"
	ListenKeyDown     = "keydown"
	ListenScroll      = "scroll"
)

// Server message types.
const (
	TypePatch    = "patch"
	TypeListen   = "listen"
	TypeUnlisten = "unlisten"
	TypeReload   = "reload"
)

// ClientMessage is an event sent by the browser.
type ClientMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage is an instruction for the browser: replace an element,
// attach or detach a document listener, or reload the page.
type ServerMessage struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
	HTML   string `json:"html,omitempty"`
	Event  string `json:"event,omitempty"`
}

type viewportPayload struct {
	Width int `json:"width"`
}

type gotoPayload struct {
	Page int `json:"page"`
}

type openPayload struct {
	ID int `json:"id"`
}

type pointerPayload struct {
	Inside bool `json:"inside"`
}

type keyPayload struct {
	Key string `json:"key"`
}

type scrollPayload struct {
	Y float64 `json:"y"`
}

type newsletterPayload struct {
	Email string `json:"email"`
}
