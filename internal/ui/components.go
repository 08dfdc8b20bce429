package ui

import (
	"math"
	"strconv"

	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

var iconNames = map[string]string{
	"home":          "fa6-solid:house",
	"utensils":      "fa6-solid:utensils",
	"images":        "fa6-solid:images",
	"info":          "fa6-solid:circle-info",
	"envelope":      "fa6-solid:envelope",
	"calendar":      "fa6-solid:calendar-days",
	"truck":         "fa6-solid:truck",
	"glass":         "fa6-solid:champagne-glasses",
	"users":         "fa6-solid:users",
	"phone":         "fa6-solid:phone",
	"map":           "fa6-solid:location-dot",
	"clock":         "fa6-solid:clock",
	"check":         "fa6-solid:check",
	"times":         "fa6-solid:xmark",
	"quote":         "fa6-solid:quote-right",
	"facebook":      "fa6-brands:facebook",
	"instagram":     "fa6-brands:instagram",
	"twitter":       "fa6-brands:twitter",
	"menu":          "heroicons:bars-3",
	"close":         "heroicons:x-mark",
	"chevron-left":  "fa6-solid:chevron-left",
	"chevron-right": "fa6-solid:chevron-right",
	"arrow-left":    "ion:arrow-back",
	"arrow-right":   "ion:arrow-forward",
}

// Icon renders a named icon. Unknown names render nothing. A non-empty
// label makes the icon accessible; otherwise it is hidden from readers.
func Icon(name, label string) g.Node {
	id, ok := iconNames[name]
	if !ok {
		return nil
	}
	if label != "" {
		return h.Span(h.Class("icon iconify"), g.Attr("data-icon", id), g.Attr("role", "img"), g.Attr("aria-label", label))
	}
	return h.Span(h.Class("icon iconify"), g.Attr("data-icon", id), g.Attr("aria-hidden", "true"))
}

// ButtonVariant is the visual style of a button.
type ButtonVariant string

const (
	ButtonPrimary    ButtonVariant = "primary"
	ButtonSecondary  ButtonVariant = "secondary"
	ButtonOutline    ButtonVariant = "outline"
	ButtonText       ButtonVariant = "text"
	ButtonGlass      ButtonVariant = "glass"
	ButtonNeumorphic ButtonVariant = "neumorphic"
)

// Size is a small/medium/large scale shared by buttons and headers.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ButtonProps configures Button and LinkButton.
type ButtonProps struct {
	Variant   ButtonVariant
	Size      Size
	FullWidth bool
	Label     string
	Icon      string
	Type      string
	Disabled  bool
}

func (p ButtonProps) classes() gc.Classes {
	variant := p.Variant
	if variant == "" {
		variant = ButtonPrimary
	}
	size := p.Size
	if size == "" {
		size = SizeMedium
	}
	return gc.Classes{
		"btn":                    true,
		"btn-" + string(variant): true,
		"btn-" + string(size):    true,
		"btn-full":               p.FullWidth,
	}
}

// Button renders a button element. Extra nodes are appended as attributes
// or children.
func Button(p ButtonProps, extra ...g.Node) g.Node {
	typ := p.Type
	if typ == "" {
		typ = "button"
	}
	return h.Button(
		h.Type(typ),
		p.classes(),
		g.If(p.Disabled, h.Disabled()),
		g.If(p.Label != "", g.Attr("aria-label", p.Label)),
		Icon(p.Icon, ""),
		g.If(p.Label != "", h.Span(g.Text(p.Label))),
		g.Group(extra),
	)
}

// LinkButton renders an anchor styled as a button.
func LinkButton(p ButtonProps, href string, extra ...g.Node) g.Node {
	return h.A(
		h.Href(href),
		p.classes(),
		Icon(p.Icon, ""),
		h.Span(g.Text(p.Label)),
		g.Group(extra),
	)
}

// Align is a header alignment.
type Align string

const (
	AlignCenter Align = "center"
	AlignRight  Align = "right"
	AlignLeft   Align = "left"
)

// Decoration is the ornament under a section title.
type Decoration string

const (
	DecorationLines Decoration = "lines"
	DecorationDots  Decoration = "dots"
	DecorationIcon  Decoration = "icon"
)

// HeaderProps configures SectionHeader.
type HeaderProps struct {
	Title      string
	Subtitle   string
	Align      Align
	Size       Size
	Decoration Decoration
}

// SectionHeader renders a section title with optional subtitle and
// decoration. Zero values select center, medium and lines.
func SectionHeader(p HeaderProps) g.Node {
	if p.Align == "" {
		p.Align = AlignCenter
	}
	if p.Size == "" {
		p.Size = SizeMedium
	}
	if p.Decoration == "" {
		p.Decoration = DecorationLines
	}

	return h.Div(
		h.Class("section-header align-"+string(p.Align)+" size-"+string(p.Size)),
		h.H2(h.Class("section-title"), g.Text(p.Title)),
		decoration(p.Decoration),
		g.If(p.Subtitle != "", h.P(h.Class("section-subtitle"), g.Text(p.Subtitle))),
	)
}

func decoration(d Decoration) g.Node {
	switch d {
	case DecorationDots:
		return h.Div(h.Class("decoration decoration-dots"),
			h.Span(h.Class("dot")), h.Span(h.Class("dot")), h.Span(h.Class("dot")))
	case DecorationIcon:
		return h.Div(h.Class("decoration decoration-icon"), Icon("utensils", ""))
	default:
		return h.Div(h.Class("decoration decoration-lines"),
			h.Span(h.Class("line")), h.Span(h.Class("line line-short")))
	}
}

// CardVariant selects card styling.
type CardVariant string

const (
	CardDefault CardVariant = "default"
	CardDish    CardVariant = "dish"
	CardService CardVariant = "service"
	CardTeam    CardVariant = "team"
)

// CardProps configures Card.
type CardProps struct {
	Variant     CardVariant
	Image       string
	ImageAlt    string
	Heading     string
	Description string
	Price       string
	Rating      float64
	ButtonText  string
	Icon        string
	Link        string
	LinkText    string
}

// Card renders a content card. Image, price, rating, button and link are
// each optional.
func Card(p CardProps) g.Node {
	if p.Variant == "" {
		p.Variant = CardDefault
	}
	return h.Article(
		h.Class("card card-"+string(p.Variant)),
		g.If(p.Image != "", h.Div(h.Class("card-media"),
			h.Img(h.Src(p.Image), h.Alt(p.ImageAlt), g.Attr("loading", "lazy")),
		)),
		g.If(p.Icon != "", h.Div(h.Class("card-icon"), Icon(p.Icon, ""))),
		h.Div(
			h.Class("card-body"),
			h.Div(
				h.Class("card-title-row"),
				h.H3(h.Class("card-title"), g.Text(p.Heading)),
				g.If(p.Price != "", h.Span(h.Class("card-price"), g.Text(p.Price))),
			),
			g.If(p.Rating > 0, Stars(p.Rating)),
			h.P(h.Class("card-text"), g.Text(p.Description)),
			g.If(p.ButtonText != "", Button(ButtonProps{Variant: ButtonNeumorphic, Size: SizeSmall, Label: p.ButtonText})),
			g.If(p.Link != "", h.A(h.Class("card-link"), h.Href(p.Link), g.Text(p.LinkText))),
		),
	)
}

// StarCounts splits a rating into full, half and empty stars out of five.
// Ratings are clamped to [0, 5].
func StarCounts(rating float64) (full int, half bool, empty int) {
	rating = math.Max(0, math.Min(5, rating))
	full = int(math.Floor(rating))
	half = rating != math.Floor(rating)
	empty = 5 - full
	if half {
		empty--
	}
	return full, half, empty
}

// Stars renders a rating as five star glyphs.
func Stars(rating float64) g.Node {
	full, half, empty := StarCounts(rating)

	stars := make([]g.Node, 0, 5)
	for i := 0; i < full; i++ {
		stars = append(stars, h.Span(h.Class("star star-full"), g.Text("★")))
	}
	if half {
		stars = append(stars, h.Span(h.Class("star star-half"), g.Text("★")))
	}
	for i := 0; i < empty; i++ {
		stars = append(stars, h.Span(h.Class("star star-empty"), g.Text("☆")))
	}

	return h.Div(
		h.Class("stars"),
		g.Attr("role", "img"),
		g.Attr("aria-label", formatRating(rating)),
		g.Group(stars),
	)
}

func formatRating(r float64) string {
	full, half, _ := StarCounts(r)
	label := "דירוג " + strconv.Itoa(full)
	if half {
		label += ".5"
	}
	return label + " מתוך 5"
}
