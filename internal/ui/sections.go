package ui

import (
	"encoding/json"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// onClick wires an element to a live event. The payload, when given, is
// sent as JSON.
func onClick(event string, payload any) g.Node {
	if payload == nil {
		return g.Attr("data-live-click", event)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return g.Attr("data-live-click", event)
	}
	return g.Group([]g.Node{
		g.Attr("data-live-click", event),
		g.Attr("data-live-payload", string(raw)),
	})
}

// reveal marks content that fades up the first time it scrolls into view.
func reveal() g.Node {
	return g.Attr("data-reveal")
}

// Navigation renders the sticky top bar with its mobile menu.
func Navigation(v View) g.Node {
	nav := v.Catalog.Navigation
	menuLabel := "פתח תפריט"
	menuIcon := "menu"
	if v.Nav.Open {
		menuLabel = "סגור תפריט"
		menuIcon = "close"
	}

	return h.Nav(
		h.ID(TargetNav),
		gc.Classes{"navbar": true, "navbar-scrolled": v.Nav.Scrolled, "navbar-open": v.Nav.Open},
		g.Attr("aria-label", "ניווט ראשי"),
		h.Div(
			h.Class("container navbar-inner"),
			h.A(
				h.Href("/"),
				h.Class("brand"),
				g.Attr("aria-label", nav.HomeLabel),
				h.Span(h.Class("brand-mark"), g.Text(nav.Logo)),
				h.Span(h.Class("brand-name"), g.Text(v.Catalog.Site.Name)),
			),
			h.Div(
				h.Class("navbar-links"),
				g.Map(nav.Items, func(item navItem) g.Node {
					return h.A(h.Href(item.Href), h.Class("navbar-link"), g.Attr("aria-label", item.Name),
						Icon(item.Icon, ""), h.Span(g.Text(item.Name)))
				}),
				LinkButton(ButtonProps{Variant: ButtonPrimary, Label: nav.CTA}, "#contact"),
			),
			h.Button(
				h.Type("button"),
				h.Class("navbar-toggle"),
				g.Attr("aria-expanded", strconv.FormatBool(v.Nav.Open)),
				g.Attr("aria-label", menuLabel),
				onClick("nav.toggle", nil),
				Icon(menuIcon, ""),
			),
		),
		g.If(v.Nav.Open, h.Div(
			h.Class("navbar-mobile"),
			g.Map(nav.Items, func(item navItem) g.Node {
				return h.A(h.Href(item.Href), h.Class("navbar-mobile-link"), onClick("nav.close", nil),
					Icon(item.Icon, ""), h.Span(g.Text(item.Name)))
			}),
			Button(ButtonProps{Variant: ButtonPrimary, FullWidth: true, Label: nav.CTA}, onClick("nav.close", nil)),
		)),
	)
}

// Hero renders the full-height banner.
func Hero(v View) g.Node {
	hero := v.Catalog.Hero
	return h.Section(
		h.ID("hero"),
		h.Class("hero"),
		h.Div(
			h.Class("hero-background"),
			h.Img(h.Src(hero.BackgroundImage), h.Alt(v.Catalog.Site.Name+" - תמונת רקע")),
			h.Div(h.Class("hero-overlay")),
		),
		h.Div(
			h.Class("hero-card glass"),
			h.H1(h.Class("hero-title"), g.Text(hero.Title)),
			h.P(h.Class("hero-description"), g.Text(hero.Description)),
			LinkButton(ButtonProps{Variant: ButtonNeumorphic, Size: SizeLarge, Label: hero.CTAText}, hero.CTAHref),
		),
	)
}

// About renders the restaurant introduction.
func About(v View) g.Node {
	about := v.Catalog.About
	return h.Section(
		h.ID("about"),
		h.Class("section about"),
		h.Div(
			h.Class("container about-grid"),
			reveal(),
			h.Div(
				h.Class("about-media"),
				h.Img(h.Src(about.Image), h.Alt(about.ImageAlt), g.Attr("loading", "lazy")),
				h.Div(
					h.Class("about-badge"),
					h.H3(g.Text(about.BadgeTitle)),
					h.P(g.Text(about.BadgeSubtitle)),
				),
			),
			h.Div(
				h.Class("about-content"),
				h.H2(h.Class("about-title"),
					h.Span(h.Class("accent"), g.Text(about.Heading)), g.Text(" "+about.Subheading)),
				h.Div(h.Class("about-body glass"), g.Raw(about.BodyHTML)),
				h.Div(
					h.Class("highlights"),
					g.Map(about.Highlights, func(hl highlight) g.Node {
						return h.Div(h.Class("highlight"),
							h.Span(h.Class("highlight-number"), g.Text(hl.Number)),
							h.Span(h.Class("highlight-text"), g.Text(hl.Text)),
						)
					}),
				),
			),
		),
	)
}

// FeaturedDishes renders the featured dish grid.
func FeaturedDishes(v View) g.Node {
	dishes := v.Catalog.Dishes
	return h.Section(
		h.ID("dishes"),
		h.Class("section dishes"),
		h.Div(
			h.Class("container"),
			SectionHeader(HeaderProps{Title: dishes.Heading, Subtitle: dishes.Subheading}),
			h.Div(
				h.Class("card-grid"),
				g.Map(dishes.Items, func(d dish) g.Node {
					return Card(CardProps{
						Variant:     CardDish,
						Image:       d.Image,
						ImageAlt:    d.Name,
						Heading:     d.Name,
						Description: d.Description,
						Price:       v.Locale.Price(d.Price),
						ButtonText:  dishes.OrderLabel,
					})
				}),
			),
			h.Div(h.Class("section-footer"),
				LinkButton(ButtonProps{Variant: ButtonPrimary, Size: SizeLarge, Label: dishes.MenuLabel}, dishes.MenuHref)),
		),
	)
}

// Services renders the service cards.
func Services(v View) g.Node {
	services := v.Catalog.Services
	return h.Section(
		h.ID("services"),
		h.Class("section services"),
		h.Div(
			h.Class("container"),
			reveal(),
			SectionHeader(HeaderProps{Title: services.Heading, Subtitle: services.Subheading, Decoration: DecorationDots}),
			h.Div(
				h.Class("card-grid card-grid-4"),
				g.Map(services.Items, func(s service) g.Node {
					return Card(CardProps{
						Variant:     CardService,
						Icon:        s.Icon,
						Heading:     s.Title,
						Description: s.Description,
						Link:        s.LearnMoreURL,
						LinkText:    services.LearnMoreLabel,
					})
				}),
			),
		),
	)
}

// CallToAction renders the reservation banner.
func CallToAction(v View) g.Node {
	cta := v.Catalog.CTA
	return h.Section(
		h.ID("cta"),
		h.Class("cta"),
		h.Div(
			h.Class("cta-backdrop"),
			g.Attr("data-parallax", strconv.FormatFloat(CTAParallax, 'f', -1, 64)),
			g.Attr("style", "background-image: url('"+cta.BackgroundImage+"')"),
		),
		h.Div(h.Class("cta-overlay")),
		h.Div(
			h.Class("cta-card glass"),
			h.H2(h.Class("cta-heading"), g.Text(cta.Heading)),
			h.P(h.Class("cta-subtext"), g.Text(cta.Subtext)),
			h.Div(
				h.Class("cta-actions"),
				LinkButton(ButtonProps{Variant: ButtonSecondary, Icon: "calendar", Label: cta.PrimaryText}, cta.PrimaryHref,
					g.Attr("aria-label", "הזמן שולחן")),
				LinkButton(ButtonProps{Variant: ButtonGlass, Icon: "utensils", Label: cta.SecondaryText}, cta.SecondaryHref,
					g.Attr("aria-label", "הצג תפריט")),
			),
		),
	)
}

// Footer renders the page footer with the newsletter form.
func Footer(v View) g.Node {
	f := v.Catalog.Footer
	year := strconv.Itoa(time.Now().Year())

	return h.Footer(
		h.ID("footer"),
		h.Class("footer"),
		h.Div(
			h.Class("container footer-grid"),
			h.Div(
				h.Class("footer-about"),
				h.Span(h.Class("brand-mark"), g.Text(v.Catalog.Navigation.Logo)),
				h.H3(g.Text(v.Catalog.Site.Name)),
				h.P(g.Text(f.Description)),
			),
			h.Div(
				h.H3(h.Class("footer-heading"), g.Text("ניווט מהיר")),
				h.Ul(h.Class("footer-links"), g.Map(f.QuickLinks, func(l link) g.Node {
					return h.Li(h.A(h.Href(l.Href), g.Text(l.Name)))
				})),
			),
			h.Div(
				h.H3(h.Class("footer-heading"), g.Text("צור קשר")),
				h.Ul(
					h.Class("footer-contact"),
					h.Li(Icon("phone", ""), h.Span(g.Text(f.Phone))),
					h.Li(Icon("envelope", ""), h.Span(g.Text(f.Email))),
					h.Li(Icon("map", ""), h.Span(g.Text(f.Address))),
				),
				h.H3(h.Class("footer-heading"), g.Text("שעות פעילות")),
				hoursList(f.Hours),
			),
			h.Div(
				h.H3(h.Class("footer-heading"), g.Text(f.NewsletterHeading)),
				h.P(g.Text(f.NewsletterText)),
				NewsletterForm(v),
				h.H3(h.Class("footer-heading"), g.Text("עקבו אחרינו")),
				h.Div(h.Class("social"), g.Map(f.Social, func(l link) g.Node {
					return h.A(h.Href(l.Href), h.Class("social-link"), g.Attr("aria-label", l.Name), Icon(l.Icon, ""))
				})),
			),
		),
		h.Div(
			h.Class("footer-copyright"),
			h.P(g.Text("© "+year+" "+v.Catalog.Site.Name+". כל הזכויות שמורות.")),
		),
	)
}

func hoursList(hours []hoursRow) g.Node {
	return h.Ul(h.Class("hours"), g.Map(hours, func(r hoursRow) g.Node {
		return h.Li(h.Span(h.Class("hours-day"), g.Text(r.Day)), h.Span(h.Class("hours-time"), g.Text(r.Hours)))
	}))
}
