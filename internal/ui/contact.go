package ui

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/deltafood/delta/internal/contact"
)

// ContactSection renders the contact details, map and message form.
func ContactSection(v View) g.Node {
	info := v.Catalog.Contact
	return h.Section(
		h.ID("contact"),
		h.Class("section contact"),
		h.Div(
			h.Class("container"),
			reveal(),
			SectionHeader(HeaderProps{Title: info.Heading}),
			h.Div(
				h.Class("contact-grid"),
				h.Div(
					h.Class("contact-details neumorphic"),
					h.H3(g.Text(info.DetailsHeading)),
					detail("map", "כתובת", info.Address),
					detail("phone", "טלפון", info.Phone),
					detail("envelope", "אימייל", info.Email),
					h.Div(
						h.Class("contact-detail"),
						h.Span(h.Class("glass-icon"), Icon("clock", "")),
						h.Div(h.H4(g.Text("שעות פעילות")), hoursList(info.Hours)),
					),
					g.If(info.MapURL != "", h.Div(
						h.Class("contact-map"),
						g.El("iframe",
							h.Src(info.MapURL),
							g.Attr("title", "מפת מיקום המסעדה"),
							g.Attr("aria-label", "מפת גוגל המציגה את מיקום המסעדה"),
							g.Attr("loading", "lazy"),
							g.Attr("referrerpolicy", "no-referrer-when-downgrade"),
							g.Attr("allowfullscreen"),
						),
					)),
				),
				h.Div(
					h.Class("contact-form-card neumorphic"),
					h.H3(g.Text(info.FormHeading)),
					ContactForm(v),
				),
			),
		),
	)
}

func detail(icon, label, value string) g.Node {
	return h.Div(
		h.Class("contact-detail"),
		h.Span(h.Class("glass-icon"), Icon(icon, "")),
		h.Div(h.H4(g.Text(label)), h.P(g.Text(value))),
	)
}

// ContactForm renders the form with its status banner, field values and
// field errors. It posts to /contact without script and submits over the
// live connection with it.
func ContactForm(v View) g.Node {
	ctl := v.Contact
	if ctl == nil {
		ctl = &contact.Controller{}
	}
	status := ctl.Status

	return h.Div(
		h.ID(TargetContactForm),
		g.Attr("data-status", status.String()),
		g.If(status.Banner() != "", banner(status)),
		g.El("form",
			h.Method("post"),
			h.Action("/contact"),
			g.Attr("novalidate"),
			g.Attr("data-live-submit", "contact.submit"),
			field(ctl, contact.FieldName, "שם מלא", "text", "הכנס את שמך המלא"),
			field(ctl, contact.FieldPhone, "טלפון", "tel", "הכנס את מספר הטלפון שלך"),
			field(ctl, contact.FieldEmail, "אימייל", "email", "הכנס את כתובת האימייל שלך"),
			field(ctl, contact.FieldMessage, "הודעה", "textarea", "הכנס את הודעתך כאן"),
			Button(ButtonProps{
				Variant:   ButtonPrimary,
				FullWidth: true,
				Type:      "submit",
				Label:     status.SubmitLabel(),
				Disabled:  ctl.SubmitDisabled(),
			}),
		),
	)
}

func banner(status contact.Status) g.Node {
	icon, class := "check", "banner banner-success"
	if status == contact.StatusError {
		icon, class = "times", "banner banner-error"
	}
	return h.Div(
		h.Class(class),
		g.Attr("role", "status"),
		Icon(icon, ""),
		h.Span(g.Text(status.Banner())),
	)
}

func field(ctl *contact.Controller, name, label, kind, placeholder string) g.Node {
	msg := ctl.FieldError(name)
	id := "contact-" + name
	value := ctl.Fields.Value(name)

	attrs := []g.Node{
		h.ID(id),
		h.Name(name),
		h.Placeholder(placeholder),
		h.Class("input"),
		g.Attr("aria-invalid", boolString(msg != "")),
		g.If(msg != "", g.Attr("aria-describedby", id+"-error")),
	}

	var input g.Node
	if kind == "textarea" {
		input = h.Textarea(append(attrs, g.Attr("rows", "4"), g.Text(value))...)
	} else {
		input = h.Input(append(attrs, h.Type(kind), h.Value(value))...)
	}

	return h.Div(
		h.Class("field"),
		h.Label(g.Attr("for", id), g.Text(label)),
		input,
		g.If(msg != "", h.P(h.ID(id+"-error"), h.Class("field-error"), g.Text(msg))),
	)
}

// NewsletterForm renders the footer signup, or the thank-you note once
// subscribed.
func NewsletterForm(v View) g.Node {
	n := v.Newsletter
	if n == nil {
		n = &contact.Newsletter{}
	}
	f := v.Catalog.Footer

	if n.Subscribed {
		return h.Div(h.ID(TargetNewsletter), h.Class("newsletter newsletter-done"),
			h.P(g.Attr("role", "status"), g.Text(n.Message())))
	}

	msg := n.Errors.Message(contact.FieldEmail)
	return h.Div(
		h.ID(TargetNewsletter),
		h.Class("newsletter"),
		g.El("form",
			h.Method("post"),
			h.Action("/newsletter"),
			g.Attr("data-live-submit", "newsletter.submit"),
			g.Attr("novalidate"),
			h.Input(
				h.Type("email"),
				h.Name(contact.FieldEmail),
				h.Class("input"),
				h.Placeholder(f.NewsletterPlaceholder),
				h.Value(n.Email),
				g.Attr("aria-label", f.NewsletterPlaceholder),
				g.Attr("aria-invalid", boolString(msg != "")),
			),
			Button(ButtonProps{Variant: ButtonSecondary, Type: "submit", Label: f.NewsletterButton}),
		),
		g.If(msg != "", h.P(h.Class("field-error"), g.Text(msg))),
	)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
