// Package content loads the restaurant's content catalog: every heading,
// dish, photo, testimonial and contact detail the site renders. A default
// catalog is embedded in the binary; a YAML file may replace it.
package content

// Catalog is the immutable content shared by every visitor. Treat a loaded
// Catalog as read-only; reloads produce a new value.
type Catalog struct {
	Site         Site         `yaml:"site"`
	Navigation   Navigation   `yaml:"navigation"`
	Hero         Hero         `yaml:"hero"`
	About        About        `yaml:"about"`
	Dishes       Dishes       `yaml:"dishes"`
	Services     Services     `yaml:"services"`
	Gallery      Gallery      `yaml:"gallery"`
	Testimonials Testimonials `yaml:"testimonials"`
	CTA          CTA          `yaml:"cta"`
	Contact      Contact      `yaml:"contact"`
	Footer       Footer       `yaml:"footer"`
}

// Site holds page-level metadata.
type Site struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Keywords    string `yaml:"keywords"`
	Locale      string `yaml:"locale"`
	URL         string `yaml:"url"`
	OGImage     string `yaml:"og_image"`
}

// NavItem is one navigation link.
type NavItem struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Href string `yaml:"href"`
	Icon string `yaml:"icon"`
}

// Navigation is the sticky top bar.
type Navigation struct {
	Logo      string    `yaml:"logo"`
	HomeLabel string    `yaml:"home_label"`
	CTA       string    `yaml:"cta"`
	Items     []NavItem `yaml:"items"`
}

// Hero is the full-height banner.
type Hero struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	CTAText         string `yaml:"cta_text"`
	CTAHref         string `yaml:"cta_href"`
	BackgroundImage string `yaml:"background_image"`
}

// Highlight is a number-and-caption badge in the about section.
type Highlight struct {
	ID     int    `yaml:"id"`
	Number string `yaml:"number"`
	Text   string `yaml:"text"`
}

// About is the restaurant introduction. Body is markdown.
type About struct {
	Heading       string      `yaml:"heading"`
	Subheading    string      `yaml:"subheading"`
	Image         string      `yaml:"image"`
	ImageAlt      string      `yaml:"image_alt"`
	BadgeTitle    string      `yaml:"badge_title"`
	BadgeSubtitle string      `yaml:"badge_subtitle"`
	Body          string      `yaml:"body"`
	Highlights    []Highlight `yaml:"highlights"`

	// BodyHTML is Body rendered at load time.
	BodyHTML string `yaml:"-"`
}

// Dish is a featured menu item. Price is in whole shekels.
type Dish struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       int    `yaml:"price"`
	Image       string `yaml:"image"`
}

// Dishes is the featured dishes section.
type Dishes struct {
	Heading    string `yaml:"heading"`
	Subheading string `yaml:"subheading"`
	OrderLabel string `yaml:"order_label"`
	MenuLabel  string `yaml:"menu_label"`
	MenuHref   string `yaml:"menu_href"`
	Items      []Dish `yaml:"items"`
}

// Service is one offering card.
type Service struct {
	ID           string `yaml:"id"`
	Icon         string `yaml:"icon"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	LearnMoreURL string `yaml:"learn_more_url"`
}

// Services is the services section.
type Services struct {
	Heading        string    `yaml:"heading"`
	Subheading     string    `yaml:"subheading"`
	LearnMoreLabel string    `yaml:"learn_more_label"`
	Items          []Service `yaml:"items"`
}

// Image is a gallery photo. ID is its identity for the lightbox.
type Image struct {
	ID     int    `yaml:"id"`
	Src    string `yaml:"src"`
	Alt    string `yaml:"alt"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Gallery is the photo grid.
type Gallery struct {
	Heading    string  `yaml:"heading"`
	Subheading string  `yaml:"subheading"`
	MoreLabel  string  `yaml:"more_label"`
	MoreHref   string  `yaml:"more_href"`
	Images     []Image `yaml:"images"`
}

// ImageKey is the lightbox identity of an image.
func ImageKey(img Image) int { return img.ID }

// Testimonial is a customer quote with a 0 to 5 rating in half steps.
type Testimonial struct {
	ID     int     `yaml:"id"`
	Name   string  `yaml:"name"`
	Rating float64 `yaml:"rating"`
	Quote  string  `yaml:"quote"`
	Image  string  `yaml:"image"`
}

// Testimonials is the paged testimonial carousel.
type Testimonials struct {
	Heading    string        `yaml:"heading"`
	Subheading string        `yaml:"subheading"`
	Items      []Testimonial `yaml:"items"`
}

// CTA is the reservation call to action.
type CTA struct {
	Heading         string `yaml:"heading"`
	Subtext         string `yaml:"subtext"`
	BackgroundImage string `yaml:"background_image"`
	PrimaryText     string `yaml:"primary_text"`
	PrimaryHref     string `yaml:"primary_href"`
	SecondaryText   string `yaml:"secondary_text"`
	SecondaryHref   string `yaml:"secondary_href"`
}

// Hours is an opening-hours row.
type Hours struct {
	Day   string `yaml:"day"`
	Hours string `yaml:"hours"`
}

// Contact is the contact section details.
type Contact struct {
	Heading        string  `yaml:"heading"`
	DetailsHeading string  `yaml:"details_heading"`
	FormHeading    string  `yaml:"form_heading"`
	Address        string  `yaml:"address"`
	Phone          string  `yaml:"phone"`
	Email          string  `yaml:"email"`
	MapURL         string  `yaml:"map_url"`
	Hours          []Hours `yaml:"hours"`
}

// Link is a labelled href, optionally with an icon name.
type Link struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
	Icon string `yaml:"icon,omitempty"`
}

// Footer is the page footer.
type Footer struct {
	Description           string  `yaml:"description"`
	Address               string  `yaml:"address"`
	Phone                 string  `yaml:"phone"`
	Email                 string  `yaml:"email"`
	NewsletterHeading     string  `yaml:"newsletter_heading"`
	NewsletterText        string  `yaml:"newsletter_text"`
	NewsletterPlaceholder string  `yaml:"newsletter_placeholder"`
	NewsletterButton      string  `yaml:"newsletter_button"`
	QuickLinks            []Link  `yaml:"quick_links"`
	Hours                 []Hours `yaml:"hours"`
	Social                []Link  `yaml:"social"`
}

// ImageByID returns the gallery image with id.
func (c *Catalog) ImageByID(id int) (Image, bool) {
	for _, img := range c.Gallery.Images {
		if img.ID == id {
			return img, true
		}
	}
	return Image{}, false
}
