package ui

import (
	"sync"

	g "maragu.dev/gomponents"
)

// Section is a named, independently renderable part of the page.
type Section struct {
	Name        string
	Description string
	Render      func(View) g.Node
}

// Registry keeps the page sections in render order.
type Registry struct {
	sections map[string]Section
	order    []string
	mutex    sync.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sections: make(map[string]Section)}
}

// DefaultRegistry returns the restaurant page: navigation, hero, about,
// featured dishes, services, gallery, testimonials, call to action,
// contact and footer, in that order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Section{Name: "nav", Description: "Sticky navigation bar with mobile menu", Render: Navigation})
	r.Register(Section{Name: "hero", Description: "Full-height banner with call to action", Render: Hero})
	r.Register(Section{Name: "about", Description: "Restaurant introduction and highlights", Render: About})
	r.Register(Section{Name: "dishes", Description: "Featured dishes with prices", Render: FeaturedDishes})
	r.Register(Section{Name: "services", Description: "Service offerings", Render: Services})
	r.Register(Section{Name: "gallery", Description: "Photo grid with lightbox", Render: Gallery})
	r.Register(Section{Name: "testimonials", Description: "Paged testimonial slider with autoplay", Render: Testimonials})
	r.Register(Section{Name: "cta", Description: "Reservation call to action", Render: CallToAction})
	r.Register(Section{Name: "contact", Description: "Contact details and message form", Render: ContactSection})
	r.Register(Section{Name: "footer", Description: "Footer with links, hours and newsletter", Render: Footer})
	return r
}

// Register adds a section at the end, or replaces one with the same name
// in place.
func (r *Registry) Register(s Section) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.sections[s.Name]; !exists {
		r.order = append(r.order, s.Name)
	}
	r.sections[s.Name] = s
}

// Get retrieves a section by name.
func (r *Registry) Get(name string) (Section, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	s, ok := r.sections[name]
	return s, ok
}

// All returns the sections in render order.
func (r *Registry) All() []Section {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]Section, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.sections[name])
	}
	return out
}

// Names returns the section names in render order.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return append([]string(nil), r.order...)
}

// Count returns the number of sections.
func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.order)
}
