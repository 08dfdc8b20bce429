// Package internal contains the implementation packages of the delta site.
//
// # Package Organization
//
//   - content: The content catalog, its YAML loader and the reloadable store
//   - carousel, lightbox, autoplay: Testimonial paging, photo viewer and the
//     resettable autoplay timer
//   - subscription: Document listeners held only while a component needs them
//   - contact: Contact form validation, submission state and newsletter signup
//   - locale: Language, text direction and price formatting
//   - ui: Page sections rendered with gomponents behind templ components
//   - live: Per-visitor sessions over websockets and the session manager
//   - server: HTTP routes, middleware and embedded static assets
//   - watcher: Content hot reload with debounced file events
//   - config, logging, errors, version: Ambient infrastructure
//   - testutils: Manual clock and fixtures for tests
package internal
