package live

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	g "maragu.dev/gomponents"

	"github.com/deltafood/delta/internal/autoplay"
	"github.com/deltafood/delta/internal/carousel"
	"github.com/deltafood/delta/internal/config"
	"github.com/deltafood/delta/internal/contact"
	"github.com/deltafood/delta/internal/content"
	siteerrors "github.com/deltafood/delta/internal/errors"
	"github.com/deltafood/delta/internal/lightbox"
	"github.com/deltafood/delta/internal/logging"
	"github.com/deltafood/delta/internal/subscription"
	"github.com/deltafood/delta/internal/ui"
)

const (
	queueSize  = 32
	outboxSize = 64
)

// Options configures a session.
type Options struct {
	Catalog   *content.Catalog
	Carousel  config.CarouselConfig
	Contact   config.ContactConfig
	Submitter contact.Submitter
	Clock     autoplay.Clock
	Logger    logging.Logger
}

// Snapshot is a copy of the state a session shows, taken on the event loop.
type Snapshot struct {
	Page          int
	PageSize      int
	PageCount     int
	Direction     carousel.Direction
	LightboxOpen  bool
	SelectedImage int
	NavOpen       bool
	NavScrolled   bool
	ContactStatus contact.Status
	Subscribed    bool
	Listeners     map[string]int
	AutoplayArmed bool
}

// Session is one mounted page instance. All state is owned by the goroutine
// running Run; other goroutines talk to it by posting to its queue.
type Session struct {
	id     string
	opts   Options
	logger logging.Logger

	view      ui.View
	gallery   *lightbox.Lightbox[content.Image, int]
	autoplay  *autoplay.Timer
	listeners *subscription.Registry
	modal     subscription.Slot
	scroll    *subscription.Scope
	dismiss   autoplay.Stopper

	// epoch is the autoplay epoch of the latest reset; owned by the loop.
	epoch uint64

	// closing is set on the event loop during teardown; emits stop
	// blocking from then on.
	closing bool

	queue  chan func()
	outbox chan ServerMessage
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a session. Run starts it.
func NewSession(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = autoplay.RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Catalog == nil {
		opts.Catalog = content.MustDefault()
	}
	if opts.Carousel.AutoplayInterval <= 0 {
		opts.Carousel.AutoplayInterval = config.DefaultAutoplayInterval
	}
	if opts.Carousel.WidePageSize <= 0 {
		opts.Carousel.WidePageSize = config.DefaultWidePageSize
	}
	if opts.Carousel.NarrowPageSize <= 0 {
		opts.Carousel.NarrowPageSize = config.DefaultNarrowPageSize
	}
	if opts.Carousel.NarrowMaxWidth <= 0 {
		opts.Carousel.NarrowMaxWidth = config.DefaultNarrowMaxWidth
	}
	if opts.Contact.StatusTimeout <= 0 {
		opts.Contact.StatusTimeout = config.DefaultStatusTimeout
	}
	if opts.Submitter == nil {
		opts.Submitter = contact.NewSimulatedSubmitter(opts.Contact.SubmitDelay, opts.Logger)
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:      id,
		opts:    opts,
		logger:  opts.Logger.WithComponent("live").With("session_id", id),
		view:    ui.NewView(opts.Catalog, opts.Carousel.WidePageSize),
		gallery: lightbox.New(opts.Catalog.Gallery.Images, content.ImageKey),
		queue:   make(chan func(), queueSize),
		outbox:  make(chan ServerMessage, outboxSize),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.view.Live = true
	s.listeners = subscription.NewRegistry(
		func(event string) { s.emit(ServerMessage{Type: TypeListen, Event: event}) },
		func(event string) { s.emit(ServerMessage{Type: TypeUnlisten, Event: event}) },
	)
	s.autoplay = autoplay.New(opts.Clock, opts.Carousel.AutoplayInterval, s.onTick)
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Outbox returns the messages the session wants delivered to the client.
// It is closed when the session ends.
func (s *Session) Outbox() <-chan ServerMessage { return s.outbox }

// Done is closed once the session has torn down.
func (s *Session) Done() <-chan struct{} { return s.done }

// Run mounts the session and processes events until ctx is cancelled or
// Terminate is called. Teardown releases every timer and listener.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)
	defer close(s.outbox)
	defer s.unmount()

	s.mount()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.ctx.Done():
			return
		case fn := <-s.queue:
			fn()
		}
	}
}

// Terminate ends the session. It is safe to call more than once.
func (s *Session) Terminate() {
	s.cancel()
}

// Dispatch queues a client event. Errors from handling it are logged on the
// event loop.
func (s *Session) Dispatch(msg ClientMessage) {
	s.post(func() {
		if err := s.handle(msg); err != nil {
			s.logger.Warn(s.ctx, err, "Event rejected", "event", msg.Event)
		}
	})
}

// Send queues a message for the client, e.g. a reload broadcast.
func (s *Session) Send(msg ServerMessage) {
	s.post(func() { s.emit(msg) })
}

// Snapshot returns the current state. It blocks until the event loop has
// processed everything queued before it.
func (s *Session) Snapshot() (Snapshot, bool) {
	result := make(chan Snapshot, 1)
	if !s.post(func() { result <- s.snapshot() }) {
		return Snapshot{}, false
	}
	select {
	case snap := <-result:
		return snap, true
	case <-s.done:
		return Snapshot{}, false
	}
}

func (s *Session) post(fn func()) bool {
	select {
	case s.queue <- fn:
		return true
	case <-s.ctx.Done():
		return false
	case <-s.done:
		return false
	}
}

func (s *Session) mount() {
	s.scroll = s.listeners.Acquire(ListenScroll)
	s.resetAutoplay()
	s.logger.Debug(s.ctx, "Session mounted")
}

func (s *Session) unmount() {
	s.closing = true
	s.autoplay.Stop()
	s.modal.Release()
	s.scroll.Release()
	if s.dismiss != nil {
		s.dismiss.Stop()
	}
	s.cancel()
	s.logger.Debug(s.ctx, "Session unmounted")
}

func (s *Session) emit(msg ServerMessage) {
	if s.closing {
		select {
		case s.outbox <- msg:
		default:
		}
		return
	}
	select {
	case s.outbox <- msg:
	case <-s.ctx.Done():
	}
}

func (s *Session) handle(msg ClientMessage) error {
	switch msg.Event {
	case EventViewport:
		var p viewportPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		s.resize(p.Width)

	case EventTestimonialsNext:
		s.page(s.view.Testimonials.Next())
	case EventTestimonialsPrev:
		s.page(s.view.Testimonials.Prev())
	case EventTestimonialsGoTo:
		var p gotoPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		if !s.view.Testimonials.Valid(p.Page) {
			return invalidPayload(msg.Event, fmt.Sprintf("page %d out of range", p.Page))
		}
		s.page(s.view.Testimonials.GoTo(p.Page))

	case EventGalleryOpen:
		var p openPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		state, ok := s.gallery.Select(p.ID)
		if !ok {
			return invalidPayload(msg.Event, fmt.Sprintf("unknown image %d", p.ID))
		}
		s.setLightbox(state)
	case EventGalleryNext:
		s.setLightbox(s.gallery.Next(s.view.Lightbox))
	case EventGalleryPrev:
		s.setLightbox(s.gallery.Prev(s.view.Lightbox))
	case EventGalleryClose:
		s.setLightbox(s.gallery.Handle(s.view.Lightbox, lightbox.CloseClicked{}))
	case EventPointerDown:
		var p pointerPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		s.setLightbox(s.gallery.Handle(s.view.Lightbox, lightbox.PointerDown{Inside: p.Inside}))
	case EventKeyDown:
		var p keyPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		s.setLightbox(s.gallery.Handle(s.view.Lightbox, lightbox.KeyDown{Key: p.Key}))

	case EventScroll:
		var p scrollPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		s.setNav(ui.NavState{Open: s.view.Nav.Open, Scrolled: p.Y > ui.ScrolledOffset})
	case EventNavToggle:
		s.setNav(ui.NavState{Open: !s.view.Nav.Open, Scrolled: s.view.Nav.Scrolled})
	case EventNavClose:
		s.setNav(ui.NavState{Scrolled: s.view.Nav.Scrolled})

	case EventContactSubmit:
		var f contact.Form
		if err := decode(msg, &f); err != nil {
			return err
		}
		s.submitContact(f)
	case EventNewsletterSubmit:
		var p newsletterPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		if err := s.view.Newsletter.Subscribe(p.Email); err != nil {
			s.logger.Debug(s.ctx, "Newsletter signup not accepted", "reason", err.Error())
		}
		s.patch(ui.TargetNewsletter, ui.NewsletterForm(s.view))

	default:
		return siteerrors.NewValidationError("event", siteerrors.CodeUnknownEvent,
			fmt.Sprintf("unknown event %q", msg.Event))
	}
	return nil
}

func decode(msg ClientMessage, v interface{}) error {
	if len(msg.Payload) == 0 {
		return invalidPayload(msg.Event, "missing payload")
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return invalidPayload(msg.Event, err.Error())
	}
	return nil
}

func invalidPayload(event, reason string) error {
	return siteerrors.NewValidationError("payload", siteerrors.CodeInvalidPayload, reason).
		WithContext("event", event)
}

// page moves the testimonial pager. Any index change restarts autoplay.
func (s *Session) page(next carousel.Pager) {
	prev := s.view.Testimonials
	s.view.Testimonials = next
	if next.Index != prev.Index {
		s.resetAutoplay()
	}
	if next != prev {
		s.patch(ui.TargetTestimonials, ui.Testimonials(s.view))
	}
}

func (s *Session) resize(width int) {
	c := s.opts.Carousel
	size := carousel.PageSizeFor(width, c.NarrowMaxWidth, c.NarrowPageSize, c.WidePageSize)
	if size == s.view.Testimonials.PageSize {
		return
	}
	s.page(s.view.Testimonials.Resize(size))
}

func (s *Session) resetAutoplay() {
	s.epoch = s.autoplay.Reset()
}

// onTick runs on the clock's goroutine and only posts. A tick armed before
// the latest reset is dropped on the loop.
func (s *Session) onTick(epoch uint64) {
	s.post(func() {
		if epoch != s.epoch {
			return
		}
		s.page(s.view.Testimonials.Next())
	})
}

func (s *Session) setLightbox(next lightbox.State) {
	prev := s.view.Lightbox
	s.view.Lightbox = next
	s.modal.Sync(lightbox.IsOpen(next), func() *subscription.Scope {
		return s.listeners.Acquire(ListenPointerDown, ListenKeyDown)
	})
	if next != prev {
		s.patch(ui.TargetLightbox, ui.Lightbox(s.view))
	}
}

func (s *Session) setNav(next ui.NavState) {
	if next == s.view.Nav {
		return
	}
	s.view.Nav = next
	s.patch(ui.TargetNav, ui.Navigation(s.view))
}

func (s *Session) submitContact(f contact.Form) {
	ctl := s.view.Contact
	if err := ctl.Submit(f); err != nil {
		s.logger.Debug(s.ctx, "Contact submission not accepted", "reason", err.Error())
		s.patch(ui.TargetContactForm, ui.ContactForm(s.view))
		return
	}
	s.patch(ui.TargetContactForm, ui.ContactForm(s.view))

	go func() {
		id, err := s.opts.Submitter.Submit(s.ctx, f)
		s.post(func() { s.resolveContact(id, err) })
	}()
}

func (s *Session) resolveContact(id string, err error) {
	token, ok := s.view.Contact.Resolve(err)
	if !ok {
		return
	}
	if err != nil {
		s.logger.Warn(s.ctx, err, "Contact submission failed")
	} else {
		s.logger.Info(s.ctx, "Contact submission accepted", "submission_id", id)
	}

	if s.dismiss != nil {
		s.dismiss.Stop()
	}
	s.dismiss = s.opts.Clock.AfterFunc(s.opts.Contact.StatusTimeout, func() {
		s.post(func() {
			if s.view.Contact.Dismiss(token) {
				s.patch(ui.TargetContactForm, ui.ContactForm(s.view))
			}
		})
	})
	s.patch(ui.TargetContactForm, ui.ContactForm(s.view))
}

func (s *Session) patch(target string, node g.Node) {
	var b strings.Builder
	if err := node.Render(&b); err != nil {
		s.logger.Error(s.ctx, err, "Render failed", "target", target)
		return
	}
	s.emit(ServerMessage{Type: TypePatch, Target: target, HTML: b.String()})
}

func (s *Session) snapshot() Snapshot {
	p := s.view.Testimonials
	snap := Snapshot{
		Page:          p.Index,
		PageSize:      p.PageSize,
		PageCount:     p.PageCount(),
		Direction:     p.Direction,
		LightboxOpen:  lightbox.IsOpen(s.view.Lightbox),
		NavOpen:       s.view.Nav.Open,
		NavScrolled:   s.view.Nav.Scrolled,
		ContactStatus: s.view.Contact.Status,
		Subscribed:    s.view.Newsletter.Subscribed,
		Listeners:     make(map[string]int),
		AutoplayArmed: s.autoplay.Active() > 0,
	}
	if img, ok := s.view.SelectedImage(); ok {
		snap.SelectedImage = img.ID
	}
	for _, event := range []string{ListenScroll, ListenPointerDown, ListenKeyDown} {
		snap.Listeners[event] = s.listeners.Count(event)
	}
	return snap
}
