package live

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/deltafood/delta/internal/content"
	"github.com/deltafood/delta/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 16 * 1024
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// OriginPatterns lists the hosts allowed to connect besides the page's
	// own host.
	OriginPatterns []string

	// Session is the template for every new session. Catalog, when set,
	// overrides Session.Catalog with the current catalog at connect time.
	Session Options
	Catalog func() *content.Catalog

	Logger logging.Logger
}

// Manager accepts live connections and keeps one session per connection.
// Removals and broadcasts go through a single hub goroutine.
type Manager struct {
	config ManagerConfig
	logger logging.Logger

	sessions      map[string]*Session
	sessionsMutex sync.RWMutex

	broadcast  chan ServerMessage
	unregister chan *Session

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// lifecycleMutex orders wg.Add in HandleLive before wg.Wait in
	// Shutdown.
	lifecycleMutex sync.Mutex
	closed         bool
}

// NewManager creates a manager and starts its hub.
func NewManager(config ManagerConfig) *Manager {
	if config.Logger == nil {
		config.Logger = logging.Nop()
	}
	if config.Session.Logger == nil {
		config.Session.Logger = config.Logger
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		config:     config,
		logger:     config.Logger.WithComponent("live"),
		sessions:   make(map[string]*Session),
		broadcast:  make(chan ServerMessage, 16),
		unregister: make(chan *Session, 32),
		ctx:        ctx,
		cancel:     cancel,
	}
	go m.runHub()
	return m
}

// HandleLive upgrades the request and runs a session until either side
// goes away.
func (m *Manager) HandleLive(w http.ResponseWriter, r *http.Request) {
	m.lifecycleMutex.Lock()
	if m.closed {
		m.lifecycleMutex.Unlock()
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	m.wg.Add(1)
	m.lifecycleMutex.Unlock()
	defer m.wg.Done()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  m.config.OriginPatterns,
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		m.logger.Warn(r.Context(), err, "Live upgrade failed", "remote_addr", r.RemoteAddr)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	opts := m.config.Session
	if m.config.Catalog != nil {
		opts.Catalog = m.config.Catalog()
	}
	session := NewSession(opts)

	m.registerSession(session)
	m.serve(conn, session)
}

// serve runs the session loop, the read pump and the write pump. It
// returns once all three are finished.
func (m *Manager) serve(conn *websocket.Conn, session *Session) {
	ctx, cancel := context.WithCancel(m.ctx)
	defer cancel()

	go session.Run(ctx)
	go m.readFromClient(ctx, conn, session)

	status, reason := m.writeToClient(ctx, conn, session)
	session.Terminate()
	<-session.Done()

	if m.ctx.Err() != nil {
		m.unregisterSession(session)
	} else {
		select {
		case m.unregister <- session:
		case <-m.ctx.Done():
		}
		// The hub may already be gone; removal is idempotent.
		if m.ctx.Err() != nil {
			m.unregisterSession(session)
		}
	}
	_ = conn.Close(status, reason)
}

func (m *Manager) readFromClient(ctx context.Context, conn *websocket.Conn, session *Session) {
	defer session.Terminate()

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway ||
				errors.Is(err, context.Canceled) {
				m.logger.Debug(ctx, "Live client disconnected", "session_id", session.ID())
			} else {
				m.logger.Warn(ctx, err, "Live read failed", "session_id", session.ID())
			}
			return
		}
		session.Dispatch(msg)
	}
}

func (m *Manager) writeToClient(ctx context.Context, conn *websocket.Conn, session *Session) (websocket.StatusCode, string) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-session.Outbox():
			if !ok {
				return websocket.StatusNormalClosure, ""
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := wsjson.Write(writeCtx, conn, msg)
			cancel()
			if err != nil {
				m.logger.Warn(ctx, err, "Live write failed", "session_id", session.ID())
				return websocket.StatusInternalError, "write failed"
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return websocket.StatusPolicyViolation, "ping timeout"
			}

		case <-ctx.Done():
			return websocket.StatusGoingAway, "server shutting down"
		}
	}
}

func (m *Manager) runHub() {
	for {
		select {
		case s := <-m.unregister:
			m.unregisterSession(s)

		case msg := <-m.broadcast:
			for _, s := range m.snapshot() {
				go s.Send(msg)
			}

		case <-m.ctx.Done():
			m.drainUnregister()
			return
		}
	}
}

func (m *Manager) drainUnregister() {
	for {
		select {
		case s := <-m.unregister:
			m.unregisterSession(s)
		default:
			return
		}
	}
}

func (m *Manager) registerSession(s *Session) {
	m.sessionsMutex.Lock()
	m.sessions[s.ID()] = s
	total := len(m.sessions)
	m.sessionsMutex.Unlock()

	m.logger.Info(m.ctx, "Live session started", "session_id", s.ID(), "sessions", total)
}

func (m *Manager) unregisterSession(s *Session) {
	m.sessionsMutex.Lock()
	_, ok := m.sessions[s.ID()]
	delete(m.sessions, s.ID())
	total := len(m.sessions)
	m.sessionsMutex.Unlock()

	if !ok {
		return
	}
	m.logger.Info(m.ctx, "Live session ended", "session_id", s.ID(), "sessions", total)
}

func (m *Manager) snapshot() []*Session {
	m.sessionsMutex.RLock()
	defer m.sessionsMutex.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Broadcast sends msg to every connected session.
func (m *Manager) Broadcast(msg ServerMessage) {
	select {
	case m.broadcast <- msg:
	case <-m.ctx.Done():
	}
}

// Count returns the number of registered sessions.
func (m *Manager) Count() int {
	m.sessionsMutex.RLock()
	defer m.sessionsMutex.RUnlock()
	return len(m.sessions)
}

// Follow broadcasts a reload to every session for each catalog change on
// events, until ctx is done or events is closed.
func (m *Manager) Follow(ctx context.Context, events <-chan content.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			m.logger.Info(ctx, "Content changed, reloading clients",
				"loaded_at", ev.Timestamp, "sessions", m.Count())
			m.Broadcast(ServerMessage{Type: TypeReload})
		case <-ctx.Done():
			return
		case <-m.ctx.Done():
			return
		}
	}
}

// Shutdown closes every session and waits for their connections to finish,
// or for ctx to expire.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.lifecycleMutex.Lock()
	m.closed = true
	m.cancel()
	m.lifecycleMutex.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
