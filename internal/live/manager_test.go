package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltafood/delta/internal/content"
	"github.com/deltafood/delta/internal/testutils"
)

func newTestManager(t *testing.T) (*Manager, *httptest.Server) {
	t.Helper()

	m := NewManager(ManagerConfig{
		Session: Options{Clock: testutils.NewManualClock()},
		Catalog: content.MustDefault,
	})
	srv := httptest.NewServer(http.HandlerFunc(m.HandleLive))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
		srv.Close()
	})
	return m, srv
}

func dial(t *testing.T, srv *httptest.Server, opts *websocket.DialOptions) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var msg ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	return msg
}

func write(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, conn, msg))
}

func TestManagerRoundTrip(t *testing.T) {
	m, srv := newTestManager(t)
	conn := dial(t, srv, nil)

	msg := read(t, conn)
	assert.Equal(t, ServerMessage{Type: TypeListen, Event: ListenScroll}, msg)
	assert.Equal(t, 1, m.Count())

	write(t, conn, ClientMessage{Event: EventTestimonialsNext})
	msg = read(t, conn)
	assert.Equal(t, TypePatch, msg.Type)
	assert.Equal(t, "testimonials", msg.Target)
	assert.Contains(t, msg.HTML, `data-page="1"`)
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	_, srv := newTestManager(t)
	first := dial(t, srv, nil)
	second := dial(t, srv, nil)
	read(t, first)
	read(t, second)

	write(t, first, ClientMessage{Event: EventNavToggle})
	msg := read(t, first)
	assert.Equal(t, "nav", msg.Target)

	// The second visitor's nav is untouched: toggling it opens rather than
	// closes.
	write(t, second, ClientMessage{Event: EventNavToggle})
	msg = read(t, second)
	assert.Contains(t, msg.HTML, "navbar-open")
}

func TestManagerBroadcast(t *testing.T) {
	m, srv := newTestManager(t)
	first := dial(t, srv, nil)
	second := dial(t, srv, nil)
	read(t, first)
	read(t, second)

	m.Broadcast(ServerMessage{Type: TypeReload})
	assert.Equal(t, TypeReload, read(t, first).Type)
	assert.Equal(t, TypeReload, read(t, second).Type)
}

func TestManagerFollowsStore(t *testing.T) {
	m, srv := newTestManager(t)
	conn := dial(t, srv, nil)
	read(t, conn)

	store := content.NewStoreFrom(content.MustDefault())
	events := store.Watch()
	t.Cleanup(func() { store.Unwatch(events) })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go m.Follow(ctx, events)

	store.Replace(content.MustDefault())
	assert.Equal(t, TypeReload, read(t, conn).Type)
}

func TestManagerUnregistersOnClose(t *testing.T) {
	m, srv := newTestManager(t)
	conn := dial(t, srv, nil)
	read(t, conn)
	require.Equal(t, 1, m.Count())

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
	assert.Eventually(t, func() bool { return m.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestManagerRejectsForeignOrigin(t *testing.T) {
	_, srv := newTestManager(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	header := http.Header{}
	header.Set("Origin", "https://evil.example.com")
	_, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"),
		&websocket.DialOptions{HTTPHeader: header})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestManagerShutdown(t *testing.T) {
	m, srv := newTestManager(t)
	conn := dial(t, srv, nil)
	read(t, conn)

	// The client must keep reading to answer the close handshake.
	readErr := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _, err := conn.Read(ctx)
		readErr <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))
	require.Error(t, <-readErr)
	assert.Zero(t, m.Count())

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestManagerShutdownDuringConnects(t *testing.T) {
	m, srv := newTestManager(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	stop := make(chan struct{})
	var clients sync.WaitGroup
	for i := 0; i < 8; i++ {
		clients.Add(1)
		go func() {
			defer clients.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				conn, _, err := websocket.Dial(ctx, url, nil)
				if err == nil {
					// Read until the server closes so the handshake completes.
					for err == nil {
						_, _, err = conn.Read(ctx)
					}
					_ = conn.CloseNow()
				}
				cancel()
			}
		}()
	}

	require.Eventually(t, func() bool { return m.Count() > 0 }, 2*time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))
	assert.Zero(t, m.Count(), "no session outlives shutdown")

	close(stop)
	clients.Wait()
	assert.Zero(t, m.Count())
}
