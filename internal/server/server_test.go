package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltafood/delta/internal/config"
	"github.com/deltafood/delta/internal/contact"
	"github.com/deltafood/delta/internal/content"
	"github.com/deltafood/delta/internal/live"
	"github.com/deltafood/delta/internal/testutils"
	"github.com/deltafood/delta/internal/ui"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()

	cfg := config.Default()
	cfg.Contact.SubmitDelay = 0
	store := content.NewStoreFrom(content.MustDefault())

	opts = append([]Option{
		WithSubmitter(contact.NewSimulatedSubmitter(0, nil)),
		WithSessionOptions(live.Options{Clock: testutils.NewManualClock()}),
	}, opts...)
	srv := New(cfg, store, ui.DefaultRegistry(), nil, opts...)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		ts.Close()
	})
	return srv, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func post(t *testing.T, target string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := http.PostForm(target, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndex(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, `dir="rtl"`)
	assert.Contains(t, body, `lang="he"`)
	assert.Contains(t, body, "מסעדה דלתא")
	assert.Contains(t, body, ui.LiveScriptPath)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "default-src 'self'")
}

func TestRequestIDIsEchoed(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "trace-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "trace-123", resp.Header.Get(RequestIDHeader))
}

func TestSections(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/sections")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var sections []SectionInfo
	require.NoError(t, json.Unmarshal([]byte(body), &sections))
	require.Len(t, sections, 10)
	assert.Equal(t, "nav", sections[0].Name)
	assert.Equal(t, "footer", sections[9].Name)
	assert.Equal(t, "/sections/gallery", sections[5].Path)
}

func TestSectionFragment(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		status   int
		contains string
	}{
		{"testimonials", "/sections/testimonials", http.StatusOK, `id="testimonials"`},
		{"gallery", "/sections/gallery", http.StatusOK, "gallery-item"},
		{"footer", "/sections/footer", http.StatusOK, `id="newsletter"`},
		{"unknown", "/sections/menu", http.StatusNotFound, "ERR_UNKNOWN_SECTION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, tt.contains)
			assert.NotContains(t, body, "<!DOCTYPE html>")
		})
	}
}

func TestContactFallback(t *testing.T) {
	_, ts := newTestServer(t)

	t.Run("invalid input re-renders with errors", func(t *testing.T) {
		resp, body := post(t, ts.URL+"/contact", url.Values{
			"name":  {"דנה"},
			"phone": {"not a phone"},
			"email": {"dana@example.com"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "מספר טלפון לא תקין")
		assert.Contains(t, body, "שדה חובה")
		assert.Contains(t, body, `value="dana@example.com"`)
	})

	t.Run("valid input shows success", func(t *testing.T) {
		resp, body := post(t, ts.URL+"/contact", url.Values{
			"name":    {"דנה"},
			"phone":   {"050-1234567"},
			"email":   {"dana@example.com"},
			"message": {"שולחן לארבעה"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `data-status="success"`)
		assert.Contains(t, body, "ההודעה נשלחה בהצלחה!")
	})
}

func TestContactFallbackSubmitFailure(t *testing.T) {
	rejecting := contact.NewSimulatedSubmitter(0, nil)
	rejecting.Reject = true
	_, ts := newTestServer(t, WithSubmitter(rejecting))

	resp, body := post(t, ts.URL+"/contact", url.Values{
		"name":    {"דנה"},
		"phone":   {"050-1234567"},
		"email":   {"dana@example.com"},
		"message": {"שולחן לארבעה"},
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, `data-status="error"`)
	assert.Contains(t, body, `value="dana@example.com"`, "input is kept for a retry")
}

func TestNewsletterFallback(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := post(t, ts.URL+"/newsletter", url.Values{"email": {"oops"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "כתובת אימייל לא תקינה")

	resp, body = post(t, ts.URL+"/newsletter", url.Values{"email": {"guest@example.com"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, contact.NewsletterThanks)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Version)
	assert.Equal(t, 10, health.Sections)
	assert.Zero(t, health.Sessions)
	assert.False(t, health.ContentLoadedAt.IsZero())
}

func TestStatic(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+ui.LiveScriptPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "data-live-click")
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))

	resp, body = get(t, ts.URL+ui.StylesheetPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	assert.Contains(t, body, ".lightbox")

	resp, _ = get(t, ts.URL+"/static/missing.js")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStaticMotionHooks(t *testing.T) {
	_, ts := newTestServer(t)

	_, script := get(t, ts.URL+ui.LiveScriptPath)
	for _, hook := range []string{"IntersectionObserver", "[data-reveal]", "[data-parallax]", "[data-exit]"} {
		assert.Contains(t, script, hook)
	}

	_, css := get(t, ts.URL+ui.StylesheetPath)
	assert.Contains(t, css, "var(--exit-x")
	assert.Contains(t, css, ".testimonial-page.leaving")
	assert.Contains(t, css, "[data-reveal].revealed")
	assert.NotContains(t, css, `[data-direction="forward"]`, "offsets come from the inline custom properties")
}

func TestLiveEndpoint(t *testing.T) {
	srv, ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/live", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var msg live.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, live.TypeListen, msg.Type)
	assert.Equal(t, 1, srv.Live().Count())

	require.NoError(t, wsjson.Write(ctx, conn, live.ClientMessage{
		Event:   live.EventGalleryOpen,
		Payload: json.RawMessage(`{"id":1}`),
	}))
	for _, want := range []string{live.TypeListen, live.TypeListen, live.TypePatch} {
		require.NoError(t, wsjson.Read(ctx, conn, &msg))
		assert.Equal(t, want, msg.Type)
	}
	assert.Equal(t, ui.TargetLightbox, msg.Target)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cfg := config.Default()
	store := content.NewStoreFrom(content.MustDefault())
	srv := New(cfg, store, ui.DefaultRegistry(), nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestParseOrigin(t *testing.T) {
	tests := []struct {
		origin  string
		want    string
		wantErr bool
	}{
		{"http://localhost:*", "localhost:*", false},
		{"https://delta.example", "delta.example", false},
		{"https://delta.example:8443", "delta.example:8443", false},
		{"*", "*", false},
		{"delta.example", "delta.example", false},
		{" ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			got, err := parseOrigin(tt.origin)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
