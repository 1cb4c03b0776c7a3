package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-dev/folio/internal/app"
	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/handlers"
	"github.com/folio-dev/folio/pkg/contact"
	"github.com/folio-dev/folio/pkg/htmx"
)

// gatedDeliverer blocks every delivery until release is called.
type gatedDeliverer struct {
	mu       sync.Mutex
	requests []contact.Request
	gate     chan error
}

func newGatedDeliverer() *gatedDeliverer {
	return &gatedDeliverer{gate: make(chan error)}
}

func (d *gatedDeliverer) Deliver(ctx context.Context, req contact.Request) error {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()
	return <-d.gate
}

func (d *gatedDeliverer) release(err error) { d.gate <- err }

func (d *gatedDeliverer) calls() []contact.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]contact.Request(nil), d.requests...)
}

type fixture struct {
	app       *app.App
	registry  *contact.Registry
	deliverer *gatedDeliverer
}

var testConfig = contact.Config{ServiceID: "svc", TemplateID: "tpl", PublicKey: "key"}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	d := newGatedDeliverer()
	registry := contact.NewRegistry(func(string) *contact.Submission {
		return contact.NewSubmission(d, testConfig)
	})
	store, err := content.NewStore("")
	require.NoError(t, err)

	a := app.New(app.WithHandlers(
		handlers.NewPageHandler(store, registry),
		handlers.NewContactHandler(registry),
	))
	return &fixture{app: a, registry: registry, deliverer: d}
}

var surfacePattern = regexp.MustCompile(`/contact/([0-9a-f-]{36})/open`)

func (f *fixture) newSurface(t *testing.T) (string, *contact.Submission) {
	t.Helper()
	w := f.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	m := surfacePattern.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2, "page does not reference a surface")

	sub, err := f.registry.Get(m[1])
	require.NoError(t, err)
	return m[1], sub
}

func (f *fixture) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	f.app.ServeHTTP(w, req)
	return w
}

var fullForm = url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "message": {"Hi"}}

func TestPage(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "Akhilesh")

	f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, 2, f.registry.Len())
}

func TestContact_OpenAndDismiss(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	id, sub := f.newSurface(t)

	w := f.do(t, http.MethodPost, "/contact/"+id+"/open", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Send Message")
	assert.True(t, sub.Snapshot().Open)

	sub.UpdateField(contact.FieldName, "Ann")
	w = f.do(t, http.MethodPost, "/contact/"+id+"/dismiss", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.False(t, sub.Snapshot().Open)
	assert.Equal(t, "Ann", sub.Form().Name, "dismiss keeps the form")
}

func TestContact_UpdateField(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	id, sub := f.newSurface(t)

	w := f.do(t, http.MethodPost, "/contact/"+id+"/fields/email", url.Values{"value": {"ann@x.com"}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodPost, "/contact/"+id+"/fields/name", url.Values{"name": {"Ann"}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, contact.Form{Name: "Ann", Email: "ann@x.com"}, sub.Form())

	w = f.do(t, http.MethodPost, "/contact/"+id+"/fields/phone", url.Values{"value": {"1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, contact.Form{Name: "Ann", Email: "ann@x.com"}, sub.Form())
}

func TestContact_SubmitMissingFields(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	id, sub := f.newSurface(t)

	w := f.do(t, http.MethodPost, "/contact/"+id+"/submit", url.Values{"name": {"Ann"}, "email": {""}, "message": {"Hi"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in every field.")
	assert.True(t, sub.Status().IsIdle())
	assert.Empty(t, f.deliverer.calls())
}

func TestContact_SubmitWhitespaceIsAValue(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	id, sub := f.newSurface(t)

	w := f.do(t, http.MethodPost, "/contact/"+id+"/submit", url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "message": {"  "}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Please fill in every field.")
	assert.True(t, sub.Status().IsSending())

	f.deliverer.release(nil)
	require.Eventually(t, func() bool { return sub.Status().IsSent() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "  ", f.deliverer.calls()[0].Params.Message)
}

func TestContact_SubmitSuccess(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	id, sub := f.newSurface(t)
	f.do(t, http.MethodPost, "/contact/"+id+"/open", nil)

	w := f.do(t, http.MethodPost, "/contact/"+id+"/submit", fullForm)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sending...")
	assert.Contains(t, w.Body.String(), "disabled")

	// A second submit while sending is a no-op.
	w = f.do(t, http.MethodPost, "/contact/"+id+"/submit", fullForm)
	assert.Contains(t, w.Body.String(), "Sending...")

	require.Eventually(t, func() bool { return len(f.deliverer.calls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, contact.Request{
		ServiceID: "svc", TemplateID: "tpl", PublicKey: "key",
		Params: contact.Params{FromName: "Ann", FromEmail: "ann@x.com", Message: "Hi"},
	}, f.deliverer.calls()[0])

	f.deliverer.release(nil)
	require.Eventually(t, func() bool { return sub.Status().IsSent() }, time.Second, 5*time.Millisecond)

	w = f.do(t, http.MethodGet, "/contact/"+id+"/status", nil)
	assert.Contains(t, w.Body.String(), "Thank you! Your message has been sent.")
	assert.True(t, sub.Form().IsZero())
	assert.Len(t, f.deliverer.calls(), 1)
}

func TestContact_SubmitFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	id, sub := f.newSurface(t)

	f.do(t, http.MethodPost, "/contact/"+id+"/submit", fullForm)
	f.deliverer.release(errors.New("quota exceeded"))
	require.Eventually(t, func() bool { return sub.Status().IsFailed() }, time.Second, 5*time.Millisecond)

	w := f.do(t, http.MethodGet, "/contact/"+id+"/status", nil)
	body := w.Body.String()
	assert.Contains(t, body, contact.FailureMessage)
	assert.NotContains(t, body, "quota exceeded")
	assert.Contains(t, body, `value="Ann"`)
	assert.Contains(t, body, "Send Message")
}

func TestContact_ReopenAfterResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   error
		reached  func(contact.Status) bool
		leftover string
	}{
		{
			name:     "after sent",
			reached:  contact.Status.IsSent,
			leftover: "Thank you",
		},
		{
			name:     "after failed",
			result:   errors.New("quota exceeded"),
			reached:  contact.Status.IsFailed,
			leftover: contact.FailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			id, sub := f.newSurface(t)

			f.do(t, http.MethodPost, "/contact/"+id+"/open", nil)
			f.do(t, http.MethodPost, "/contact/"+id+"/submit", fullForm)
			f.deliverer.release(tt.result)
			require.Eventually(t, func() bool { return tt.reached(sub.Status()) }, time.Second, 5*time.Millisecond)

			w := f.do(t, http.MethodPost, "/contact/"+id+"/open", nil)
			assert.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, "Send Message")
			assert.NotContains(t, body, tt.leftover)
			assert.True(t, sub.Status().IsIdle())
			assert.True(t, sub.Snapshot().Open)
		})
	}
}

func TestContact_DismissDuringSendDiscardsResult(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	id, sub := f.newSurface(t)

	f.do(t, http.MethodPost, "/contact/"+id+"/submit", fullForm)
	f.do(t, http.MethodPost, "/contact/"+id+"/dismiss", nil)
	assert.True(t, sub.Status().IsIdle())

	f.deliverer.release(errors.New("late failure"))
	time.Sleep(20 * time.Millisecond)
	assert.True(t, sub.Status().IsIdle())
	assert.Empty(t, sub.Status().Message)
}

func TestContact_UnknownSurface(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/contact/00000000-0000-0000-0000-000000000000/open", nil)
	req.Header.Set(htmx.HeaderHXRequest, "true")
	w := httptest.NewRecorder()
	f.app.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "htmx responses are swapped with 200")
	assert.Contains(t, w.Body.String(), "expired")
	assert.Equal(t, "#contact-modal", w.Header().Get(htmx.HeaderHXRetarget))

	w = f.do(t, http.MethodPost, "/contact/00000000-0000-0000-0000-000000000000/submit", fullForm)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, "/contact/not-a-uuid/open", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContact_WebsocketPushesStatus(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	id, sub := f.newSurface(t)

	srv := httptest.NewServer(f.app)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/contact/"+id+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	read := func() string {
		t.Helper()
		_, msg, err := conn.Read(ctx)
		require.NoError(t, err)
		return string(msg)
	}

	first := read()
	assert.Contains(t, first, `id="contact-modal-body"`)
	assert.Contains(t, first, "Send Message")

	sub.UpdateField(contact.FieldName, "Ann")
	sub.UpdateField(contact.FieldEmail, "ann@x.com")
	sub.UpdateField(contact.FieldMessage, "Hi")
	_, started := sub.Submit(context.Background())
	require.True(t, started)

	// Intermediate snapshots may be coalesced; read until Sending shows up.
	var msg string
	for !strings.Contains(msg, "Sending...") {
		msg = read()
	}

	f.deliverer.release(nil)
	for !strings.Contains(msg, "Thank you!") {
		msg = read()
	}

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
}
