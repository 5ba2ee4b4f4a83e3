package chat

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"spacetact/models"
	ai "spacetact/services/intelligence"
	"spacetact/services/leads"
	"spacetact/services/safety"
	"spacetact/services/session"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scripted struct {
	action ai.Action
	err    error
}

// fakeGateway replays scripted actions and tracks handle lifecycles.
type fakeGateway struct {
	mu        sync.Mutex
	script    []scripted
	live      map[string]bool
	created   int
	ensureErr error
	submitted []string
}

func newFakeGateway(script ...scripted) *fakeGateway {
	return &fakeGateway{script: script, live: make(map[string]bool)}
}

func (g *fakeGateway) push(script ...scripted) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.script = append(g.script, script...)
}

func (g *fakeGateway) EnsureSession(ctx context.Context, handle string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ensureErr != nil {
		return "", g.ensureErr
	}
	if handle != "" && g.live[handle] {
		return handle, nil
	}
	g.created++
	h := fmt.Sprintf("h%d", g.created)
	g.live[h] = true
	return h, nil
}

func (g *fakeGateway) SubmitTurn(ctx context.Context, handle, text string) (ai.Action, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitted = append(g.submitted, text)
	if !g.live[handle] {
		return nil, &ai.TransientError{Op: "send", Err: fmt.Errorf("unknown handle %q", handle)}
	}
	if len(g.script) == 0 {
		return ai.PlainText{Text: "ok"}, nil
	}
	next := g.script[0]
	g.script = g.script[1:]
	if next.err != nil {
		delete(g.live, handle)
		return nil, next.err
	}
	return next.action, nil
}

func (g *fakeGateway) Discard(handle string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.live, handle)
}

func (g *fakeGateway) sessionsCreated() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.created
}

func (g *fakeGateway) liveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.live)
}

// fakeForwarder records leads; when block is set Forward's goroutine waits on it.
type fakeForwarder struct {
	block chan struct{}
	got   chan models.LeadRecord
}

func newFakeForwarder() *fakeForwarder {
	return &fakeForwarder{got: make(chan models.LeadRecord, 16)}
}

func (f *fakeForwarder) Forward(record models.LeadRecord) {
	go func() {
		if f.block != nil {
			<-f.block
		}
		f.got <- record
	}()
}

func (f *fakeForwarder) next(t *testing.T) models.LeadRecord {
	t.Helper()
	select {
	case r := <-f.got:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no lead was forwarded")
		return models.LeadRecord{}
	}
}

func (f *fakeForwarder) none(t *testing.T) {
	t.Helper()
	select {
	case r := <-f.got:
		t.Fatalf("unexpected lead forwarded: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func testFilter() *safety.Filter {
	return safety.NewFilter(zap.NewNop(), ai.ForbiddenOverload, ai.ForbiddenEmailDirectly, ai.ForbiddenManualEmail)
}

func testCatalog(t *testing.T) []models.ServiceItem {
	t.Helper()
	catalog, err := LoadCatalog()
	require.NoError(t, err)
	return catalog
}

func newTestController(t *testing.T, gw ai.Gateway, fw leads.Forwarder) *Controller {
	t.Helper()
	interceptor := NewInterceptor(gw, fw, testFilter(), testCatalog(t), zap.NewNop())
	interceptor.now = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }
	return NewController(gw, interceptor, zap.NewNop())
}

func newTestService(t *testing.T, gw ai.Gateway, fw leads.Forwarder) *DefaultChatService {
	t.Helper()
	return &DefaultChatService{
		Controller:  newTestController(t, gw, fw),
		Store:       session.NewMemoryStore(time.Hour),
		Catalog:     testCatalog(t),
		CalendarURL: "https://cal.example/discovery",
		Logger:      zap.NewNop(),
	}
}
