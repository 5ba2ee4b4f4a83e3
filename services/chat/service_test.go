package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"spacetact/models"
	ai "spacetact/services/intelligence"
	"spacetact/services/leads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBookingScenario(t *testing.T) {
	gw := newFakeGateway(
		scripted{action: ai.PlainText{Text: "Great! What's your name, email and business?"}},
		scripted{action: ai.CaptureLead{Args: ai.LeadArgs{Name: "Jane", Email: "jane@acme.com", Business: "Acme Inc"}}},
	)
	fw := newFakeForwarder()
	svc := newTestService(t, gw, fw)
	ctx := context.Background()

	view, err := svc.OpenChat(ctx, "sess-1", "")
	require.NoError(t, err)
	require.Len(t, view.Transcript, 1)
	assert.Equal(t, GreetingText, view.Transcript[0].Text)

	out, err := svc.SendMessage(ctx, "sess-1", "I want to book a call")
	require.NoError(t, err)
	assert.Equal(t, models.RenderPlain, out.RenderHint)

	out, err = svc.SendMessage(ctx, "sess-1", "Jane, jane@acme.com, Acme Inc")
	require.NoError(t, err)
	assert.Equal(t, models.RenderSchedule, out.RenderHint)
	require.NotNil(t, out.ScheduleSeed)
	assert.Equal(t, "Jane", out.ScheduleSeed.Name)
	assert.Equal(t, "jane@acme.com", out.ScheduleSeed.Email)
	assert.Equal(t, "https://cal.example/discovery", out.CalendarURL)

	lead := fw.next(t)
	assert.Equal(t, "Jane", lead.Name)
	assert.Equal(t, "Acme Inc", lead.Business)
	assert.Equal(t, "NotProvided", lead.Phone)

	state, err := svc.Store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, models.ContactSeed{Name: "Jane", Email: "jane@acme.com"}, state.CapturedContact)
	assert.Empty(t, state.ModelSession)
	assert.Len(t, state.Transcript, 5)
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	gw := newFakeGateway()
	svc := newTestService(t, gw, newFakeForwarder())

	_, err := svc.SendMessage(context.Background(), "sess-1", "   \n")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, gw.submitted)
}

func TestSendMessageRejectsOverlappingTurn(t *testing.T) {
	svc := newTestService(t, newFakeGateway(), newFakeForwarder())
	require.NoError(t, svc.acquire("sess-1"))

	_, err := svc.SendMessage(context.Background(), "sess-1", "hello")
	assert.ErrorIs(t, err, ErrTurnInFlight)

	_, err = svc.SendMessage(context.Background(), "sess-2", "hello")
	assert.NoError(t, err)

	svc.release("sess-1")
	_, err = svc.SendMessage(context.Background(), "sess-1", "hello")
	assert.NoError(t, err)
}

func TestOpenChatRunsSeed(t *testing.T) {
	gw := newFakeGateway(scripted{action: ai.PlainText{Text: "Chatbots answer your customers 24/7."}})
	svc := newTestService(t, gw, newFakeForwarder())

	view, err := svc.OpenChat(context.Background(), "sess-1", "Tell me more about AI Chatbots")
	require.NoError(t, err)
	require.NotNil(t, view.Outcome)
	assert.Equal(t, "Chatbots answer your customers 24/7.", view.Outcome.Text)
	assert.Equal(t, []string{"Tell me more about AI Chatbots"}, gw.submitted)
	assert.Len(t, view.Transcript, 3)
}

func TestOpenChatResumesExistingSession(t *testing.T) {
	svc := newTestService(t, newFakeGateway(), newFakeForwarder())
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "sess-1", "hello")
	require.NoError(t, err)

	view, err := svc.OpenChat(ctx, "sess-1", "")
	require.NoError(t, err)
	assert.Len(t, view.Transcript, 3)
	assert.Nil(t, view.Outcome)
}

func TestEndSessionResets(t *testing.T) {
	gw := newFakeGateway(
		scripted{action: ai.CaptureLead{Args: ai.LeadArgs{Name: "Jane", Email: "jane@acme.com"}}},
		scripted{action: ai.OpenCalendar{}},
	)
	svc := newTestService(t, gw, newFakeForwarder())
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "sess-1", "Jane, jane@acme.com")
	require.NoError(t, err)

	view, err := svc.EndSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []models.ConversationTurn{{Role: models.RoleModel, Text: ResetText}}, view.Transcript)

	// The captured contact is gone, so the calendar is refused again.
	out, err := svc.SendMessage(ctx, "sess-1", "open the calendar")
	require.NoError(t, err)
	assert.Equal(t, ContactFirstText, out.Text)
	assert.Empty(t, out.CalendarURL)
}

func TestServicesReturnsCopy(t *testing.T) {
	svc := newTestService(t, newFakeGateway(), newFakeForwarder())

	items := svc.Services()
	require.Len(t, items, 6)
	items[0].Title = "changed"
	assert.NotEqual(t, "changed", svc.Services()[0].Title)
}

func TestSlowForwarderDoesNotBlockTurn(t *testing.T) {
	fw := newFakeForwarder()
	fw.block = make(chan struct{})
	defer close(fw.block)

	gw := newFakeGateway(scripted{action: ai.CaptureLead{Args: ai.LeadArgs{Name: "Jane", Email: "jane@acme.com"}}})
	svc := newTestService(t, gw, fw)

	done := make(chan *models.TurnOutcome, 1)
	go func() {
		out, err := svc.SendMessage(context.Background(), "sess-1", "Jane, jane@acme.com")
		assert.NoError(t, err)
		done <- out
	}()

	select {
	case out := <-done:
		assert.Equal(t, models.RenderSchedule, out.RenderHint)
	case <-time.After(time.Second):
		t.Fatal("turn waited on lead delivery")
	}
}

func TestFailingWebhookIsInvisibleToUser(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	fw := leads.NewWebhookForwarder(srv.URL, 5*time.Second, zap.NewNop())
	gw := newFakeGateway(scripted{action: ai.CaptureLead{Args: ai.LeadArgs{Name: "Jane", Email: "jane@acme.com", Business: "Acme"}}})
	svc := newTestService(t, gw, fw)

	start := time.Now()
	out, err := svc.SendMessage(context.Background(), "sess-1", "Jane, jane@acme.com, Acme")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
	assert.Equal(t, "Thanks Jane. I've saved your details. Opening the calendar now to finalize your booking.", out.Text)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, fw.Drain(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, hits)
}
