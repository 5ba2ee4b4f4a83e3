package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spacetact/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleLead() models.LeadRecord {
	return models.LeadRecord{
		Name:       "Jane",
		Email:      "jane@acme.com",
		Business:   "Acme Inc",
		Phone:      "0123456789",
		PainPoints: models.DefaultLeadPainPoints,
		Interest:   models.DefaultLeadInterest,
		Source:     models.LeadSource,
		Timestamp:  "2026-10-17T09:00:00Z",
	}
}

func TestForwardPostsJSON(t *testing.T) {
	received := make(chan map[string]string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewWebhookForwarder(srv.URL, time.Second, zap.NewNop())
	f.Forward(sampleLead())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.Drain(ctx))

	body := <-received
	assert.Equal(t, "Jane", body["name"])
	assert.Equal(t, "jane@acme.com", body["email"])
	assert.Equal(t, "Acme Inc", body["business"])
	assert.Equal(t, "0123456789", body["phone"])
	assert.Equal(t, "General Inquiry", body["pain_points"])
	assert.Equal(t, "Discovery Call", body["interest"])
	assert.Equal(t, "spacetact_chat", body["source"])
	assert.Equal(t, "2026-10-17T09:00:00Z", body["timestamp"])
}

func TestDeliverReportsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewWebhookForwarder(srv.URL, time.Second, zap.NewNop())
	err := f.deliver(context.Background(), sampleLead())
	assert.ErrorContains(t, err, "status 502")

	f.URL = ""
	assert.Error(t, f.deliver(context.Background(), sampleLead()))

	f.URL = "http://127.0.0.1:1"
	assert.Error(t, f.deliver(context.Background(), sampleLead()))
}

func TestForwardDoesNotBlockOnSlowWebhook(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewWebhookForwarder(srv.URL, 5*time.Second, zap.NewNop())

	start := time.Now()
	f.Forward(sampleLead())
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.Drain(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, f.Drain(context.Background()))
}
