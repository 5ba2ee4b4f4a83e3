package session

import (
	"context"
	"os"
	"testing"
	"time"

	"spacetact/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState(id string) *models.SessionState {
	return &models.SessionState{
		SessionID:       id,
		ModelSession:    "handle-1",
		CapturedContact: models.ContactSeed{Name: "Jane", Email: "jane@acme.com"},
		Transcript: []models.ConversationTurn{
			{Role: models.RoleModel, Text: "Hello!"},
		},
	}
}

func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()
	id := "test-" + uuid.NewString()

	_, err := store.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, sampleState(id)))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleState(id), got)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStoreIsolatesTranscript(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	state := sampleState("s1")
	require.NoError(t, store.Save(ctx, state))

	state.Transcript[0].Text = "mutated"
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", got.Transcript[0].Text)

	got.Transcript = append(got.Transcript, models.ConversationTurn{Role: models.RoleUser, Text: "hi"})
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Transcript, 1)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)
	require.NoError(t, store.Save(ctx, sampleState("s1")))

	time.Sleep(20 * time.Millisecond)
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Sweep())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	exerciseStore(t, NewRedisStore(client, time.Minute))
}
