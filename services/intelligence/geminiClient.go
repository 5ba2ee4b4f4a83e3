// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spacetact/metrics"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type chatEntry struct {
	session  *genai.ChatSession
	lastUsed time.Time
}

// GeminiGateway keeps one genai chat per handle.
type GeminiGateway struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger

	mu    sync.Mutex
	chats map[string]*chatEntry
}

// NewGeminiGateway builds the gateway. A missing apiKey is not an error here:
// the gateway is returned unconfigured and every turn fails with
// ErrMissingAPIKey before touching the network.
func NewGeminiGateway(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*GeminiGateway, error) {
	g := &GeminiGateway{
		logger: logger,
		chats:  make(map[string]*chatEntry),
	}
	if apiKey == "" {
		logger.Error("CRITICAL: Gemini API key is missing; chat turns will return the configuration message")
		return g, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(SystemPolicy))
	model.Tools = Tools

	g.client = client
	g.model = model
	logger.Info("Gemini gateway ready", zap.String("model", modelName))
	return g, nil
}

func (g *GeminiGateway) EnsureSession(ctx context.Context, handle string) (string, error) {
	if g.model == nil {
		return "", ErrMissingAPIKey
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if entry, ok := g.chats[handle]; ok && handle != "" {
		entry.lastUsed = time.Now()
		return handle, nil
	}

	id := uuid.NewString()
	g.chats[id] = &chatEntry{session: g.model.StartChat(), lastUsed: time.Now()}
	metrics.ActiveModelSessions.Set(float64(len(g.chats)))
	g.logger.Debug("Gemini chat initialized", zap.String("handle", id))
	return id, nil
}

func (g *GeminiGateway) SubmitTurn(ctx context.Context, handle, text string) (Action, error) {
	if g.model == nil {
		return nil, ErrMissingAPIKey
	}

	g.mu.Lock()
	entry, ok := g.chats[handle]
	if ok {
		entry.lastUsed = time.Now()
	}
	g.mu.Unlock()
	if !ok {
		return nil, &TransientError{Op: "send", Err: fmt.Errorf("unknown session handle %q", handle)}
	}

	start := time.Now()
	resp, err := entry.session.SendMessage(ctx, genai.Text(text))
	metrics.ModelLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		g.Discard(handle)
		g.logger.Error("Gemini send failed", zap.String("handle", handle), zap.Error(err))
		return nil, newTransientError("send", err)
	}

	action, err := decodeResponse(resp)
	if err != nil {
		g.Discard(handle)
		g.logger.Warn("Gemini response rejected", zap.String("handle", handle), zap.Error(err))
		return nil, &TransientError{Op: "decode", Err: err}
	}
	return action, nil
}

func (g *GeminiGateway) Discard(handle string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.chats[handle]; !ok {
		return
	}
	delete(g.chats, handle)
	metrics.ActiveModelSessions.Set(float64(len(g.chats)))
}

// Prune drops chats idle for longer than maxIdle and reports how many went.
// Chats abandoned before any action are never discarded otherwise.
func (g *GeminiGateway) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	g.mu.Lock()
	defer g.mu.Unlock()
	removed := 0
	for id, entry := range g.chats {
		if entry.lastUsed.Before(cutoff) {
			delete(g.chats, id)
			removed++
		}
	}
	metrics.ActiveModelSessions.Set(float64(len(g.chats)))
	return removed
}

// Close releases the underlying client.
func (g *GeminiGateway) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
