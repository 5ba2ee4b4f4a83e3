package chat

import (
	"context"
	"errors"

	"spacetact/models"
)

var (
	ErrTurnInFlight = errors.New("a turn is already in progress for this session")
	ErrEmptyMessage = errors.New("message text is empty")
)

// ChatService is the API the presentation layer talks to.
type ChatService interface {
	// OpenChat returns the session transcript and, when seed is not empty,
	// runs it as the first user message.
	OpenChat(ctx context.Context, sessionID, seed string) (*models.ChatView, error)
	SendMessage(ctx context.Context, sessionID, text string) (*models.TurnOutcome, error)
	EndSession(ctx context.Context, sessionID string) (*models.ChatView, error)
	Services() []models.ServiceItem
}
