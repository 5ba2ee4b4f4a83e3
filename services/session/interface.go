package session

import (
	"context"
	"errors"

	"spacetact/models"
)

var ErrNotFound = errors.New("session not found")

// Store keeps SessionState by browser session id.
type Store interface {
	// Get returns ErrNotFound when the session has never been saved or expired.
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	Save(ctx context.Context, state *models.SessionState) error
	Delete(ctx context.Context, sessionID string) error
}
