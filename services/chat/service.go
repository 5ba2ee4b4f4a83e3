package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"spacetact/models"
	"spacetact/services/session"

	"go.uber.org/zap"
)

// DefaultChatService implements ChatService over a session store.
type DefaultChatService struct {
	Controller  *Controller
	Store       session.Store
	Catalog     []models.ServiceItem
	CalendarURL string
	Logger      *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func (s *DefaultChatService) OpenChat(ctx context.Context, sessionID, seed string) (*models.ChatView, error) {
	if err := s.acquire(sessionID); err != nil {
		return nil, err
	}
	defer s.release(sessionID)

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &models.ChatView{SessionID: sessionID}
	if seed = strings.TrimSpace(seed); seed != "" {
		outcome := s.turn(ctx, state, seed)
		view.Outcome = &outcome
	}
	if err := s.Store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	view.Transcript = state.Transcript
	return view, nil
}

func (s *DefaultChatService) SendMessage(ctx context.Context, sessionID, text string) (*models.TurnOutcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if err := s.acquire(sessionID); err != nil {
		return nil, err
	}
	defer s.release(sessionID)

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	outcome := s.turn(ctx, state, text)
	if err := s.Store.Save(ctx, state); err != nil {
		s.Logger.Error("Failed to save session after turn", zap.String("session", sessionID), zap.Error(err))
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &outcome, nil
}

func (s *DefaultChatService) EndSession(ctx context.Context, sessionID string) (*models.ChatView, error) {
	if err := s.acquire(sessionID); err != nil {
		return nil, err
	}
	defer s.release(sessionID)

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.Controller.ResetSession(state)
	if err := s.Store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &models.ChatView{SessionID: sessionID, Transcript: state.Transcript}, nil
}

func (s *DefaultChatService) Services() []models.ServiceItem {
	return append([]models.ServiceItem(nil), s.Catalog...)
}

// turn runs detached from the request's cancellation: once a message reaches
// the model the turn completes even if the client goes away.
func (s *DefaultChatService) turn(ctx context.Context, state *models.SessionState, text string) models.TurnOutcome {
	outcome := s.Controller.HandleTurn(context.WithoutCancel(ctx), state, text)
	if outcome.RenderHint == models.RenderSchedule {
		outcome.CalendarURL = s.CalendarURL
	}
	return outcome
}

func (s *DefaultChatService) load(ctx context.Context, sessionID string) (*models.SessionState, error) {
	state, err := s.Store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return NewSessionState(sessionID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return state, nil
}

func (s *DefaultChatService) acquire(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == nil {
		s.inflight = make(map[string]struct{})
	}
	if _, busy := s.inflight[sessionID]; busy {
		return ErrTurnInFlight
	}
	s.inflight[sessionID] = struct{}{}
	return nil
}

func (s *DefaultChatService) release(sessionID string) {
	s.mu.Lock()
	delete(s.inflight, sessionID)
	s.mu.Unlock()
}
