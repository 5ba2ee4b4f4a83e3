package chat

import (
	"context"
	"errors"

	"spacetact/metrics"
	"spacetact/models"
	ai "spacetact/services/intelligence"

	"go.uber.org/zap"
)

const (
	GreetingText         = "Hello! I'm Spacetact AI. I can help you automate your business workflows, capture leads, and calculate your ROI. How can I assist you today?"
	ResetText            = "Session reset. How can I help you automate today?"
	ConfigMissingText    = "Config Error: API Key missing. Please check the server settings."
	RetryText            = "I'm connecting to the automation engine. Please try saying that again."
	ModelUnavailableText = "I'm currently updating my knowledge base. Please try refreshing the page."

	// maxTranscript bounds the session transcript; older turns are dropped.
	maxTranscript = 50
)

// Controller runs one user turn against a SessionState.
//
// Callers must not run two turns for the same state concurrently;
// DefaultChatService enforces that for HTTP traffic.
type Controller struct {
	gateway     ai.Gateway
	interceptor *Interceptor
	logger      *zap.Logger
}

func NewController(gateway ai.Gateway, interceptor *Interceptor, logger *zap.Logger) *Controller {
	return &Controller{gateway: gateway, interceptor: interceptor, logger: logger}
}

// NewSessionState returns the state of a chat that has just been opened.
func NewSessionState(sessionID string) *models.SessionState {
	return &models.SessionState{
		SessionID:  sessionID,
		Transcript: []models.ConversationTurn{{Role: models.RoleModel, Text: GreetingText}},
	}
}

// HandleTurn ensures a model session, submits userText, routes the result
// through the interceptor and records both turns in the transcript. Errors
// never escape: they become fixed texts and leave the state without a model
// session so the next turn starts cleanly.
func (c *Controller) HandleTurn(ctx context.Context, state *models.SessionState, userText string) models.TurnOutcome {
	outcome := c.runTurn(ctx, state, userText)

	c.appendTurns(state,
		models.ConversationTurn{Role: models.RoleUser, Text: userText},
		models.ConversationTurn{
			Role:       models.RoleModel,
			Text:       outcome.Text,
			RenderHint: outcome.RenderHint,
			MenuItems:  outcome.MenuItems,
		},
	)
	return outcome
}

func (c *Controller) runTurn(ctx context.Context, state *models.SessionState, userText string) models.TurnOutcome {
	handle, err := c.gateway.EnsureSession(ctx, state.ModelSession)
	if err != nil {
		return c.fail(state, err)
	}
	state.ModelSession = handle

	action, err := c.gateway.SubmitTurn(ctx, handle, userText)
	if err != nil {
		return c.fail(state, err)
	}

	outcome := c.interceptor.Intercept(state, action, userText)
	metrics.TurnCount.WithLabelValues(string(outcome.RenderHint)).Inc()
	return outcome
}

func (c *Controller) fail(state *models.SessionState, err error) models.TurnOutcome {
	if state.ModelSession != "" {
		c.gateway.Discard(state.ModelSession)
		state.ModelSession = ""
	}

	var cfgErr *ai.ConfigurationError
	if errors.As(err, &cfgErr) {
		metrics.TurnCount.WithLabelValues("config_error").Inc()
		c.logger.Error("Chat turn refused", zap.String("session", state.SessionID), zap.Error(err))
		return models.TurnOutcome{Text: ConfigMissingText, RenderHint: models.RenderPlain}
	}

	metrics.TurnCount.WithLabelValues("transient_error").Inc()
	c.logger.Warn("Chat turn failed", zap.String("session", state.SessionID), zap.Error(err))

	var tErr *ai.TransientError
	if errors.As(err, &tErr) && tErr.ModelUnavailable {
		return models.TurnOutcome{Text: ModelUnavailableText, RenderHint: models.RenderPlain}
	}
	return models.TurnOutcome{Text: RetryText, RenderHint: models.RenderPlain}
}

// ResetSession ends the conversation: the model session and captured contact
// are cleared and the transcript restarts with the reset greeting.
func (c *Controller) ResetSession(state *models.SessionState) {
	if state.ModelSession != "" {
		c.gateway.Discard(state.ModelSession)
	}
	state.ModelSession = ""
	state.CapturedContact = models.ContactSeed{}
	state.Transcript = []models.ConversationTurn{{Role: models.RoleModel, Text: ResetText}}
}

func (c *Controller) appendTurns(state *models.SessionState, turns ...models.ConversationTurn) {
	state.Transcript = append(state.Transcript, turns...)
	if over := len(state.Transcript) - maxTranscript; over > 0 {
		state.Transcript = append([]models.ConversationTurn(nil), state.Transcript[over:]...)
	}
}
