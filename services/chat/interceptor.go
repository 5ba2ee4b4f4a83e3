package chat

import (
	"fmt"
	"time"

	"spacetact/models"
	ai "spacetact/services/intelligence"
	"spacetact/services/leads"
	"spacetact/services/safety"

	"go.uber.org/zap"
)

const (
	MenuIntroText    = "Here are the automation services we provide:"
	ScheduleText     = "Opening the calendar now. Please choose a slot."
	ContactFirstText = "I can help with that. To get started, please tell me your name, email, and business name."
	captureFormat    = "Thanks %s. I've saved your details. Opening the calendar now to finalize your booking."
)

// Interceptor turns a decoded model action into a TurnOutcome and performs
// the side effects that go with it.
type Interceptor struct {
	gateway   ai.Gateway
	forwarder leads.Forwarder
	filter    *safety.Filter
	catalog   []models.ServiceItem
	logger    *zap.Logger
	now       func() time.Time
}

func NewInterceptor(
	gateway ai.Gateway,
	forwarder leads.Forwarder,
	filter *safety.Filter,
	catalog []models.ServiceItem,
	logger *zap.Logger,
) *Interceptor {
	return &Interceptor{
		gateway:   gateway,
		forwarder: forwarder,
		filter:    filter,
		catalog:   catalog,
		logger:    logger,
		now:       time.Now,
	}
}

// Intercept branches on the action. Every action drops the model session so
// the next turn starts from a clean context and cannot replay the action.
func (i *Interceptor) Intercept(state *models.SessionState, action ai.Action, userText string) models.TurnOutcome {
	switch a := action.(type) {
	case ai.ShowServices:
		i.logger.Info("Intercepting action", zap.String("action", ai.FnShowServices), zap.String("session", state.SessionID))
		i.dropModelSession(state)
		return models.TurnOutcome{
			Text:       MenuIntroText,
			RenderHint: models.RenderMenu,
			MenuItems:  append([]models.ServiceItem(nil), i.catalog...),
		}

	case ai.CaptureLead:
		i.logger.Info("Intercepting action", zap.String("action", ai.FnCaptureLead), zap.String("session", state.SessionID))
		record := newLeadRecord(a.Args, i.now())
		i.forwarder.Forward(record)

		state.CapturedContact = models.ContactSeed{Name: record.Name, Email: record.Email}
		i.dropModelSession(state)
		seed := state.CapturedContact
		return models.TurnOutcome{
			Text:         fmt.Sprintf(captureFormat, record.Name),
			RenderHint:   models.RenderSchedule,
			ScheduleSeed: &seed,
		}

	case ai.OpenCalendar:
		i.dropModelSession(state)
		if state.CapturedContact.IsEmpty() {
			i.logger.Warn("Model asked for the calendar before capturing a lead", zap.String("session", state.SessionID))
			return models.TurnOutcome{Text: ContactFirstText, RenderHint: models.RenderPlain}
		}
		i.logger.Info("Intercepting action", zap.String("action", ai.FnOpenCalendar), zap.String("session", state.SessionID))
		seed := state.CapturedContact
		return models.TurnOutcome{
			Text:         ScheduleText,
			RenderHint:   models.RenderSchedule,
			ScheduleSeed: &seed,
		}

	case ai.PlainText:
		text, rewritten := i.filter.Scan(a.Text, userText)
		if rewritten {
			i.dropModelSession(state)
		}
		return models.TurnOutcome{Text: text, RenderHint: models.RenderPlain}

	default:
		// Unreachable while Action stays closed; treat like a blocked reply.
		i.logger.Error("Unhandled action type", zap.String("type", fmt.Sprintf("%T", action)))
		i.dropModelSession(state)
		return models.TurnOutcome{Text: safety.ClarifyText, RenderHint: models.RenderPlain}
	}
}

func (i *Interceptor) dropModelSession(state *models.SessionState) {
	if state.ModelSession != "" {
		i.gateway.Discard(state.ModelSession)
	}
	state.ModelSession = ""
}
