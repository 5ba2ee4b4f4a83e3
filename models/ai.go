package models

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// RenderHint tells the presentation layer how to draw a model turn.
type RenderHint string

const (
	RenderPlain    RenderHint = "plain"
	RenderMenu     RenderHint = "menu"
	RenderSchedule RenderHint = "schedule"
)

// ServiceItem is a static catalog entry shown in the service menu.
type ServiceItem struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	IconRef     string `json:"iconRef" yaml:"icon"`
	SeedPrompt  string `json:"seedPrompt" yaml:"prompt"` // sent as the next user message when picked
}

// ConversationTurn is one entry of the session-scoped transcript.
type ConversationTurn struct {
	Role       Role          `json:"role"`
	Text       string        `json:"text"`
	RenderHint RenderHint    `json:"renderHint,omitempty"`
	MenuItems  []ServiceItem `json:"menuItems,omitempty"`
}

// ContactSeed is the contact captured in this session, used to pre-fill scheduling.
type ContactSeed struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (c ContactSeed) IsEmpty() bool {
	return c.Name == "" && c.Email == ""
}

// TurnOutcome is what the controller hands back for one user message.
type TurnOutcome struct {
	Text         string        `json:"text"`
	RenderHint   RenderHint    `json:"renderHint"`
	MenuItems    []ServiceItem `json:"menuItems,omitempty"`
	ScheduleSeed *ContactSeed  `json:"scheduleSeed,omitempty"`
	CalendarURL  string        `json:"calendarUrl,omitempty"`
}

// SessionState is everything the server keeps for one browsing session.
// ModelSession is an opaque handle into the model gateway and is only
// meaningful inside the process that issued it.
type SessionState struct {
	SessionID       string             `json:"sessionId"`
	ModelSession    string             `json:"modelSession,omitempty"`
	CapturedContact ContactSeed        `json:"capturedContact"`
	Transcript      []ConversationTurn `json:"transcript"`
}

// ChatRequest is the payload of POST /api/chat/message.
type ChatRequest struct {
	Text string `json:"text" binding:"required"`
}

// OpenChatRequest is the payload of POST /api/chat/open.
type OpenChatRequest struct {
	Seed string `json:"seed"`
}

// ChatView is returned when a chat is opened or reset.
type ChatView struct {
	SessionID  string             `json:"sessionId"`
	Transcript []ConversationTurn `json:"transcript"`
	Outcome    *TurnOutcome       `json:"outcome,omitempty"`
}
