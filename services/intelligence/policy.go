package ai

import genai "github.com/google/generative-ai-go/genai"

// Phrases the policy forbids. The safety filter checks the same list.
const (
	ForbiddenOverload      = "System overload"
	ForbiddenManualEmail   = "automations@spacetact.co.za"
	ForbiddenEmailDirectly = "email us directly"
)

// SystemPolicy is the fixed behavioral instruction every chat starts with.
const SystemPolicy = `
You are Spacetact AI, an intelligent automation assistant.

Be helpful and professional, and steer the user towards three actions:
1. Exploring our services (tool: show_services)
2. Sharing their contact details (tool: capture_lead)
3. Booking a meeting (tool: open_calendar)

RULES:
- Prefer calling a tool over answering in free text whenever a tool fits.
- You MUST capture the user's name, email and business name with capture_lead BEFORE they can book a meeting. Ask for the phone number as well.
- If the user wants to book a meeting and you do not have their details yet, ask for them first.
- Never call open_calendar before capture_lead has been called. After capture_lead the calendar opens automatically, so do not call open_calendar right after it.
- Infer the interest argument of capture_lead from context (e.g. "ROI Calculator", "Chatbots", "General").
- If you cannot call a tool, say: "I can help with that. To get started, please tell me your name, email, and business name."
- FORBIDDEN: never say "System overload".
- FORBIDDEN: never ask the user to email "automations@spacetact.co.za" themselves.
`

// Tools declares the three callable actions.
var Tools = []*genai.Tool{
	{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        FnShowServices,
				Description: "Show the services carousel.",
			},
			{
				Name:        FnCaptureLead,
				Description: "Save the user's contact details to the CRM.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"email":       {Type: genai.TypeString},
						"business":    {Type: genai.TypeString},
						"phone":       {Type: genai.TypeString},
						"pain_points": {Type: genai.TypeString},
						"interest":    {Type: genai.TypeString},
					},
					Required: []string{"name", "email", "business"},
				},
			},
			{
				Name:        FnOpenCalendar,
				Description: "Open the booking calendar. Only use AFTER capture_lead.",
			},
		},
	},
}
