package models

// LeadSource tags every lead that originates from the chat widget.
const LeadSource = "spacetact_chat"

// Defaults applied when the model omits a lead field.
const (
	DefaultLeadName       = "User"
	DefaultLeadEmail      = "no-email@provided.com"
	DefaultLeadBusiness   = "Not Provided"
	DefaultLeadPhone      = "NotProvided"
	DefaultLeadPainPoints = "General Inquiry"
	DefaultLeadInterest   = "Discovery Call"
)

// LeadRecord is the payload posted to the lead webhook. It is not kept after delivery.
type LeadRecord struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Business   string `json:"business"`
	Phone      string `json:"phone"`
	PainPoints string `json:"pain_points"`
	Interest   string `json:"interest"`
	Source     string `json:"source"`
	Timestamp  string `json:"timestamp"`
}
