package ai

import (
	"fmt"
	"strconv"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
)

// Function names declared to the model.
const (
	FnShowServices = "show_services"
	FnCaptureLead  = "capture_lead"
	FnOpenCalendar = "open_calendar"
)

// Action is the decoded result of one model turn. The set of variants is
// closed: ShowServices, CaptureLead, OpenCalendar and PlainText.
type Action interface {
	isAction()
}

type ShowServices struct{}

type CaptureLead struct {
	Args LeadArgs
}

type OpenCalendar struct{}

type PlainText struct {
	Text string
}

func (ShowServices) isAction() {}
func (CaptureLead) isAction() {}
func (OpenCalendar) isAction() {}
func (PlainText) isAction() {}

// LeadArgs are the raw capture_lead arguments; any of them may be empty.
type LeadArgs struct {
	Name       string
	Email      string
	Business   string
	Phone      string
	PainPoints string
	Interest   string
}

// decodeResponse turns a Gemini response into an Action. Only the first
// function call is honored; text parts are concatenated otherwise.
func decodeResponse(resp *genai.GenerateContentResponse) (Action, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 {
		return nil, errEmptyCandidate
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		switch p := part.(type) {
		case genai.FunctionCall:
			return decodeCall(p.Name, p.Args)
		case *genai.FunctionCall:
			return decodeCall(p.Name, p.Args)
		case genai.Text:
			sb.WriteString(string(p))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil, errEmptyCandidate
	}
	return PlainText{Text: sb.String()}, nil
}

func decodeCall(name string, args map[string]any) (Action, error) {
	switch name {
	case FnShowServices:
		return ShowServices{}, nil
	case FnOpenCalendar:
		return OpenCalendar{}, nil
	case FnCaptureLead:
		return CaptureLead{Args: LeadArgs{
			Name:       stringArg(args, "name"),
			Email:      stringArg(args, "email"),
			Business:   stringArg(args, "business"),
			Phone:      stringArg(args, "phone"),
			PainPoints: stringArg(args, "pain_points"),
			Interest:   stringArg(args, "interest"),
		}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFunction, name)
	}
}

// stringArg reads a loosely typed argument. Models sometimes send phone
// numbers as JSON numbers.
func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
