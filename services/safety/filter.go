// Package safety rewrites model replies that break business rules.
package safety

import (
	"strings"

	"spacetact/metrics"

	"go.uber.org/zap"
)

const (
	// AskContactText replaces a blocked reply when the user was trying to book.
	AskContactText = "I can help with that. First, could you provide your name and email?"
	// ClarifyText replaces a blocked reply otherwise.
	ClarifyText = "I can help with that. Could you clarify the details?"
)

var bookingKeywords = []string{"book", "call"}

// Filter scans plain-text model replies for forbidden phrases.
type Filter struct {
	forbidden []string
	logger    *zap.Logger
}

// NewFilter builds a filter over phrases; matching ignores case.
func NewFilter(logger *zap.Logger, phrases ...string) *Filter {
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Filter{forbidden: lowered, logger: logger}
}

// Scan returns text unchanged unless it contains a forbidden phrase, in which
// case the whole reply is replaced. The replacement depends on whether
// lastUserText shows booking intent.
func (f *Filter) Scan(text, lastUserText string) (string, bool) {
	hit, ok := f.match(text)
	if !ok {
		return text, false
	}

	metrics.SafetyRewrites.Inc()
	f.logger.Warn("Blocked forbidden phrase in model reply", zap.String("phrase", hit))

	user := strings.ToLower(lastUserText)
	for _, kw := range bookingKeywords {
		if strings.Contains(user, kw) {
			return AskContactText, true
		}
	}
	return ClarifyText, true
}

func (f *Filter) match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, phrase := range f.forbidden {
		if strings.Contains(lower, phrase) {
			return phrase, true
		}
	}
	return "", false
}
