package chat

import (
	"strings"
	"time"
	"unicode"

	"spacetact/models"
	ai "spacetact/services/intelligence"
)

// isoTimestamp matches the millisecond ISO-8601 form the webhook already receives.
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

// newLeadRecord fills every field the model left out and strips whitespace
// from the phone number. It never rejects a lead.
func newLeadRecord(args ai.LeadArgs, now time.Time) models.LeadRecord {
	phone := models.DefaultLeadPhone
	if args.Phone != "" {
		phone = stripSpaces(args.Phone)
	}
	return models.LeadRecord{
		Name:       orDefault(args.Name, models.DefaultLeadName),
		Email:      orDefault(args.Email, models.DefaultLeadEmail),
		Business:   orDefault(args.Business, models.DefaultLeadBusiness),
		Phone:      orDefault(phone, models.DefaultLeadPhone),
		PainPoints: orDefault(args.PainPoints, models.DefaultLeadPainPoints),
		Interest:   orDefault(args.Interest, models.DefaultLeadInterest),
		Source:     models.LeadSource,
		Timestamp:  now.UTC().Format(isoTimestamp),
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
