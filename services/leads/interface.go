package leads

import "spacetact/models"

// Forwarder hands captured leads to the external CRM automation.
//
// Forward never blocks on delivery and never reports failure: delivery is
// at-most-once and a lost lead is only visible in the logs and metrics.
type Forwarder interface {
	Forward(record models.LeadRecord)
}
