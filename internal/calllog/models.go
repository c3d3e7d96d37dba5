package calllog

import (
	"strings"
	"time"
)

// CallLog is one answered-or-attempted phone call recorded by the AI voice
// agent. Rows written through the webhook pipeline are immutable; edits happen
// only through the dashboard CRUD surface.
type CallLog struct {
	ID string `json:"id" db:"id"`

	CustomerName string        `json:"customer_name" db:"customer_name"`
	Phone        string        `json:"phone" db:"phone"`
	Direction    CallDirection `json:"direction" db:"direction"`
	Status       CallStatus    `json:"status" db:"status"`

	// DurationSeconds is the call duration in seconds.
	// Keep as an int for JSON friendliness; store as INT in Postgres.
	DurationSeconds int `json:"duration" db:"duration"`

	// Timestamp is when the call happened, as reported (or defaulted) by the
	// webhook, distinct from CreatedAt which is when we stored it.
	Timestamp time.Time `json:"timestamp" db:"timestamp"`

	RecordingURL  string `json:"recording_url,omitempty" db:"recording_url"`
	Transcription string `json:"transcription" db:"transcription"`
	OrderSummary  string `json:"order_summary,omitempty" db:"order_summary"`

	// AIConfidence is the agent's self-reported confidence in [0,1].
	// Nil when the platform did not send one.
	AIConfidence *float64 `json:"ai_confidence,omitempty" db:"ai_confidence"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CallStatus string

const (
	StatusCompleted CallStatus = "COMPLETED"
	StatusMissed    CallStatus = "MISSED"
	StatusFailed    CallStatus = "FAILED"
)

type CallDirection string

const (
	DirectionInbound  CallDirection = "INBOUND"
	DirectionOutbound CallDirection = "OUTBOUND"
)

// ClassifyStatus maps free-text status from the calling platform to a stored
// status. Unrecognized text defaults to COMPLETED.
func ClassifyStatus(freeText string) CallStatus {
	v := strings.ToLower(freeText)
	if strings.Contains(v, "miss") {
		return StatusMissed
	}
	if strings.Contains(v, "fail") {
		return StatusFailed
	}
	return StatusCompleted
}

// ClassifyDirection maps the normalized direction value; anything other than
// the literal "inbound" is stored as OUTBOUND.
func ClassifyDirection(direction string) CallDirection {
	if direction == "inbound" {
		return DirectionInbound
	}
	return DirectionOutbound
}
