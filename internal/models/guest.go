package models

import "time"

// Guest represents one invited guest, keyed by normalized phone number.
type Guest struct {
	Phone         string     `json:"phone"`
	Name          string     `json:"name,omitempty"`
	Category      string     `json:"category,omitempty"`
	Status        RSVPStatus `json:"status"`
	Attendees     int        `json:"attendees"`
	SessionActive bool       `json:"session_active"`
	AwaitingCount bool       `json:"awaiting_count"`
	InvitedAt     time.Time  `json:"invited_at"`
	RespondedAt   time.Time  `json:"responded_at,omitempty"`
}

// RSVPStatus represents the attendance confirmation status
type RSVPStatus string

const (
	RSVPNotResponded RSVPStatus = "not_responded"
	RSVPYes          RSVPStatus = "yes"
	RSVPNo           RSVPStatus = "no"
	RSVPMaybe        RSVPStatus = "maybe"
)

// Responded reports whether the guest has given a final answer.
func (s RSVPStatus) Responded() bool {
	return s == RSVPYes || s == RSVPNo || s == RSVPMaybe
}

// UndeliveredMessage records a guest whose invitation could not be sent.
// Recorded at most once per guest, kept for manual follow-up.
type UndeliveredMessage struct {
	Phone    string    `json:"phone"`
	Name     string    `json:"name,omitempty"`
	Category string    `json:"category,omitempty"`
	FailedAt time.Time `json:"failed_at"`
}
