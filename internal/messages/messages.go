// Package messages builds the outbound texts of the RSVP conversation.
package messages

import "fmt"

// Config holds the event details interpolated into outbound messages.
type Config struct {
	EventDate     string
	EventLocation string
	WazeLink      string
	ResetKeyword  string
	MaxAttendees  int
}

// GenericHonorific is used when no name is on file for a guest.
const GenericHonorific = "Guest"

// Invitation builds the personalized invitation with the three reply
// options. An empty name falls back to the generic honorific.
func Invitation(name string, cfg *Config) string {
	if name == "" {
		name = GenericHonorific
	}
	return fmt.Sprintf(
		"🎉 *You're Invited!*\n\n"+
			"Dear %s,\n\n"+
			"We would love to celebrate with you on %s at %s.\n\n"+
			"Please reply with one of the options (e.g. reply 1):\n"+
			"1️⃣ Attending\n"+
			"2️⃣ Not attending\n"+
			"3️⃣ Maybe",
		name, cfg.EventDate, cfg.EventLocation,
	)
}

// CountPrompt asks how many people will attend.
func CountPrompt() string {
	return "Great! 🎉 How many of you will be coming? (reply with a number)"
}

// Confirmation acknowledges a completed YES answer, with directions.
func Confirmation(attendees int, cfg *Config) string {
	msg := fmt.Sprintf("Wonderful! We've confirmed your attendance for %d. 🎉", attendees)
	if cfg.WazeLink != "" {
		msg += fmt.Sprintf("\n\n📍 Directions: %s", cfg.WazeLink)
	}
	msg += fmt.Sprintf("\n\nIf anything changes, send *%s* to update your answer. 🔄", cfg.ResetKeyword)
	return msg
}

// DeclineAck acknowledges a NO answer.
func DeclineAck(cfg *Config) string {
	return fmt.Sprintf(
		"Thank you for letting us know. We'll miss you! 💕\n\n"+
			"If anything changes, send *%s* to update your answer.",
		cfg.ResetKeyword,
	)
}

// MaybeAck acknowledges a MAYBE answer.
func MaybeAck(cfg *Config) string {
	return fmt.Sprintf(
		"Thanks! We'd love a final answer when you know. 🤔\n\n"+
			"Send *%s* anytime to update your choice. 🔄",
		cfg.ResetKeyword,
	)
}

// Help re-lists the options after unrecognized input.
func Help() string {
	return "❌ Sorry, I didn't understand that.\n\n" +
		"Please reply with one of the options (e.g. reply 1):\n" +
		"1️⃣ Attending\n" +
		"2️⃣ Not attending\n" +
		"3️⃣ Maybe"
}

// NotANumber rejects non-numeric input while a count is expected.
func NotANumber() string {
	return "❌ That doesn't look like a number. Please reply with a number."
}

// OutOfRange rejects a count outside the allowed bounds.
func OutOfRange(cfg *Config) string {
	return fmt.Sprintf("❌ Please send a number between 1 and %d.", cfg.MaxAttendees)
}

// AlreadyResponded rebuffs input after a final answer was given.
func AlreadyResponded(cfg *Config) string {
	return fmt.Sprintf(
		"⛔ You've already responded. Send *%s* to change your answer.",
		cfg.ResetKeyword,
	)
}
