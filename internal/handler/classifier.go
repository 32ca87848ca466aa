package handler

import (
	"regexp"
	"strconv"
	"strings"
)

// inputKind is the closed set of inputs the state machine understands.
// Keeping the transition logic on this enum keeps string literals out
// of the state machine itself.
type inputKind int

const (
	inputUnknown inputKind = iota
	inputReset
	inputAttend
	inputDecline
	inputMaybe
	inputNumeric
)

// input is one classified inbound message. number is set only for
// inputNumeric.
type input struct {
	kind   inputKind
	number int
}

var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

// hebrewReset is the trigger word of the original paper invitations and
// is always accepted alongside the configured reset keyword.
const hebrewReset = "התחלה"

var wordInputs = map[string]inputKind{
	"yes":   inputAttend,
	"כן":    inputAttend,
	"מגיע":  inputAttend,
	"מגיעה": inputAttend,
	"no":    inputDecline,
	"לא":    inputDecline,
	"maybe": inputMaybe,
	"אולי":  inputMaybe,
}

// classify maps raw inbound text to an input. Matching is exact-token
// after trimming and lowercasing; substrings never match. Digit strings
// classify as numeric, and the state machine decides whether a numeral
// means a menu choice or an attendee count.
func classify(text, resetKeyword string) input {
	tok := strings.ToLower(strings.TrimSpace(text))
	if tok == "" {
		return input{kind: inputUnknown}
	}

	if tok == strings.ToLower(resetKeyword) || tok == hebrewReset {
		return input{kind: inputReset}
	}

	if kind, ok := wordInputs[tok]; ok {
		return input{kind: kind}
	}

	if digitsPattern.MatchString(tok) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			// Too many digits to parse; still numeric, guaranteed
			// out of any sane range.
			n = 1 << 31
		}
		return input{kind: inputNumeric, number: n}
	}

	return input{kind: inputUnknown}
}
