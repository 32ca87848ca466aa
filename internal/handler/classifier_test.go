package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want input
	}{
		{"start", input{kind: inputReset}},
		{"START", input{kind: inputReset}},
		{"  start ", input{kind: inputReset}},
		{"התחלה", input{kind: inputReset}},
		{"yes", input{kind: inputAttend}},
		{"כן", input{kind: inputAttend}},
		{"מגיעה", input{kind: inputAttend}},
		{"no", input{kind: inputDecline}},
		{"לא", input{kind: inputDecline}},
		{"maybe", input{kind: inputMaybe}},
		{"אולי", input{kind: inputMaybe}},
		{"1", input{kind: inputNumeric, number: 1}},
		{"42", input{kind: inputNumeric, number: 42}},
		{"0", input{kind: inputNumeric, number: 0}},
		{"", input{kind: inputUnknown}},
		{"   ", input{kind: inputUnknown}},
		{"yes please", input{kind: inputUnknown}},
		{"1st", input{kind: inputUnknown}},
		{"-1", input{kind: inputUnknown}},
		{"3.5", input{kind: inputUnknown}},
		{"hello", input{kind: inputUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.text, "start"))
		})
	}
}

func TestClassifyCustomResetKeyword(t *testing.T) {
	assert.Equal(t, input{kind: inputReset}, classify("Restart", "restart"))
	// The configured keyword replaces the default, not the Hebrew one.
	assert.Equal(t, input{kind: inputUnknown}, classify("start", "restart"))
	assert.Equal(t, input{kind: inputReset}, classify("התחלה", "restart"))
}
