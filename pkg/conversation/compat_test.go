package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCompatibility_FullySupported(t *testing.T) {
	report := CheckCompatibility(HostCapabilities{
		SpeechRecognition: true,
		SpeechSynthesis:   true,
		Microphone:        true,
	})

	assert.True(t, report.IsFullySupported)
	assert.True(t, report.SpeechRecognition)
	assert.True(t, report.SpeechSynthesis)
	assert.True(t, report.Microphone)
}

func TestCheckCompatibility_AnyMissingCapability(t *testing.T) {
	cases := []HostCapabilities{
		{SpeechRecognition: false, SpeechSynthesis: true, Microphone: true},
		{SpeechRecognition: true, SpeechSynthesis: false, Microphone: true},
		{SpeechRecognition: true, SpeechSynthesis: true, Microphone: false},
		{},
	}

	for _, host := range cases {
		assert.False(t, CheckCompatibility(host).IsFullySupported)
	}
}

func TestCheckCompatibility_MirrorsInput(t *testing.T) {
	report := CheckCompatibility(HostCapabilities{SpeechSynthesis: true})

	assert.False(t, report.SpeechRecognition)
	assert.True(t, report.SpeechSynthesis)
	assert.False(t, report.Microphone)
}
