package conversation

// HostCapabilities is what the client reports about its environment. The
// probe never requests permissions or mutates anything.
type HostCapabilities struct {
	SpeechRecognition bool `json:"speech_recognition"`
	SpeechSynthesis   bool `json:"speech_synthesis"`
	Microphone        bool `json:"microphone"`
}

// CompatibilityReport mirrors the capabilities plus their conjunction.
type CompatibilityReport struct {
	SpeechRecognition bool `json:"speech_recognition"`
	SpeechSynthesis   bool `json:"speech_synthesis"`
	Microphone        bool `json:"microphone"`
	IsFullySupported  bool `json:"is_fully_supported"`
}

// CheckCompatibility is a pure capability check.
func CheckCompatibility(host HostCapabilities) CompatibilityReport {
	return CompatibilityReport{
		SpeechRecognition: host.SpeechRecognition,
		SpeechSynthesis:   host.SpeechSynthesis,
		Microphone:        host.Microphone,
		IsFullySupported:  host.SpeechRecognition && host.SpeechSynthesis && host.Microphone,
	}
}

// PermissionState of the microphone as reported by the recognition side.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
)
