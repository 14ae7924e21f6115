package conversation

import (
	"FarmHelp/pkg/nlp"

	"github.com/sirupsen/logrus"
)

// VoiceGender of the synthesis voice.
type VoiceGender string

const (
	VoiceMale   VoiceGender = "male"
	VoiceFemale VoiceGender = "female"
)

const (
	MinSpeechRate     = 0.5
	MaxSpeechRate     = 2.0
	DefaultSpeechRate = 0.9
)

// VoiceSettings is the per-user speech configuration.
type VoiceSettings struct {
	SpeechRate  float64      `json:"speech_rate"`
	VoiceGender VoiceGender  `json:"voice_gender"`
	Language    nlp.Language `json:"language"`
	AutoSpeak   bool         `json:"auto_speak"`
}

// DefaultVoiceSettings returns the shipped defaults.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		SpeechRate:  DefaultSpeechRate,
		VoiceGender: VoiceFemale,
		Language:    nlp.LanguageEN,
		AutoSpeak:   true,
	}
}

// SettingsPatch is a partial update; nil fields keep their current value.
type SettingsPatch struct {
	SpeechRate  *float64      `json:"speech_rate,omitempty"`
	VoiceGender *VoiceGender  `json:"voice_gender,omitempty"`
	Language    *nlp.Language `json:"language,omitempty"`
	AutoSpeak   *bool         `json:"auto_speak,omitempty"`
}

// SettingsStore reads and writes voice settings and the one-shot
// tutorial-seen flag through the persistent bag. Store failures degrade to
// defaults; they never surface to the caller.
type SettingsStore struct {
	store Store
	log   *logrus.Logger
}

func NewSettingsStore(store Store, log *logrus.Logger) *SettingsStore {
	if store == nil {
		store = NewMemoryStore()
	}
	return &SettingsStore{store: store, log: log}
}

// Get returns the stored settings with any missing key falling back to its
// default. A corrupt record reads as absent.
func (s *SettingsStore) Get(key string) VoiceSettings {
	settings := DefaultVoiceSettings()

	ctx, cancel := storeContext()
	defer cancel()

	raw, err := s.store.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return settings
	}

	var patch SettingsPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return settings
	}

	return applyPatch(settings, patch)
}

// Save shallow-merges the patch over the current record, writes it back and
// returns the merged settings.
func (s *SettingsStore) Save(key string, patch SettingsPatch) VoiceSettings {
	merged := applyPatch(s.Get(key), patch)

	payload, err := json.Marshal(merged)
	if err != nil {
		return merged
	}

	ctx, cancel := storeContext()
	defer cancel()
	if err := s.store.Set(ctx, key, payload); err != nil && s.log != nil {
		s.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Failed to persist voice settings")
	}

	return merged
}

// IsTutorialShown reports whether the tutorial flag holds a boolean true.
func (s *SettingsStore) IsTutorialShown(key string) bool {
	ctx, cancel := storeContext()
	defer cancel()

	raw, err := s.store.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return false
	}

	var shown bool
	if err := json.Unmarshal(raw, &shown); err != nil {
		return false
	}
	return shown
}

// MarkTutorialShown sets the tutorial flag.
func (s *SettingsStore) MarkTutorialShown(key string) {
	payload, _ := json.Marshal(true)

	ctx, cancel := storeContext()
	defer cancel()
	if err := s.store.Set(ctx, key, payload); err != nil && s.log != nil {
		s.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Failed to persist tutorial flag")
	}
}

func applyPatch(settings VoiceSettings, patch SettingsPatch) VoiceSettings {
	if patch.SpeechRate != nil {
		settings.SpeechRate = clampSpeechRate(*patch.SpeechRate)
	}
	if patch.VoiceGender != nil && (*patch.VoiceGender == VoiceMale || *patch.VoiceGender == VoiceFemale) {
		settings.VoiceGender = *patch.VoiceGender
	}
	if patch.Language != nil && patch.Language.Valid() {
		settings.Language = *patch.Language
	}
	if patch.AutoSpeak != nil {
		settings.AutoSpeak = *patch.AutoSpeak
	}
	settings.SpeechRate = clampSpeechRate(settings.SpeechRate)
	return settings
}

func clampSpeechRate(rate float64) float64 {
	if rate < MinSpeechRate {
		return MinSpeechRate
	}
	if rate > MaxSpeechRate {
		return MaxSpeechRate
	}
	return rate
}
