package conversation

import (
	"testing"

	"FarmHelp/pkg/nlp"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestSettingsStore() *SettingsStore {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewSettingsStore(NewMemoryStore(), logger)
}

func TestSettingsStore_Defaults(t *testing.T) {
	store := newTestSettingsStore()

	settings := store.Get("voice:settings:u1")

	assert.Equal(t, DefaultSpeechRate, settings.SpeechRate)
	assert.Equal(t, VoiceFemale, settings.VoiceGender)
	assert.Equal(t, nlp.LanguageEN, settings.Language)
	assert.True(t, settings.AutoSpeak)
}

func TestSettingsStore_ShallowMerge(t *testing.T) {
	store := newTestSettingsStore()

	rate := 1.5
	updated := store.Save("voice:settings:u1", SettingsPatch{SpeechRate: &rate})

	assert.Equal(t, 1.5, updated.SpeechRate)
	// untouched fields keep their defaults
	assert.Equal(t, VoiceFemale, updated.VoiceGender)
	assert.True(t, updated.AutoSpeak)

	gender := VoiceMale
	updated = store.Save("voice:settings:u1", SettingsPatch{VoiceGender: &gender})
	assert.Equal(t, VoiceMale, updated.VoiceGender)
	// the earlier patch survives
	assert.Equal(t, 1.5, updated.SpeechRate)
}

func TestSettingsStore_SpeechRateClamped(t *testing.T) {
	store := newTestSettingsStore()

	high := 5.0
	assert.Equal(t, MaxSpeechRate, store.Save("voice:settings:u1", SettingsPatch{SpeechRate: &high}).SpeechRate)

	low := 0.1
	assert.Equal(t, MinSpeechRate, store.Save("voice:settings:u1", SettingsPatch{SpeechRate: &low}).SpeechRate)
}

func TestSettingsStore_LanguagePatch(t *testing.T) {
	store := newTestSettingsStore()

	hindi := nlp.LanguageHI
	updated := store.Save("voice:settings:u1", SettingsPatch{Language: &hindi})
	assert.Equal(t, nlp.LanguageHI, updated.Language)
	assert.Equal(t, nlp.LanguageHI, store.Get("voice:settings:u1").Language)
}

func TestSettingsStore_PerUserIsolation(t *testing.T) {
	store := newTestSettingsStore()

	rate := 2.0
	store.Save("voice:settings:u1", SettingsPatch{SpeechRate: &rate})

	assert.Equal(t, DefaultSpeechRate, store.Get("voice:settings:u2").SpeechRate)
}

func TestSettingsStore_Tutorial(t *testing.T) {
	store := newTestSettingsStore()

	assert.False(t, store.IsTutorialShown("voice:tutorial:u1"))

	store.MarkTutorialShown("voice:tutorial:u1")

	assert.True(t, store.IsTutorialShown("voice:tutorial:u1"))
	assert.False(t, store.IsTutorialShown("voice:tutorial:u2"))
}

func TestSettingsStore_NilStoreDegrades(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store := NewSettingsStore(nil, logger)

	assert.Equal(t, DefaultVoiceSettings(), store.Get("voice:settings:u1"))
}
