package voiceService

import (
	"FarmHelp/internal/api/voice"
	contextPkg "FarmHelp/pkg/context"
	"FarmHelp/pkg/conversation"
	"FarmHelp/pkg/nlp"
	"context"

	"github.com/sirupsen/logrus"
)

func (s *voiceService) GetSettings(ctx context.Context, userID string) (conversation.VoiceSettings, error) {
	return s.settings.Get(settingsKey(userID)), nil
}

func (s *voiceService) UpdateSettings(ctx context.Context, userID string, req voice.SettingsRequest) (conversation.VoiceSettings, error) {
	requestID := contextPkg.GetRequestID(ctx)

	patch := conversation.SettingsPatch{
		SpeechRate: req.SpeechRate,
		AutoSpeak:  req.AutoSpeak,
	}

	if req.VoiceGender != nil {
		gender := conversation.VoiceGender(*req.VoiceGender)
		patch.VoiceGender = &gender
	}

	if req.Language != nil {
		language := nlp.Language(*req.Language)
		if !language.Valid() {
			return conversation.VoiceSettings{}, voice.ErrUnsupportedLanguage
		}
		patch.Language = &language
	}

	updated := s.settings.Save(settingsKey(userID), patch)

	// Keep a live engine's language in step with the settings record.
	if req.Language != nil {
		s.mu.Lock()
		if engine, ok := s.engines[userID]; ok {
			engine.SetLanguage(updated.Language)
		}
		s.mu.Unlock()
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"speech_rate": updated.SpeechRate,
		"language":    updated.Language,
	}).Debug("Updated voice settings")

	return updated, nil
}

func (s *voiceService) GetTutorialStatus(ctx context.Context, userID string) (*voice.TutorialResponse, error) {
	return &voice.TutorialResponse{
		Shown: s.settings.IsTutorialShown(tutorialKey(userID)),
	}, nil
}

func (s *voiceService) MarkTutorialShown(ctx context.Context, userID string) (*voice.TutorialResponse, error) {
	s.settings.MarkTutorialShown(tutorialKey(userID))
	return &voice.TutorialResponse{Shown: true}, nil
}

func (s *voiceService) CheckCompatibility(req voice.CompatibilityRequest) conversation.CompatibilityReport {
	return conversation.CheckCompatibility(conversation.HostCapabilities{
		SpeechRecognition: req.SpeechRecognition,
		SpeechSynthesis:   req.SpeechSynthesis,
		Microphone:        req.Microphone,
	})
}
