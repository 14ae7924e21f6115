package voiceService

import (
	"FarmHelp/internal/api/voice"
	"FarmHelp/internal/entity"
	contextPkg "FarmHelp/pkg/context"
	"FarmHelp/pkg/conversation"
	"FarmHelp/pkg/nlp"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// analyticsWindow bounds how many recent turns feed the aggregate stats.
const analyticsWindow = 500

func (s *voiceService) ProcessChat(ctx context.Context, userID string, req voice.ChatRequest) (*voice.ChatResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	start := time.Now()

	language := nlp.Language(req.Language)
	if req.Language != "" && !language.Valid() {
		return nil, voice.ErrUnsupportedLanguage
	}
	if req.Language == "" {
		language = s.settings.Get(settingsKey(userID)).Language
	}

	engine := s.engineFor(userID, language)
	result := engine.Process(req.Message, language)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"intent":     result.Intent,
		"confidence": result.Confidence,
		"action":     result.Action,
		"state":      result.State,
	}).Debug("Processed chat turn")

	s.recordTurn(ctx, userID, req.Message, language, result)

	return &voice.ChatResponse{
		Response:       result.Response,
		Intent:         string(result.Intent),
		Confidence:     result.Confidence,
		Route:          result.Route,
		Action:         string(result.Action),
		Entities:       result.Entities,
		State:          string(result.State),
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

func (s *voiceService) ParseCommand(ctx context.Context, req voice.ParseRequest) (*voice.ParseResponse, error) {
	language := nlp.Language(req.Language)
	if req.Language != "" && !language.Valid() {
		return nil, voice.ErrUnsupportedLanguage
	}
	if req.Language == "" {
		language = nlp.LanguageEN
	}

	result := nlp.Parse(req.Text, language)

	return &voice.ParseResponse{
		Input:      req.Text,
		Intent:     string(result.Intent),
		Route:      result.Route,
		Response:   result.Response,
		Confidence: result.Confidence,
		Entities:   result.Entities,
	}, nil
}

func (s *voiceService) GetHistory(ctx context.Context, userID string, page, limit int) (*voice.HistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	offset := (page - 1) * limit
	turns, total, err := repo.Turns.GetTurnsByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get voice turn history")
		return nil, err
	}

	records := make([]voice.TurnRecord, 0, len(turns))
	for _, turn := range turns {
		records = append(records, voice.TurnRecord{
			ID:         turn.ID,
			Transcript: turn.Transcript,
			Language:   string(turn.Language),
			Intent:     string(turn.Intent),
			Action:     string(turn.Action),
			Route:      turn.Route,
			Response:   turn.Response,
			Confidence: turn.Confidence,
			Entities:   turn.Entities,
			CreatedAt:  turn.CreatedAt,
		})
	}

	return &voice.HistoryResponse{
		Turns: records,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *voiceService) GetMessages(ctx context.Context, userID string) (*voice.MessagesResponse, error) {
	language := s.settings.Get(settingsKey(userID)).Language
	engine := s.engineFor(userID, language)

	return &voice.MessagesResponse{
		Messages: engine.Messages(),
		State:    string(engine.State()),
		Context:  engine.Context(),
	}, nil
}

func (s *voiceService) ClearConversation(ctx context.Context, userID string) error {
	language := s.settings.Get(settingsKey(userID)).Language
	engine := s.engineFor(userID, language)
	engine.Clear()

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
	}).Info("Cleared conversation")
	return nil
}

func (s *voiceService) ClearContext(ctx context.Context, userID string) error {
	language := s.settings.Get(settingsKey(userID)).Language
	engine := s.engineFor(userID, language)
	engine.ClearContext()
	return nil
}

func (s *voiceService) Speak(ctx context.Context, userID string, req voice.SpeakRequest) ([]byte, error) {
	requestID := contextPkg.GetRequestID(ctx)

	settings := s.settings.Get(settingsKey(userID))

	language := nlp.Language(req.Language)
	if req.Language != "" && !language.Valid() {
		return nil, voice.ErrUnsupportedLanguage
	}
	if req.Language == "" {
		language = settings.Language
	}

	audio, err := s.tts.Synthesize(ctx, req.Text, language, settings)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Speech synthesis failed")
		return nil, voice.ErrSynthesisFailed
	}

	return audio, nil
}

func (s *voiceService) GetAnalytics(ctx context.Context, userID string) (*voice.VoiceAnalytics, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	turns, _, err := repo.Turns.GetTurnsByUserID(ctx, userID, analyticsWindow, 0)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get voice turns for analytics")
		return nil, err
	}

	analytics := &voice.VoiceAnalytics{
		TotalTurns:     len(turns),
		IntentCounts:   make(map[string]int),
		ActionCounts:   make(map[string]int),
		LanguageCounts: make(map[string]int),
	}

	if len(turns) == 0 {
		return analytics, nil
	}

	var confidenceSum float64
	var unknownCount int
	for _, turn := range turns {
		analytics.IntentCounts[string(turn.Intent)]++
		analytics.ActionCounts[string(turn.Action)]++
		analytics.LanguageCounts[string(turn.Language)]++
		confidenceSum += turn.Confidence
		if turn.Intent == nlp.IntentUnknown {
			unknownCount++
		}
	}

	analytics.AverageConfidence = confidenceSum / float64(len(turns))
	analytics.UnknownRate = float64(unknownCount) / float64(len(turns))

	return analytics, nil
}

// recordTurn writes the processed turn to postgres. History is best effort;
// a write failure never fails the turn itself.
func (s *voiceService) recordTurn(ctx context.Context, userID string, transcript string, language nlp.Language, result conversation.TurnResult) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to create repository client for turn record")
		return
	}

	now := time.Now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to generate turn ID")
		return
	}

	turn := entity.VoiceTurn{
		ID:         id,
		UserID:     userID,
		Transcript: transcript,
		Language:   language,
		Intent:     result.Intent,
		Action:     result.Action,
		Route:      result.Route,
		Response:   result.Response,
		Confidence: result.Confidence,
		Entities:   result.Entities,
		CreatedAt:  now,
	}

	if err := repo.Turns.CreateTurn(ctx, turn); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to record voice turn")
	}
}
