package voiceService

import (
	"context"
	"errors"
	"sync"
	"testing"

	"FarmHelp/internal/api/voice"
	voiceRepository "FarmHelp/internal/api/voice/repository"
	"FarmHelp/internal/entity"
	"FarmHelp/pkg/conversation"
	"FarmHelp/pkg/nlp"
	"FarmHelp/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTurns struct {
	mu    sync.Mutex
	turns []entity.VoiceTurn
}

func (s *stubTurns) CreateTurn(_ context.Context, turn entity.VoiceTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	return nil
}

func (s *stubTurns) GetTurnsByUserID(_ context.Context, userID string, limit, offset int) ([]entity.VoiceTurn, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []entity.VoiceTurn
	for _, turn := range s.turns {
		if turn.UserID == userID {
			matched = append(matched, turn)
		}
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *stubTurns) DeleteTurnsByUserID(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.turns[:0]
	for _, turn := range s.turns {
		if turn.UserID != userID {
			kept = append(kept, turn)
		}
	}
	s.turns = kept
	return nil
}

type stubRepository struct {
	turns *stubTurns
}

func (s *stubRepository) NewClient(bool) (voiceRepository.Client, error) {
	return voiceRepository.Client{
		Turns:    s.turns,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type stubSynthesizer struct {
	err error
}

func (s *stubSynthesizer) Synthesize(context.Context, string, nlp.Language, conversation.VoiceSettings) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("mpeg"), nil
}

func newTestService(t *testing.T) (IVoiceService, *stubTurns) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	turns := &stubTurns{}
	svc := New(logger, &stubRepository{turns: turns}, conversation.NewMemoryStore(), &stubSynthesizer{}, utils.New())
	return svc, turns
}

func TestProcessChat(t *testing.T) {
	svc, turns := newTestService(t)

	resp, err := svc.ProcessChat(context.Background(), "u1", voice.ChatRequest{
		Message:  "weather",
		Language: "en",
	})

	require.NoError(t, err)
	assert.Equal(t, string(nlp.IntentNavigateWeather), resp.Intent)
	assert.Equal(t, 1.0, resp.Confidence)
	assert.Equal(t, "/weather", resp.Route)
	assert.Equal(t, string(nlp.ActionNavigate), resp.Action)
	assert.Equal(t, string(conversation.StateIdle), resp.State)
	assert.GreaterOrEqual(t, resp.ResponseTimeMs, int64(0))

	// the turn lands in history
	require.Len(t, turns.turns, 1)
	assert.Equal(t, "u1", turns.turns[0].UserID)
	assert.Equal(t, "weather", turns.turns[0].Transcript)
	assert.NotEmpty(t, turns.turns[0].ID)
}

func TestProcessChat_UnsupportedLanguage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ProcessChat(context.Background(), "u1", voice.ChatRequest{
		Message:  "weather",
		Language: "fr",
	})

	assert.ErrorIs(t, err, voice.ErrUnsupportedLanguage)
}

func TestProcessChat_SlotFillingAcrossRequests(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.ProcessChat(context.Background(), "u1", voice.ChatRequest{Message: "show prices"})
	require.NoError(t, err)
	assert.Equal(t, string(conversation.StateAwaitingCrop), first.State)

	second, err := svc.ProcessChat(context.Background(), "u1", voice.ChatRequest{Message: "wheat"})
	require.NoError(t, err)
	assert.Equal(t, string(conversation.StateIdle), second.State)
	assert.Equal(t, "/apmc", second.Route)
}

func TestProcessChat_EnginesIsolatedPerUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ProcessChat(context.Background(), "u1", voice.ChatRequest{Message: "show prices"})
	require.NoError(t, err)

	other, err := svc.ProcessChat(context.Background(), "u2", voice.ChatRequest{Message: "weather"})
	require.NoError(t, err)
	assert.Equal(t, string(conversation.StateIdle), other.State)
}

func TestParseCommand(t *testing.T) {
	svc, turns := newTestService(t)

	resp, err := svc.ParseCommand(context.Background(), voice.ParseRequest{Text: "price of wheat in Punjab"})

	require.NoError(t, err)
	assert.Equal(t, string(nlp.IntentQueryCropPrice), resp.Intent)
	assert.Equal(t, []string{"Wheat"}, resp.Entities.Crops)
	// stateless: nothing is recorded
	assert.Empty(t, turns.turns)
}

func TestGetHistory(t *testing.T) {
	svc, _ := newTestService(t)

	for _, msg := range []string{"weather", "help", "show prices"} {
		_, err := svc.ProcessChat(context.Background(), "u1", voice.ChatRequest{Message: msg})
		require.NoError(t, err)
	}

	resp, err := svc.GetHistory(context.Background(), "u1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Turns, 2)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 2, resp.Limit)
}

func TestGetMessagesAndClear(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ProcessChat(context.Background(), "u1", voice.ChatRequest{Message: "weather"})
	require.NoError(t, err)

	msgs, err := svc.GetMessages(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, msgs.Messages, 2)

	require.NoError(t, svc.ClearConversation(context.Background(), "u1"))

	msgs, err = svc.GetMessages(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, msgs.Messages)
}

func TestUpdateSettings(t *testing.T) {
	svc, _ := newTestService(t)

	rate := 1.2
	hindi := "hi"
	updated, err := svc.UpdateSettings(context.Background(), "u1", voice.SettingsRequest{
		SpeechRate: &rate,
		Language:   &hindi,
	})

	require.NoError(t, err)
	assert.Equal(t, 1.2, updated.SpeechRate)
	assert.Equal(t, nlp.LanguageHI, updated.Language)

	stored, err := svc.GetSettings(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestTutorialFlag(t *testing.T) {
	svc, _ := newTestService(t)

	status, err := svc.GetTutorialStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, status.Shown)

	_, err = svc.MarkTutorialShown(context.Background(), "u1")
	require.NoError(t, err)

	status, err = svc.GetTutorialStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, status.Shown)
}

func TestCheckCompatibility(t *testing.T) {
	svc, _ := newTestService(t)

	report := svc.CheckCompatibility(voice.CompatibilityRequest{
		SpeechRecognition: true,
		SpeechSynthesis:   true,
		Microphone:        true,
	})
	assert.True(t, report.IsFullySupported)

	report = svc.CheckCompatibility(voice.CompatibilityRequest{SpeechSynthesis: true})
	assert.False(t, report.IsFullySupported)
}

func TestSpeak(t *testing.T) {
	svc, _ := newTestService(t)

	audio, err := svc.Speak(context.Background(), "u1", voice.SpeakRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []byte("mpeg"), audio)
}

func TestSpeak_SynthesisFailure(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := New(logger, &stubRepository{turns: &stubTurns{}}, conversation.NewMemoryStore(),
		&stubSynthesizer{err: errors.New("upstream down")}, utils.New())

	_, err := svc.Speak(context.Background(), "u1", voice.SpeakRequest{Text: "hello"})
	assert.ErrorIs(t, err, voice.ErrSynthesisFailed)
}

func TestGetAnalytics(t *testing.T) {
	svc, _ := newTestService(t)

	for _, msg := range []string{"weather", "weather", "xyzzy"} {
		_, err := svc.ProcessChat(context.Background(), "u1", voice.ChatRequest{Message: msg})
		require.NoError(t, err)
	}

	analytics, err := svc.GetAnalytics(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, analytics.TotalTurns)
	assert.Equal(t, 2, analytics.IntentCounts[string(nlp.IntentNavigateWeather)])
	assert.Equal(t, 1, analytics.IntentCounts[string(nlp.IntentUnknown)])
	assert.InDelta(t, 1.0/3.0, analytics.UnknownRate, 1e-9)
	assert.InDelta(t, 2.0/3.0, analytics.AverageConfidence, 1e-9)
}

func TestGetAnalytics_Empty(t *testing.T) {
	svc, _ := newTestService(t)

	analytics, err := svc.GetAnalytics(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, analytics.TotalTurns)
	assert.Equal(t, 0.0, analytics.AverageConfidence)
}
