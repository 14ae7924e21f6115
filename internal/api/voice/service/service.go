package voiceService

import (
	"FarmHelp/internal/api/voice"
	voiceRepository "FarmHelp/internal/api/voice/repository"
	"FarmHelp/pkg/conversation"
	"FarmHelp/pkg/nlp"
	"FarmHelp/pkg/utils"
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type IVoiceService interface {
	ProcessChat(ctx context.Context, userID string, req voice.ChatRequest) (*voice.ChatResponse, error)
	ParseCommand(ctx context.Context, req voice.ParseRequest) (*voice.ParseResponse, error)

	GetHistory(ctx context.Context, userID string, page, limit int) (*voice.HistoryResponse, error)
	GetMessages(ctx context.Context, userID string) (*voice.MessagesResponse, error)
	ClearConversation(ctx context.Context, userID string) error
	ClearContext(ctx context.Context, userID string) error

	GetSettings(ctx context.Context, userID string) (conversation.VoiceSettings, error)
	UpdateSettings(ctx context.Context, userID string, req voice.SettingsRequest) (conversation.VoiceSettings, error)
	GetTutorialStatus(ctx context.Context, userID string) (*voice.TutorialResponse, error)
	MarkTutorialShown(ctx context.Context, userID string) (*voice.TutorialResponse, error)

	CheckCompatibility(req voice.CompatibilityRequest) conversation.CompatibilityReport
	Speak(ctx context.Context, userID string, req voice.SpeakRequest) ([]byte, error)
	GetAnalytics(ctx context.Context, userID string) (*voice.VoiceAnalytics, error)
}

// Synthesizer turns one response line into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, language nlp.Language, settings conversation.VoiceSettings) ([]byte, error)
}

type voiceService struct {
	log       *logrus.Logger
	voiceRepo voiceRepository.Repository
	store     conversation.Store
	settings  *conversation.SettingsStore
	tts       Synthesizer
	utils     utils.IUtils

	mu      sync.Mutex
	engines map[string]*conversation.Engine
}

func New(
	log *logrus.Logger,
	voiceRepo voiceRepository.Repository,
	store conversation.Store,
	tts Synthesizer,
	utilsPkg utils.IUtils,
) IVoiceService {
	return &voiceService{
		log:       log,
		voiceRepo: voiceRepo,
		store:     store,
		settings:  conversation.NewSettingsStore(store, log),
		tts:       tts,
		utils:     utilsPkg,
		engines:   make(map[string]*conversation.Engine),
	}
}

func chatKey(userID string) string {
	return "voice:chat:" + userID
}

func settingsKey(userID string) string {
	return "voice:settings:" + userID
}

func tutorialKey(userID string) string {
	return "voice:tutorial:" + userID
}

// engineFor returns the live engine for a user, creating one bound to the
// user's chat key on first use. Engines are kept for the process lifetime;
// their message tail survives restarts through the store.
func (s *voiceService) engineFor(userID string, language nlp.Language) *conversation.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if engine, ok := s.engines[userID]; ok {
		return engine
	}

	engine := conversation.NewEngine(s.log, s.store, chatKey(userID), language)
	s.engines[userID] = engine
	return engine
}
