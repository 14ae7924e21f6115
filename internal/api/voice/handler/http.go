package voiceHandler

import (
	voiceService "FarmHelp/internal/api/voice/service"
	"FarmHelp/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	vs voiceService.IVoiceService,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		voiceService: vs,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	voice := srv.Group("/voice")

	// All voice endpoints require authentication
	voice.Use(h.middleware.NewTokenMiddleware)

	// Conversation
	voice.Post("/chat", h.ProcessChat)
	voice.Post("/parse", h.ParseCommand)
	voice.Get("/messages", h.GetMessages)
	voice.Delete("/conversation", h.ClearConversation)
	voice.Delete("/context", h.ClearContext)

	// History and analytics
	voice.Get("/history", h.GetHistory)
	voice.Get("/analytics", h.GetAnalytics)

	// Settings and tutorial
	voice.Get("/settings", h.GetSettings)
	voice.Put("/settings", h.UpdateSettings)
	voice.Get("/tutorial", h.GetTutorialStatus)
	voice.Post("/tutorial", h.MarkTutorialShown)

	// Capability probe and synthesis
	voice.Post("/compatibility", h.CheckCompatibility)
	voice.Post("/speak", h.Speak)
}
