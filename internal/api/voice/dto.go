package voice

import (
	"FarmHelp/pkg/conversation"
	"FarmHelp/pkg/nlp"
	"time"
)

type ChatRequest struct {
	Message  string `json:"message" validate:"required,min=1,max=500"`
	Language string `json:"language" validate:"omitempty,oneof=en hi"`
}

type ChatResponse struct {
	Response       string       `json:"response"`
	Intent         string       `json:"intent"`
	Confidence     float64      `json:"confidence"`
	Route          string       `json:"route,omitempty"`
	Action         string       `json:"action"`
	Entities       nlp.Entities `json:"entities"`
	State          string       `json:"state"`
	ResponseTimeMs int64        `json:"response_time_ms"`
}

type ParseRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=500"`
	Language string `json:"language" validate:"omitempty,oneof=en hi"`
}

type ParseResponse struct {
	Input      string       `json:"input"`
	Intent     string       `json:"intent"`
	Route      string       `json:"route,omitempty"`
	Response   string       `json:"response"`
	Confidence float64      `json:"confidence"`
	Entities   nlp.Entities `json:"entities"`
}

type TurnRecord struct {
	ID         string       `json:"id"`
	Transcript string       `json:"transcript"`
	Language   string       `json:"language"`
	Intent     string       `json:"intent"`
	Action     string       `json:"action"`
	Route      string       `json:"route,omitempty"`
	Response   string       `json:"response"`
	Confidence float64      `json:"confidence"`
	Entities   nlp.Entities `json:"entities"`
	CreatedAt  time.Time    `json:"created_at"`
}

type HistoryResponse struct {
	Turns []TurnRecord `json:"turns"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type MessagesResponse struct {
	Messages []conversation.Message   `json:"messages"`
	State    string                   `json:"state"`
	Context  conversation.SlotContext `json:"context"`
}

type SettingsRequest struct {
	SpeechRate  *float64 `json:"speech_rate" validate:"omitempty,gte=0.5,lte=2"`
	VoiceGender *string  `json:"voice_gender" validate:"omitempty,oneof=male female"`
	Language    *string  `json:"language" validate:"omitempty,oneof=en hi"`
	AutoSpeak   *bool    `json:"auto_speak"`
}

type TutorialResponse struct {
	Shown bool `json:"shown"`
}

type CompatibilityRequest struct {
	SpeechRecognition bool `json:"speech_recognition"`
	SpeechSynthesis   bool `json:"speech_synthesis"`
	Microphone        bool `json:"microphone"`
}

type SpeakRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=500"`
	Language string `json:"language" validate:"omitempty,oneof=en hi"`
}

type VoiceAnalytics struct {
	TotalTurns        int            `json:"total_turns"`
	AverageConfidence float64        `json:"average_confidence"`
	UnknownRate       float64        `json:"unknown_rate"`
	IntentCounts      map[string]int `json:"intent_counts"`
	ActionCounts      map[string]int `json:"action_counts"`
	LanguageCounts    map[string]int `json:"language_counts"`
}
