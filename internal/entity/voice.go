package entity

import (
	"FarmHelp/pkg/nlp"
	"time"
)

// VoiceTurn is one persisted conversation turn: the user utterance, what
// the parser made of it, and the assistant line it produced.
type VoiceTurn struct {
	ID         string       `json:"id" db:"id"`
	UserID     string       `json:"user_id" db:"user_id"`
	Transcript string       `json:"transcript" db:"transcript"`
	Language   nlp.Language `json:"language" db:"language"`
	Intent     nlp.Intent   `json:"intent" db:"intent"`
	Action     nlp.Action   `json:"action" db:"action"`
	Route      string       `json:"route,omitempty" db:"route"`
	Response   string       `json:"response" db:"response"`
	Confidence float64      `json:"confidence" db:"confidence"`
	Entities   nlp.Entities `json:"entities" db:"-"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}
