package voice

import (
	"FarmHelp/pkg/response"
	"errors"
	"net/http"
)

var (
	ErrValidationFailed = response.NewError(http.StatusBadRequest, "validation failed")

	ErrEmptyMessage        = errors.New("message is empty")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrConversationEmpty   = errors.New("no conversation history")
	ErrSynthesisFailed     = errors.New("speech synthesis failed")
	ErrSettingsUnavailable = errors.New("voice settings unavailable")
	ErrInternalServerError = errors.New("internal server error")
)
