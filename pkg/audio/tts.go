package audio

import (
	"FarmHelp/pkg/conversation"
	"FarmHelp/pkg/nlp"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// TTSService is the synthesis sink: it turns a response line into spoken
// audio via ElevenLabs. The current utterance lives here, not in the
// engine; Cancel drops it.
type TTSService struct {
	apiKey  string
	voiceID string
	client  *http.Client

	mu       sync.Mutex
	speaking bool
	cancel   context.CancelFunc
}

func NewTTSService() *TTSService {
	return &TTSService{
		apiKey:  os.Getenv("ELEVENLABS_API_KEY"),
		voiceID: os.Getenv("ELEVENLABS_VOICE_ID"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

var _ conversation.SynthesisSink = (*TTSService)(nil)

// Speak synthesizes and discards the audio; the Synthesize variant returns
// the bytes for callers that stream them to the client.
func (tts *TTSService) Speak(ctx context.Context, text string, language nlp.Language, settings conversation.VoiceSettings) error {
	_, err := tts.Synthesize(ctx, text, language, settings)
	return err
}

// Synthesize returns MPEG audio for the text, honoring the speech rate and
// voice gender from the settings record.
func (tts *TTSService) Synthesize(ctx context.Context, text string, language nlp.Language, settings conversation.VoiceSettings) ([]byte, error) {
	speakCtx, cancel := context.WithCancel(ctx)

	tts.mu.Lock()
	if tts.cancel != nil {
		tts.cancel()
	}
	tts.cancel = cancel
	tts.speaking = true
	tts.mu.Unlock()

	defer func() {
		tts.mu.Lock()
		tts.speaking = false
		tts.cancel = nil
		tts.mu.Unlock()
	}()

	url := "https://api.elevenlabs.io/v1/text-to-speech/" + tts.voiceID

	requestBody := map[string]interface{}{
		"text":     text,
		"model_id": "eleven_multilingual_v2",
		"voice_settings": map[string]interface{}{
			"stability":         0.5,
			"similarity_boost":  0.8,
			"style":             0.0,
			"speed":             clampSpeed(settings.SpeechRate),
			"use_speaker_boost": true,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(speakCtx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", tts.apiKey)

	resp, err := tts.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ElevenLabs API error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Cancel drops the in-flight utterance, if any.
func (tts *TTSService) Cancel() {
	tts.mu.Lock()
	defer tts.mu.Unlock()

	if tts.cancel != nil {
		tts.cancel()
		tts.cancel = nil
	}
	tts.speaking = false
}

func (tts *TTSService) IsSpeaking() bool {
	tts.mu.Lock()
	defer tts.mu.Unlock()

	return tts.speaking
}

// ElevenLabs accepts speeds in [0.7, 1.2]; the settings range is wider.
func clampSpeed(rate float64) float64 {
	if rate < 0.7 {
		return 0.7
	}
	if rate > 1.2 {
		return 1.2
	}
	return rate
}
