package conversation

import (
	"fmt"
	"testing"

	"FarmHelp/pkg/nlp"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewEngine(logger, NewMemoryStore(), "voice:chat:test", nlp.LanguageEN)
}

func TestEngine_DirectNavigation(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Process("weather", nlp.LanguageEN)

	assert.Equal(t, nlp.IntentNavigateWeather, result.Intent)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, "/weather", result.Route)
	assert.Equal(t, nlp.ActionNavigate, result.Action)
	assert.Equal(t, StateIdle, result.State)

	messages := engine.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, RoleAssistant, messages[1].Role)
	assert.Equal(t, "Opening weather forecast.", messages[1].Text)
}

func TestEngine_ShowHelp(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Process("help", nlp.LanguageEN)

	assert.Equal(t, nlp.IntentShowHelp, result.Intent)
	assert.Equal(t, nlp.ActionShowHelp, result.Action)
	assert.Empty(t, result.Route)
}

func TestEngine_SlotFillingCrop(t *testing.T) {
	engine := newTestEngine(t)

	// price query with no crop parks the intent and asks for the crop
	first := engine.Process("show prices", nlp.LanguageEN)
	assert.Equal(t, nlp.IntentQueryCropPrice, first.Intent)
	assert.Equal(t, 0.6, first.Confidence)
	assert.Equal(t, nlp.ActionSpeak, first.Action)
	assert.Equal(t, StateAwaitingCrop, first.State)
	assert.Equal(t, "Which crop would you like prices for?", first.Response)
	assert.Empty(t, first.Route)

	// the follow-up fills the slot and resumes the parked intent
	second := engine.Process("wheat", nlp.LanguageEN)
	assert.Equal(t, nlp.IntentQueryCropPrice, second.Intent)
	assert.Equal(t, 0.75, second.Confidence)
	assert.Equal(t, "/apmc", second.Route)
	assert.Equal(t, nlp.ActionNavigate, second.Action)
	assert.Equal(t, StateIdle, second.State)
	assert.Equal(t, "Showing latest mandi prices for Wheat.", second.Response)

	assert.Equal(t, "Wheat", engine.Context().Crop)
}

func TestEngine_SlotFillingLocation(t *testing.T) {
	engine := newTestEngine(t)

	first := engine.Process("compare prices", nlp.LanguageEN)
	assert.Equal(t, nlp.IntentComparePrices, first.Intent)
	assert.Equal(t, StateAwaitingLocation, first.State)
	assert.Equal(t, "Which location should I look at?", first.Response)

	second := engine.Process("Ludhiana", nlp.LanguageEN)
	assert.Equal(t, nlp.IntentComparePrices, second.Intent)
	assert.Equal(t, StateIdle, second.State)
	assert.Equal(t, nlp.ActionNavigate, second.Action)
	assert.Equal(t, "Ludhiana", engine.Context().Location)
}

func TestEngine_SlotRecoveryByPrefix(t *testing.T) {
	engine := newTestEngine(t)

	engine.Process("show prices", nlp.LanguageEN)

	// not a lexicon hit, but a 3-rune prefix of a canonical name
	result := engine.Process("whe", nlp.LanguageEN)
	assert.Equal(t, StateIdle, result.State)
	assert.Equal(t, "Wheat", engine.Context().Crop)
	assert.Equal(t, "Showing latest mandi prices for Wheat.", result.Response)
}

func TestEngine_ContextCarryOver(t *testing.T) {
	engine := newTestEngine(t)

	first := engine.Process("price of wheat in Punjab", nlp.LanguageEN)
	assert.Equal(t, nlp.IntentQueryCropPrice, first.Intent)
	assert.Equal(t, StateIdle, first.State)
	assert.Equal(t, "Wheat", engine.Context().Crop)
	assert.Equal(t, "Punjab", engine.Context().Location)

	// the crop slot carries over; only the location changes
	second := engine.Process("and in Haryana", nlp.LanguageEN)
	assert.Equal(t, nlp.IntentQueryCropPrice, second.Intent)
	assert.Equal(t, StateIdle, second.State)
	assert.Equal(t, nlp.ActionNavigate, second.Action)
	assert.Equal(t, "Showing latest mandi prices for Wheat.", second.Response)
	assert.Equal(t, "Haryana", engine.Context().Location)
}

func TestEngine_ConfirmationYes(t *testing.T) {
	engine := newTestEngine(t)
	engine.state = StateAwaitingConfirmation
	engine.pending = &pendingAction{Intent: nlp.IntentNavigateAPMC}

	result := engine.Process("yes", nlp.LanguageEN)

	assert.Equal(t, nlp.IntentNavigateAPMC, result.Intent)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, "/apmc", result.Route)
	assert.Equal(t, nlp.ActionNavigate, result.Action)
	assert.Equal(t, StateIdle, result.State)
	assert.Equal(t, "Okay, taking you there.", result.Response)
}

func TestEngine_ConfirmationNo(t *testing.T) {
	engine := newTestEngine(t)
	engine.state = StateAwaitingConfirmation
	engine.pending = &pendingAction{Intent: nlp.IntentNavigateAPMC}

	result := engine.Process("no", nlp.LanguageEN)

	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, nlp.ActionNone, result.Action)
	assert.Equal(t, StateIdle, result.State)
	assert.Equal(t, "Okay, cancelled.", result.Response)
	assert.Empty(t, result.Route)
}

func TestEngine_StrayConfirmationFromIdle(t *testing.T) {
	engine := newTestEngine(t)

	// a bare yes with nothing pending reads as a cancellation
	result := engine.Process("yes", nlp.LanguageEN)

	assert.Equal(t, nlp.IntentUnknown, result.Intent)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, nlp.ActionNone, result.Action)
	assert.Equal(t, StateIdle, result.State)
	assert.Equal(t, "Okay, cancelled.", result.Response)
}

func TestEngine_EmptyInput(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Process("   ", nlp.LanguageEN)

	assert.Equal(t, nlp.IntentUnknown, result.Intent)
	assert.Equal(t, nlp.ActionNone, result.Action)
	assert.Empty(t, engine.Messages())
}

func TestEngine_UnknownInput(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Process("xyzzy", nlp.LanguageEN)

	assert.Equal(t, nlp.IntentUnknown, result.Intent)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, nlp.ActionSpeak, result.Action)
	assert.Equal(t, StateIdle, result.State)
}

func TestEngine_HindiTurn(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Process("गेहूं का भाव", nlp.LanguageHI)

	assert.Equal(t, nlp.IntentQueryCropPrice, result.Intent)
	assert.Equal(t, "/apmc", result.Route)
	assert.Equal(t, nlp.ActionNavigate, result.Action)
	assert.Equal(t, "Wheat", engine.Context().Crop)
	assert.Equal(t, nlp.LanguageHI, engine.Language())
}

func TestEngine_PersistenceAcrossRestart(t *testing.T) {
	store := NewMemoryStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	engine := NewEngine(logger, store, "voice:chat:u1", nlp.LanguageEN)
	engine.Process("weather", nlp.LanguageEN)

	reloaded := NewEngine(logger, store, "voice:chat:u1", nlp.LanguageEN)
	messages := reloaded.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "weather", messages[0].Text)

	// slot context and state never survive a restart
	assert.Equal(t, SlotContext{}, reloaded.Context())
	assert.Equal(t, StateIdle, reloaded.State())
}

func TestEngine_PersistedTailCapped(t *testing.T) {
	store := NewMemoryStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	engine := NewEngine(logger, store, "voice:chat:u2", nlp.LanguageEN)
	for i := 0; i < MaxPersistedMessages+20; i++ {
		engine.AddAssistantMessage(fmt.Sprintf("line %d", i))
	}

	// in-memory log is unbounded
	assert.Len(t, engine.Messages(), MaxPersistedMessages+20)

	reloaded := NewEngine(logger, store, "voice:chat:u2", nlp.LanguageEN)
	messages := reloaded.Messages()
	require.Len(t, messages, MaxPersistedMessages)
	assert.Equal(t, fmt.Sprintf("line %d", 20), messages[0].Text)
}

func TestEngine_Clear(t *testing.T) {
	store := NewMemoryStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	engine := NewEngine(logger, store, "voice:chat:u3", nlp.LanguageEN)
	engine.Process("price of wheat in Punjab", nlp.LanguageEN)
	engine.Clear()

	assert.Empty(t, engine.Messages())
	assert.Equal(t, SlotContext{}, engine.Context())

	raw, err := store.Get(nil, "voice:chat:u3")
	assert.NoError(t, err)
	assert.Nil(t, raw)
}

func TestEngine_ClearContextKeepsMessages(t *testing.T) {
	engine := newTestEngine(t)
	engine.Process("price of wheat in Punjab", nlp.LanguageEN)

	engine.ClearContext()

	assert.Equal(t, SlotContext{}, engine.Context())
	assert.Equal(t, StateIdle, engine.State())
	assert.NotEmpty(t, engine.Messages())
}

func TestEngine_MessageIDsMonotonic(t *testing.T) {
	engine := newTestEngine(t)
	engine.Process("weather", nlp.LanguageEN)
	engine.Process("help", nlp.LanguageEN)

	messages := engine.Messages()
	require.Len(t, messages, 4)
	for i := 1; i < len(messages); i++ {
		assert.Less(t, messages[i-1].ID, messages[i].ID)
	}
}
