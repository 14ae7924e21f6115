package conversation

import (
	"FarmHelp/pkg/nlp"
	"context"
	"crypto/rand"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MaxPersistedMessages caps the rolling log tail written to the store.
// In-memory retention is unbounded until Clear.
const MaxPersistedMessages = 100

// Role of a conversation message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation log. User messages additionally
// carry the parse outcome of the turn that produced them.
type Message struct {
	ID         string        `json:"id"`
	Role       Role          `json:"role"`
	Text       string        `json:"text"`
	Timestamp  time.Time     `json:"timestamp"`
	Intent     nlp.Intent    `json:"intent,omitempty"`
	Entities   *nlp.Entities `json:"entities,omitempty"`
	Confidence float64       `json:"confidence,omitempty"`
}

// State of the conversation machine. A pending action is held exactly when
// the state is not StateIdle.
type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingCrop         State = "awaiting_crop"
	StateAwaitingLocation     State = "awaiting_location"
	StateAwaitingConfirmation State = "awaiting_confirmation"
)

var States = []State{StateIdle, StateAwaitingCrop, StateAwaitingLocation, StateAwaitingConfirmation}

// SlotContext accumulates entities across turns. Crop, location and disease
// always hold canonical English values once set.
type SlotContext struct {
	Crop       string     `json:"crop,omitempty"`
	Location   string     `json:"location,omitempty"`
	TimeRef    string     `json:"time_ref,omitempty"`
	Disease    string     `json:"disease,omitempty"`
	LastIntent nlp.Intent `json:"last_intent,omitempty"`
}

type pendingAction struct {
	Intent   nlp.Intent
	Entities nlp.Entities
}

// TurnResult is what one Process call hands back to the caller: the parse
// outcome plus the directive and the state the engine ended the turn in.
type TurnResult struct {
	nlp.ParseResult
	Action nlp.Action `json:"action"`
	State  State      `json:"state"`
}

// Engine drives one conversation: it owns the message log and slot context
// exclusively and serializes turns. Construction loads the persisted log
// tail; slot context and state always start fresh.
type Engine struct {
	mu       sync.Mutex
	log      *logrus.Logger
	store    Store
	storeKey string
	language nlp.Language
	messages []Message
	slots    SlotContext
	state    State
	pending  *pendingAction
	entropy  *ulid.MonotonicEntropy
}

// NewEngine builds an engine bound to a store key (one key per
// conversation). A nil store degrades to memory-only operation.
func NewEngine(log *logrus.Logger, store Store, storeKey string, language nlp.Language) *Engine {
	if !language.Valid() {
		language = nlp.LanguageEN
	}
	if store == nil {
		store = NewMemoryStore()
	}

	e := &Engine{
		log:      log,
		store:    store,
		storeKey: storeKey,
		language: language,
		state:    StateIdle,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
	e.loadMessages()

	return e
}

// Process runs one conversation turn. An invalid language falls back to the
// engine's current default; a valid one becomes the new default.
func (e *Engine) Process(text string, language nlp.Language) TurnResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if language.Valid() {
		e.language = language
	}
	lang := e.language

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return TurnResult{
			ParseResult: nlp.ParseResult{
				Intent:   nlp.IntentUnknown,
				Response: nlp.RenderTemplate(nlp.IntentUnknown, lang, nlp.TemplateVars{}),
			},
			Action: nlp.ActionNone,
			State:  e.state,
		}
	}

	entities := nlp.ExtractEntities(trimmed)
	e.mergeSlots(entities)

	switch e.state {
	case StateAwaitingCrop, StateAwaitingLocation:
		return e.handleFollowUp(trimmed, lang, entities)
	case StateAwaitingConfirmation:
		return e.handleConfirmation(trimmed, lang)
	}

	// Standalone yes/no takes precedence even from idle; a stray
	// confirmation is reported as a cancellation.
	if nlp.IsYesWord(trimmed) || nlp.IsNoWord(trimmed) {
		return e.handleConfirmation(trimmed, lang)
	}

	parsed := nlp.Parse(trimmed, lang)
	e.appendMessage(Message{
		Role:       RoleUser,
		Text:       trimmed,
		Intent:     parsed.Intent,
		Entities:   &parsed.Entities,
		Confidence: parsed.Confidence,
	})

	if missing, state, prompt := e.missingSlot(parsed); missing {
		return e.requestSlot(parsed, lang, state, prompt)
	}

	response := nlp.RenderTemplate(parsed.Intent, lang, e.templateVars(parsed.Entities))
	if parsed.Intent == nlp.IntentUnknown {
		response = parsed.Response
	}

	e.appendMessage(Message{Role: RoleAssistant, Text: response})
	e.slots.LastIntent = parsed.Intent
	e.persist()

	parsed.Response = response

	return TurnResult{
		ParseResult: parsed,
		Action:      actionFor(parsed.Intent, parsed.Route),
		State:       e.state,
	}
}

// AddAssistantMessage appends a system-emitted line (a greeting, a hint)
// without running the parser.
func (e *Engine) AddAssistantMessage(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.appendMessage(Message{Role: RoleAssistant, Text: text})
	e.persist()
}

// Messages returns a copy of the full in-memory log.
func (e *Engine) Messages() []Message {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// Context returns a copy of the accumulated slot context.
func (e *Engine) Context() SlotContext {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.slots
}

// State returns the current conversation state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// ClearContext resets slots and state but keeps the message log.
func (e *Engine) ClearContext() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.slots = SlotContext{}
	e.state = StateIdle
	e.pending = nil
}

// Clear drops messages and context and erases the persisted log.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.messages = nil
	e.slots = SlotContext{}
	e.state = StateIdle
	e.pending = nil

	ctx, cancel := storeContext()
	defer cancel()
	if err := e.store.Delete(ctx, e.storeKey); err != nil && e.log != nil {
		e.log.WithFields(logrus.Fields{
			"key":   e.storeKey,
			"error": err.Error(),
		}).Warn("Failed to erase persisted conversation")
	}
}

// SetLanguage updates the default language for subsequent substitutions.
func (e *Engine) SetLanguage(language nlp.Language) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if language.Valid() {
		e.language = language
	}
}

// Language returns the engine's current default language.
func (e *Engine) Language() nlp.Language {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.language
}

// handleFollowUp resumes a pending intent once the awaited slot arrives.
func (e *Engine) handleFollowUp(text string, lang nlp.Language, entities nlp.Entities) TurnResult {
	e.appendMessage(Message{Role: RoleUser, Text: text, Entities: &entities})

	intent := e.slots.LastIntent
	if e.pending != nil {
		intent = e.pending.Intent
	}
	route := nlp.RouteFor(intent)

	if e.state == StateAwaitingCrop && len(entities.Crops) == 0 {
		if crop := nlp.MatchCropName(text); crop != "" {
			e.slots.Crop = crop
		}
	}
	if e.state == StateAwaitingLocation && len(entities.Locations) == 0 {
		if location := nlp.MatchLocationName(text); location != "" {
			e.slots.Location = location
		}
	}

	response := nlp.RenderTemplate(intent, lang, e.templateVars(entities))
	e.appendMessage(Message{Role: RoleAssistant, Text: response})

	e.state = StateIdle
	e.pending = nil
	e.slots.LastIntent = intent
	e.persist()

	action := nlp.ActionSpeak
	if route != "" {
		action = nlp.ActionNavigate
	}

	return TurnResult{
		ParseResult: nlp.ParseResult{
			Intent:     intent,
			Confidence: 0.75,
			Route:      route,
			Response:   response,
			Entities:   entities,
		},
		Action: action,
		State:  e.state,
	}
}

// handleConfirmation resolves a standalone yes/no. A yes with a pending
// action navigates; everything else cancels with action none.
func (e *Engine) handleConfirmation(text string, lang nlp.Language) TurnResult {
	e.appendMessage(Message{Role: RoleUser, Text: text})

	confirmed := nlp.IsYesWord(text) && e.pending != nil

	intent := nlp.IntentUnknown
	route := ""
	response := nlp.PromptText(nlp.PromptCancelled, lang)
	action := nlp.ActionNone

	if e.pending != nil {
		intent = e.pending.Intent
	}
	if confirmed {
		route = nlp.RouteFor(intent)
		response = nlp.PromptText(nlp.PromptConfirmed, lang)
		action = nlp.ActionNavigate
	}

	e.appendMessage(Message{Role: RoleAssistant, Text: response})
	e.state = StateIdle
	e.pending = nil
	e.persist()

	return TurnResult{
		ParseResult: nlp.ParseResult{
			Intent:     intent,
			Confidence: 1.0,
			Route:      route,
			Response:   response,
		},
		Action: action,
		State:  e.state,
	}
}

// missingSlot applies the missing-info policy: crop price queries need a
// crop, price comparisons need two in-turn locations or one remembered.
func (e *Engine) missingSlot(parsed nlp.ParseResult) (bool, State, nlp.Prompt) {
	switch parsed.Intent {
	case nlp.IntentQueryCropPrice:
		if len(parsed.Entities.Crops) == 0 && e.slots.Crop == "" {
			return true, StateAwaitingCrop, nlp.PromptAskCrop
		}
	case nlp.IntentComparePrices:
		if len(parsed.Entities.Locations) < 2 && e.slots.Location == "" {
			return true, StateAwaitingLocation, nlp.PromptAskLocation
		}
	}
	return false, StateIdle, ""
}

// requestSlot parks the intent and asks the follow-up question. No
// navigation happens while a slot is being filled.
func (e *Engine) requestSlot(parsed nlp.ParseResult, lang nlp.Language, state State, prompt nlp.Prompt) TurnResult {
	e.pending = &pendingAction{Intent: parsed.Intent, Entities: parsed.Entities}
	e.state = state

	response := nlp.PromptText(prompt, lang)
	e.appendMessage(Message{Role: RoleAssistant, Text: response})
	e.slots.LastIntent = parsed.Intent
	e.persist()

	return TurnResult{
		ParseResult: nlp.ParseResult{
			Intent:     parsed.Intent,
			Confidence: 0.6,
			Response:   response,
			Entities:   parsed.Entities,
		},
		Action: nlp.ActionSpeak,
		State:  e.state,
	}
}

// mergeSlots overwrites a slot only when this turn produced a fresh value
// of the same kind.
func (e *Engine) mergeSlots(entities nlp.Entities) {
	if len(entities.Crops) > 0 {
		e.slots.Crop = entities.Crops[0]
	}
	if len(entities.Locations) > 0 {
		e.slots.Location = entities.Locations[0]
	}
	if entities.TimeRef != "" {
		e.slots.TimeRef = entities.TimeRef
	}
	if len(entities.Diseases) > 0 {
		e.slots.Disease = entities.Diseases[0]
	}
}

// templateVars resolves placeholders from this turn's entities first, then
// from the remembered slot context.
func (e *Engine) templateVars(entities nlp.Entities) nlp.TemplateVars {
	vars := nlp.TemplateVars{
		Crop:     e.slots.Crop,
		Location: e.slots.Location,
		Time:     e.slots.TimeRef,
		Disease:  e.slots.Disease,
	}
	if len(entities.Crops) > 0 {
		vars.Crop = entities.Crops[0]
	}
	if len(entities.Locations) > 0 {
		vars.Location = entities.Locations[0]
	}
	if entities.TimeRef != "" {
		vars.Time = entities.TimeRef
	}
	if len(entities.Diseases) > 0 {
		vars.Disease = entities.Diseases[0]
	}
	return vars
}

func actionFor(intent nlp.Intent, route string) nlp.Action {
	switch {
	case intent == nlp.IntentShowHelp:
		return nlp.ActionShowHelp
	case route != "":
		return nlp.ActionNavigate
	default:
		return nlp.ActionSpeak
	}
}

func (e *Engine) appendMessage(msg Message) {
	msg.ID = e.nextID()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	e.messages = append(e.messages, msg)
}

func (e *Engine) nextID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), e.entropy)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}

// loadMessages restores the persisted tail. Entries that do not match the
// message schema are dropped silently; no migration is attempted.
func (e *Engine) loadMessages() {
	ctx, cancel := storeContext()
	defer cancel()

	raw, err := e.store.Get(ctx, e.storeKey)
	if err != nil || len(raw) == 0 {
		return
	}

	var entries []jsoniter.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return
	}

	for _, entry := range entries {
		var msg Message
		if err := json.Unmarshal(entry, &msg); err != nil {
			continue
		}
		if (msg.Role != RoleUser && msg.Role != RoleAssistant) || msg.Text == "" {
			continue
		}
		e.messages = append(e.messages, msg)
	}
}

// persist writes the rolling tail, best-effort. The in-memory log stays
// authoritative on failure.
func (e *Engine) persist() {
	tail := e.messages
	if len(tail) > MaxPersistedMessages {
		tail = tail[len(tail)-MaxPersistedMessages:]
	}

	payload, err := json.Marshal(tail)
	if err != nil {
		return
	}

	ctx, cancel := storeContext()
	defer cancel()
	if err := e.store.Set(ctx, e.storeKey, payload); err != nil && e.log != nil {
		e.log.WithFields(logrus.Fields{
			"key":   e.storeKey,
			"error": err.Error(),
		}).Warn("Failed to persist conversation log")
	}
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}
