package nlp

// Language is the closed set of languages the voice assistant understands.
type Language string

const (
	LanguageEN Language = "en"
	LanguageHI Language = "hi"
)

var Languages = []Language{LanguageEN, LanguageHI}

func (l Language) Valid() bool {
	return l == LanguageEN || l == LanguageHI
}

// Intent is the closed set of user goals the parser can produce.
type Intent string

const (
	IntentNavigateHome          Intent = "navigate_home"
	IntentNavigateWeather       Intent = "navigate_weather"
	IntentNavigateDisease       Intent = "navigate_disease"
	IntentNavigateAPMC          Intent = "navigate_apmc"
	IntentShowHelp              Intent = "show_help"
	IntentQueryCropPrice        Intent = "query_crop_price"
	IntentQueryWeatherTime      Intent = "query_weather_time"
	IntentQueryDiseaseTreatment Intent = "query_disease_treatment"
	IntentComparePrices         Intent = "compare_prices"
	IntentReadAlerts            Intent = "read_alerts"
	IntentBestAPMC              Intent = "best_apmc"
	IntentUnknown               Intent = "unknown"
)

var Intents = []Intent{
	IntentNavigateHome,
	IntentNavigateWeather,
	IntentNavigateDisease,
	IntentNavigateAPMC,
	IntentShowHelp,
	IntentQueryCropPrice,
	IntentQueryWeatherTime,
	IntentQueryDiseaseTreatment,
	IntentComparePrices,
	IntentReadAlerts,
	IntentBestAPMC,
	IntentUnknown,
}

// Action is the directive a parse or conversation turn hands to the caller.
type Action string

const (
	ActionNavigate Action = "navigate"
	ActionSpeak    Action = "speak"
	ActionShowHelp Action = "show_help"
	ActionConfirm  Action = "confirm"
	ActionNone     Action = "none"
)

var Actions = []Action{ActionNavigate, ActionSpeak, ActionShowHelp, ActionConfirm, ActionNone}

// Entities holds everything extracted from a single utterance. Crops and
// locations are canonical English names; diseases keep the surface form
// they matched in. All lists are ordered by discovery and deduplicated.
type Entities struct {
	Crops     []string `json:"crops"`
	Locations []string `json:"locations"`
	TimeRef   string   `json:"time_ref,omitempty"`
	Diseases  []string `json:"diseases"`
}

func (e Entities) Empty() bool {
	return len(e.Crops) == 0 && len(e.Locations) == 0 && e.TimeRef == "" && len(e.Diseases) == 0
}

// ParseResult is the outcome of matching one utterance against the lexicons.
type ParseResult struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Route      string   `json:"route,omitempty"`
	Response   string   `json:"response"`
	Entities   Entities `json:"entities"`
}

const (
	// ConfidenceFloor collapses weaker matches to IntentUnknown while
	// preserving the numeric score.
	ConfidenceFloor = 0.5

	// HighConfidenceCeiling short-circuits the advanced pattern pass when a
	// basic keyword already matched this well.
	HighConfidenceCeiling = 0.8

	// WildcardMatchScore is awarded when a ".*" pattern matches as a regex.
	WildcardMatchScore = 0.85
)
