package nlp

import "strings"

// TemplateVars are the values substituted into a response template. Empty
// crop, time and disease fall back to a neutral word in the response
// language; an empty location substitutes as empty text.
type TemplateVars struct {
	Crop     string
	Location string
	Time     string
	Disease  string
}

// Parse classifies one utterance. Basic navigation keywords are tried
// first across BOTH language lexicons (utterances code-switch); the
// advanced wildcard patterns only run when no basic keyword reached
// HighConfidenceCeiling. A best score under ConfidenceFloor is surfaced as
// IntentUnknown with the numeric score preserved.
func Parse(text string, language Language) ParseResult {
	if !language.Valid() {
		language = LanguageEN
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ParseResult{
			Intent:   IntentUnknown,
			Response: RenderTemplate(IntentUnknown, language, TemplateVars{}),
			Entities: Entities{},
		}
	}

	entities := ExtractEntities(trimmed)

	bestScore := 0.0
	bestIntent := IntentUnknown
	for _, p := range basicPatterns {
		for _, lang := range Languages {
			for _, surface := range p.surfaces[lang] {
				if s := Score(trimmed, surface); s > bestScore {
					bestScore = s
					bestIntent = p.intent
				}
			}
		}
	}

	if bestScore < HighConfidenceCeiling {
		for _, p := range advancedPatterns {
			for _, lang := range Languages {
				for _, surface := range p.surfaces[lang] {
					if s := ScoreAdvanced(trimmed, surface); s > bestScore {
						bestScore = s
						bestIntent = p.intent
					}
				}
			}
		}
	}

	if bestScore < ConfidenceFloor {
		return ParseResult{
			Intent:     IntentUnknown,
			Confidence: bestScore,
			Response:   RenderTemplate(IntentUnknown, language, TemplateVars{}),
			Entities:   entities,
		}
	}

	vars := TemplateVars{
		Time: entities.TimeRef,
	}
	if len(entities.Crops) > 0 {
		vars.Crop = entities.Crops[0]
	}
	if len(entities.Locations) > 0 {
		vars.Location = entities.Locations[0]
	}
	if len(entities.Diseases) > 0 {
		vars.Disease = entities.Diseases[0]
	}

	return ParseResult{
		Intent:     bestIntent,
		Confidence: bestScore,
		Route:      RouteFor(bestIntent),
		Response:   RenderTemplate(bestIntent, language, vars),
		Entities:   entities,
	}
}

// RenderTemplate substitutes the named placeholders of an intent's response
// template in the requested language.
func RenderTemplate(intent Intent, lang Language, vars TemplateVars) string {
	byLang, ok := responseTemplates[intent]
	if !ok {
		byLang = responseTemplates[IntentUnknown]
	}
	template, ok := byLang[lang]
	if !ok {
		template = byLang[LanguageEN]
	}

	crop := vars.Crop
	if crop == "" {
		crop = neutralCrop[lang]
	}
	timeRef := vars.Time
	if timeRef == "" {
		timeRef = neutralTime[lang]
	}
	disease := vars.Disease
	if disease == "" {
		disease = neutralDisease[lang]
	}

	r := strings.NewReplacer(
		"{crop}", crop,
		"{location}", vars.Location,
		"{time}", timeRef,
		"{disease}", disease,
	)
	return r.Replace(template)
}

// IsYesWord and IsNoWord report whether an utterance is a standalone
// confirmation in either language. Matching is exact on the trimmed,
// lowercased form.
func IsYesWord(text string) bool {
	return matchConfirmation(text, yesWords)
}

func IsNoWord(text string) bool {
	return matchConfirmation(text, noWords)
}

func matchConfirmation(text string, words map[Language][]string) bool {
	t := strings.ToLower(normalize(text))
	for _, lang := range Languages {
		for _, w := range words[lang] {
			if t == strings.ToLower(w) {
				return true
			}
		}
	}
	return false
}

// MatchCropName resolves free text to a canonical crop during slot
// recovery: lexicon extraction first, then a prefix match of the collapsed
// input (three runes minimum) against the canonical names.
func MatchCropName(text string) string {
	if crops := ExtractCrops(text); len(crops) > 0 {
		return crops[0]
	}

	collapsed := strings.ToLower(strings.ReplaceAll(normalize(text), " ", ""))
	if len([]rune(collapsed)) < 3 {
		return ""
	}
	for _, name := range CropNames {
		if strings.HasPrefix(strings.ToLower(name), collapsed) {
			return name
		}
	}
	return ""
}

// MatchLocationName resolves free text to a canonical location during slot
// recovery.
func MatchLocationName(text string) string {
	if locations := ExtractLocations(text); len(locations) > 0 {
		return locations[0]
	}
	return ""
}
