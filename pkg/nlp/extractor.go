package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ExtractEntities runs every extractor over the utterance. English matching
// is case-insensitive; Hindi matching is a substring scan over the
// NFC-normalized input. Results keep discovery order and are deduplicated.
func ExtractEntities(text string) Entities {
	return Entities{
		Crops:     ExtractCrops(text),
		Locations: ExtractLocations(text),
		TimeRef:   ExtractTimeReference(text),
		Diseases:  ExtractDiseases(text),
	}
}

// ExtractCrops returns canonical English crop names. English names are
// matched as whole words ("rice" must not fire inside "prices"); Hindi
// surface forms are substring-matched and mapped to their canonical name.
func ExtractCrops(text string) []string {
	raw := normalize(text)
	lower := strings.ToLower(raw)
	words := tokenize(lower)

	var crops []string
	seen := map[string]bool{}

	for _, name := range CropNames {
		if words[strings.ToLower(name)] && !seen[name] {
			crops = append(crops, name)
			seen[name] = true
		}
	}

	for _, hc := range hindiCrops {
		if strings.Contains(raw, hc.Surface) && !seen[hc.Canonical] {
			crops = append(crops, hc.Canonical)
			seen[hc.Canonical] = true
		}
	}

	return crops
}

// ExtractLocations returns canonical English state and city names, states
// first. Hindi hits resolve through the index of the parallel English list.
func ExtractLocations(text string) []string {
	raw := normalize(text)
	lower := strings.ToLower(raw)

	var locations []string
	seen := map[string]bool{}

	add := func(name string) {
		if !seen[name] {
			locations = append(locations, name)
			seen[name] = true
		}
	}

	for _, name := range statesEN {
		if strings.Contains(lower, strings.ToLower(name)) {
			add(name)
		}
	}
	for _, name := range citiesEN {
		if strings.Contains(lower, strings.ToLower(name)) {
			add(name)
		}
	}
	for i, surface := range statesHI {
		if strings.Contains(raw, surface) {
			add(statesEN[i])
		}
	}
	for i, surface := range citiesHI {
		if strings.Contains(raw, surface) {
			add(citiesEN[i])
		}
	}

	return locations
}

// ExtractTimeReference returns the normalized English time token, or empty.
// English phrases win over Hindi ones; within a language the first hit wins.
func ExtractTimeReference(text string) string {
	raw := normalize(text)
	lower := strings.ToLower(raw)

	for _, ref := range timeRefsEN {
		if strings.Contains(lower, ref.Surface) {
			return ref.Token
		}
	}
	for _, ref := range timeRefsHI {
		if strings.Contains(raw, ref.Surface) {
			return ref.Token
		}
	}

	return ""
}

// ExtractDiseases returns matched disease names in the surface form of the
// lexicon entry that hit, never canonicalized.
func ExtractDiseases(text string) []string {
	raw := normalize(text)
	lower := strings.ToLower(raw)

	var diseases []string
	seen := map[string]bool{}

	for _, name := range diseasesEN {
		if strings.Contains(lower, name) && !seen[name] {
			diseases = append(diseases, name)
			seen[name] = true
		}
	}
	for _, name := range diseasesHI {
		if strings.Contains(raw, name) && !seen[name] {
			diseases = append(diseases, name)
			seen[name] = true
		}
	}

	return diseases
}

// normalize folds the input to NFC so Devanagari matra sequences compare
// byte-for-byte against the lexicon tables.
func normalize(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// tokenize splits on anything that is not a letter or digit and returns a
// membership set of the resulting words.
func tokenize(lower string) map[string]bool {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]bool, len(fields))
	for _, f := range fields {
		words[f] = true
	}
	return words
}
