package nlp

import (
	"regexp"
	"strings"
)

// Score rates how well an utterance matches a literal keyword, in [0,1].
//
//	1.0  exact match
//	0.9  keyword contained in the input
//	0.7  input contained in the keyword
//	else word-overlap ratio scaled by 0.8
func Score(input, keyword string) float64 {
	input = strings.ToLower(strings.TrimSpace(input))
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	if input == "" || keyword == "" {
		return 0
	}
	if input == keyword {
		return 1.0
	}
	if strings.Contains(input, keyword) {
		return 0.9
	}
	if strings.Contains(keyword, input) {
		return 0.7
	}

	inputWords := strings.Fields(input)
	keywordWords := strings.Fields(keyword)

	matches := 0
	for _, iw := range inputWords {
		for _, kw := range keywordWords {
			if strings.Contains(iw, kw) || strings.Contains(kw, iw) {
				matches++
				break
			}
		}
	}

	longest := len(inputWords)
	if len(keywordWords) > longest {
		longest = len(keywordWords)
	}
	if longest == 0 {
		return 0
	}

	return float64(matches) / float64(longest) * 0.8
}

// ScoreAdvanced rates an utterance against a pattern that may contain the
// ".*" wildcard. A matching wildcard pattern scores WildcardMatchScore;
// everything else falls back to literal scoring on the raw pattern.
func ScoreAdvanced(input, pattern string) float64 {
	if strings.Contains(pattern, ".*") {
		if re := compileWildcard(pattern); re != nil {
			if re.MatchString(strings.ToLower(strings.TrimSpace(input))) {
				return WildcardMatchScore
			}
		}
	}
	return Score(input, pattern)
}

// compileWildcard returns the cached compiled form of a wildcard pattern,
// compiling and caching on first use. Returns nil for invalid patterns so
// callers fall back to literal scoring.
func compileWildcard(pattern string) *regexp.Regexp {
	if re, ok := wildcardCache[pattern]; ok {
		return re
	}
	re, err := regexp.Compile("(?i)" + strings.ToLower(pattern))
	if err != nil {
		wildcardCache[pattern] = nil
		return nil
	}
	wildcardCache[pattern] = re
	return re
}
