package speech

import (
	"strings"

	"weather-chatbot/client/internal/model"
)

// Name fragments of voices that are female on the common platforms
// (Windows, macOS, Chrome, Azure).
var femaleVoicePatterns = []string{
	"female",
	"woman",
	"google us english",
	"google 日本語",
	"zira",
	"samantha",
	"eva",
	"kyoko",
	"haruka",
	"ayumi",
	"sayaka",
	"nanami",
}

var qualityVoicePatterns = []string{"natural", "premium", "enhanced"}

func containsAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func isFemaleVoice(v Voice) bool  { return containsAny(v.Name, femaleVoicePatterns) }
func isQualityVoice(v Voice) bool { return containsAny(v.Name, qualityVoicePatterns) }

// SelectVoice picks the best voice for lang. Preference order: female and
// high quality, female, high quality, any voice of the language. It returns
// nil when nothing matches, leaving the platform default in charge.
func SelectVoice(voices []Voice, lang model.Language) *Voice {
	prefix := string(model.LanguageEnglish)
	if lang == model.LanguageJapanese {
		prefix = string(model.LanguageJapanese)
	}

	var matching []Voice
	for _, v := range voices {
		if strings.HasPrefix(strings.ToLower(v.Lang), prefix) {
			matching = append(matching, v)
		}
	}
	if len(matching) == 0 {
		return nil
	}

	ranks := []func(Voice) bool{
		func(v Voice) bool { return isFemaleVoice(v) && isQualityVoice(v) },
		isFemaleVoice,
		isQualityVoice,
	}
	for _, rank := range ranks {
		for _, v := range matching {
			if rank(v) {
				chosen := v
				return &chosen
			}
		}
	}
	chosen := matching[0]
	return &chosen
}

// RateFor returns the speaking rate for lang. Japanese reads slightly slower.
func RateFor(lang model.Language) float64 {
	if lang == model.LanguageJapanese {
		return 0.9
	}
	return 1.0
}
