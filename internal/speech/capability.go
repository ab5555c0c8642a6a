package speech

import (
	"strings"

	"weather-chatbot/client/internal/model"
)

// Browser names reported by DetectCapability.
const (
	BrowserChrome  = "Chrome"
	BrowserEdge    = "Edge"
	BrowserSafari  = "Safari"
	BrowserFirefox = "Firefox"
	BrowserOpera   = "Opera"
	BrowserUnknown = "Unknown"
)

// Capability describes whether speech recognition can be used on the
// platform the UI shell runs on.
type Capability struct {
	Supported bool   `json:"supported"`
	Browser   string `json:"browser"`
}

// DetectBrowser classifies a user agent string.
func DetectBrowser(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Edg"):
		return BrowserEdge
	case strings.Contains(userAgent, "OPR") || strings.Contains(userAgent, "Opera"):
		return BrowserOpera
	case strings.Contains(userAgent, "Chrome"):
		return BrowserChrome
	case strings.Contains(userAgent, "Safari"):
		return BrowserSafari
	case strings.Contains(userAgent, "Firefox"):
		return BrowserFirefox
	}
	return BrowserUnknown
}

// DetectCapability combines the browser with whether the recognition API is
// present. Firefox exposes a partial API that never delivers results, so it is
// always reported unsupported.
func DetectCapability(userAgent string, recognitionAvailable bool) Capability {
	browser := DetectBrowser(userAgent)
	return Capability{
		Supported: recognitionAvailable && browser != BrowserFirefox,
		Browser:   browser,
	}
}

// LocaleFor maps a UI language to the recognition/synthesis locale.
func LocaleFor(lang model.Language) string {
	if lang == model.LanguageJapanese {
		return "ja-JP"
	}
	return "en-US"
}
