package tts

import (
	"sort"
	"strings"
)

// Languages offered by the Google Translate voice.
var supportedLanguages = map[string]string{
	"en":    "English",
	"es":    "Español",
	"fr":    "Français",
	"de":    "Deutsch",
	"it":    "Italiano",
	"pt":    "Português",
	"ru":    "Русский",
	"tr":    "Türkçe",
	"ar":    "العربية",
	"zh-cn": "中文",
	"ja":    "日本語",
	"hi":    "हिन्दी",
	"ko":    "한국어",
	"nl":    "Nederlands",
	"sv":    "Svenska",
	"pl":    "Polski",
}

// Canonical casing for codes that are not plain lowercase.
var canonicalCodes = map[string]string{
	"zh-cn": "zh-CN",
}

// NormalizeLanguage trims and canonicalizes a language code. Returns the
// canonical code and whether the backend supports it.
func NormalizeLanguage(code string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(code))
	if _, ok := supportedLanguages[key]; !ok {
		return strings.TrimSpace(code), false
	}
	if canonical, ok := canonicalCodes[key]; ok {
		return canonical, true
	}
	return key, true
}

// IsSupported reports whether the language code is supported
func IsSupported(code string) bool {
	_, ok := NormalizeLanguage(code)
	return ok
}

// SupportedLanguages returns the supported language codes in sorted order
func SupportedLanguages() []string {
	codes := make([]string, 0, len(supportedLanguages))
	for key := range supportedLanguages {
		if canonical, ok := canonicalCodes[key]; ok {
			codes = append(codes, canonical)
		} else {
			codes = append(codes, key)
		}
	}
	sort.Strings(codes)
	return codes
}

// LanguageName returns the native display name for a supported code, or the
// code itself when unknown.
func LanguageName(code string) string {
	key := strings.ToLower(strings.TrimSpace(code))
	if name, ok := supportedLanguages[key]; ok {
		return name
	}
	return code
}
