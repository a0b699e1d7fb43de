package tts

import "testing"

func TestNormalizeLanguage_Supported(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"  pt  ", "pt"},
		{"zh-CN", "zh-CN"},
		{"zh-cn", "zh-CN"},
	}

	for _, test := range tests {
		got, ok := NormalizeLanguage(test.input)
		if !ok {
			t.Errorf("NormalizeLanguage(%q) reported unsupported", test.input)
			continue
		}
		if got != test.expected {
			t.Errorf("NormalizeLanguage(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestNormalizeLanguage_Unsupported(t *testing.T) {
	for _, code := range []string{"xx-ZZ", "", "english", "e"} {
		if _, ok := NormalizeLanguage(code); ok {
			t.Errorf("NormalizeLanguage(%q) unexpectedly supported", code)
		}
	}
}

func TestSupportedLanguages_SortedAndComplete(t *testing.T) {
	codes := SupportedLanguages()
	if len(codes) != 16 {
		t.Errorf("Expected 16 languages, got %d", len(codes))
	}

	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("Codes not sorted: %q before %q", codes[i-1], codes[i])
		}
	}

	for _, code := range codes {
		if !IsSupported(code) {
			t.Errorf("Listed code %q not reported as supported", code)
		}
	}
}

func TestLanguageName(t *testing.T) {
	if name := LanguageName("de"); name != "Deutsch" {
		t.Errorf("Expected Deutsch, got %q", name)
	}
	if name := LanguageName("xx"); name != "xx" {
		t.Errorf("Expected passthrough for unknown code, got %q", name)
	}
}
