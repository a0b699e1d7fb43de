package tts

import "fmt"

// NetworkError indicates a transient connectivity problem talking to the TTS
// service. Re-invoking the conversion may succeed; the pipeline itself does
// not retry.
type NetworkError struct {
	Err error
}

// Error returns the error message
func (e *NetworkError) Error() string {
	return fmt.Sprintf("TTS request failed (check connectivity and retry): %v", e.Err)
}

// Unwrap returns the underlying error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UnsupportedLanguageError indicates the requested language is not offered by
// the TTS backend. Fatal: the user must pick a supported language.
type UnsupportedLanguageError struct {
	Code string
}

// Error returns the error message
func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("language %q is not supported; choose one of %v", e.Code, SupportedLanguages())
}
