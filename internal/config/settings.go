package config

import (
	"os"

	"fyne.io/fyne/v2"

	"github.com/pdfget/pdf-audiobook/internal/model"
	"github.com/pdfget/pdf-audiobook/internal/tts"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDirectory = "output_directory"
	KeyVoiceLanguage   = "voice_language"
	KeySpeed           = "playback_speed"
	KeyPlayAfter       = "play_after_conversion"
	KeyUILanguage      = "app_language"
)

// Default values
const (
	DefaultVoiceLanguage = model.DefaultLanguage
	DefaultPlayAfter     = true
	DefaultUILanguage    = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the directory where audiobooks are written.
// Defaults to the current working directory.
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDirectory)
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		s.SetOutputDirectory(cwd)
		return cwd
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDirectory, dir)
}

// GetVoiceLanguage returns the configured synthesis language
func (s *Settings) GetVoiceLanguage() string {
	lang := s.app.Preferences().String(KeyVoiceLanguage)
	if _, ok := tts.NormalizeLanguage(lang); !ok {
		s.SetVoiceLanguage(DefaultVoiceLanguage)
		return DefaultVoiceLanguage
	}
	normalized, _ := tts.NormalizeLanguage(lang)
	return normalized
}

// SetVoiceLanguage sets the synthesis language
func (s *Settings) SetVoiceLanguage(lang string) {
	if normalized, ok := tts.NormalizeLanguage(lang); ok {
		lang = normalized
	}
	s.app.Preferences().SetString(KeyVoiceLanguage, lang)
}

// GetSpeed returns the playback speed multiplier, clamped to the supported range
func (s *Settings) GetSpeed() float64 {
	speed := s.app.Preferences().FloatWithFallback(KeySpeed, model.DefaultSpeed)
	if speed < model.MinSpeed || speed > model.MaxSpeed {
		s.SetSpeed(model.DefaultSpeed)
		return model.DefaultSpeed
	}
	return speed
}

// SetSpeed sets the playback speed multiplier
func (s *Settings) SetSpeed(speed float64) {
	if speed < model.MinSpeed {
		speed = model.MinSpeed
	}
	if speed > model.MaxSpeed {
		speed = model.MaxSpeed
	}
	s.app.Preferences().SetFloat(KeySpeed, speed)
}

// GetPlayAfter returns whether to auto-play the finished audiobook
func (s *Settings) GetPlayAfter() bool {
	return s.app.Preferences().BoolWithFallback(KeyPlayAfter, DefaultPlayAfter)
}

// SetPlayAfter sets whether to auto-play the finished audiobook
func (s *Settings) SetPlayAfter(play bool) {
	s.app.Preferences().SetBool(KeyPlayAfter, play)
}

// GetUILanguage returns the configured interface language
func (s *Settings) GetUILanguage() string {
	lang := s.app.Preferences().String(KeyUILanguage)
	if lang == "" {
		s.SetUILanguage(DefaultUILanguage)
		return DefaultUILanguage
	}
	return lang
}

// SetUILanguage sets the interface language
func (s *Settings) SetUILanguage(lang string) {
	s.app.Preferences().SetString(KeyUILanguage, lang)
}

// GetUILanguageOptions returns available interface language options
func (s *Settings) GetUILanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// DefaultConversionOptions builds pipeline options from stored preferences
func (s *Settings) DefaultConversionOptions() model.Options {
	return model.Options{
		Language:  s.GetVoiceLanguage(),
		Speed:     s.GetSpeed(),
		PlayAfter: s.GetPlayAfter(),
	}
}
