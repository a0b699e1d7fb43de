package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/pdfget/pdf-audiobook/internal/config"
	"github.com/pdfget/pdf-audiobook/internal/model"
	"github.com/pdfget/pdf-audiobook/internal/tts"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	outputDirEntry *widget.Entry
	voiceSelect    *widget.Select
	speedEntry     *widget.Entry
	playAfterCheck *widget.Check
	languageSelect *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Output directory selection
	sd.outputDirEntry = widget.NewEntry()
	sd.outputDirEntry.SetPlaceHolder("Output directory path")

	browseDirBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	// Voice language selection
	voiceOptions := []string{}
	for _, code := range tts.SupportedLanguages() {
		voiceOptions = append(voiceOptions, code+" - "+tts.LanguageName(code))
	}
	sd.voiceSelect = widget.NewSelect(voiceOptions, nil)

	// Playback speed
	sd.speedEntry = widget.NewEntry()
	sd.speedEntry.SetPlaceHolder("0.5-2.0")

	// Play after conversion
	sd.playAfterCheck = widget.NewCheck(sd.localization.GetText(KeyPlayAfter), nil)

	// Interface language selection
	languageOptions := []string{}
	languageLabels := sd.settings.GetUILanguageOptions()
	for code := range languageLabels {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Conversion Settings"),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyOutputDirectory)+":"),
		outputDirRow,

		widget.NewLabel(sd.localization.GetText(KeyVoiceLanguage)+":"),
		sd.voiceSelect,

		widget.NewLabel(sd.localization.GetText(KeySpeed)+":"),
		sd.speedEntry,

		sd.playAfterCheck,

		widget.NewSeparator(),
		widget.NewLabel("Interface Settings"),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())

	voice := sd.settings.GetVoiceLanguage()
	sd.voiceSelect.SetSelected(voice + " - " + tts.LanguageName(voice))

	sd.speedEntry.SetText(strconv.FormatFloat(sd.settings.GetSpeed(), 'f', 1, 64))
	sd.playAfterCheck.SetChecked(sd.settings.GetPlayAfter())
	sd.languageSelect.SetSelected(sd.settings.GetUILanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Validate and save output directory
	outputDir := sd.outputDirEntry.Text
	if outputDir != "" {
		sd.settings.SetOutputDirectory(outputDir)
	}

	// Save voice language ("code - Name" format from the select)
	if sd.voiceSelect.Selected != "" {
		code := sd.voiceSelect.Selected
		if idx := strings.Index(code, " - "); idx > 0 {
			code = code[:idx]
		}
		sd.settings.SetVoiceLanguage(code)
	}

	// Validate and save playback speed
	if sd.speedEntry.Text != "" {
		if speed, err := strconv.ParseFloat(sd.speedEntry.Text, 64); err == nil && speed >= model.MinSpeed && speed <= model.MaxSpeed {
			sd.settings.SetSpeed(speed)
		}
	}

	// Save play-after preference
	sd.settings.SetPlayAfter(sd.playAfterCheck.Checked)

	// Save interface language
	if sd.languageSelect.Selected != "" {
		sd.settings.SetUILanguage(sd.languageSelect.Selected)
	}

	// Show confirmation
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
