package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/pdfget/pdf-audiobook/internal/config"
	"github.com/pdfget/pdf-audiobook/internal/convert"
	"github.com/pdfget/pdf-audiobook/internal/model"
	"github.com/pdfget/pdf-audiobook/internal/platform"
	"github.com/pdfget/pdf-audiobook/internal/tts"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	convertSvc   convert.Converter
	settings     *config.Settings
	localization *Localization

	// Input controls
	pdfPathEntry   *widget.Entry
	browseBtn      *widget.Button
	transcriptBox  *widget.Entry
	languageSelect *widget.Select
	speedSlider    *widget.Slider
	speedLabel     *widget.Label
	playAfterCheck *widget.Check
	convertBtn     *widget.Button
	stopBtn        *widget.Button

	// Progress display
	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// Task being previewed/converted
	currentTaskID string
	taskMutex     sync.Mutex

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, convertSvc convert.Converter) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetUILanguage())

	// Ensure the configured output directory exists
	platform.CreateDirectoryIfNotExists(settings.GetOutputDirectory())

	ui := &RootUI{
		window:       window,
		convertSvc:   convertSvc,
		settings:     settings,
		localization: localization,
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for conversion updates
	ui.convertSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()

	if !platform.FFmpegAvailable() {
		ui.showNotification(localization.GetText(KeyFFmpegMissing), false)
	}

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// Create PDF path entry with browse button
	ui.pdfPathEntry = widget.NewEntry()
	ui.pdfPathEntry.SetPlaceHolder(ui.localization.GetText(KeyPDFFile))
	ui.pdfPathEntry.OnSubmitted = func(path string) {
		ui.loadPDF(strings.TrimSpace(path))
	}

	ui.browseBtn = widget.NewButton(ui.localization.GetText(KeyBrowse), ui.onBrowseClick)

	// Create settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, settingsBtn, ui.browseBtn, ui.pdfPathEntry)

	// Create notification panel under the file row (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	// Create editable transcript area
	ui.transcriptBox = widget.NewMultiLineEntry()
	ui.transcriptBox.SetPlaceHolder(ui.localization.GetText(KeyTranscript))
	ui.transcriptBox.Wrapping = fyne.TextWrapWord

	// Create voice language selector
	voiceOptions := []string{}
	for _, code := range tts.SupportedLanguages() {
		voiceOptions = append(voiceOptions, code+" - "+tts.LanguageName(code))
	}
	ui.languageSelect = widget.NewSelect(voiceOptions, nil)
	voice := ui.settings.GetVoiceLanguage()
	ui.languageSelect.SetSelected(voice + " - " + tts.LanguageName(voice))

	// Create speed slider with live value label
	ui.speedSlider = widget.NewSlider(model.MinSpeed, model.MaxSpeed)
	ui.speedSlider.Step = 0.1
	ui.speedSlider.Value = ui.settings.GetSpeed()
	ui.speedLabel = widget.NewLabel(fmt.Sprintf(SpeedLabelFormat, ui.speedSlider.Value))
	ui.speedSlider.OnChanged = func(v float64) {
		ui.speedLabel.SetText(fmt.Sprintf(SpeedLabelFormat, v))
	}

	// Create play-after checkbox
	ui.playAfterCheck = widget.NewCheck(ui.localization.GetText(KeyPlayAfter), nil)
	ui.playAfterCheck.SetChecked(ui.settings.GetPlayAfter())

	// Create convert/stop buttons
	ui.convertBtn = widget.NewButton(ui.localization.GetText(KeyConvert), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton(ui.localization.GetText(KeyStop), ui.onStopClick)
	ui.stopBtn.Disable()

	// Create progress display
	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel(ui.localization.GetText(KeyStatusReady))

	optionsRow := container.NewBorder(nil, nil,
		container.NewHBox(
			widget.NewLabel(IconLanguage),
			ui.languageSelect,
			ui.playAfterCheck,
		),
		container.NewHBox(ui.convertBtn, ui.stopBtn),
		container.NewBorder(nil, nil, widget.NewLabel(ui.localization.GetText(KeySpeed)+":"), ui.speedLabel, ui.speedSlider),
	)

	bottomPanel := container.NewVBox(
		optionsRow,
		ui.progressBar,
		ui.statusLabel,
	)

	content := container.NewBorder(
		topCombined,      // top
		bottomPanel,      // bottom
		nil,              // left
		nil,              // right
		ui.transcriptBox, // center - editable text
	)

	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(WindowMinWidth, WindowMinHeight))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles interface language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetUILanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.pdfPathEntry.SetPlaceHolder(ui.localization.GetText(KeyPDFFile))
	ui.transcriptBox.SetPlaceHolder(ui.localization.GetText(KeyTranscript))
	ui.browseBtn.SetText(ui.localization.GetText(KeyBrowse))
	ui.convertBtn.SetText(ui.localization.GetText(KeyConvert))
	ui.stopBtn.SetText(ui.localization.GetText(KeyStop))
	ui.playAfterCheck.Text = ui.localization.GetText(KeyPlayAfter)
	ui.playAfterCheck.Refresh()
}

// onBrowseClick opens a file dialog filtered to PDF documents
func (ui *RootUI) onBrowseClick() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		ui.pdfPathEntry.SetText(path)
		ui.loadPDF(path)
	}, ui.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	fileDialog.Show()
}

// loadPDF extracts and cleans the document text in the background and fills
// the transcript area for editing.
func (ui *RootUI) loadPDF(path string) {
	if path == "" {
		return
	}

	log.Printf("Loading PDF: %s", path)
	ui.showNotification(ui.localization.GetText(KeyLoadingPDF), true)

	task, err := ui.convertSvc.Preview(path)
	if err != nil {
		ui.hideNotification()
		dialog.ShowError(err, ui.window)
		return
	}

	ui.taskMutex.Lock()
	ui.currentTaskID = task.ID
	ui.taskMutex.Unlock()
}

// onConvertClick handles the convert button click
func (ui *RootUI) onConvertClick() {
	text := strings.TrimSpace(ui.transcriptBox.Text)
	pdfPath := strings.TrimSpace(ui.pdfPathEntry.Text)

	if text == "" && pdfPath == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseLoadPDF), false)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyPleaseLoadPDF)), ui.window.Canvas())
		return
	}

	req := model.ConversionRequest{
		PDFPath:    pdfPath,
		Text:       text,
		OutputPath: filepath.Join(ui.settings.GetOutputDirectory(), model.DefaultOutputFile),
		Options: model.Options{
			Language:  ui.selectedVoiceLanguage(),
			Speed:     ui.speedSlider.Value,
			PlayAfter: ui.playAfterCheck.Checked,
		},
	}

	task, err := ui.convertSvc.AddTask(req)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	log.Printf("Conversion task added: id=%s output=%s language=%s speed=%.1f",
		task.ID, task.OutputPath, task.Options.Language, task.Options.Speed)

	ui.taskMutex.Lock()
	ui.currentTaskID = task.ID
	ui.taskMutex.Unlock()

	ui.convertBtn.Disable()
	ui.stopBtn.Enable()
	ui.progressBar.SetValue(0)
	ui.showNotification(ui.localization.GetText(KeyConversionStarted), true)
}

// onStopClick requests cancellation of the running conversion
func (ui *RootUI) onStopClick() {
	ui.taskMutex.Lock()
	taskID := ui.currentTaskID
	ui.taskMutex.Unlock()

	if taskID == "" {
		return
	}

	if err := ui.convertSvc.StopTask(taskID); err != nil {
		log.Printf("Error stopping task %s: %v", taskID, err)
		return
	}

	ui.showNotification(ui.localization.GetText(KeyStopping), true)
}

// selectedVoiceLanguage returns the language code from the "code - Name" select
func (ui *RootUI) selectedVoiceLanguage() string {
	selected := ui.languageSelect.Selected
	if idx := strings.Index(selected, " - "); idx > 0 {
		return selected[:idx]
	}
	if selected == "" {
		return ui.settings.GetVoiceLanguage()
	}
	return selected
}

// showNotification displays a message in the notification panel under the file row.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.window, ui.localization, func() {
		// Reflect saved defaults in the main controls
		voice := ui.settings.GetVoiceLanguage()
		ui.languageSelect.SetSelected(voice + " - " + tts.LanguageName(voice))
		ui.speedSlider.SetValue(ui.settings.GetSpeed())
		ui.playAfterCheck.SetChecked(ui.settings.GetPlayAfter())
	})
	sd.Show()
}

// debouncedUIUpdate prevents excessive UI updates by limiting frequency
func (ui *RootUI) debouncedUIUpdate() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false // Skip update if too soon
	}

	ui.lastUIUpdate = now
	return true
}

// onTaskUpdate handles task updates from the conversion service
func (ui *RootUI) onTaskUpdate(task *model.ConversionTask) {
	ui.taskMutex.Lock()
	isCurrent := task.ID == ui.currentTaskID
	ui.taskMutex.Unlock()

	if !isCurrent {
		return
	}

	log.Printf("Task update received: id=%s status=%s percent=%d chunks=%s",
		task.ID, task.Status, task.Percent, task.GetChunkProgressString())

	// Throttle intermediate progress updates; state transitions always pass
	if task.Status.IsActive() && task.Status != model.TaskStatusStopping && !ui.debouncedUIUpdate() {
		return
	}

	fyne.Do(func() {
		ui.progressBar.SetValue(task.Progress)
		ui.statusLabel.SetText(ui.statusText(task))

		switch task.Status {
		case model.TaskStatusAwaitingEdit:
			ui.transcriptBox.SetText(task.CleanedText)
			ui.showNotification(ui.localization.GetText(KeyTranscriptReady), false)
		case model.TaskStatusCompleted:
			ui.convertBtn.Enable()
			ui.stopBtn.Disable()
			ui.hideNotification()
			ui.onConversionCompleted(task)
		case model.TaskStatusStopped:
			ui.convertBtn.Enable()
			ui.stopBtn.Disable()
			ui.hideNotification()
		case model.TaskStatusError:
			ui.convertBtn.Enable()
			ui.stopBtn.Disable()
			ui.hideNotification()
			dialog.ShowError(fmt.Errorf("%s", task.LastError), ui.window)
		}
	})
}

// statusText builds the status line under the progress bar
func (ui *RootUI) statusText(task *model.ConversionTask) string {
	switch task.Status {
	case model.TaskStatusSynthesizing:
		return fmt.Sprintf("%s %s ("+ProgressLabelFormat+")",
			task.Status.String(), task.GetChunkProgressString(), task.Percent)
	case model.TaskStatusCompleted:
		return ui.localization.GetText(KeyConversionDone) + ": " + task.OutputPath
	case model.TaskStatusPending:
		return ui.localization.GetText(KeyStatusReady)
	default:
		return fmt.Sprintf("%s ("+ProgressLabelFormat+")", task.Status.String(), task.Percent)
	}
}

// onConversionCompleted notifies the user and optionally plays the audiobook
func (ui *RootUI) onConversionCompleted(task *model.ConversionTask) {
	title := ui.localization.GetText(KeyConversionDone)

	// Use Fyne's SendNotification
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   title,
		Content: task.OutputPath,
	})

	ui.showToastNotification(task)

	if task.Options.PlayAfter && task.OutputPath != "" {
		log.Printf("Opening completed audiobook %s with default player", task.OutputPath)
		if err := platform.OpenFileWithDefaultApp(task.OutputPath); err != nil {
			log.Printf("Error opening file %s: %v", task.OutputPath, err)
			widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
		}
	}
}

// showToastNotification shows an in-app toast notification with action buttons
func (ui *RootUI) showToastNotification(task *model.ConversionTask) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyConversionDone))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(task.GetDisplayTitle())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	openBtn := widget.NewButton("Open", func() {
		if task.OutputPath == "" {
			return
		}
		if err := platform.OpenFileWithDefaultApp(task.OutputPath); err != nil {
			widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
		}
	})
	openBtn.Importance = widget.HighImportance

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	content := container.NewVBox(
		header,
		messageLabel,
		container.NewHBox(openBtn),
	)

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

	toastPopup.Resize(toastSize)
	toastPopup.Move(toastPos)
	toastPopup.Show()

	// Auto-hide after configured time
	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(func() {
			if toastPopup != nil {
				toastPopup.Hide()
			}
		})
	}()
}
