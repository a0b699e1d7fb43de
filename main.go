package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/pdfget/pdf-audiobook/internal/audio"
	"github.com/pdfget/pdf-audiobook/internal/config"
	"github.com/pdfget/pdf-audiobook/internal/convert"
	"github.com/pdfget/pdf-audiobook/internal/extract"
	"github.com/pdfget/pdf-audiobook/internal/logging"
	"github.com/pdfget/pdf-audiobook/internal/platform"
	"github.com/pdfget/pdf-audiobook/internal/tts"
	"github.com/pdfget/pdf-audiobook/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.pdfget.pdf-audiobook"
	AppName = "PDF Audiobook"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	// Log version information
	fmt.Printf("PDF Audiobook v%s starting...\n", version)

	if err := logging.Initialize(); err != nil {
		fmt.Printf("failed to initialize logging: %v\n", err)
	}
	defer logging.Sync()

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		fmt.Printf("failed to ensure output dir: %v\n", err)
	}

	processor, err := audio.NewProcessor()
	if err != nil {
		// The UI warns about the missing ffmpeg; conversions will fail
		// with a clear error until it is installed.
		fmt.Printf("audio processing unavailable: %v\n", err)
		processor = audio.NewProcessorWithPaths("ffmpeg", "")
	}

	convertSvc := convert.NewService(
		convert.ExtractorFunc(extract.Extract),
		tts.NewGoogleSynthesizer(),
		processor,
	)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, convertSvc)

	// Show and run
	myWindow.ShowAndRun()
}
