package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pdfget/pdf-audiobook/internal/audio"
	"github.com/pdfget/pdf-audiobook/internal/extract"
	"github.com/pdfget/pdf-audiobook/internal/logging"
	"github.com/pdfget/pdf-audiobook/internal/model"
	"github.com/pdfget/pdf-audiobook/internal/platform"
	"github.com/pdfget/pdf-audiobook/internal/textproc"
	"github.com/pdfget/pdf-audiobook/internal/tts"
)

// Exit codes by failure stage.
const (
	exitOK             = 0
	exitUsage          = 1
	exitExtraction     = 2
	exitSynthesis      = 3
	exitPostProcessing = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env for LOG_LEVEL, LOG_FORMAT and friends
	_ = godotenv.Load()

	output := flag.String("o", "", "output MP3 path (default: audiobook.mp3 in the working directory)")
	language := flag.String("lang", model.DefaultLanguage, "voice language code (e.g. en, es, zh-CN)")
	speed := flag.Float64("speed", model.DefaultSpeed, "playback speed multiplier (0.5-2.0)")
	play := flag.Bool("play", false, "open the audiobook with the default player when done")
	listLangs := flag.Bool("languages", false, "list supported voice languages and exit")
	flag.Usage = usage
	flag.Parse()

	if *listLangs {
		for _, code := range tts.SupportedLanguages() {
			fmt.Printf("%-8s %s\n", code, tts.LanguageName(code))
		}
		return exitOK
	}

	if flag.NArg() != 1 {
		usage()
		return exitUsage
	}
	pdfPath := flag.Arg(0)

	lang, ok := tts.NormalizeLanguage(*language)
	if !ok {
		fmt.Fprintf(os.Stderr, "unsupported language %q (use -languages to list supported codes)\n", *language)
		return exitUsage
	}

	opts := model.Options{Language: lang, Speed: *speed, PlayAfter: *play}
	if !opts.SpeedInRange() {
		fmt.Fprintf(os.Stderr, "speed %.2f out of range [%.1f, %.1f]\n", *speed, model.MinSpeed, model.MaxSpeed)
		return exitUsage
	}

	outputPath := resolveOutputPath(*output)

	if err := logging.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging init failed: %v\n", err)
	}
	defer logging.Sync()

	processor, err := audio.NewProcessor()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitPostProcessing
	}

	// Ctrl-C cancels synthesis and post-processing cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := convert(ctx, pdfPath, outputPath, opts, processor); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}

	fmt.Printf("audiobook saved: %s\n", outputPath)

	if opts.PlayAfter {
		if err := platform.OpenFileWithDefaultApp(outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open player: %v\n", err)
		}
	}
	return exitOK
}

// resolveOutputPath returns the -o flag value, or the default artifact name
// in the working directory when the flag is unset.
func resolveOutputPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return model.DefaultOutputFile
}

// convert runs the full pipeline: extract, clean, chunk, synthesize, encode.
func convert(ctx context.Context, pdfPath, outputPath string, opts model.Options, processor *audio.Processor) error {
	fmt.Fprintf(os.Stderr, "extracting text from %s\n", pdfPath)
	raw, err := extract.Extract(pdfPath)
	if err != nil {
		return err
	}

	text := textproc.Clean(raw)
	if text == "" {
		return &extract.ExtractionError{Path: pdfPath, Err: extract.ErrNoText}
	}

	synth := tts.NewGoogleSynthesizer()
	chunks := textproc.Split(text, synth.MaxTextLength())
	fmt.Fprintf(os.Stderr, "synthesizing %d chunks (%s)\n", len(chunks), opts.Language)

	segments := make([][]byte, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		segment, err := synth.Synthesize(ctx, chunk, opts.Language)
		if err != nil {
			return err
		}
		segments = append(segments, segment)
		fmt.Fprintf(os.Stderr, "\rchunk %d/%d", i+1, len(chunks))
	}
	fmt.Fprintln(os.Stderr)

	fmt.Fprintf(os.Stderr, "encoding %s (speed %.1fx)\n", outputPath, opts.Speed)
	err = processor.Process(ctx, segments, opts.Speed, outputPath, func(p float64) {
		fmt.Fprintf(os.Stderr, "\rencoding %3.0f%%", p*100)
	})
	fmt.Fprintln(os.Stderr)
	return err
}

// exitCode maps a pipeline error to its stage-specific exit code.
func exitCode(err error) int {
	var extractErr *extract.ExtractionError
	var netErr *tts.NetworkError
	var langErr *tts.UnsupportedLanguageError
	var procErr *audio.ProcessingError

	switch {
	case errors.As(err, &extractErr):
		return exitExtraction
	case errors.As(err, &langErr):
		return exitUsage
	case errors.As(err, &netErr):
		return exitSynthesis
	case errors.As(err, &procErr):
		return exitPostProcessing
	case errors.Is(err, context.Canceled):
		return exitSynthesis
	default:
		return exitSynthesis
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <document.pdf>

Converts a PDF document into an MP3 audiobook using cloud text-to-speech
and ffmpeg. Requires ffmpeg on PATH.

Flags:
`, filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}
