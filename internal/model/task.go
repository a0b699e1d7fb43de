package model

import (
	"fmt"
	"strings"
	"time"
)

// Speed multiplier bounds supported by the audio post-processor.
const (
	MinSpeed = 0.5
	MaxSpeed = 2.0

	DefaultSpeed    = 1.0
	DefaultLanguage = "en"

	// DefaultOutputFile is written to the working directory unless the user
	// picks another destination.
	DefaultOutputFile = "audiobook.mp3"
)

// Options holds the user-facing conversion options: synthesis language,
// playback speed multiplier, and whether to auto-play the result.
type Options struct {
	Language  string
	Speed     float64
	PlayAfter bool
}

// DefaultOptions returns options matching a plain English conversion.
func DefaultOptions() Options {
	return Options{
		Language:  DefaultLanguage,
		Speed:     DefaultSpeed,
		PlayAfter: false,
	}
}

// SpeedInRange reports whether the speed multiplier is within the supported range.
func (o Options) SpeedInRange() bool {
	return o.Speed >= MinSpeed && o.Speed <= MaxSpeed
}

// ConversionRequest describes one conversion. When Text is non-empty the
// pipeline skips extraction/cleaning and synthesizes the given (possibly
// user-edited) text directly; otherwise PDFPath is extracted first.
type ConversionRequest struct {
	PDFPath    string
	Text       string
	OutputPath string
	Options    Options
}

// ConversionTask represents a single PDF-to-audiobook conversion
type ConversionTask struct {
	ID          string
	PDFPath     string
	OutputPath  string
	Options     Options
	Status      TaskStatus
	Progress    float64 // 0.0 to 1.0
	Percent     int     // 0 to 100
	ChunksTotal int     // number of TTS chunks, 0 until synthesis starts
	ChunksDone  int
	CleanedText string  // available once cleaning finished
	LastError   string  // last error message if any
	StartedAt   time.Time
	FinishedAt  time.Time
}

// GetDisplayTitle returns the source filename, or output filename as fallback
func (ct *ConversionTask) GetDisplayTitle() string {
	path := ct.PDFPath
	if path == "" {
		path = ct.OutputPath
	}
	if path == "" {
		return ""
	}

	// Extract just the filename without path (support both / and \ separators)
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return path
	}
	filename := parts[len(parts)-1]
	// Remove file extension for cleaner display
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		filename = filename[:idx]
	}
	return filename
}

// GetChunkProgressString returns "n/m" for the synthesis stage, or "—" before it
func (ct *ConversionTask) GetChunkProgressString() string {
	if ct.ChunksTotal <= 0 {
		return "—"
	}
	return fmt.Sprintf("%d/%d", ct.ChunksDone, ct.ChunksTotal)
}
