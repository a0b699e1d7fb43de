package audio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfget/pdf-audiobook/internal/model"
	"github.com/pdfget/pdf-audiobook/internal/platform"
)

// FFmpeg constants for audiobook encoding
const (
	// Audio codec settings
	AudioCodec   = "libmp3lame"
	AudioBitrate = "128k"

	// Concat demuxer flags
	ConcatFormat   = "concat"
	ConcatSafeFlag = "0"

	// Output muxer. Must be explicit: the partial file carries a .part
	// extension ffmpeg cannot infer a format from.
	OutputFormat = "mp3"

	// Progress and I/O constants
	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="
	FFprobeLogLevel    = "error"
	FFprobeShowEntries = "format=duration"
	FFprobeOutput      = "csv=p=0"

	// Partial output suffix; renamed over the target only on success
	PartialSuffix = ".part"

	SegmentFilePattern = "segment-%03d.mp3"
	ConcatListFile     = "segments.txt"
)

// ProcessingError indicates the external audio tool is unavailable, the speed
// multiplier is out of range, or encoding failed. Fatal: the user must fix
// the environment or the options and re-run.
type ProcessingError struct {
	Reason string
	Err    error
}

// Error returns the error message
func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio post-processing failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("audio post-processing failed: %s", e.Reason)
}

// Unwrap returns the underlying error
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Processor concatenates synthesized MP3 segments, applies the speed
// multiplier via the atempo filter, and encodes the final audiobook with
// ffmpeg. ffprobe supplies durations for progress reporting.
type Processor struct {
	ffmpegPath  string
	ffprobePath string
}

// NewProcessor resolves ffmpeg/ffprobe and returns a ready processor.
// Returns ProcessingError naming the missing binary when resolution fails.
func NewProcessor() (*Processor, error) {
	ffmpegPath, err := platform.FindFFmpeg()
	if err != nil {
		return nil, &ProcessingError{Reason: "ffmpeg is required", Err: err}
	}

	// ffprobe usually ships alongside ffmpeg; without it progress reporting
	// degrades but processing still works.
	ffprobePath, _ := platform.FindFFprobe()

	return &Processor{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}, nil
}

// NewProcessorWithPaths creates a processor with explicit binary paths.
// Used by tests.
func NewProcessorWithPaths(ffmpegPath, ffprobePath string) *Processor {
	return &Processor{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Process writes segments in order to a temp directory, concatenates and
// re-encodes them at the given speed, and moves the result to outputPath on
// success. A failed or cancelled run never touches an existing artifact at
// outputPath. onProgress (optional) receives values in [0,1].
func (p *Processor) Process(ctx context.Context, segments [][]byte, speed float64, outputPath string, onProgress func(float64)) error {
	if speed < model.MinSpeed || speed > model.MaxSpeed {
		return &ProcessingError{Reason: fmt.Sprintf("speed %.2f outside supported range [%.1f, %.1f]",
			speed, model.MinSpeed, model.MaxSpeed)}
	}
	if len(segments) == 0 {
		return &ProcessingError{Reason: "no audio segments to process"}
	}

	workDir, err := os.MkdirTemp("", "pdf-audiobook-*")
	if err != nil {
		return &ProcessingError{Reason: "failed to create work directory", Err: err}
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	listPath, segPaths, err := writeSegments(workDir, segments)
	if err != nil {
		return &ProcessingError{Reason: "failed to write audio segments", Err: err}
	}

	// Total input duration drives percentage progress; without ffprobe the
	// callback simply is not called.
	var totalDuration float64
	if p.ffprobePath != "" {
		for _, segPath := range segPaths {
			d, probeErr := p.Duration(segPath)
			if probeErr != nil {
				totalDuration = 0
				break
			}
			totalDuration += d
		}
	}
	expectedDuration := EstimateOutputDuration(totalDuration, speed)

	partialPath := outputPath + PartialSuffix
	defer func() { _ = os.Remove(partialPath) }()

	args := p.BuildFFmpegArgs(listPath, partialPath, speed)
	cmd := exec.CommandContext(ctx, p.ffmpegPath, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &ProcessingError{Reason: "failed to create stderr pipe", Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &ProcessingError{Reason: "failed to start ffmpeg", Err: err}
	}

	go monitorProgress(stderr, expectedDuration, onProgress)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ProcessingError{Reason: "ffmpeg encoding failed", Err: err}
	}

	if err := os.Rename(partialPath, outputPath); err != nil {
		return &ProcessingError{Reason: fmt.Sprintf("failed to move result to %s (is it open in a player?)", outputPath), Err: err}
	}

	if onProgress != nil {
		onProgress(1.0)
	}
	return nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments for concat + speed +
// MP3 encode. Speed 1.0 skips the atempo filter.
func (p *Processor) BuildFFmpegArgs(listPath, outputPath string, speed float64) []string {
	args := []string{
		"-y",
		"-f", ConcatFormat,
		"-safe", ConcatSafeFlag,
		"-i", listPath,
	}

	if speed != 1.0 {
		args = append(args, "-filter:a", "atempo="+strconv.FormatFloat(speed, 'f', -1, 64))
	}

	args = append(args,
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		"-f", OutputFormat,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	)
	return args
}

// Duration returns the duration of an audio file in seconds using ffprobe
func (p *Processor) Duration(filePath string) (float64, error) {
	if p.ffprobePath == "" {
		return 0, &ProcessingError{Reason: "ffprobe is required for duration lookup"}
	}

	cmd := exec.Command(p.ffprobePath, "-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries, "-of", FFprobeOutput, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// EstimateOutputDuration returns the expected artifact length for a given
// total input duration and speed multiplier.
func EstimateOutputDuration(totalDuration, speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	return totalDuration / speed
}

// writeSegments writes each segment to the work directory in order and
// produces a concat demuxer list referencing them.
func writeSegments(workDir string, segments [][]byte) (string, []string, error) {
	var listBuilder strings.Builder
	segPaths := make([]string, 0, len(segments))

	for i, segment := range segments {
		segPath := filepath.Join(workDir, fmt.Sprintf(SegmentFilePattern, i))
		if err := os.WriteFile(segPath, segment, 0644); err != nil {
			return "", nil, err
		}
		segPaths = append(segPaths, segPath)
		fmt.Fprintf(&listBuilder, "file '%s'\n", segPath)
	}

	listPath := filepath.Join(workDir, ConcatListFile)
	if err := os.WriteFile(listPath, []byte(listBuilder.String()), 0644); err != nil {
		return "", nil, err
	}
	return listPath, segPaths, nil
}

// monitorProgress parses ffmpeg -progress output (out_time_us=N lines) and
// reports completion as a fraction of the expected output duration.
func monitorProgress(stderr io.ReadCloser, expectedDuration float64, onProgress func(float64)) {
	defer func() { _ = stderr.Close() }()

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ProgressTimePrefix) {
			continue
		}

		timeMicroseconds, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
		if err != nil {
			continue
		}

		if expectedDuration > 0 && onProgress != nil {
			progress := (float64(timeMicroseconds) / 1e6) / expectedDuration
			if progress > 1.0 {
				progress = 1.0
			}
			onProgress(progress)
		}
	}
}
