package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pdfget/pdf-audiobook/internal/model"
	"github.com/pdfget/pdf-audiobook/internal/tts"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(path string) (string, error) {
	return f.text, f.err
}

type fakeSynth struct {
	maxLen int
	err    error
	block  bool

	mu     sync.Mutex
	chunks []string
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	f.chunks = append(f.chunks, text)
	f.mu.Unlock()
	return []byte(text), nil
}

func (f *fakeSynth) MaxTextLength() int {
	if f.maxLen > 0 {
		return f.maxLen
	}
	return 200
}

func (f *fakeSynth) Chunks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.chunks...)
}

type fakeProcessor struct {
	err     error
	release chan struct{} // when set, Process blocks until closed

	mu       sync.Mutex
	segments [][]byte
	speed    float64
}

func (f *fakeProcessor) Process(ctx context.Context, segments [][]byte, speed float64, outputPath string, onProgress func(float64)) error {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.err != nil {
		return f.err
	}

	f.mu.Lock()
	f.segments = segments
	f.speed = speed
	f.mu.Unlock()

	if err := os.WriteFile(outputPath, []byte("mp3"), 0644); err != nil {
		return err
	}
	if onProgress != nil {
		onProgress(1.0)
	}
	return nil
}

func waitForStatus(t *testing.T, svc *Service, taskID string, want model.TaskStatus) *model.ConversionTask {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		task, ok := svc.GetTask(taskID)
		if ok {
			svc.tasksMutex.RLock()
			status := task.Status
			svc.tasksMutex.RUnlock()
			if status == want {
				return task
			}
			if status.IsFinished() && !want.IsFinished() {
				t.Fatalf("Task finished with %s while waiting for %s (err: %s)", status, want, task.LastError)
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for status %s", want)
	return nil
}

func TestAddTask_Validation(t *testing.T) {
	svc := NewService(&fakeExtractor{}, &fakeSynth{}, &fakeProcessor{})

	if _, err := svc.AddTask(model.ConversionRequest{Options: model.DefaultOptions()}); err == nil {
		t.Error("Expected error for empty request")
	}

	if _, err := svc.AddTask(model.ConversionRequest{
		PDFPath: "/no/such/book.pdf",
		Options: model.DefaultOptions(),
	}); err == nil {
		t.Error("Expected error for missing PDF")
	}

	_, err := svc.AddTask(model.ConversionRequest{
		Text:    "hello",
		Options: model.Options{Language: "xx-ZZ", Speed: 1.0},
	})
	var langErr *tts.UnsupportedLanguageError
	if !errors.As(err, &langErr) {
		t.Errorf("Expected UnsupportedLanguageError, got %T: %v", err, err)
	}

	if _, err := svc.AddTask(model.ConversionRequest{
		Text:    "hello",
		Options: model.Options{Language: "en", Speed: 3.0},
	}); err == nil || !strings.Contains(err.Error(), "range") {
		t.Errorf("Expected speed range error, got: %v", err)
	}
}

func TestAddTask_TextPipelineCompletes(t *testing.T) {
	synth := &fakeSynth{}
	proc := &fakeProcessor{}
	svc := NewService(&fakeExtractor{}, synth, proc)

	outPath := filepath.Join(t.TempDir(), "audiobook.mp3")
	task, err := svc.AddTask(model.ConversionRequest{
		Text:       "Hello world. This is a test.",
		OutputPath: outPath,
		Options:    model.Options{Language: "en", Speed: 1.0},
	})
	if err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}

	done := waitForStatus(t, svc, task.ID, model.TaskStatusCompleted)

	if done.Progress != 1.0 || done.Percent != 100 {
		t.Errorf("Expected full progress, got %v / %d%%", done.Progress, done.Percent)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("Expected artifact at %s: %v", outPath, err)
	}

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.segments) != 1 {
		t.Errorf("Expected 1 segment, got %d", len(proc.segments))
	}
	if proc.speed != 1.0 {
		t.Errorf("Expected speed 1.0, got %v", proc.speed)
	}
}

func TestAddTask_PDFPipelineExtractsAndCleans(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "book.pdf")
	if err := os.WriteFile(pdfPath, []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}

	synth := &fakeSynth{}
	svc := NewService(&fakeExtractor{text: "Raw   extracted\n\ntext. Page 3"}, synth, &fakeProcessor{})

	outPath := filepath.Join(t.TempDir(), "audiobook.mp3")
	task, err := svc.AddTask(model.ConversionRequest{
		PDFPath:    pdfPath,
		OutputPath: outPath,
		Options:    model.Options{Language: "en", Speed: 1.0},
	})
	if err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}

	done := waitForStatus(t, svc, task.ID, model.TaskStatusCompleted)
	if done.CleanedText != "Raw extracted text." {
		t.Errorf("Expected cleaned text, got %q", done.CleanedText)
	}
}

func TestAddTask_ChunkOrderPreserved(t *testing.T) {
	synth := &fakeSynth{maxLen: 12}
	svc := NewService(&fakeExtractor{}, synth, &fakeProcessor{})

	text := "One. Two. Three. Four."
	task, err := svc.AddTask(model.ConversionRequest{
		Text:       text,
		OutputPath: filepath.Join(t.TempDir(), "audiobook.mp3"),
		Options:    model.Options{Language: "en", Speed: 1.0},
	})
	if err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}

	done := waitForStatus(t, svc, task.ID, model.TaskStatusCompleted)

	chunks := synth.Chunks()
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	if rejoined := strings.Join(chunks, " "); rejoined != text {
		t.Errorf("Chunk order/content not preserved: %q", rejoined)
	}
	if done.ChunksTotal != len(chunks) || done.ChunksDone != len(chunks) {
		t.Errorf("Expected chunk counters %d/%d, got %d/%d",
			len(chunks), len(chunks), done.ChunksDone, done.ChunksTotal)
	}
}

func TestAddTask_ExtractionErrorFailsTask(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "scan.pdf")
	if err := os.WriteFile(pdfPath, []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}

	extractErr := errors.New("no extractable text")
	outPath := filepath.Join(t.TempDir(), "audiobook.mp3")
	svc := NewService(&fakeExtractor{err: extractErr}, &fakeSynth{}, &fakeProcessor{})

	task, err := svc.AddTask(model.ConversionRequest{
		PDFPath:    pdfPath,
		OutputPath: outPath,
		Options:    model.Options{Language: "en", Speed: 1.0},
	})
	if err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}

	failed := waitForStatus(t, svc, task.ID, model.TaskStatusError)
	if !strings.Contains(failed.LastError, "no extractable text") {
		t.Errorf("Expected extraction error message, got %q", failed.LastError)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("Expected no artifact after failed extraction")
	}
}

func TestAddTask_SynthesisErrorFailsTask(t *testing.T) {
	synthErr := &tts.NetworkError{Err: errors.New("connection refused")}
	outPath := filepath.Join(t.TempDir(), "audiobook.mp3")
	svc := NewService(&fakeExtractor{}, &fakeSynth{err: synthErr}, &fakeProcessor{})

	task, err := svc.AddTask(model.ConversionRequest{
		Text:       "hello",
		OutputPath: outPath,
		Options:    model.Options{Language: "en", Speed: 1.0},
	})
	if err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}

	failed := waitForStatus(t, svc, task.ID, model.TaskStatusError)
	if !strings.Contains(failed.LastError, "connection refused") {
		t.Errorf("Expected network error message, got %q", failed.LastError)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("Expected no artifact after failed synthesis")
	}
}

func TestAddTask_EmptyExtractedTextFailsBeforeSynthesis(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "empty.pdf")
	if err := os.WriteFile(pdfPath, []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}

	synth := &fakeSynth{}
	svc := NewService(&fakeExtractor{text: "   "}, synth, &fakeProcessor{})

	task, err := svc.AddTask(model.ConversionRequest{
		PDFPath:    pdfPath,
		OutputPath: filepath.Join(t.TempDir(), "audiobook.mp3"),
		Options:    model.Options{Language: "en", Speed: 1.0},
	})
	if err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}

	failed := waitForStatus(t, svc, task.ID, model.TaskStatusError)
	if !strings.Contains(failed.LastError, "empty") {
		t.Errorf("Expected empty-text rejection, got %q", failed.LastError)
	}
	if len(synth.Chunks()) != 0 {
		t.Error("Expected no synthesis calls for empty text")
	}
}

func TestAddTask_DuplicateOutputRejected(t *testing.T) {
	release := make(chan struct{})
	proc := &fakeProcessor{release: release}
	svc := NewService(&fakeExtractor{}, &fakeSynth{}, proc)

	outPath := filepath.Join(t.TempDir(), "audiobook.mp3")
	req := model.ConversionRequest{
		Text:       "hello world",
		OutputPath: outPath,
		Options:    model.Options{Language: "en", Speed: 1.0},
	}

	task, err := svc.AddTask(req)
	if err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}

	if _, err := svc.AddTask(req); err == nil || !strings.Contains(err.Error(), "already in progress") {
		t.Errorf("Expected duplicate-output rejection, got: %v", err)
	}

	close(release)
	waitForStatus(t, svc, task.ID, model.TaskStatusCompleted)
}

func TestStopTask(t *testing.T) {
	svc := NewService(&fakeExtractor{}, &fakeSynth{block: true}, &fakeProcessor{})

	task, err := svc.AddTask(model.ConversionRequest{
		Text:       "hello world",
		OutputPath: filepath.Join(t.TempDir(), "audiobook.mp3"),
		Options:    model.Options{Language: "en", Speed: 1.0},
	})
	if err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}

	waitForStatus(t, svc, task.ID, model.TaskStatusSynthesizing)

	if err := svc.StopTask(task.ID); err != nil {
		t.Fatalf("StopTask returned error: %v", err)
	}

	stopped, _ := svc.GetTask(task.ID)
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		svc.tasksMutex.RLock()
		status := stopped.Status
		svc.tasksMutex.RUnlock()
		if status == model.TaskStatusStopped {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timed out waiting for Stopped status")
}

func TestStopTask_Errors(t *testing.T) {
	svc := NewService(&fakeExtractor{}, &fakeSynth{}, &fakeProcessor{})

	if err := svc.StopTask("missing-id"); err == nil {
		t.Error("Expected error for unknown task")
	}

	task, err := svc.AddTask(model.ConversionRequest{
		Text:       "hello",
		OutputPath: filepath.Join(t.TempDir(), "audiobook.mp3"),
		Options:    model.Options{Language: "en", Speed: 1.0},
	})
	if err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}
	waitForStatus(t, svc, task.ID, model.TaskStatusCompleted)

	if err := svc.StopTask(task.ID); err == nil {
		t.Error("Expected error for finished task")
	}
}

func TestPreview(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "book.pdf")
	if err := os.WriteFile(pdfPath, []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(&fakeExtractor{text: "Hello   world\nPage 1"}, &fakeSynth{}, &fakeProcessor{})

	task, err := svc.Preview(pdfPath)
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}

	held := waitForStatus(t, svc, task.ID, model.TaskStatusAwaitingEdit)
	if held.CleanedText != "Hello world" {
		t.Errorf("Expected cleaned preview text, got %q", held.CleanedText)
	}
}
