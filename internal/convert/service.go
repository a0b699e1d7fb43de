package convert

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdfget/pdf-audiobook/internal/logging"
	"github.com/pdfget/pdf-audiobook/internal/model"
	"github.com/pdfget/pdf-audiobook/internal/textproc"
	"github.com/pdfget/pdf-audiobook/internal/tts"
)

// Task ID prefix
const TaskIDPrefix = "convert-"

// Stage progress weights. Synthesis dominates wall-clock time, so it owns
// most of the progress bar.
const (
	progressExtractDone = 0.10
	progressCleanDone   = 0.15
	progressSynthDone   = 0.80
	progressSynthSpan   = progressSynthDone - progressCleanDone
	progressPostSpan    = 1.0 - progressSynthDone
)

// Poll interval for the stop-request monitor
const stopPollInterval = 100 * time.Millisecond

// Service handles conversion operations
type Service struct {
	tasks      map[string]*model.ConversionTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.ConversionTask) // callback for UI updates

	extractor TextExtractor
	synth     tts.Synthesizer
	processor AudioProcessor
}

// NewService creates a new conversion service
func NewService(extractor TextExtractor, synth tts.Synthesizer, processor AudioProcessor) *Service {
	return &Service{
		tasks:     make(map[string]*model.ConversionTask),
		extractor: extractor,
		synth:     synth,
		processor: processor,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// AddTask validates the request and starts a conversion in the background.
// Language, speed, and input existence are checked up front so the user
// hears about fatal option mistakes before any network traffic.
func (s *Service) AddTask(req model.ConversionRequest) (*model.ConversionTask, error) {
	if req.Text == "" && req.PDFPath == "" {
		return nil, fmt.Errorf("nothing to convert: provide a PDF path or text")
	}
	if req.Text == "" {
		if _, err := os.Stat(req.PDFPath); err != nil {
			return nil, fmt.Errorf("PDF file not found: %s", req.PDFPath)
		}
	}
	if _, ok := tts.NormalizeLanguage(req.Options.Language); !ok {
		return nil, &tts.UnsupportedLanguageError{Code: req.Options.Language}
	}
	if !req.Options.SpeedInRange() {
		return nil, fmt.Errorf("speed %.2f outside supported range [%.1f, %.1f]",
			req.Options.Speed, model.MinSpeed, model.MaxSpeed)
	}
	if req.OutputPath == "" {
		req.OutputPath = model.DefaultOutputFile
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Two conversions racing to the same file would be last-writer-wins;
	// reject the second instead.
	for _, task := range s.tasks {
		if task.OutputPath == req.OutputPath && !task.Status.IsFinished() {
			return nil, fmt.Errorf("conversion already in progress for output: %s", req.OutputPath)
		}
	}

	task := &model.ConversionTask{
		ID:         generateTaskID(),
		PDFPath:    req.PDFPath,
		OutputPath: req.OutputPath,
		Options:    req.Options,
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}
	s.tasks[task.ID] = task

	go s.runPipeline(task, req)

	return task, nil
}

// Preview extracts and cleans the PDF in the background and holds the task at
// AwaitingEdit so the user can revise the transcript before synthesis.
func (s *Service) Preview(pdfPath string) (*model.ConversionTask, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("PDF file not found: %s", pdfPath)
	}

	task := &model.ConversionTask{
		ID:        generateTaskID(),
		PDFPath:   pdfPath,
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()

	go func() {
		text, err := s.extractAndClean(task, pdfPath)
		if err != nil {
			s.setTaskError(task, err)
			return
		}

		s.tasksMutex.Lock()
		task.CleanedText = text
		task.Status = model.TaskStatusAwaitingEdit
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
	}()

	return task, nil
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// GetAllTasks returns all tasks
func (s *Service) GetAllTasks() []*model.ConversionTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.ConversionTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// StopTask requests a running conversion to stop. The pipeline goroutine
// notices the Stopping status between stages and between chunk requests.
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if !task.Status.IsActive() {
		return fmt.Errorf("task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	s.notifyUpdate(task)
	return nil
}

// runPipeline executes extraction, cleaning, synthesis, and post-processing
// for one task.
func (s *Service) runPipeline(task *model.ConversionTask, req model.ConversionRequest) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitor for stop requests
	go func() {
		for {
			s.tasksMutex.RLock()
			status := task.Status
			s.tasksMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
			if status.IsFinished() {
				return
			}
			time.Sleep(stopPollInterval)
		}
	}()

	text := req.Text
	if text == "" {
		cleaned, err := s.extractAndClean(task, req.PDFPath)
		if err != nil {
			s.setTaskError(task, err)
			return
		}
		if s.stoppedIfCancelled(ctx, task) {
			return
		}
		text = cleaned
	} else {
		// User-edited text still gets normalized; Clean is idempotent
		text = textproc.Clean(text)
	}

	s.tasksMutex.Lock()
	task.CleanedText = text
	s.tasksMutex.Unlock()

	if text == "" {
		s.setTaskError(task, fmt.Errorf("nothing to synthesize: cleaned text is empty"))
		return
	}

	chunks := textproc.Split(text, s.synth.MaxTextLength())
	if len(chunks) == 0 {
		s.setTaskError(task, fmt.Errorf("nothing to synthesize: cleaned text is empty"))
		return
	}

	segments, err := s.synthesize(ctx, task, chunks)
	if err != nil {
		if s.stoppedIfCancelled(ctx, task) {
			return
		}
		s.setTaskError(task, err)
		return
	}

	if err := s.postProcess(ctx, task, segments); err != nil {
		if s.stoppedIfCancelled(ctx, task) {
			return
		}
		s.setTaskError(task, err)
		return
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusCompleted
	task.Progress = 1.0
	task.Percent = 100
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	logging.LogPipelineStage(task.ID, model.TaskStatusCompleted.String(),
		zap.String("output", task.OutputPath))
	s.notifyUpdate(task)
}

// extractAndClean runs the first two pipeline stages
func (s *Service) extractAndClean(task *model.ConversionTask, pdfPath string) (string, error) {
	s.setStage(task, model.TaskStatusExtracting, 0)

	raw, err := s.extractor.Extract(pdfPath)
	if err != nil {
		return "", err
	}

	s.setStage(task, model.TaskStatusCleaning, progressExtractDone)
	return textproc.Clean(raw), nil
}

// synthesize converts chunks to audio segments in order, reporting per-chunk
// progress.
func (s *Service) synthesize(ctx context.Context, task *model.ConversionTask, chunks []string) ([][]byte, error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusSynthesizing
	task.ChunksTotal = len(chunks)
	task.ChunksDone = 0
	task.Progress = progressCleanDone
	task.Percent = int(progressCleanDone * 100)
	s.tasksMutex.Unlock()
	logging.LogPipelineStage(task.ID, model.TaskStatusSynthesizing.String(),
		zap.Int("chunks", len(chunks)))
	s.notifyUpdate(task)

	segments := make([][]byte, 0, len(chunks))
	for i, chunk := range chunks {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		segment, err := s.synth.Synthesize(ctx, chunk, task.Options.Language)
		if err != nil {
			return nil, err
		}
		segments = append(segments, segment)

		s.tasksMutex.Lock()
		task.ChunksDone = i + 1
		task.Progress = progressCleanDone + progressSynthSpan*float64(i+1)/float64(len(chunks))
		task.Percent = int(task.Progress * 100)
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
	}

	return segments, nil
}

// postProcess runs the final stage
func (s *Service) postProcess(ctx context.Context, task *model.ConversionTask, segments [][]byte) error {
	s.setStage(task, model.TaskStatusPostProcessing, progressSynthDone)

	return s.processor.Process(ctx, segments, task.Options.Speed, task.OutputPath, func(p float64) {
		s.tasksMutex.Lock()
		task.Progress = progressSynthDone + progressPostSpan*p
		task.Percent = int(task.Progress * 100)
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
	})
}

// setStage transitions the task to a new active status at the given progress
func (s *Service) setStage(task *model.ConversionTask, status model.TaskStatus, progress float64) {
	s.tasksMutex.Lock()
	task.Status = status
	task.Progress = progress
	task.Percent = int(progress * 100)
	s.tasksMutex.Unlock()

	logging.LogPipelineStage(task.ID, status.String())
	s.notifyUpdate(task)
}

// stoppedIfCancelled marks the task Stopped when the context was cancelled
// by a stop request. Returns true when the task is now terminal.
func (s *Service) stoppedIfCancelled(ctx context.Context, task *model.ConversionTask) bool {
	if ctx.Err() == nil {
		return false
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStopped
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	logging.LogPipelineStage(task.ID, model.TaskStatusStopped.String())
	s.notifyUpdate(task)
	return true
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.ConversionTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	logging.LogError(err, "Conversion failed", zap.String("task_id", task.ID))
	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
