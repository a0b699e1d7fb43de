package convert

import (
	"context"

	"github.com/pdfget/pdf-audiobook/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	AddTask(req model.ConversionRequest) (*model.ConversionTask, error)
	Preview(pdfPath string) (*model.ConversionTask, error)
	GetTask(id string) (*model.ConversionTask, bool)
	GetAllTasks() []*model.ConversionTask
	StopTask(id string) error
}

// TextExtractor reads the source document and returns its raw text.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// ExtractorFunc adapts a plain function to TextExtractor
type ExtractorFunc func(path string) (string, error)

// Extract calls the wrapped function
func (f ExtractorFunc) Extract(path string) (string, error) {
	return f(path)
}

// AudioProcessor concatenates segments, applies the speed multiplier, and
// writes the final artifact.
type AudioProcessor interface {
	Process(ctx context.Context, segments [][]byte, speed float64, outputPath string, onProgress func(float64)) error
}
