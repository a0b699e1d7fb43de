package model

import "testing"

func TestGetDisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		task     ConversionTask
		expected string
	}{
		{"unix path", ConversionTask{PDFPath: "/books/war-and-peace.pdf"}, "war-and-peace"},
		{"windows path", ConversionTask{PDFPath: "C:\\books\\novel.pdf"}, "novel"},
		{"no extension", ConversionTask{PDFPath: "/books/draft"}, "draft"},
		{"falls back to output", ConversionTask{OutputPath: "/out/audiobook.mp3"}, "audiobook"},
		{"empty", ConversionTask{}, ""},
	}

	for _, test := range tests {
		if result := test.task.GetDisplayTitle(); result != test.expected {
			t.Errorf("%s: GetDisplayTitle() = %q, expected %q", test.name, result, test.expected)
		}
	}
}

func TestGetChunkProgressString(t *testing.T) {
	tests := []struct {
		done     int
		total    int
		expected string
	}{
		{0, 0, "—"},
		{0, 12, "0/12"},
		{5, 12, "5/12"},
		{12, 12, "12/12"},
	}

	for _, test := range tests {
		task := ConversionTask{ChunksDone: test.done, ChunksTotal: test.total}
		if result := task.GetChunkProgressString(); result != test.expected {
			t.Errorf("GetChunkProgressString(%d, %d) = %q, expected %q",
				test.done, test.total, result, test.expected)
		}
	}
}

func TestSpeedInRange(t *testing.T) {
	tests := []struct {
		speed    float64
		expected bool
	}{
		{0.5, true},
		{1.0, true},
		{2.0, true},
		{0.49, false},
		{2.01, false},
		{0, false},
		{-1, false},
	}

	for _, test := range tests {
		opts := Options{Speed: test.speed}
		if result := opts.SpeedInRange(); result != test.expected {
			t.Errorf("SpeedInRange(%v) = %v, expected %v", test.speed, result, test.expected)
		}
	}
}
