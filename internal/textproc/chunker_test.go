package textproc

import (
	"strings"
	"testing"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	chunks := Split("Hello world.", 200)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Hello world." {
		t.Errorf("Expected unchanged text, got %q", chunks[0])
	}
}

func TestSplit_Empty(t *testing.T) {
	if chunks := Split("", 200); chunks != nil {
		t.Errorf("Expected nil for empty input, got %v", chunks)
	}
	if chunks := Split("   ", 200); chunks != nil {
		t.Errorf("Expected nil for whitespace input, got %v", chunks)
	}
}

func TestSplit_SentenceBoundary(t *testing.T) {
	text := "First sentence. Second sentence is a bit longer. Third one."
	chunks := Split(text, 40)

	for i, chunk := range chunks {
		if len([]rune(chunk)) > 40 {
			t.Errorf("Chunk %d exceeds limit: %q (%d runes)", i, chunk, len([]rune(chunk)))
		}
	}

	// First chunk should end at a sentence boundary, not mid-word
	if chunks[0] != "First sentence." {
		t.Errorf("Expected split at sentence boundary, got %q", chunks[0])
	}
}

func TestSplit_WordBoundaryFallback(t *testing.T) {
	// No sentence punctuation: must fall back to word breaks
	text := "alpha beta gamma delta epsilon zeta eta theta"
	chunks := Split(text, 20)

	for i, chunk := range chunks {
		if len([]rune(chunk)) > 20 {
			t.Errorf("Chunk %d exceeds limit: %q", i, chunk)
		}
		if strings.HasPrefix(chunk, " ") || strings.HasSuffix(chunk, " ") {
			t.Errorf("Chunk %d not trimmed: %q", i, chunk)
		}
	}

	// Rejoining on spaces must reproduce the original words in order
	if rejoined := strings.Join(chunks, " "); rejoined != text {
		t.Errorf("Order/content not preserved: %q", rejoined)
	}
}

func TestSplit_HardCutForUnbrokenRun(t *testing.T) {
	text := strings.Repeat("a", 45)
	chunks := Split(text, 20)

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0] != strings.Repeat("a", 20) || chunks[2] != strings.Repeat("a", 5) {
		t.Errorf("Unexpected hard-cut chunks: %v", chunks)
	}
}

func TestSplit_CJKBoundaries(t *testing.T) {
	text := "これはテストです。二番目の文です。三番目。"
	chunks := Split(text, 10)

	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	if chunks[0] != "これはテストです。" {
		t.Errorf("Expected split at CJK sentence boundary, got %q", chunks[0])
	}
}

func TestSplit_OrderPreserved(t *testing.T) {
	text := "One. Two. Three. Four. Five. Six. Seven. Eight. Nine. Ten."
	chunks := Split(text, 15)

	rejoined := strings.Join(chunks, " ")
	if rejoined != text {
		t.Errorf("Expected order preserved, got %q", rejoined)
	}
}
