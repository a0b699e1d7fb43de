package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError indicates the PDF could not be read or contained no
// extractable text (for example a scanned, image-only document).
type ExtractionError struct {
	Path string
	Err  error
}

// Error returns the error message
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("PDF extraction failed for %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("PDF extraction failed for %s", e.Path)
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ErrNoText is wrapped by ExtractionError when the document has an empty or
// missing text layer.
var ErrNoText = fmt.Errorf("no extractable text (document may be scanned or image-based)")

// ExtractPages reads the PDF at path and returns the text of each page in
// document order. Only the embedded text layer is read; image-only pages
// contribute nothing. Returns ExtractionError when the file is unreadable or
// no page yields any text.
func ExtractPages(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				pf := p.Font(name)
				fonts[name] = &pf
			}
		}

		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			return nil, &ExtractionError{Path: path, Err: fmt.Errorf("page %d: %w", i, pageErr)}
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	if len(pages) == 0 {
		return nil, &ExtractionError{Path: path, Err: ErrNoText}
	}
	return pages, nil
}

// Extract returns the concatenated text of all pages, one page per line block.
func Extract(path string) (string, error) {
	pages, err := ExtractPages(path)
	if err != nil {
		return "", err
	}
	return JoinPages(pages), nil
}

// JoinPages concatenates page texts preserving page order
func JoinPages(pages []string) string {
	return strings.Join(pages, "\n")
}
