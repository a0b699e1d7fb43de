package extract

// Package extract reads the embedded text layer of a PDF document
// (via github.com/ledongthuc/pdf) and returns it page-ordered. Scanned
// image-only documents have no text layer and fail with ExtractionError.
