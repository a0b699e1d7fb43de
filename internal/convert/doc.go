package convert

// Package convert implements the PDF-to-audiobook pipeline: extraction,
// cleaning, chunked speech synthesis, and audio post-processing. It manages
// task lifecycle, progress propagation to front-ends, and cooperative
// cancellation between stages.
