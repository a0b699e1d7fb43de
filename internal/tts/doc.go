package tts

// Package tts sends cleaned text chunks to a cloud text-to-speech service and
// returns synthesized MP3 segments. The default backend is the unauthenticated
// Google Translate voice, which caps request size and supports a fixed set of
// languages. Network failures and unsupported languages are reported with
// distinct error types so front-ends can tell the user whether re-invoking
// can help.
