package textproc

// Package textproc prepares extracted PDF text for speech synthesis: Clean
// normalizes whitespace and strips artifacts unsuitable for narration, Split
// chunks the result to fit the TTS request size limit without cutting words.
// Both are pure functions.
