package audio

// Package audio turns ordered synthesized MP3 segments into the final
// audiobook artifact: concatenation via the ffmpeg concat demuxer, optional
// time-stretch with atempo, and MP3 encoding. ffmpeg and ffprobe are external
// collaborators resolved at startup; their absence surfaces as ProcessingError
// with install guidance.
