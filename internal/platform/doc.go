package platform

// Package platform contains OS/platform integration and external tooling glue:
// ffmpeg/ffprobe discovery, opening the finished audiobook with the default
// system player, and filesystem helpers.
