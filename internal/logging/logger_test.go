package logging

import "testing"

func TestInitializeWithConfig(t *testing.T) {
	tests := []struct {
		name   string
		config LogConfig
	}{
		{"console info", LogConfig{Level: "info", Format: "console"}},
		{"json debug", LogConfig{Level: "debug", Format: "json"}},
		{"bad level falls back", LogConfig{Level: "not-a-level", Format: "console"}},
		{"unknown format falls back", LogConfig{Level: "warn", Format: "xml"}},
	}

	for _, test := range tests {
		if err := InitializeWithConfig(test.config); err != nil {
			t.Errorf("%s: InitializeWithConfig returned error: %v", test.name, err)
		}
		if Logger == nil || Sugar == nil {
			t.Errorf("%s: expected global loggers to be set", test.name)
		}
	}
}

func TestHelpersWithNilLogger(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	// Must not panic when logging before initialization
	LogPipelineStage("task-1", "Extracting")
	LogTTSRequest("en", 10, 2048, 0)
	LogError(nil, "message")
}
