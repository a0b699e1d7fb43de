package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	WindowsCmdFlag = "/c"

	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"
)

// Common install locations probed when the tool is not on PATH
var (
	UnixToolDirs = []string{
		"/usr/bin",
		"/usr/local/bin",
		"/opt/bin",
		"/opt/homebrew/bin",
	}
	WindowsToolSubdir = filepath.Join("ffmpeg", "bin")
)

// FindTool resolves an external binary, checking PATH first and then common
// install locations. Returns the absolute path or an error naming the tool so
// the user gets actionable guidance.
func FindTool(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	candidates := toolCandidates(name)
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s not found; install %s and add it to PATH", name, name)
}

// toolCandidates returns platform-specific fallback locations for a tool
func toolCandidates(name string) []string {
	cwd, _ := os.Getwd()

	if runtime.GOOS == OSWindows {
		exe := name + ".exe"
		candidates := []string{}
		for _, env := range []string{"PROGRAMFILES", "PROGRAMFILES(X86)", "SYSTEMDRIVE"} {
			if base := os.Getenv(env); base != "" {
				candidates = append(candidates, filepath.Join(base, WindowsToolSubdir, exe))
			}
		}
		if cwd != "" {
			candidates = append(candidates, filepath.Join(cwd, exe))
		}
		return candidates
	}

	candidates := make([]string, 0, len(UnixToolDirs)+1)
	for _, dir := range UnixToolDirs {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	if cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, name))
	}
	return candidates
}

// FindFFmpeg resolves the ffmpeg binary
func FindFFmpeg() (string, error) {
	return FindTool(FFmpegCommand)
}

// FindFFprobe resolves the ffprobe binary
func FindFFprobe() (string, error) {
	return FindTool(FFprobeCommand)
}

// FFmpegAvailable reports whether audio post-processing can work at all
func FFmpegAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// OpenFileWithDefaultApp opens the file with the default system application.
// Used to auto-play the finished audiobook.
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Start()
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath).Start()
	case OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Start()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if dirPath == "" {
		return nil
	}
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}
