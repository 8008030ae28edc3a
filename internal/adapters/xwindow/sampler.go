package xwindow

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"focal/internal/ports"
)

// Sampler reads the focused X11 window via xdotool and /proc. Any failure
// is returned as-is; the tracker treats a failed sample as a skipped tick.
type Sampler struct{}

// Ensure Sampler implements ForegroundSampler
var _ ports.ForegroundSampler = (*Sampler)(nil)

// NewSampler creates a new X11 sampler
func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample returns the currently focused window's process name and title
func (s *Sampler) Sample() (ports.ForegroundWindow, error) {
	idOut, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		return ports.ForegroundWindow{}, fmt.Errorf("xdotool getactivewindow: %w", err)
	}
	windowID := strings.TrimSpace(string(idOut))

	titleOut, err := exec.Command("xdotool", "getwindowname", windowID).Output()
	if err != nil {
		return ports.ForegroundWindow{}, fmt.Errorf("xdotool getwindowname: %w", err)
	}
	title := strings.TrimRight(string(titleOut), "\n")

	// An unresolvable process is not fatal: keep the title, matching the
	// behavior of a window without a readable owner.
	appName, err := processName(windowID)
	if err != nil {
		appName = "Unknown"
	}

	return ports.ForegroundWindow{AppName: appName, Title: title}, nil
}

// processName resolves the window's owning process name, extension
// stripped.
func processName(windowID string) (string, error) {
	out, err := exec.Command("xdotool", "getwindowpid", windowID).Output()
	if err != nil {
		return "", fmt.Errorf("xdotool getwindowpid: %w", err)
	}
	pid := strings.TrimSpace(string(out))

	comm, err := os.ReadFile(filepath.Join("/proc", pid, "comm"))
	if err != nil {
		return "", fmt.Errorf("reading process name: %w", err)
	}

	return stripExtension(strings.TrimSpace(string(comm))), nil
}

// stripExtension removes a trailing file extension from a process name
// (e.g. "chrome.exe" under Wine).
func stripExtension(name string) string {
	if ext := filepath.Ext(name); ext != "" && ext != name {
		return strings.TrimSuffix(name, ext)
	}
	return name
}
