package xwindow

import "testing"

func TestStripExtension(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"chrome.exe", "chrome"},
		{"chrome", "chrome"},
		{"firefox-bin", "firefox-bin"},
		{"notepad.EXE", "notepad"},
		{".hidden", ".hidden"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripExtension(tt.name); got != tt.expected {
				t.Errorf("stripExtension(%q) = %q, expected %q", tt.name, got, tt.expected)
			}
		})
	}
}
