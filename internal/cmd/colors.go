package cmd

import (
	"os"
	"runtime"
)

// ANSI color codes for terminal output.
// These are initialized in init() and may be disabled on certain platforms.
var (
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorCyan   = "\033[0;36m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

// colorMode is the value of the --color flag: auto, always, or never.
var colorMode = "auto"

func init() {
	if shouldDisableColors() {
		disableColors()
	}
}

// applyColorMode re-evaluates color output after flag parsing.
func applyColorMode() {
	switch colorMode {
	case "always":
		enableColors()
	case "never":
		disableColors()
	default:
		if shouldDisableColors() || !stdoutIsTerminal() {
			disableColors()
		} else {
			enableColors()
		}
	}
}

func enableColors() {
	colorGreen = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorCyan = "\033[0;36m"
	colorDim = "\033[2m"
	colorBold = "\033[1m"
	colorReset = "\033[0m"
}

func disableColors() {
	colorGreen = ""
	colorYellow = ""
	colorCyan = ""
	colorDim = ""
	colorBold = ""
	colorReset = ""
}

func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func shouldDisableColors() bool {
	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return true
	}

	// Check TERM=dumb
	if os.Getenv("TERM") == "dumb" {
		return true
	}

	// On Windows, check if ANSI is supported
	if runtime.GOOS == "windows" {
		if os.Getenv("WT_SESSION") != "" {
			return false // Windows Terminal supports ANSI
		}
		if os.Getenv("TERM_PROGRAM") != "" {
			return false // Modern terminal emulator
		}
		// Disable by default on older Windows consoles
		return os.Getenv("ANSICON") == "" && os.Getenv("ConEmuANSI") != "ON"
	}

	return false
}
