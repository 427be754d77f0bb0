package main

import "time"

// ScanMode selects between listing only the folder itself and listing the
// whole subtree.
type ScanMode int

const (
	ModeShallow ScanMode = iota + 1
	ModeRecursive
)

// parseScanMode maps the menu choice typed by the user ("1" or "2").
func parseScanMode(choice string) (ScanMode, bool) {
	switch choice {
	case "1":
		return ModeShallow, true
	case "2":
		return ModeRecursive, true
	default:
		return 0, false
	}
}

// Label is the mode name written into the report header.
func (m ScanMode) Label() string {
	if m == ModeRecursive {
		return "递归模式"
	}
	return "仅当前文件夹"
}

// suffix is appended to the report file name.
func (m ScanMode) suffix() string {
	if m == ModeRecursive {
		return "_recursive"
	}
	return ""
}

// ReportHeader holds the summary lines written above the file listing.
type ReportHeader struct {
	GeneratedAt time.Time
	ScannedPath string
	Mode        ScanMode
	Total       int
}

// Settings is the resolved configuration for one run
// (defaults < config file < env < flags).
type Settings struct {
	Path             string
	Mode             string
	Pick             bool
	RespectGitignore bool
	Clipboard        bool
	OutputDir        string
	PreviewLimit     int
	LogLevel         string
	NoColor          bool
}
