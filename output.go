package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-git/go-billy/v5"
)

const (
	reportNameLayout    = "2006-01-02_15-04-05"
	reportHeaderLayout  = "2006-01-02 15:04:05"
	reportSeparatorSize = 50
	defaultPreviewLimit = 10
)

// reportFileName returns files_list_<YYYY-MM-DD_HH-MM-SS>[_recursive].txt.
func reportFileName(t time.Time, mode ScanMode) string {
	return fmt.Sprintf("files_list_%s%s.txt", t.Format(reportNameLayout), mode.suffix())
}

// formatReport renders the header block followed by the 1-based listing.
func formatReport(h ReportHeader, names []string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("文件列表生成时间: %s\n", h.GeneratedAt.Format(reportHeaderLayout)))
	builder.WriteString(fmt.Sprintf("扫描路径: %s\n", h.ScannedPath))
	builder.WriteString(fmt.Sprintf("扫描模式: %s\n", h.Mode.Label()))
	builder.WriteString(fmt.Sprintf("文件总数: %d\n", h.Total))
	builder.WriteString(strings.Repeat("-", reportSeparatorSize))
	builder.WriteString("\n\n")

	for i, name := range names {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	return builder.String()
}

// writeReport writes the report for names into the root of fsys and returns
// the full path of the new file. The same instant is used for the file name
// and the header. Failures are wrapped with ErrWrite.
func writeReport(fsys billy.Filesystem, names []string, scannedPath string, mode ScanMode, now time.Time) (string, error) {
	header := ReportHeader{
		GeneratedAt: now,
		ScannedPath: scannedPath,
		Mode:        mode,
		Total:       len(names),
	}
	name := reportFileName(now, mode)
	fullPath := fsys.Join(fsys.Root(), name)

	if err := writeFile(fsys, name, formatReport(header, names)); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrWrite, fullPath, err)
	}
	return fullPath, nil
}

func writeFile(fsys billy.Filesystem, name, content string) (err error) {
	f, err := fsys.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(content); err != nil {
		return err
	}
	return w.Flush()
}

// formatPreview lists at most limit names followed by a line counting the
// rest. A negative limit prints everything.
func formatPreview(names []string, limit int) string {
	shown := names
	if limit >= 0 && len(names) > limit {
		shown = names[:limit]
	}

	var builder strings.Builder
	for i, name := range shown {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	if rest := len(names) - len(shown); rest > 0 {
		builder.WriteString(fmt.Sprintf("... 还有 %d 个文件\n", rest))
	}
	return builder.String()
}

// copyReport puts the report text on the system clipboard.
func copyReport(fsys billy.Filesystem, name string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open report %s: %w", name, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read report %s: %w", name, err)
	}
	if err := clipboard.WriteAll(string(content)); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
