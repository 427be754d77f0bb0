package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

type shellState int

const (
	stateAwaitPath shellState = iota
	stateAwaitMode
	stateExecuting
	stateDone
)

// shell drives one prompt → scan → report run. Every error path prints a
// message and moves to stateDone; nothing is retried.
type shell struct {
	in       *bufio.Reader
	out      io.Writer
	log      *consoleLogger
	settings Settings

	openFS  func(root string) billy.Filesystem
	now     func() time.Time
	pickDir func() (string, error)

	path       string
	mode       ScanMode
	reportPath string
	err        error
}

func newShell(in io.Reader, out io.Writer, log *consoleLogger, settings Settings) *shell {
	return &shell{
		in:       bufio.NewReader(in),
		out:      out,
		log:      log,
		settings: settings,
		openFS:   func(root string) billy.Filesystem { return osfs.New(root) },
		now:      time.Now,
		pickDir:  func() (string, error) { return runDirectoryPicker(".") },
	}
}

// run executes the state machine until it reaches stateDone. The returned
// error has already been shown to the user; it is only informational.
func (s *shell) run() error {
	fmt.Fprintln(s.out, "=== 文件夹文件名抓取并保存工具 ===")

	state := stateAwaitPath
	for state != stateDone {
		switch state {
		case stateAwaitPath:
			state = s.awaitPath()
		case stateAwaitMode:
			state = s.awaitMode()
		case stateExecuting:
			state = s.execute()
		}
	}
	return s.err
}

func (s *shell) awaitPath() shellState {
	var path string
	switch {
	case s.settings.Path != "":
		path = s.settings.Path
	case s.settings.Pick:
		picked, err := s.pickDir()
		if err != nil {
			return s.fail(err, fmt.Sprintf("错误：%v", err))
		}
		if picked == "" {
			fmt.Fprintln(s.out, "已取消选择")
			return stateDone
		}
		path = picked
	default:
		path = s.prompt("请输入要扫描的文件夹路径: ")
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return s.fail(fmt.Errorf("%w: empty path", ErrInvalidInput), "错误：路径不能为空")
	}

	info, err := os.Stat(path)
	if err != nil {
		err = classifyFSError(path, err)
		if errors.Is(err, ErrNotFound) {
			return s.fail(err, fmt.Sprintf("错误：路径 '%s' 不存在", path))
		}
		return s.fail(err, fmt.Sprintf("错误：无法访问 '%s': %v", path, err))
	}
	if !info.IsDir() {
		return s.fail(fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, path),
			fmt.Sprintf("错误：'%s' 不是一个文件夹", path))
	}

	// the output folder must already exist
	if out := s.settings.OutputDir; out != "" {
		outInfo, err := os.Stat(out)
		if err != nil {
			err = classifyFSError(out, err)
			if errors.Is(err, ErrNotFound) {
				return s.fail(err, fmt.Sprintf("错误：输出路径 '%s' 不存在", out))
			}
			return s.fail(err, fmt.Sprintf("错误：无法访问 '%s': %v", out, err))
		}
		if !outInfo.IsDir() {
			return s.fail(fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, out),
				fmt.Sprintf("错误：'%s' 不是一个文件夹", out))
		}
	}

	s.path = path
	return stateAwaitMode
}

func (s *shell) awaitMode() shellState {
	choice := s.settings.Mode
	if choice == "" {
		fmt.Fprintln(s.out, "\n请选择操作模式:")
		fmt.Fprintln(s.out, "1. 仅获取当前文件夹中的文件")
		fmt.Fprintln(s.out, "2. 递归获取所有子文件夹中的文件")
		choice = s.prompt("请输入选择 (1 或 2): ")
	}

	mode, ok := parseScanMode(strings.TrimSpace(choice))
	if !ok {
		return s.fail(fmt.Errorf("%w: mode %q", ErrInvalidInput, choice), "无效的选择")
	}
	s.mode = mode
	return stateExecuting
}

func (s *shell) execute() shellState {
	fsys := s.openFS(s.path)
	sc := newScanner(fsys, s.log, s.settings.RespectGitignore)

	var names []string
	var err error
	if s.mode == ModeRecursive {
		names, err = sc.listRecursive(".")
		fmt.Fprintf(s.out, "\n在文件夹 '%s' 及其子文件夹中找到 %d 个文件:\n", s.path, len(names))
	} else {
		names, err = sc.listShallow(".")
		if err != nil {
			return s.fail(err, scanErrorMessage(s.path, err))
		}
		fmt.Fprintf(s.out, "\n在文件夹 '%s' 中找到 %d 个文件:\n", s.path, len(names))
	}
	if err != nil {
		// recursive scans keep what they could read
		s.log.Warnf("scan of %s was incomplete: %v", s.path, err)
	}

	fmt.Fprint(s.out, formatPreview(names, s.settings.PreviewLimit))

	outFS := fsys
	if s.settings.OutputDir != "" {
		outFS = s.openFS(s.settings.OutputDir)
	}
	reportPath, err := writeReport(outFS, names, s.path, s.mode, s.now())
	if err != nil {
		return s.fail(err, fmt.Sprintf("保存文件时出错: %v", err))
	}
	s.reportPath = reportPath
	color.New(color.FgGreen).Fprintf(s.out, "成功将 %d 个文件名保存到: %s\n", len(names), reportPath)

	if s.settings.Clipboard {
		if err := copyReport(outFS, filepath.Base(reportPath)); err != nil {
			s.log.Warnf("could not copy report to clipboard: %v", err)
		} else {
			fmt.Fprintln(s.out, "报告内容已复制到剪贴板")
		}
	}
	return stateDone
}

func (s *shell) fail(err error, message string) shellState {
	s.err = err
	fmt.Fprintln(s.out, message)
	s.log.Debugf("run aborted: %v", err)
	return stateDone
}

// prompt prints label and reads one line. EOF counts as the end of the line.
func (s *shell) prompt(label string) string {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.log.Warnf("error reading input: %v", err)
	}
	return strings.TrimSpace(line)
}

func scanErrorMessage(path string, err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("错误：找不到路径 '%s'", path)
	case errors.Is(err, ErrPermission):
		return fmt.Sprintf("错误：没有权限访问 '%s'", path)
	default:
		return fmt.Sprintf("错误：%v", err)
	}
}

// runDirectoryPicker lets the user choose a folder below root with a fuzzy
// finder. An aborted selection returns "" and a nil error.
func runDirectoryPicker(root string) (string, error) {
	candidates, err := collectDirCandidates(root)
	if err != nil {
		return "", err
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the folder to list. Enter to confirm, Esc to abort."
			}
			entries, readErr := os.ReadDir(candidates[i])
			if readErr != nil {
				return fmt.Sprintf("Path: %s\nError reading folder: %v", candidates[i], readErr)
			}
			return fmt.Sprintf("Path: %s\nEntries: %d", candidates[i], len(entries))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}

// collectDirCandidates returns root and every non-hidden directory below it.
// Unreadable directories are skipped silently.
func collectDirCandidates(root string) ([]string, error) {
	candidates := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return fs.SkipDir
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	return candidates, nil
}

// isHidden checks if a file name starts with '.' (but is not "." or "..").
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
