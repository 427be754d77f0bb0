package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	gitignore "github.com/monochromegane/go-gitignore"
)

// scanner collects the files of a folder. Paths handed to it are relative to
// the root of fs, which in production is the folder being scanned.
type scanner struct {
	fs               billy.Filesystem
	log              *consoleLogger
	respectGitignore bool
}

func newScanner(fsys billy.Filesystem, log *consoleLogger, respectGitignore bool) *scanner {
	return &scanner{fs: fsys, log: log, respectGitignore: respectGitignore}
}

// listShallow returns the names of the regular files directly inside dir.
// Subdirectories are skipped. A missing or unreadable dir yields an empty
// list and an error wrapping ErrNotFound or ErrPermission.
func (s *scanner) listShallow(dir string) ([]string, error) {
	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		return []string{}, classifyFSError(s.displayPath(dir), err)
	}

	matcher := s.ignoreMatcher(dir)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info == nil {
			continue // entry vanished between readdir and stat
		}
		path := s.fs.Join(dir, info.Name())
		if !isRegularFile(s.fs, path, info) {
			continue
		}
		if matcher != nil && matcher.Match(path, false) {
			continue
		}
		names = append(names, info.Name())
	}
	return names, nil
}

// listRecursive returns every regular file below dir as a path relative to
// dir. Entries are visited in lexical order within each directory, but callers
// must not rely on the order of the result.
//
// dir itself is read with ReadDir, so a root that is a symlink to a folder is
// listed like the folder. Symlinks below the root are not followed.
//
// Traversal is best-effort: an unreadable entry is logged and skipped, and the
// files collected from the rest of the tree are returned together with the
// joined errors.
func (s *scanner) listRecursive(dir string) ([]string, error) {
	names := []string{}
	var errs []error

	record := func(path string, err error) {
		err = classifyFSError(s.displayPath(path), err)
		s.log.Warnf("error accessing path %s: %v", path, err)
		errs = append(errs, err)
	}

	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		record(dir, err)
		return names, errors.Join(errs...)
	}
	children := make([]string, 0, len(infos))
	for _, info := range infos {
		if info != nil {
			children = append(children, info.Name())
		}
	}
	sort.Strings(children)

	matcher := s.ignoreMatcher(dir)
	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			record(path, err)
			return nil
		}

		if info.IsDir() {
			if matcher != nil && matcher.Match(path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegularFile(s.fs, path, info) {
			return nil
		}
		if matcher != nil && matcher.Match(path, false) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("resolve relative path of %s: %w", path, err))
			return nil
		}
		names = append(names, rel)
		return nil
	}

	for _, name := range children {
		child := s.fs.Join(dir, name)
		if err := util.Walk(s.fs, child, walkFn); err != nil && !errors.Is(err, filepath.SkipDir) {
			errs = append(errs, fmt.Errorf("error walking %s: %w", s.displayPath(child), err))
		}
	}

	return names, errors.Join(errs...)
}

// ignoreMatcher loads dir/.gitignore when honouring is enabled. It returns nil
// when disabled, when the file is absent, or when it cannot be read.
func (s *scanner) ignoreMatcher(dir string) gitignore.IgnoreMatcher {
	if !s.respectGitignore {
		return nil
	}

	path := s.fs.Join(dir, ".gitignore")
	f, err := s.fs.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warnf("could not open .gitignore file %s: %v", path, err)
		}
		return nil
	}
	defer f.Close()

	s.log.Debugf("honouring %s", s.displayPath(path))
	return gitignore.NewGitIgnoreFromReader(dir, f)
}

func (s *scanner) displayPath(path string) string {
	return s.fs.Join(s.fs.Root(), path)
}

// isRegularFile reports whether info describes a regular file, following a
// symlink one level so that links to files are listed like the files.
func isRegularFile(fsys billy.Filesystem, path string, info os.FileInfo) bool {
	mode := info.Mode()
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	target, err := fsys.Stat(path)
	return err == nil && target.Mode().IsRegular()
}
