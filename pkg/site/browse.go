package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a directory entry by what it is to a web build.
type Kind string

const (
	KindDir     Kind = "dir"
	KindMarkup  Kind = "markup"
	KindStyle   Kind = "style"
	KindScript  Kind = "script"
	KindData    Kind = "data"
	KindImage   Kind = "image"
	KindVector  Kind = "vector"
	KindDoc     Kind = "doc"
	KindArchive Kind = "archive"
	KindOther   Kind = "other"
)

var extKinds = map[string]Kind{
	".html": KindMarkup, ".htm": KindMarkup,
	".css": KindStyle, ".scss": KindStyle, ".sass": KindStyle, ".less": KindStyle,
	".js": KindScript, ".ts": KindScript, ".tsx": KindScript, ".jsx": KindScript,
	".json": KindData, ".xml": KindData, ".yaml": KindData, ".yml": KindData,
	".png": KindImage, ".jpg": KindImage, ".jpeg": KindImage, ".gif": KindImage,
	".webp": KindImage, ".ico": KindImage,
	".svg": KindVector, ".vue": KindVector,
	".md": KindDoc, ".txt": KindDoc,
	".zip": KindArchive, ".tar": KindArchive, ".gz": KindArchive,
}

// KindOf classifies a file name by its extension.
func KindOf(name string) Kind {
	if k, ok := extKinds[strings.ToLower(filepath.Ext(name))]; ok {
		return k
	}
	return KindOther
}

// Entry is a single item in a directory listing.
type Entry struct {
	Name string
	Dir  bool
	Kind Kind
	Size int64
}

// List returns the entries of dir sorted by name, directories first.
func List(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		e := Entry{Name: item.Name(), Dir: item.IsDir()}
		if e.Dir {
			e.Kind = KindDir
		} else {
			e.Kind = KindOf(item.Name())
			if info, err := item.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return entries[i].Dir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// indexCandidates are checked in priority order when picking the page to
// open in the browser.
var indexCandidates = []string{"index.html", "index.htm", "default.html", "home.html"}

// FindIndexFile returns the best index file to open for dir: one of the
// well-known index names if present, otherwise the alphabetically-first
// HTML file. ok is false when the directory has no HTML at all.
func FindIndexFile(dir string) (name string, ok bool) {
	for _, candidate := range indexCandidates {
		if info, err := os.Stat(filepath.Join(dir, candidate)); err == nil && !info.IsDir() {
			return candidate, true
		}
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var htmlFiles []string
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		lower := strings.ToLower(item.Name())
		if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
			htmlFiles = append(htmlFiles, item.Name())
		}
	}
	if len(htmlFiles) == 0 {
		return "", false
	}
	sort.Strings(htmlFiles)
	return htmlFiles[0], true
}

// ValidateRoot checks that dir exists, is a directory, and is readable.
func ValidateRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	if _, err := os.ReadDir(dir); err != nil {
		return fmt.Errorf("directory not readable: %s: %w", dir, err)
	}
	return nil
}
