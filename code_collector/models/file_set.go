package models

import (
	"path/filepath"
	"strings"
)

// Entry is one discovered file.
type Entry struct {
	Dir  string
	Name string
}

// Path joins the directory and file name.
func (e Entry) Path() string {
	return filepath.Join(e.Dir, e.Name)
}

// Stem is the file name without its final extension.
func (e Entry) Stem() string {
	return strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
}

// FileSet maps directories to the file names found in them. Directories and files
// keep the order in which they were discovered.
type FileSet struct {
	dirs  []string
	files map[string][]string
}

func NewFileSet() *FileSet {
	return &FileSet{files: make(map[string][]string)}
}

// Add records name under dir. Only the collector should call it; the set is
// treated as read-only once returned.
func (fs *FileSet) Add(dir, name string) {
	if _, ok := fs.files[dir]; !ok {
		fs.dirs = append(fs.dirs, dir)
	}
	fs.files[dir] = append(fs.files[dir], name)
}

func (fs *FileSet) Directories() []string {
	return append([]string(nil), fs.dirs...)
}

func (fs *FileSet) Files(dir string) []string {
	return append([]string(nil), fs.files[dir]...)
}

// Entries flattens the set in directory order, then file order.
func (fs *FileSet) Entries() []Entry {
	entries := make([]Entry, 0, fs.Len())
	for _, dir := range fs.dirs {
		for _, name := range fs.files[dir] {
			entries = append(entries, Entry{Dir: dir, Name: name})
		}
	}
	return entries
}

func (fs *FileSet) Len() int {
	n := 0
	for _, names := range fs.files {
		n += len(names)
	}
	return n
}
