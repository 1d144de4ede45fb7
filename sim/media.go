package sim

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"dgusbridge/dgus"
)

var ErrNoMedia = errors.New("sim: media not mounted")

// printable file extensions, lower case
var printable = map[string]bool{".gcode": true, ".gco": true, ".g": true}

// Media lists a directory tree as removable storage: directories first,
// then printable files. It implements dgus.Media.
type Media struct {
	root    string
	cwd     string // slash separated, relative to root, "" at root
	entries []dgus.Entry
	mounted bool
}

var _ dgus.Media = (*Media)(nil)

func NewMedia(root string) *Media {
	return &Media{root: root}
}

// Mount reports whether the root directory exists, listing it on the
// first mount.
func (m *Media) Mount() bool {
	info, err := os.Stat(m.root)
	if err != nil || !info.IsDir() {
		m.mounted = false
		m.entries = nil
		return false
	}
	if !m.mounted {
		m.mounted = true
		m.cwd = ""
		m.list()
	}
	return true
}

func (m *Media) Root() error {
	if !m.mounted {
		return ErrNoMedia
	}
	m.cwd = ""
	return m.list()
}

func (m *Media) Up() error {
	if !m.mounted {
		return ErrNoMedia
	}
	if m.cwd == "" {
		return nil
	}
	m.cwd = path.Dir(m.cwd)
	if m.cwd == "." {
		m.cwd = ""
	}
	return m.list()
}

func (m *Media) Cd(name string) error {
	if !m.mounted {
		return ErrNoMedia
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return os.ErrNotExist
	}
	prev := m.cwd
	m.cwd = path.Join(m.cwd, name)
	if err := m.list(); err != nil {
		m.cwd = prev
		m.list()
		return err
	}
	return nil
}

func (m *Media) AtRoot() bool {
	return m.cwd == ""
}

func (m *Media) Count() int {
	return len(m.entries)
}

func (m *Media) Entry(index int) (dgus.Entry, bool) {
	if index < 0 || index >= len(m.entries) {
		return dgus.Entry{}, false
	}
	return m.entries[index], true
}

// Dir returns the current directory relative to the root
func (m *Media) Dir() string {
	return "/" + m.cwd
}

func (m *Media) list() error {
	dir := filepath.Join(m.root, filepath.FromSlash(m.cwd))
	items, err := os.ReadDir(dir)
	if err != nil {
		m.entries = nil
		return err
	}

	var dirs, files []dgus.Entry
	for _, item := range items {
		name := item.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		entry := dgus.Entry{Name: name, Path: filepath.Join(dir, name), Dir: item.IsDir()}
		switch {
		case entry.Dir:
			dirs = append(dirs, entry)
		case printable[strings.ToLower(filepath.Ext(name))]:
			files = append(files, entry)
		}
	}
	m.entries = append(dirs, files...)
	return nil
}
