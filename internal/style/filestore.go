package style

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	stylesFile    = "styles.json"
	selectionFile = "style_defaults.json"
)

// FileStore persists user styles and the default selection as JSON
// documents under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// lazily on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// LoadStyles implements Store. A missing file yields an empty list.
func (f *FileStore) LoadStyles() ([]Style, error) {
	var styles []Style
	if err := f.read(stylesFile, &styles); err != nil {
		return nil, err
	}
	return styles, nil
}

// SaveStyles implements Store.
func (f *FileStore) SaveStyles(styles []Style) error {
	if styles == nil {
		styles = []Style{}
	}
	return f.write(stylesFile, styles)
}

// LoadSelection implements Store. A missing file yields a zero Selection.
func (f *FileStore) LoadSelection() (Selection, error) {
	var sel Selection
	if err := f.read(selectionFile, &sel); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// SaveSelection implements Store.
func (f *FileStore) SaveSelection(sel Selection) error {
	return f.write(selectionFile, sel)
}

func (f *FileStore) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func (f *FileStore) write(name string, v any) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", f.dir, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	path := filepath.Join(f.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
