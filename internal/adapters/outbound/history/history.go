package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/abdidvp/iceready/internal/domain"
)

// FileHistory implements domain.RunHistory using JSON file storage under the
// user's home directory.
type FileHistory struct {
	dir string
}

func New() *FileHistory {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &FileHistory{dir: filepath.Join(home, ".iceready")}
}

// NewAt creates a history rooted at dir; tests use this.
func NewAt(dir string) *FileHistory {
	return &FileHistory{dir: dir}
}

func (h *FileHistory) Save(entry domain.RunEntry) error {
	entries, err := h.Load()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(h.path(), data, 0644)
}

func (h *FileHistory) Load() ([]domain.RunEntry, error) {
	data, err := os.ReadFile(h.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (h *FileHistory) path() string {
	return filepath.Join(h.dir, "history.json")
}
