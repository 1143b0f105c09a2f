// Package uploads persists submitted photos on local disk. Stored names are
// opaque random tokens; the client's original filename never touches the
// filesystem.
package uploads

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Saver writes uploaded files into a single directory.
type Saver struct {
	Dir string
}

// NewSaver creates the upload directory if needed and returns a Saver for it.
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Saver{Dir: dir}, nil
}

// Save writes r to a freshly named file and returns the stored filename. The
// extension is taken from originalName when it is on the allowlist; anything
// else is stored as .bin rather than rejected.
func (s *Saver) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !allowedExtensions[ext] {
		ext = ".bin"
	}

	u := uuid.New()
	name := hex.EncodeToString(u[:]) + ext

	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return name, nil
}

// Path returns the absolute location of a stored filename.
func (s *Saver) Path(name string) string {
	return filepath.Join(s.Dir, name)
}
