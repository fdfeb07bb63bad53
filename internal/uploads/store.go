// Package uploads stages locally imported evidence files for the lifetime of
// a session. Importing copies the selected file into a private staging
// directory and yields a DocumentFile pointing at the staged copy; Close
// releases the whole directory. This replaces the transient object handles of
// a browser runtime with explicit acquire/release discipline.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrUnsupportedType is returned for files outside the fixed extension
// allow-list.
var ErrUnsupportedType = errors.New("unsupported file type")

// AllowedExtensions is the fixed import allow-list (document and image
// formats), matching the selection filter of the evidence panel.
var AllowedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".webp"}

// Imported describes one staged evidence file.
type Imported struct {
	ID      string
	Name    string
	Path    string
	IsImage bool
	SizeKB  float64
	Date    string
}

// Store owns the staging directory. The directory is created lazily on first
// import and removed exactly once by Close.
type Store struct {
	mu        sync.Mutex
	dir       string
	now       func() time.Time
	closeOnce sync.Once
	closed    bool
}

// NewStore returns a store with no staging directory yet.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Allowed reports whether the file name carries an accepted extension.
func Allowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// IsImageExt reports whether the extension is one of the accepted image
// formats; any other accepted extension defaults to the document kind.
func IsImageExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// Import copies the file at path into the staging directory and returns its
// staged descriptor. The source bytes never leave the machine.
func (s *Store) Import(path string) (Imported, error) {
	name := filepath.Base(path)
	if !Allowed(name) {
		return Imported{}, fmt.Errorf("%w: %s", ErrUnsupportedType, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Imported{}, errors.New("upload store closed")
	}
	if s.dir == "" {
		dir, err := os.MkdirTemp("", "qsdesk-evidence-*")
		if err != nil {
			return Imported{}, fmt.Errorf("create staging dir: %w", err)
		}
		s.dir = dir
	}

	src, err := os.Open(path)
	if err != nil {
		return Imported{}, fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	id := fmt.Sprintf("UPL-%d", s.now().UnixMilli())
	staged := filepath.Join(s.dir, id+"_"+name)
	dst, err := os.Create(staged)
	if err != nil {
		return Imported{}, fmt.Errorf("stage file: %w", err)
	}
	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(staged)
		return Imported{}, fmt.Errorf("stage file: %w", err)
	}

	return Imported{
		ID:      id,
		Name:    name,
		Path:    staged,
		IsImage: IsImageExt(name),
		SizeKB:  float64(size) / 1024,
		Date:    s.now().Format("2006-01-02"),
	}, nil
}

// Dir returns the staging directory, or "" before the first import.
func (s *Store) Dir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir
}

// Close removes the staging directory and every staged copy. Safe to call
// more than once; only the first call has an effect.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed = true
		if s.dir != "" {
			err = os.RemoveAll(s.dir)
			s.dir = ""
		}
	})
	return err
}
