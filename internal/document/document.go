// Package document reads and writes buffers as LF-separated UTF-8 files.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/kobzarvs/tedit/internal/buffer"
)

// ErrInvalidUTF8 is returned by Load for files that are not valid UTF-8.
// There is no binary fallback.
var ErrInvalidUTF8 = errors.New("document: file is not valid UTF-8")

// Load reads path into a buffer. A missing file returns an error matching
// os.ErrNotExist; callers start a new document in that case.
func Load(path string) (*buffer.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s (byte %d)", ErrInvalidUTF8, path, invalidOffset(data))
	}
	return buffer.FromText(string(data)), nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// Save writes the buffer to path through a temporary file in the same
// directory, keeping the mode of an existing file.
func Save(path string, b *buffer.Buffer) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err := tmp.WriteString(b.Text()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	tmpName = ""
	return nil
}

// Stamp identifies a version of a file on disk.
type Stamp struct {
	ModTime time.Time
	Size    int64
}

// IsZero reports whether the stamp was taken of a missing file.
func (s Stamp) IsZero() bool {
	return s.ModTime.IsZero() && s.Size == 0
}

// Stat returns the stamp of path. A missing file yields the zero stamp.
func Stat(path string) (Stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Stamp{}, nil
		}
		return Stamp{}, err
	}
	return Stamp{ModTime: info.ModTime(), Size: info.Size()}, nil
}
