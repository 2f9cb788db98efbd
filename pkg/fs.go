package boo

import (
	"fmt"
	"os"
)

// FileSystem is the file access used by PluginVersion.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// OSFileSystem reads and writes the local disk. Writes happen in place under
// an advisory exclusive lock, keeping the file's permissions.
type OSFileSystem struct{}

// ReadFile reads the named file.
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile truncates and rewrites the named file while holding an exclusive
// advisory lock on it. The file must already exist.
func (OSFileSystem) WriteFile(name string, data []byte) (err error) {
	f, err := os.OpenFile(name, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := lockFile(f); err != nil {
		return fmt.Errorf("lock %s: %w", name, err)
	}
	defer unlockFile(f)

	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt(data, 0); err != nil {
		return err
	}
	return f.Sync()
}
