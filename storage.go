package deployprep

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

// FlatFile is a single file Name inside directory Path.
type FlatFile struct {
	Name string
	Path string
	Perm os.FileMode
}

func NewFlatFile(workdir string, rel string) *FlatFile {
	full := filepath.Join(workdir, rel)
	return &FlatFile{Name: filepath.Base(full), Path: filepath.Dir(full)}
}

func (f *FlatFile) File() string {
	return filepath.Join(f.Path, f.Name)
}

// Write replaces the file content, creating parent directories.
func (f *FlatFile) Write(data []byte) (n int, err error) {
	if err := os.MkdirAll(f.Path, os.ModePerm); err != nil {
		slog.Error(err.Error())
		return 0, err
	}
	perm := f.Perm
	if perm == 0 {
		perm = 0644
	}
	file := f.File()
	err = os.WriteFile(file, data, perm)
	if err != nil {
		slog.Error(err.Error())
		return 0, err
	}
	// WriteFile keeps the mode of an existing file.
	if f.Perm != 0 {
		if err := os.Chmod(file, f.Perm); err != nil {
			slog.Error(err.Error())
			return 0, err
		}
	}
	slog.Info("file written successfully", "path", f.Path, "file", f.Name)
	return len(data), nil
}

func (f *FlatFile) Read() (n []byte, err error) {
	file, err := os.ReadFile(f.File())
	if err != nil {
		slog.Error(err.Error())
		return []byte{}, err
	}
	return file, nil
}

func (f *FlatFile) Exists() (bool, error) {
	_, err := os.Stat(f.File())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
