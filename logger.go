package deployprep

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// NewLogFile opens name for appending under ~/.deployprep.
func NewLogFile(name string) (*os.File, func(), error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return nil, func() {}, err
	}
	path := filepath.Join(dir, APP_FOLDER)
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		slog.Error(err.Error())
		return nil, func() {}, err
	}
	path = filepath.Join(path, name)
	logfile, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		slog.Error(err.Error())
		return nil, func() {}, err
	}
	closer := func() {
		logfile.Close()
	}
	return logfile, closer, nil
}

func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return logger.With("version", APP_VERSION)
}
