// Package logging routes runtime logs away from the terminal the UI is drawing on.
//
// Logs go to a file under a log directory or nowhere; never to stdout/stderr,
// which belong to the alternate screen while a session runs.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultDir     = "logs"
	DefaultFile    = "termcore.log"
	DefaultMaxSize = 10 * 1024 * 1024 // Rotate when larger than 10MB
)

// Config selects the log destination
type Config struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	File    string `yaml:"file"`
	MaxSize int64  `yaml:"max_size"`
	Level   string `yaml:"level"` // debug, info, warn, error
	JSON    bool   `yaml:"json"`
}

// Default returns a disabled config with the standard file layout
func Default() Config {
	return Config{
		Dir:     DefaultDir,
		File:    DefaultFile,
		MaxSize: DefaultMaxSize,
		Level:   "info",
	}
}

// ParseLevel maps a level name to slog.Level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Setup builds the logger for cfg and installs it as slog's and log's default
// The returned closer releases the log file; it is a no-op when logging is disabled
func Setup(cfg Config) (*slog.Logger, io.Closer, error) {
	if !cfg.Enabled {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		log.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	if cfg.File == "" {
		cfg.File = DefaultFile
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(cfg.Dir, cfg.File)
	if err := rotate(path, cfg.MaxSize, time.Now()); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(f, opts)
	} else {
		h = slog.NewTextHandler(f, opts)
	}
	logger := slog.New(h)

	// slog.SetDefault also redirects the log package through h
	slog.SetDefault(logger)
	return logger, f, nil
}

// rotate moves an oversized log aside as <name>-<timestamp><ext>
func rotate(path string, maxSize int64, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() <= maxSize {
		return nil
	}

	ext := filepath.Ext(path)
	rotated := strings.TrimSuffix(path, ext) + "-" + now.Format("20060102-150405") + ext
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
