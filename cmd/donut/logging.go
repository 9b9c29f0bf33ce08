package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/log"
)

// maxLogSize triggers rotation of an existing log file at startup
const maxLogSize = 10 * 1024 * 1024 // 10MB

// setupLogging sends log output to path, or discards it when path is empty
// The terminal belongs to the renderer, so logs never go to stdout or stderr
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(path, rotatedName(path, time.Now())); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// rotatedName inserts a timestamp before the extension: donut.log -> donut-20060102-150405.log
func rotatedName(path string, now time.Time) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".log"
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + "-" + now.Format("20060102-150405") + ext
}
