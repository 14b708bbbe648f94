// Package logger wires the standard logger to stdout and an optional
// size-rotated file.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Rotator is an io.Writer that rolls the file over once it would exceed
// MaxSize bytes, keeping at most MaxBackups old files (name.1 is newest).
type Rotator struct {
	Filename   string
	MaxSize    int64
	MaxBackups int

	mu   sync.Mutex
	file *os.File
	size int64
}

// NewRotator opens (or creates) filename for appending.
func NewRotator(filename string, maxSizeMB, maxBackups int) (*Rotator, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	r := &Rotator{
		Filename:   filename,
		MaxSize:    int64(maxSizeMB) * 1024 * 1024,
		MaxBackups: maxBackups,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Setup sends the standard logger to stdout and, when filename is set, to a
// rotating file as well. The returned closer is nil without a file.
func Setup(filename string, maxSizeMB, maxBackups int) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if filename == "" {
		log.SetOutput(os.Stdout)
		return nil, nil
	}
	r, err := NewRotator(filename, maxSizeMB, maxBackups)
	if err != nil {
		log.SetOutput(os.Stdout)
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, r))
	return r, nil
}

func (r *Rotator) open() error {
	if dir := filepath.Dir(r.Filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(r.Filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	r.file = f
	r.size = info.Size()
	return nil
}

// Write appends p, rotating first if p would push the file past MaxSize.
func (r *Rotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}
	if r.size > 0 && r.size+int64(len(p)) > r.MaxSize {
		if err := r.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
			if r.file == nil {
				return 0, err
			}
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Close closes the current file.
func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func (r *Rotator) rotate() error {
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	r.file = nil

	if r.MaxBackups <= 0 {
		if err := os.Remove(r.Filename); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove log file: %w", err)
		}
		return r.open()
	}

	// name.(n-1) -> name.n ... name -> name.1; the oldest falls off.
	for i := r.MaxBackups - 1; i >= 1; i-- {
		src := backupName(r.Filename, i)
		if _, err := os.Stat(src); err == nil {
			os.Rename(src, backupName(r.Filename, i+1))
		}
	}
	if err := os.Rename(r.Filename, backupName(r.Filename, 1)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rename log file: %w", err)
	}
	return r.open()
}

func backupName(name string, i int) string {
	return fmt.Sprintf("%s.%d", name, i)
}
