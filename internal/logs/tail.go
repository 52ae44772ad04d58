package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const maxLineBytes = 1024 * 1024

// Filter reports whether a line should be shown.
type Filter func(line string) bool

// Containing matches lines that contain every non-empty needle.
func Containing(needles ...string) Filter {
	var active []string
	for _, n := range needles {
		if n = strings.TrimSpace(n); n != "" {
			active = append(active, n)
		}
	}
	return func(line string) bool {
		for _, n := range active {
			if !strings.Contains(line, n) {
				return false
			}
		}
		return true
	}
}

// Last returns up to n matching lines from the end of the file at path and
// the offset just past them. A missing file yields no lines and offset 0.
func Last(path string, n int, keep Filter) ([]string, int64, error) {
	file, err := open(path)
	if err != nil || file == nil {
		return nil, 0, err
	}
	defer file.Close()

	if keep == nil {
		keep = Containing()
	}
	var window []string
	offset, err := scan(file, func(line string) {
		if n <= 0 || !keep(line) {
			return
		}
		if len(window) == n {
			window = window[1:]
		}
		window = append(window, line)
	})
	if err != nil {
		return nil, 0, err
	}
	return window, offset, nil
}

// Follow emits matching lines appended after offset, polling every interval
// until ctx is done. A file shorter than offset is read again from the start.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, keep Filter, emit func(string)) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	if keep == nil {
		keep = Containing()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		next, err := readFrom(path, offset, func(line string) {
			if keep(line) {
				emit(line)
			}
		})
		if err != nil {
			return err
		}
		offset = next

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func readFrom(path string, offset int64, fn func(string)) (int64, error) {
	file, err := open(path)
	if err != nil || file == nil {
		return 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return offset, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("seek log file: %w", err)
	}
	consumed, err := scan(file, fn)
	if err != nil {
		return offset, err
	}
	return offset + consumed, nil
}

// scan feeds complete lines to fn and returns the number of bytes consumed.
// A trailing partial line is left for the next read.
func scan(r io.Reader, fn func(string)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var consumed int64
	for {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return consumed, nil
		}
		if err != nil {
			return consumed, fmt.Errorf("read log file: %w", err)
		}
		consumed += int64(len(line))
		line = strings.TrimRight(line, "\r\n")
		if len(line) > maxLineBytes {
			line = line[:maxLineBytes]
		}
		fn(line)
	}
}

func open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	return file, nil
}
