package dvdauthor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"discauthor/internal/services"
)

// EventKind classifies a line of dvdauthor output.
type EventKind string

const (
	EventStatus  EventKind = "STAT"
	EventWarning EventKind = "WARN"
	EventError   EventKind = "ERR"
	EventInfo    EventKind = "INFO"
)

// Event is one parsed line of dvdauthor output.
type Event struct {
	Kind    EventKind
	Message string
}

// Result summarizes a completed authoring run.
type Result struct {
	Warnings []string
	Duration time.Duration
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args, env []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithVideoFormat sets VIDEO_FORMAT for the child process.
func WithVideoFormat(format string) Option {
	return func(c *Client) {
		c.videoFormat = strings.ToLower(strings.TrimSpace(format))
	}
}

// Client runs dvdauthor.
type Client struct {
	binary      string
	timeout     time.Duration
	videoFormat string
	exec        Executor
}

// New constructs a dvdauthor client. A zero timeout disables the limit.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("dvdauthor binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Author runs dvdauthor against the descriptor document at xmlPath.
func (c *Client) Author(ctx context.Context, xmlPath string, onEvent func(Event)) (Result, error) {
	if strings.TrimSpace(xmlPath) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "author", "dvdauthor", "document path required", nil)
	}
	if _, err := os.Stat(xmlPath); err != nil {
		return Result{}, services.Wrap(services.ErrNotFound, "author", "dvdauthor", "document not readable", err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var env []string
	if c.videoFormat != "" {
		env = append(env, "VIDEO_FORMAT="+strings.ToUpper(c.videoFormat))
	}

	var (
		result    Result
		lastError string
	)
	started := time.Now()
	err := c.exec.Run(runCtx, c.binary, []string{"-x", xmlPath}, env, func(line string) {
		event, ok := ParseLine(line)
		if !ok {
			return
		}
		switch event.Kind {
		case EventWarning:
			result.Warnings = append(result.Warnings, event.Message)
		case EventError:
			lastError = event.Message
		}
		if onEvent != nil {
			onEvent(event)
		}
	})
	result.Duration = time.Since(started)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return result, services.Wrap(services.ErrTimeout, "author", "dvdauthor", fmt.Sprintf("exceeded %s", c.timeout), err)
		}
		message := "run failed"
		if lastError != "" {
			message = lastError
		}
		return result, services.Wrap(services.ErrExternalTool, "author", "dvdauthor", message, err)
	}
	return result, nil
}

// ParseLine classifies one line of dvdauthor output. Blank lines are skipped.
func ParseLine(line string) (Event, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Event{}, false
	}
	for _, kind := range []EventKind{EventStatus, EventWarning, EventError, EventInfo} {
		prefix := string(kind) + ":"
		if strings.HasPrefix(line, prefix) {
			return Event{Kind: kind, Message: strings.TrimSpace(strings.TrimPrefix(line, prefix))}, true
		}
	}
	return Event{Kind: EventInfo, Message: line}, true
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args, env []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		scanErr error
		once    sync.Once
	)
	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if onLine == nil {
				continue
			}
			mu.Lock()
			onLine(scanner.Text())
			mu.Unlock()
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() { scanErr = err })
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", scanErr)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
