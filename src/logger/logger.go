// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/x509-chain-fixtures/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
//
// The chain builder, the recipe runner, the CLI and the [MCP] server all log
// through this interface so that each front end can choose its own output.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// entry is one JSON log line.
type entry struct {
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
}

// sink is the output shared by a JSONLogger and the loggers derived from it.
type sink struct {
	mu     sync.Mutex
	writer io.Writer
}

// JSONLogger implements Logger by writing one JSON object per line.
//
// It is silent by default when used by the [MCP] server, since stdout carries
// the protocol; callers that want diagnostics pass a separate writer (usually
// stderr) and silent=false.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type JSONLogger struct {
	out       *sink
	silent    bool
	component string
}

// NewJSONLogger creates a new structured logger.
// A nil writer is replaced with [io.Discard].
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		out:    &sink{writer: writer},
		silent: silent,
	}
}

// WithComponent returns a logger sharing j's output that tags every line
// with the given component name.
func (j *JSONLogger) WithComponent(component string) *JSONLogger {
	return &JSONLogger{
		out:       j.out,
		silent:    j.silent,
		component: component,
	}
}

// Printf formats and logs a structured message.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.silent {
		return
	}
	j.write(fmt.Sprintf(format, v...))
}

// Println logs a structured message. Operands are joined with spaces as in [fmt.Sprintln].
func (j *JSONLogger) Println(v ...any) {
	if j.silent {
		return
	}
	msg := fmt.Sprintln(v...)
	j.write(msg[:len(msg)-1])
}

func (j *JSONLogger) write(msg string) {
	data, err := json.Marshal(entry{Level: "info", Component: j.component, Message: msg})
	if err != nil {
		return
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()
	buf.Write(data)
	buf.WriteByte('\n')

	j.out.mu.Lock()
	_, _ = buf.WriteTo(j.out.writer)
	j.out.mu.Unlock()
}

// SetOutput sets the output destination for j and every logger derived from
// it. A nil writer discards output.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.out.mu.Lock()
	defer j.out.mu.Unlock()

	if w == nil {
		j.out.writer = io.Discard
	} else {
		j.out.writer = w
	}
}
