// Package logger provides the component-tagged slog output used by the jwt command.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Component tags every line written by a Logger
type Component string

const (
	ComponentCLI    Component = "JWT"
	ComponentSign   Component = "SIGN"
	ComponentVerify Component = "VERIFY"
	ComponentDecode Component = "DECODE"
	ComponentConfig Component = "CONFIG"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

var componentColors = map[Component]string{
	ComponentCLI:    colorWhite,
	ComponentSign:   colorGreen,
	ComponentVerify: colorBlue,
	ComponentDecode: colorCyan,
	ComponentConfig: colorYellow,
}

// ComponentHandler writes "LEVEL [COMPONENT] message key=value ..." lines
type ComponentHandler struct {
	out       io.Writer
	mu        *sync.Mutex
	level     slog.Leveler
	component Component
	useColors bool
	attrs     []slog.Attr
	prefix    string
}

// NewComponentHandler creates a handler that drops records below level
func NewComponentHandler(out io.Writer, component Component, level slog.Leveler, useColors bool) *ComponentHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ComponentHandler{
		out:       out,
		mu:        &sync.Mutex{},
		level:     level,
		component: component,
		useColors: useColors,
	}
}

func (h *ComponentHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats one record. Empty attributes are skipped.
func (h *ComponentHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	color, reset := componentColors[h.component], colorReset
	if !h.useColors {
		color, reset = "", ""
	}
	fmt.Fprintf(&b, "%s%-5s [%s]%s %s", color, r.Level.String(), h.component, reset, r.Message)

	write := func(a slog.Attr) bool {
		if a.Equal(slog.Attr{}) {
			return true
		}
		fmt.Fprintf(&b, " %s%s=%v", h.prefix, a.Key, a.Value.Resolve())
		return true
	}
	for _, a := range h.attrs {
		if !a.Equal(slog.Attr{}) {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Resolve())
		}
	}
	r.Attrs(write)
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// Logger wraps slog.Logger with its component
type Logger struct {
	*slog.Logger
	component Component
}

// New creates a component logger on stderr. Colors follow NO_COLOR and TERM.
func New(component Component, level slog.Leveler) *Logger {
	useColors := os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
	return NewWithWriter(component, os.Stderr, level, useColors)
}

// NewWithWriter creates a logger with a custom writer
func NewWithWriter(component Component, w io.Writer, level slog.Leveler, useColors bool) *Logger {
	return &Logger{
		Logger:    slog.New(NewComponentHandler(w, component, level, useColors)),
		component: component,
	}
}

// For returns a logger for another component sharing the same output and level
func (l *Logger) For(component Component) *Logger {
	h, ok := l.Handler().(*ComponentHandler)
	if !ok {
		return &Logger{Logger: l.Logger, component: component}
	}
	clone := *h
	clone.component = component
	return &Logger{Logger: slog.New(&clone), component: component}
}

// Component returns the tag of l
func (l *Logger) Component() Component {
	return l.component
}

// ParseLevel accepts debug, info, warn and error. Anything else is info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
