package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/exp/slog"
)

func InitLogging(options LoggingOptions, out io.Writer) {
	handler := NewLogHandler(out, &slog.HandlerOptions{
		Level:     ParseLogLevel(options.Level),
		AddSource: options.AddSource,
	})
	slog.SetDefault(slog.New(handler))
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Writes one line per record: time, level, source (optional), message and
// the attributes as key=value pairs.
type LogHandler struct {
	level      slog.Leveler
	add_source bool
	attrs      []slog.Attr
	group      string
	mu         *sync.Mutex
	out        io.Writer
}

func NewLogHandler(o io.Writer, opts *slog.HandlerOptions) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	return &LogHandler{
		out:        o,
		level:      level,
		add_source: opts.AddSource,
		mu:         &sync.Mutex{},
	}
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handler := *h
	handler.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	handler.attrs = append(handler.attrs, h.attrs...)
	for _, a := range attrs {
		handler.attrs = append(handler.attrs, h._Qualify(a))
	}
	return &handler
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	handler := *h
	if handler.group == "" {
		handler.group = name
	} else {
		handler.group += "." + name
	}
	return &handler
}

func (h *LogHandler) _Qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}
	return slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	strs := []string{formattedTime, r.Level.String()}
	if h.add_source && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		strs = append(strs, fmt.Sprintf("%s:%d", frame.File, frame.Line))
	}
	strs = append(strs, r.Message)

	for _, a := range h.attrs {
		strs = append(strs, a.Key+"="+a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		a = h._Qualify(a)
		strs = append(strs, a.Key+"="+a.Value.String())
		return true
	})

	b := []byte(strings.Join(strs, " ") + "\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(b)
	return err
}
