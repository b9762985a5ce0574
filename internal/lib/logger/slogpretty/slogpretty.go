package slogpretty

import (
	"context"
	"encoding/json"
	"io"
	stdLog "log"
	"log/slog"
	"maps"

	"github.com/fatih/color"
)

type PrettyHandlerOptions struct {
	SlogOpts *slog.HandlerOptions
	// NoColor turns off ANSI colours, e.g. when writing to a file.
	NoColor bool
}

type PrettyHandler struct {
	opts PrettyHandlerOptions
	slog.Handler
	l      *stdLog.Logger
	fields map[string]any
	groups []string
}

func (opts PrettyHandlerOptions) NewPrettyHandler(out io.Writer) *PrettyHandler {
	return &PrettyHandler{
		opts:    opts,
		Handler: slog.NewJSONHandler(out, opts.SlogOpts),
		l:       stdLog.New(out, "", 0),
	}
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = h.paint(color.FgMagenta, level)
	case slog.LevelInfo:
		level = h.paint(color.FgBlue, level)
	case slog.LevelWarn:
		level = h.paint(color.FgYellow, level)
	case slog.LevelError:
		level = h.paint(color.FgRed, level)
	}

	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	fields := withAttrs(h.fields, h.groups, attrs)

	var b []byte
	var err error

	if len(fields) > 0 {
		b, err = json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
	}

	timeStr := r.Time.Format("[15:04:05.000]")
	msg := h.paint(color.FgCyan, r.Message)

	h.l.Println(
		timeStr,
		level,
		msg,
		h.paint(color.FgWhite, string(b)),
	)

	return nil
}

func (h *PrettyHandler) paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	if h.opts.NoColor {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{
		opts:    h.opts,
		Handler: h.Handler.WithAttrs(attrs),
		l:       h.l,
		fields:  withAttrs(h.fields, h.groups, attrs),
		groups:  h.groups,
	}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &PrettyHandler{
		opts:    h.opts,
		Handler: h.Handler.WithGroup(name),
		l:       h.l,
		fields:  h.fields,
		groups:  append(append([]string(nil), h.groups...), name),
	}
}

// withAttrs returns a copy of root with attrs added under the group path.
// root itself is never modified, so handlers can share it.
func withAttrs(root map[string]any, path []string, attrs []slog.Attr) map[string]any {
	if len(attrs) == 0 {
		return root
	}
	out := make(map[string]any, len(root)+len(attrs))
	maps.Copy(out, root)
	if len(path) > 0 {
		child, _ := out[path[0]].(map[string]any)
		out[path[0]] = withAttrs(child, path[1:], attrs)
		return out
	}
	for _, a := range attrs {
		addAttr(out, a)
	}
	return out
}

func addAttr(m map[string]any, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		if a.Key != "" {
			m[a.Key] = v.Any()
		}
		return
	}
	group := v.Group()
	if len(group) == 0 {
		return
	}
	if a.Key == "" {
		for _, ga := range group {
			addAttr(m, ga)
		}
		return
	}
	prev, _ := m[a.Key].(map[string]any)
	m[a.Key] = withAttrs(prev, nil, group)
}
