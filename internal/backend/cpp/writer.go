package cpp

import (
	"fmt"
	"io"
	"strings"
)

// writer is an indentation-aware text sink. Indentation is two spaces per
// level and is inserted at the start of every line. The first write error
// sticks; emission code never checks writes individually.
type writer struct {
	w           io.Writer
	err         error
	depth       int
	atLineStart bool
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w, atLineStart: true}
}

func (w *writer) Indent()   { w.depth++ }
func (w *writer) Unindent() { w.depth-- }

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// ws writes s, prefixing indentation at each line start.
func (w *writer) ws(s string) {
	for s != "" {
		nl := strings.IndexByte(s, '\n')
		line := s
		if nl >= 0 {
			line = s[:nl+1]
			s = s[nl+1:]
		} else {
			s = ""
		}
		if w.atLineStart && line != "\n" {
			w.raw(strings.Repeat("  ", w.depth))
		}
		w.raw(line)
		w.atLineStart = nl >= 0
	}
}

func (w *writer) printf(format string, args ...any) {
	w.ws(fmt.Sprintf(format, args...))
}

// wsNoIndent writes s at column zero regardless of the current depth.
// Block labels use this.
func (w *writer) wsNoIndent(s string) {
	w.raw(s)
	w.atLineStart = strings.HasSuffix(s, "\n")
}
