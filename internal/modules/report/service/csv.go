package service

import (
	"bytes"
	"strings"
)

// csvWriter quotes every field and doubles embedded quotes.
type csvWriter struct {
	buf bytes.Buffer
}

func (w *csvWriter) Write(fields ...string) {
	for i, field := range fields {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.buf.WriteByte('"')
		w.buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.buf.WriteByte('"')
	}
	w.buf.WriteByte('\n')
}

// WriteHeader writes the header row bare, matching the column names exactly.
func (w *csvWriter) WriteHeader(columns ...string) {
	w.buf.WriteString(strings.Join(columns, ","))
	w.buf.WriteByte('\n')
}

func (w *csvWriter) Bytes() []byte {
	return w.buf.Bytes()
}
