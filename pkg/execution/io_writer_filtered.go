package execution

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"sync"
)

// FilteringWriter forwards complete lines to the wrapped writer as soon as
// they are written, replacing anything matching pattern with <REDACTED>.
// A trailing partial line is held until Flush.
type FilteringWriter struct {
	mu      sync.Mutex
	writer  io.Writer
	pending bytes.Buffer
	pattern *regexp.Regexp
}

func NewFilteringWriter(w io.Writer, pattern *regexp.Regexp) *FilteringWriter {
	return &FilteringWriter{
		writer:  w,
		pattern: pattern,
	}
}

func (fw *FilteringWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.pending.Write(p)
	for {
		idx := bytes.IndexByte(fw.pending.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := fw.pending.Next(idx + 1)
		if err := fw.emit(line); err != nil {
			return 0, err
		}
	}
	// Return original length to maintain compatibility
	return len(p), nil
}

// Flush writes out whatever is left after the last newline.
func (fw *FilteringWriter) Flush() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.pending.Len() == 0 {
		return nil
	}
	line := append(fw.pending.Bytes(), '\n')
	fw.pending.Reset()
	return fw.emit(line)
}

func (fw *FilteringWriter) emit(line []byte) error {
	if fw.writer == nil {
		return nil
	}
	if fw.pattern != nil {
		line = fw.pattern.ReplaceAll(line, []byte("<REDACTED>"))
	}
	_, err := fw.writer.Write(line)
	return err
}

// SecretsPattern builds a pattern matching any of the given literal secrets.
// Empty secrets are skipped; nil is returned when nothing is left.
func SecretsPattern(secrets []string) *regexp.Regexp {
	quoted := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			quoted = append(quoted, regexp.QuoteMeta(s))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

func RedactSecrets(args []string, pattern *regexp.Regexp) []string {
	redacted := make([]string, len(args))
	for i, s := range args {
		if pattern != nil {
			s = pattern.ReplaceAllString(s, "<REDACTED>")
		}
		redacted[i] = s
	}
	return redacted
}
