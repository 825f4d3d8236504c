package github

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ActionsOutput writes step outputs the way the runner expects them.
type ActionsOutput struct {
	// OutputPath is the file named by GITHUB_OUTPUT. When empty the legacy
	// set-output workflow command is written to Stdout instead.
	OutputPath string
	Stdout     io.Writer
}

func NewActionsOutput() ActionsOutput {
	return ActionsOutput{
		OutputPath: os.Getenv("GITHUB_OUTPUT"),
		Stdout:     os.Stdout,
	}
}

func (o ActionsOutput) SetOutput(key string, value string) error {
	slog.Info("Setting step output", "key", key, "value", value)
	if o.OutputPath == "" {
		_, err := fmt.Fprintf(o.Stdout, "::set-output name=%s::%s\n", key, escapeData(value))
		return err
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(key, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("unexpected input: output should not contain the delimiter %v", delimiter)
	}

	f, err := os.OpenFile(o.OutputPath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("could not open output file %v: %w", o.OutputPath, err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
	if err != nil {
		return fmt.Errorf("could not write output %v: %w", key, err)
	}
	return nil
}

// ErrorAnnotation prints an error workflow command, which the runner shows
// as the failure reason of the step.
func ErrorAnnotation(w io.Writer, message string) {
	fmt.Fprintf(w, "::error::%s\n", escapeData(message))
}

func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
