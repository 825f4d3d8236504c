package github

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutputWritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, []byte("previous=1\n"), 0644))

	out := ActionsOutput{OutputPath: path}
	require.NoError(t, out.SetOutput("preview-url", "https://foo.example.com"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	pattern := regexp.MustCompile(`^previous=1\npreview-url<<(ghadelimiter_[0-9a-f-]+)\nhttps://foo.example.com\n(ghadelimiter_[0-9a-f-]+)\n$`)
	match := pattern.FindStringSubmatch(string(data))
	require.NotNil(t, match, string(data))
	assert.Equal(t, match[1], match[2])
}

func TestSetOutputLegacyCommand(t *testing.T) {
	var stdout bytes.Buffer
	out := ActionsOutput{Stdout: &stdout}
	require.NoError(t, out.SetOutput("preview-url", "https://foo.example.com"))
	assert.Equal(t, "::set-output name=preview-url::https://foo.example.com\n", stdout.String())
}

func TestErrorAnnotationEscapesMessage(t *testing.T) {
	var stdout bytes.Buffer
	ErrorAnnotation(&stdout, "deploy failed\n100% broken")
	assert.Equal(t, "::error::deploy failed%0A100%25 broken\n", stdout.String())
}
