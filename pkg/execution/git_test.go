package execution

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastCommitMessage(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>hi</h1>"), 0644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("index.html")
	require.NoError(t, err)
	_, err = wt.Commit("  Add landing page\n\nCloses #4\n\n", &git.CommitOptions{
		Author: &object.Signature{Name: "veziak", Email: "veziak@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	subdir := filepath.Join(dir, "site")
	require.NoError(t, os.Mkdir(subdir, 0755))

	message, err := LastCommitMessage(subdir)
	require.NoError(t, err)
	assert.Equal(t, "Add landing page\n\nCloses #4", message)
}

func TestLastCommitMessageNotARepository(t *testing.T) {
	_, err := LastCommitMessage(t.TempDir())
	assert.Error(t, err)
}
