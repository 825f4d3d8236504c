package execution

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-git/go-git/v5"
)

// LastCommitMessage returns the trimmed message of the HEAD commit of the
// repository containing dir.
func LastCommitMessage(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("could not open git repository at %v: %w", dir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("could not resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("could not read commit %v: %w", head.Hash(), err)
	}
	slog.Debug("Read last commit", "hash", head.Hash().String())
	return strings.TrimSpace(commit.Message), nil
}
