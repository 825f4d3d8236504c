package preview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/diggerhq/deploy-preview/pkg/ci"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const MarkerPrefix = "Deploy preview for _website_ ready!"

func FormatBody(commit string, url string) string {
	return strings.Join([]string{
		MarkerPrefix,
		fmt.Sprintf("Built with commit %s", commit),
		fmt.Sprintf("https://%s", url),
	}, "\n")
}

// FindMarkerComment returns the first comment starting with MarkerPrefix.
func FindMarkerComment(comments []ci.Comment) (ci.Comment, bool) {
	return lo.Find(comments, func(c ci.Comment) bool {
		return c.Body != nil && strings.HasPrefix(*c.Body, MarkerPrefix)
	})
}

// UpsertComment edits the marker comment found among comments when there is
// one and creates it otherwise. Later marker duplicates are left untouched.
func UpsertComment(ctx context.Context, svc ci.CommentService, comments []ci.Comment, body string) (*ci.Comment, error) {
	if existing, ok := FindMarkerComment(comments); ok {
		slog.Info("Updating existing preview comment", "commentId", existing.Id)
		comment, err := svc.UpdateComment(ctx, existing.Id, body)
		if err != nil {
			return nil, errors.Wrap(err, "could not update preview comment")
		}
		return comment, nil
	}

	slog.Info("Creating preview comment")
	comment, err := svc.CreateComment(ctx, body)
	if err != nil {
		return nil, errors.Wrap(err, "could not create preview comment")
	}
	return comment, nil
}
