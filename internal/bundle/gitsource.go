package bundle

import (
	"context"
	"log/slog"
	"os"

	git "github.com/go-git/go-git/v5"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
)

// CloneSource clones the module's source repository into a temporary
// workspace and returns the checkout path plus a cleanup function. Callers
// bundle from <path>/<source_dir> and must always invoke cleanup.
func CloneSource(ctx context.Context, repoURL string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "helpdocs-src-*")
	if err != nil {
		return "", nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, "create source workspace")
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			slog.Warn("Failed to clean up source workspace", "path", dir, "error", err)
		}
	}

	slog.Info("Cloning module sources", "url", repoURL, "path", dir)
	if _, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   repoURL,
		Depth: 1,
	}); err != nil {
		cleanup()
		return "", nil, apperrors.Wrap(err, apperrors.CategoryBundle, "clone source repository")
	}

	return dir, cleanup, nil
}
