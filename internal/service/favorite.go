package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgdrive/orgdrive/internal/access"
	"github.com/orgdrive/orgdrive/internal/apperr"
	"github.com/orgdrive/orgdrive/internal/model"
	"github.com/orgdrive/orgdrive/internal/repository"
)

// FavoriteService owns the user<->file favorites relation. It reads file
// rows to enforce scope matching but never mutates them.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	files     repository.FileRepository
	retry     RetryPolicy
}

func NewFavoriteService(favorites repository.FavoriteRepository, files repository.FileRepository, retry RetryPolicy) *FavoriteService {
	return &FavoriteService{favorites: favorites, files: files, retry: retry}
}

// Favorite pins a file for the user. Favoriting twice is a no-op; the
// favorite always carries the file's own scope id.
func (s *FavoriteService) Favorite(ctx context.Context, user *model.User, fileID string) error {
	if user == nil {
		return apperr.ErrUnauthenticated
	}

	file, err := s.files.ByID(fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return fmt.Errorf("%w: file %s", apperr.ErrNotFound, fileID)
	}
	if err != nil {
		return err
	}

	if !access.CanFavorite(user, file) {
		return fmt.Errorf("%w: no access to the file's scope", apperr.ErrForbidden)
	}

	return s.retry.do(ctx, func() error {
		return s.favorites.Add(&model.Favorite{
			UserID:    user.ID,
			OrgID:     file.ScopeID,
			FileID:    file.ID,
			CreatedAt: time.Now().UTC(),
		})
	})
}

// Unfavorite removes the pin. Unfavoriting a file that was never favorited,
// or one that has been purged since, is a no-op.
func (s *FavoriteService) Unfavorite(ctx context.Context, user *model.User, fileID string) error {
	if user == nil {
		return apperr.ErrUnauthenticated
	}

	file, err := s.files.ByID(fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil // purge already cascaded the favorite row away
	}
	if err != nil {
		return err
	}

	if !access.CanFavorite(user, file) {
		return fmt.Errorf("%w: no access to the file's scope", apperr.ErrForbidden)
	}

	return s.retry.do(ctx, func() error {
		return s.favorites.Remove(user.ID, fileID)
	})
}

// ListFavorites returns the user's favorited files within a scope, same
// ordering and soft-fail behavior as listing files.
func (s *FavoriteService) ListFavorites(ctx context.Context, user *model.User, scope model.Scope) ([]*model.File, error) {
	if !access.CanListFiles(user, scope) {
		return []*model.File{}, nil
	}

	return s.favorites.Files(user.ID, scope.ID)
}
