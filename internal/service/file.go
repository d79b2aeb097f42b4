package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/orgdrive/orgdrive/internal/access"
	"github.com/orgdrive/orgdrive/internal/apperr"
	"github.com/orgdrive/orgdrive/internal/model"
	"github.com/orgdrive/orgdrive/internal/repository"
	"github.com/orgdrive/orgdrive/internal/storage"
	"github.com/orgdrive/orgdrive/internal/validation"
)

// FileService owns file records and their lifecycle: create -> active ->
// marked for deletion -> purged. Every entry point checks the access policy
// before touching a row.
type FileService struct {
	files      repository.FileRepository
	storage    storage.Storage
	nameMaxLen int
	retry      RetryPolicy
}

func NewFileService(files repository.FileRepository, storage storage.Storage, nameMaxLen int, retry RetryPolicy) *FileService {
	return &FileService{
		files:      files,
		storage:    storage,
		nameMaxLen: nameMaxLen,
		retry:      retry,
	}
}

// PresignUpload hands the caller a URL to upload file bytes to, plus the
// storage key to echo back into CreateFile. No core state changes here.
func (s *FileService) PresignUpload(ctx context.Context, user *model.User) (url, storageRef string, err error) {
	if user == nil {
		return "", "", apperr.ErrUnauthenticated
	}

	key := "uploads/" + uuid.New().String()
	url, err = s.storage.PresignUpload(ctx, key)
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return url, key, nil
}

// CreateFile inserts a new active file record. Two identical calls create
// two records; creation is deliberately not deduplicated by content.
func (s *FileService) CreateFile(ctx context.Context, user *model.User, name, fileType string, scope model.Scope, storageRef string) (*model.File, error) {
	if user == nil {
		return nil, apperr.ErrUnauthenticated
	}

	err := validation.ValidateFileName(name, s.nameMaxLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	err = validation.ValidateFileType(fileType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	if storageRef == "" {
		return nil, fmt.Errorf("%w: storage reference is required", apperr.ErrInvalidArgument)
	}

	if !access.CanCreateFile(user, scope) {
		return nil, fmt.Errorf("%w: no access to scope", apperr.ErrForbidden)
	}

	file := &model.File{
		ID:                uuid.New().String(),
		Name:              name,
		Type:              fileType,
		ScopeKind:         scope.Kind,
		ScopeID:           scope.ID,
		StorageRef:        storageRef,
		CreatorID:         user.ID,
		MarkedForDeletion: false,
		// UTC so the sweeper's keyset cursor compares equal after a
		// round trip through either driver
		CreatedAt: time.Now().UTC(),
	}

	err = s.retry.do(ctx, func() error { return s.files.Create(file) })
	if err != nil {
		return nil, err
	}

	slog.Info("file created", "file_id", file.ID, "scope_kind", file.ScopeKind, "scope_id", file.ScopeID, "creator_id", user.ID)
	return file, nil
}

// ListFiles returns the scope's files in insertion order. Callers without
// access (including unauthenticated ones) get an empty list, not an error;
// listing degrades softly by contract.
func (s *FileService) ListFiles(ctx context.Context, user *model.User, scope model.Scope, filter repository.FileFilter) ([]*model.File, error) {
	if !access.CanListFiles(user, scope) {
		return []*model.File{}, nil
	}

	return s.files.Files(scope, filter)
}

// MarkForDeletion flags the file for the sweeper. Only the creator or an
// admin of the file's org may do this.
func (s *FileService) MarkForDeletion(ctx context.Context, user *model.User, fileID string) error {
	return s.setMarked(ctx, user, fileID, true)
}

// Restore clears the deletion flag. Restoring a file that is not marked is
// a no-op, not an error.
func (s *FileService) Restore(ctx context.Context, user *model.User, fileID string) error {
	return s.setMarked(ctx, user, fileID, false)
}

func (s *FileService) setMarked(ctx context.Context, user *model.User, fileID string, marked bool) error {
	if user == nil {
		return apperr.ErrUnauthenticated
	}

	file, err := s.byID(fileID)
	if err != nil {
		return err
	}

	if !access.CanMutateFile(user, file) {
		return fmt.Errorf("%w: only the creator or an org admin may change the deletion flag", apperr.ErrForbidden)
	}

	err = s.retry.do(ctx, func() error { return s.files.SetMarkedForDeletion(fileID, marked) })
	if errors.Is(err, repository.ErrFileNotFound) {
		// purged between the read and the write
		return fmt.Errorf("%w: file %s", apperr.ErrNotFound, fileID)
	}
	return err
}

// Purge irreversibly removes a marked file: its favorite rows and row go in
// one conditional transaction, then the backing object is deleted. Internal
// only; end users never call this, the sweeper does. The conditional delete
// makes a purge/restore race resolve to exactly one winner, so the blob is
// removed at most once.
func (s *FileService) Purge(ctx context.Context, fileID string) error {
	file, err := s.byID(fileID)
	if err != nil {
		return err
	}

	err = s.retry.do(ctx, func() error { return s.files.Purge(fileID) })
	if errors.Is(err, repository.ErrFileNotFound) {
		// already purged, or restored since it was selected
		return fmt.Errorf("%w: file %s not purgeable", apperr.ErrNotFound, fileID)
	}
	if err != nil {
		return err
	}

	// Row and favorites are gone; the object delete is best effort. A
	// leaked object is re-deletable by bucket lifecycle rules, a dangling
	// row is not.
	err = s.storage.Delete(ctx, file.StorageRef)
	if err != nil {
		slog.Warn("failed to delete backing object", "file_id", fileID, "storage_ref", file.StorageRef, "error", err)
	}

	slog.Info("file purged", "file_id", fileID)
	return nil
}

func (s *FileService) byID(fileID string) (*model.File, error) {
	file, err := s.files.ByID(fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil, fmt.Errorf("%w: file %s", apperr.ErrNotFound, fileID)
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}
