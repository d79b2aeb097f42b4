package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orgdrive/orgdrive/internal/model"
)

// FileFilter narrows a scope listing. Zero value lists the default view:
// all live files, no trash.
type FileFilter struct {
	Trash       bool   // list only files marked for deletion
	Type        string // restrict to a declared type
	Query       string // case-insensitive name substring
	FavoritedBy string // restrict to files this user has favorited
}

type FileRepository interface {
	Create(file *model.File) error
	ByID(id string) (*model.File, error)
	Files(scope model.Scope, filter FileFilter) ([]*model.File, error)
	SetMarkedForDeletion(id string, marked bool) error
	MarkedPage(afterCreatedAt time.Time, afterID string, limit int) ([]*model.File, error)
	Purge(id string) error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	query := `INSERT INTO files (id, name, type, scope_kind, scope_id, storage_ref, creator_id, marked_for_deletion, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		file.ID,
		file.Name,
		file.Type,
		file.ScopeKind,
		file.ScopeID,
		file.StorageRef,
		file.CreatorID,
		file.MarkedForDeletion,
		file.CreatedAt,
	)

	return storeErr("create file", err)
}

func (r *fileRepository) ByID(id string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = $1`

	err := r.db.Get(file, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, storeErr("file by id", err)
	}

	return file, nil
}

// Files lists a scope in insertion order (oldest first). The default view
// hides files marked for deletion; the trash view shows only those.
func (r *fileRepository) Files(scope model.Scope, filter FileFilter) ([]*model.File, error) {
	query := `SELECT * FROM files WHERE scope_kind = $1 AND scope_id = $2 AND marked_for_deletion = $3`
	args := []any{scope.Kind, scope.ID, filter.Trash}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(` AND name LIKE $%d`, len(args))
	}
	if filter.FavoritedBy != "" {
		args = append(args, filter.FavoritedBy)
		query += fmt.Sprintf(` AND id IN (SELECT file_id FROM favorites WHERE user_id = $%d)`, len(args))
	}
	query += ` ORDER BY created_at, id`

	files := []*model.File{}
	err := r.db.Select(&files, query, args...)
	if err != nil {
		return nil, storeErr("list files", err)
	}

	return files, nil
}

func (r *fileRepository) SetMarkedForDeletion(id string, marked bool) error {
	query := `UPDATE files SET marked_for_deletion = $1 WHERE id = $2`

	result, err := r.db.Exec(query, marked, id)
	if err != nil {
		return storeErr("set marked for deletion", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("set marked for deletion", err)
	}
	if rows == 0 {
		return ErrFileNotFound
	}

	return nil
}

// MarkedPage returns the next page of files marked for deletion, keyset
// paginated by (created_at, id) so a scan can resume after any row.
func (r *fileRepository) MarkedPage(afterCreatedAt time.Time, afterID string, limit int) ([]*model.File, error) {
	query := `SELECT * FROM files
	          WHERE marked_for_deletion = TRUE
	            AND (created_at > $1 OR (created_at = $1 AND id > $2))
	          ORDER BY created_at, id
	          LIMIT $3`

	files := []*model.File{}
	err := r.db.Select(&files, query, afterCreatedAt, afterID, limit)
	if err != nil {
		return nil, storeErr("marked page", err)
	}

	return files, nil
}

// Purge removes the file row and its favorite rows in one transaction.
// Favorites go first so the delete order satisfies the favorites -> files
// foreign key on stores that enforce it. The row delete is conditional on
// the file still being marked for deletion, so a racing restore (or a
// second purge) observes zero affected rows, gets ErrFileNotFound, and the
// rollback puts its favorites back. Exactly one caller ever wins for a
// given id.
func (r *fileRepository) Purge(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return storeErr("purge begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`DELETE FROM favorites WHERE file_id = $1`, id)
	if err != nil {
		return storeErr("purge favorites", err)
	}

	result, err := tx.Exec(`DELETE FROM files WHERE id = $1 AND marked_for_deletion = TRUE`, id)
	if err != nil {
		return storeErr("purge file", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("purge file", err)
	}
	if rows == 0 {
		return ErrFileNotFound
	}

	err = tx.Commit()
	return storeErr("purge commit", err)
}
