package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/orgdrive/orgdrive/internal/model"
)

type FavoriteRepository interface {
	Add(fav *model.Favorite) error
	Remove(userID, fileID string) error
	Files(userID, scopeID string) ([]*model.File, error)
}

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts the favorite if absent. Duplicate favorites are no-ops; the
// (user_id, file_id) primary key dedupes.
func (r *favoriteRepository) Add(fav *model.Favorite) error {
	query := `INSERT INTO favorites (user_id, org_id, file_id, created_at) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, file_id) DO NOTHING`

	_, err := r.db.Exec(query, fav.UserID, fav.OrgID, fav.FileID, fav.CreatedAt)
	return storeErr("add favorite", err)
}

// Remove deletes the favorite row if present. An absent row is a no-op.
func (r *favoriteRepository) Remove(userID, fileID string) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND file_id = $2`

	_, err := r.db.Exec(query, userID, fileID)
	return storeErr("remove favorite", err)
}

// Files returns the user's favorited files within a scope, insertion order,
// excluding files sitting in the trash.
func (r *favoriteRepository) Files(userID, scopeID string) ([]*model.File, error) {
	query := `SELECT f.* FROM files f
	          JOIN favorites fav ON fav.file_id = f.id
	          WHERE fav.user_id = $1 AND fav.org_id = $2 AND f.marked_for_deletion = FALSE
	          ORDER BY f.created_at, f.id`

	files := []*model.File{}
	err := r.db.Select(&files, query, userID, scopeID)
	if err != nil {
		return nil, storeErr("favorite files", err)
	}

	return files, nil
}
