package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/orgdrive/orgdrive/internal/model"
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByTokenIdentifier(tokenIdentifier string) (*model.User, error)
	UpdateProfile(tokenIdentifier string, name, image *string) error
	Memberships(userID string) ([]model.Membership, error)
	UpsertMembership(m *model.Membership) error
	UpdateMembershipRole(userID, orgID, role string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, token_identifier, name, image, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, user.ID, user.TokenIdentifier, user.Name, user.Image, user.CreatedAt)
	return storeErr("create user", err)
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storeErr("user by id", err)
	}

	return user, nil
}

func (r *userRepository) ByTokenIdentifier(tokenIdentifier string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE token_identifier = $1`

	err := r.db.Get(user, query, tokenIdentifier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storeErr("user by token identifier", err)
	}

	return user, nil
}

// UpdateProfile writes the provider-supplied profile fields. Nil fields
// keep their stored value; a partial provider event never erases a profile.
func (r *userRepository) UpdateProfile(tokenIdentifier string, name, image *string) error {
	query := `UPDATE users SET name = COALESCE($1, name), image = COALESCE($2, image) WHERE token_identifier = $3`

	result, err := r.db.Exec(query, name, image, tokenIdentifier)
	if err != nil {
		return storeErr("update user profile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("update user profile", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Memberships(userID string) ([]model.Membership, error) {
	var memberships []model.Membership
	query := `SELECT * FROM memberships WHERE user_id = $1 ORDER BY created_at, org_id`

	err := r.db.Select(&memberships, query, userID)
	if err != nil {
		return nil, storeErr("memberships", err)
	}

	return memberships, nil
}

// UpsertMembership grants a membership, or replaces the role if the user
// already holds one in the org. The whole (user, org) -> role entry is
// written in one statement; no read-modify-write of a shared list.
func (r *userRepository) UpsertMembership(m *model.Membership) error {
	query := `INSERT INTO memberships (user_id, org_id, role, created_at) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, org_id) DO UPDATE SET role = excluded.role`

	_, err := r.db.Exec(query, m.UserID, m.OrgID, m.Role, m.CreatedAt)
	return storeErr("upsert membership", err)
}

func (r *userRepository) UpdateMembershipRole(userID, orgID, role string) error {
	query := `UPDATE memberships SET role = $1 WHERE user_id = $2 AND org_id = $3`

	result, err := r.db.Exec(query, role, userID, orgID)
	if err != nil {
		return storeErr("update membership role", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("update membership role", err)
	}
	if rows == 0 {
		return ErrMembershipNotFound
	}

	return nil
}
