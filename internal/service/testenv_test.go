package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/orgdrive/orgdrive/internal/db"
	"github.com/orgdrive/orgdrive/internal/model"
	"github.com/orgdrive/orgdrive/internal/repository"
	"github.com/orgdrive/orgdrive/internal/service"
)

// fakeStorage records blob deletes so tests can assert the backing object
// is removed exactly once.
type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) PresignUpload(ctx context.Context, key string) (string, error) {
	return "https://blob.test/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type env struct {
	db        *sqlx.DB
	storage   *fakeStorage
	users     repository.UserRepository
	files     repository.FileRepository
	favorites repository.FavoriteRepository

	identity *service.IdentityService
	file     *service.FileService
	favorite *service.FavoriteService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	blob := &fakeStorage{}
	users := repository.NewUserRepository(database)
	files := repository.NewFileRepository(database)
	favorites := repository.NewFavoriteRepository(database)

	retry := service.RetryPolicy{} // no retries in tests
	fileSvc := service.NewFileService(files, blob, 200, retry)

	return &env{
		db:        database,
		storage:   blob,
		users:     users,
		files:     files,
		favorites: favorites,
		identity:  service.NewIdentityService(users, retry),
		file:      fileSvc,
		favorite:  service.NewFavoriteService(favorites, files, retry),
	}
}

func (e *env) sweeper(pageSize, maxPages int) *service.Sweeper {
	return service.NewSweeper(e.files, e.file, time.Minute, pageSize, maxPages)
}

func orgAdmin(id, orgID string) *model.User {
	return &model.User{ID: id, Memberships: []model.Membership{{UserID: id, OrgID: orgID, Role: model.RoleAdmin}}}
}

func orgMember(id, orgID string) *model.User {
	return &model.User{ID: id, Memberships: []model.Membership{{UserID: id, OrgID: orgID, Role: model.RoleMember}}}
}
