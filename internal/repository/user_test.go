package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/orgdrive/orgdrive/internal/model"
	"github.com/orgdrive/orgdrive/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestUserCreateAndLookup(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	user := &model.User{
		ID:              "u1",
		TokenIdentifier: "https://issuer|sub1",
		Name:            strPtr("Ada"),
		CreatedAt:       time.Now(),
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.ByTokenIdentifier("https://issuer|sub1")
	if err != nil {
		t.Fatalf("ByTokenIdentifier failed: %v", err)
	}
	if got.ID != "u1" || got.Name == nil || *got.Name != "Ada" {
		t.Errorf("got user %+v, want id=u1 name=Ada", got)
	}

	_, err = repo.ByTokenIdentifier("https://issuer|nobody")
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("unknown token lookup = %v, want ErrUserNotFound", err)
	}
}

func TestUserUpdateProfile(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	user := &model.User{ID: "u1", TokenIdentifier: "tok1", CreatedAt: time.Now()}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := repo.UpdateProfile("tok1", strPtr("Grace"), strPtr("http://img"))
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	got, err := repo.ByID("u1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.Name == nil || *got.Name != "Grace" {
		t.Errorf("name not updated: %+v", got)
	}

	err = repo.UpdateProfile("missing", strPtr("x"), nil)
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("UpdateProfile for missing user = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateProfileKeepsFieldsOnNil(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	user := &model.User{ID: "u1", TokenIdentifier: "tok1", Name: strPtr("Grace"), Image: strPtr("http://img"), CreatedAt: time.Now()}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// a partial update must not erase the fields it omits
	if err := repo.UpdateProfile("tok1", strPtr("Grace H."), nil); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	got, err := repo.ByID("u1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.Name == nil || *got.Name != "Grace H." {
		t.Errorf("name = %v, want Grace H.", got.Name)
	}
	if got.Image == nil || *got.Image != "http://img" {
		t.Errorf("image = %v, want the original value", got.Image)
	}

	if err := repo.UpdateProfile("tok1", nil, nil); err != nil {
		t.Fatalf("all-nil UpdateProfile failed: %v", err)
	}
	got, err = repo.ByID("u1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.Name == nil || *got.Name != "Grace H." {
		t.Errorf("all-nil update erased the name: %v", got.Name)
	}
}

func TestMembershipUpsertReplacesRole(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	if err := repo.Create(&model.User{ID: "u1", TokenIdentifier: "tok1", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m := &model.Membership{UserID: "u1", OrgID: "orgA", Role: model.RoleMember, CreatedAt: time.Now()}
	if err := repo.UpsertMembership(m); err != nil {
		t.Fatalf("UpsertMembership failed: %v", err)
	}

	// same org again with a different role replaces, never duplicates
	m.Role = model.RoleAdmin
	if err := repo.UpsertMembership(m); err != nil {
		t.Fatalf("second UpsertMembership failed: %v", err)
	}

	memberships, err := repo.Memberships("u1")
	if err != nil {
		t.Fatalf("Memberships failed: %v", err)
	}
	if len(memberships) != 1 {
		t.Fatalf("got %d memberships, want 1", len(memberships))
	}
	if memberships[0].Role != model.RoleAdmin {
		t.Errorf("role = %q, want admin", memberships[0].Role)
	}
}

func TestUpdateMembershipRole(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	if err := repo.Create(&model.User{ID: "u1", TokenIdentifier: "tok1", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.UpsertMembership(&model.Membership{UserID: "u1", OrgID: "orgA", Role: model.RoleMember, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("UpsertMembership failed: %v", err)
	}

	if err := repo.UpdateMembershipRole("u1", "orgA", model.RoleAdmin); err != nil {
		t.Fatalf("UpdateMembershipRole failed: %v", err)
	}

	err := repo.UpdateMembershipRole("u1", "orgB", model.RoleAdmin)
	if !errors.Is(err, repository.ErrMembershipNotFound) {
		t.Errorf("update of missing membership = %v, want ErrMembershipNotFound", err)
	}
}
