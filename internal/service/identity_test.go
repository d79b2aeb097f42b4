package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/orgdrive/orgdrive/internal/apperr"
	"github.com/orgdrive/orgdrive/internal/model"
)

func strPtr(s string) *string { return &s }

func TestResolveUnauthenticated(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.identity.Resolve(ctx, "")
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("Resolve(\"\") = %v, want ErrUnauthenticated", err)
	}

	_, err = e.identity.Resolve(ctx, "https://issuer|never-announced")
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("Resolve(unknown) = %v, want ErrUnauthenticated", err)
	}
}

func TestUpsertUserCreatesThenUpdates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tok := "https://issuer|sub1"

	err := e.identity.UpsertUser(ctx, tok, strPtr("Ada Lovelace"), nil)
	if err != nil {
		t.Fatalf("UpsertUser (create) failed: %v", err)
	}

	user, err := e.identity.Resolve(ctx, tok)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if user.Name == nil || *user.Name != "Ada Lovelace" {
		t.Errorf("name = %v, want Ada Lovelace", user.Name)
	}

	err = e.identity.UpsertUser(ctx, tok, strPtr("Ada L."), strPtr("http://img"))
	if err != nil {
		t.Fatalf("UpsertUser (update) failed: %v", err)
	}

	updated, err := e.identity.Resolve(ctx, tok)
	if err != nil {
		t.Fatalf("Resolve after update failed: %v", err)
	}
	if updated.ID != user.ID {
		t.Error("update created a second user row")
	}
	if updated.Name == nil || *updated.Name != "Ada L." {
		t.Errorf("name after update = %v, want Ada L.", updated.Name)
	}
}

func TestUpsertUserPartialEventKeepsProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tok := "https://issuer|sub1"

	err := e.identity.UpsertUser(ctx, tok, strPtr("Ada"), strPtr("http://img"))
	if err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	// provider events can carry empty profile fields; they must not wipe
	// what an earlier event wrote
	if err := e.identity.UpsertUser(ctx, tok, nil, nil); err != nil {
		t.Fatalf("partial UpsertUser failed: %v", err)
	}

	user, err := e.identity.Resolve(ctx, tok)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if user.Name == nil || *user.Name != "Ada" {
		t.Errorf("name after partial event = %v, want Ada", user.Name)
	}
	if user.Image == nil || *user.Image != "http://img" {
		t.Errorf("image after partial event = %v, want retained", user.Image)
	}
}

func TestMembershipEventOrdering(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tok := "https://issuer|sub1"

	// membership before the user exists is a provider-ordering bug
	err := e.identity.GrantMembership(ctx, tok, "orgA", model.RoleMember)
	if !errors.Is(err, apperr.ErrPrecursorMissing) {
		t.Errorf("GrantMembership before user = %v, want ErrPrecursorMissing", err)
	}

	if err := e.identity.UpsertUser(ctx, tok, strPtr("Ada"), nil); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	// role update before any membership is the same class of bug
	err = e.identity.UpdateMembershipRole(ctx, tok, "orgA", model.RoleAdmin)
	if !errors.Is(err, apperr.ErrPrecursorMissing) {
		t.Errorf("UpdateMembershipRole before grant = %v, want ErrPrecursorMissing", err)
	}

	if err := e.identity.GrantMembership(ctx, tok, "orgA", model.RoleMember); err != nil {
		t.Fatalf("GrantMembership failed: %v", err)
	}
	if err := e.identity.UpdateMembershipRole(ctx, tok, "orgA", model.RoleAdmin); err != nil {
		t.Fatalf("UpdateMembershipRole failed: %v", err)
	}

	user, err := e.identity.Resolve(ctx, tok)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got := user.RoleIn("orgA"); got != model.RoleAdmin {
		t.Errorf("role = %q, want admin", got)
	}
	if len(user.Memberships) != 1 {
		t.Errorf("memberships = %d, want 1", len(user.Memberships))
	}
}

func TestProfileLookup(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	err := e.identity.UpsertUser(ctx, "tok1", strPtr("Grace"), strPtr("http://img"))
	if err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	user, err := e.identity.Resolve(ctx, "tok1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	profile, err := e.identity.Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile.Name == nil || *profile.Name != "Grace" {
		t.Errorf("profile name = %v, want Grace", profile.Name)
	}

	_, err = e.identity.Profile(ctx, "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Profile(missing) = %v, want ErrNotFound", err)
	}
}

func TestRoleFromProvider(t *testing.T) {
	if got := model.RoleFromProvider("org:admin"); got != model.RoleAdmin {
		t.Errorf("RoleFromProvider(org:admin) = %q, want admin", got)
	}
	for _, role := range []string{"org:member", "basic_member", ""} {
		if got := model.RoleFromProvider(role); got != model.RoleMember {
			t.Errorf("RoleFromProvider(%q) = %q, want member", role, got)
		}
	}
}
