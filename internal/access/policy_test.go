package access_test

import (
	"testing"

	"github.com/orgdrive/orgdrive/internal/access"
	"github.com/orgdrive/orgdrive/internal/model"
)

func userWith(id string, memberships ...model.Membership) *model.User {
	return &model.User{ID: id, Memberships: memberships}
}

func TestCanListFilesOrgScope(t *testing.T) {
	member := userWith("u1", model.Membership{UserID: "u1", OrgID: "orgA", Role: model.RoleMember})
	outsider := userWith("u2")

	if !access.CanListFiles(member, model.OrgScope("orgA")) {
		t.Error("member should list files in orgA")
	}
	if access.CanListFiles(member, model.OrgScope("orgB")) {
		t.Error("member of orgA should not list files in orgB")
	}
	if access.CanListFiles(outsider, model.OrgScope("orgA")) {
		t.Error("user with zero memberships should be denied")
	}
	if access.CanListFiles(nil, model.OrgScope("orgA")) {
		t.Error("nil user should be denied")
	}
}

func TestCanListFilesPersonalScope(t *testing.T) {
	u := userWith("u1")

	if !access.CanListFiles(u, model.PersonalScope("u1")) {
		t.Error("owner should list files in own personal scope")
	}
	if access.CanListFiles(u, model.PersonalScope("u2")) {
		t.Error("non-owner should not list another user's personal scope")
	}
}

func TestCanCreateFileMirrorsListing(t *testing.T) {
	member := userWith("u1", model.Membership{UserID: "u1", OrgID: "orgA", Role: model.RoleMember})

	if !access.CanCreateFile(member, model.OrgScope("orgA")) {
		t.Error("org member should create files in the org")
	}
	if access.CanCreateFile(member, model.PersonalScope("u9")) {
		t.Error("creating in someone else's personal scope should be denied")
	}
}

func TestCanMutateFile(t *testing.T) {
	file := &model.File{ID: "f1", ScopeKind: model.ScopeOrg, ScopeID: "orgA", CreatorID: "creator"}

	creator := userWith("creator")
	admin := userWith("adm", model.Membership{UserID: "adm", OrgID: "orgA", Role: model.RoleAdmin})
	member := userWith("mem", model.Membership{UserID: "mem", OrgID: "orgA", Role: model.RoleMember})
	otherAdmin := userWith("oa", model.Membership{UserID: "oa", OrgID: "orgB", Role: model.RoleAdmin})

	if !access.CanMutateFile(creator, file) {
		t.Error("creator should be able to mutate own file")
	}
	if !access.CanMutateFile(admin, file) {
		t.Error("org admin should be able to mutate org file")
	}
	if access.CanMutateFile(member, file) {
		t.Error("plain member should not mutate another user's file")
	}
	if access.CanMutateFile(otherAdmin, file) {
		t.Error("admin of a different org should be denied")
	}
}

func TestCanMutateFilePersonalScope(t *testing.T) {
	file := &model.File{ID: "f1", ScopeKind: model.ScopeUser, ScopeID: "owner", CreatorID: "owner"}

	if !access.CanMutateFile(userWith("owner"), file) {
		t.Error("owner should mutate personal file")
	}
	// admin role elsewhere grants nothing on a personal file
	admin := userWith("adm", model.Membership{UserID: "adm", OrgID: "orgA", Role: model.RoleAdmin})
	if access.CanMutateFile(admin, file) {
		t.Error("org admin should not mutate a personal file")
	}
}

func TestCanFavorite(t *testing.T) {
	file := &model.File{ID: "f1", ScopeKind: model.ScopeOrg, ScopeID: "orgA"}
	member := userWith("u1", model.Membership{UserID: "u1", OrgID: "orgA", Role: model.RoleMember})

	if !access.CanFavorite(member, file) {
		t.Error("org member should favorite org file")
	}
	if access.CanFavorite(userWith("u2"), file) {
		t.Error("outsider should not favorite org file")
	}
}
