// Package access is the pure authorization policy. It decides from a user's
// memberships alone, with no storage or network access, so it can be tested
// in isolation.
package access

import (
	"github.com/orgdrive/orgdrive/internal/model"
)

// CanListFiles reports whether user may list (or favorite) files in scope.
// Org scope requires any membership in the org; personal scope requires the
// user to be the scope owner.
func CanListFiles(user *model.User, scope model.Scope) bool {
	if user == nil {
		return false
	}
	if scope.IsPersonal() {
		return user.ID == scope.ID
	}
	return user.RoleIn(scope.ID) != ""
}

// CanCreateFile reports whether user may create a file in scope. Same rule
// as listing: membership for org scope, ownership for personal scope.
func CanCreateFile(user *model.User, scope model.Scope) bool {
	return CanListFiles(user, scope)
}

// CanFavorite reports whether user may favorite or unfavorite a file.
func CanFavorite(user *model.User, file *model.File) bool {
	return CanListFiles(user, file.Scope())
}

// CanMutateFile reports whether user may mark the file for deletion or
// restore it: the file's creator always can, and so can an org admin when
// the file lives in an org scope.
func CanMutateFile(user *model.User, file *model.File) bool {
	if user == nil {
		return false
	}
	if user.ID == file.CreatorID {
		return true
	}
	if file.ScopeKind == model.ScopeOrg {
		return user.RoleIn(file.ScopeID) == model.RoleAdmin
	}
	return false
}
