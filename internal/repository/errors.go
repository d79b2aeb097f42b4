package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/orgdrive/orgdrive/internal/apperr"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrMembershipNotFound = errors.New("membership not found")
)

// storeErr classifies a driver failure. Row-absence is handled per-query
// with the sentinels above; anything else that reaches here is a backing
// store failure and is surfaced as StoreUnavailable so callers can apply
// their bounded retry.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", apperr.ErrStoreUnavailable, op, err)
}
