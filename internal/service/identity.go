package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/orgdrive/orgdrive/internal/apperr"
	"github.com/orgdrive/orgdrive/internal/model"
	"github.com/orgdrive/orgdrive/internal/repository"
)

// IdentityService owns user rows and memberships. Users come into existence
// through identity provider webhooks only; this core never verifies
// credentials itself.
type IdentityService struct {
	users repository.UserRepository
	retry RetryPolicy
}

func NewIdentityService(users repository.UserRepository, retry RetryPolicy) *IdentityService {
	return &IdentityService{users: users, retry: retry}
}

// Resolve maps a verified token identifier to the durable user record,
// memberships included. An empty identifier, or one the provider has not
// announced via webhook yet, resolves to Unauthenticated.
func (s *IdentityService) Resolve(ctx context.Context, tokenIdentifier string) (*model.User, error) {
	if tokenIdentifier == "" {
		return nil, apperr.ErrUnauthenticated
	}

	user, err := s.users.ByTokenIdentifier(tokenIdentifier)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: unknown token identifier", apperr.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}

	memberships, err := s.users.Memberships(user.ID)
	if err != nil {
		return nil, err
	}
	user.Memberships = memberships

	return user, nil
}

// UpsertUser handles the provider's user.created and user.updated events:
// update the profile if the row exists, insert it otherwise.
func (s *IdentityService) UpsertUser(ctx context.Context, tokenIdentifier string, name, image *string) error {
	return s.retry.do(ctx, func() error {
		err := s.users.UpdateProfile(tokenIdentifier, name, image)
		if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		user := &model.User{
			ID:              uuid.New().String(),
			TokenIdentifier: tokenIdentifier,
			Name:            name,
			Image:           image,
			CreatedAt:       time.Now().UTC(),
		}
		err = s.users.Create(user)
		if err != nil {
			return err
		}

		slog.Info("user created", "user_id", user.ID)
		return nil
	})
}

// GrantMembership handles organizationMembership.created. The user row must
// already exist; a membership event for an unknown token identifier is a
// provider-ordering bug and is reported as PrecursorMissing, never papered
// over by creating the user implicitly.
func (s *IdentityService) GrantMembership(ctx context.Context, tokenIdentifier, orgID, role string) error {
	return s.retry.do(ctx, func() error {
		user, err := s.users.ByTokenIdentifier(tokenIdentifier)
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%w: membership event for unknown user", apperr.ErrPrecursorMissing)
		}
		if err != nil {
			return err
		}

		return s.users.UpsertMembership(&model.Membership{
			UserID:    user.ID,
			OrgID:     orgID,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		})
	})
}

// UpdateMembershipRole handles organizationMembership.updated. Both a
// missing user and a missing membership row are ordering violations.
func (s *IdentityService) UpdateMembershipRole(ctx context.Context, tokenIdentifier, orgID, role string) error {
	return s.retry.do(ctx, func() error {
		user, err := s.users.ByTokenIdentifier(tokenIdentifier)
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%w: role update for unknown user", apperr.ErrPrecursorMissing)
		}
		if err != nil {
			return err
		}

		err = s.users.UpdateMembershipRole(user.ID, orgID, role)
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return fmt.Errorf("%w: role update for missing membership", apperr.ErrPrecursorMissing)
		}
		return err
	})
}

// Profile returns the public profile fields for any user id.
func (s *IdentityService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.ByID(userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
