package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/helpers"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
	"github.com/ekaplan/prepsphere/internal/pkg/logger"
)

// UserRepository handles user record operations against users/users.json
type UserRepository struct {
	store *jsonstore.Store
	users *jsonstore.Collection[models.User]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *jsonstore.Store) *UserRepository {
	path := store.Path(usersDir, usersFile)
	return &UserRepository{
		store: store,
		users: jsonstore.NewCollection(store, path, func(u models.User) string { return u.ID }),
	}
}

// CreateUser persists a new user, generating its id, referral code and
// timestamps. Email uniqueness is compared case-insensitively.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))

	err := r.users.Mutate(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, email) {
				return nil, apperrors.ErrEmailAlreadyExists
			}
		}

		code, err := newReferralCode(users)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		user.ID = uuid.New().String()
		user.Email = email
		user.ReferralCode = code
		user.IsActive = true
		user.CreatedAt = now
		user.UpdatedAt = now
		if user.RoleType == "" {
			user.RoleType = models.RoleUser
		}
		if user.Subscription.Plan == "" {
			user.Subscription.Plan = models.PlanFree
		}

		return append(users, *user), nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", email).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// newReferralCode generates a referral code, retrying on the unlikely
// collision with an existing user.
func newReferralCode(users []models.User) (string, error) {
	for i := 0; i < 5; i++ {
		code, err := helpers.NewShortCode(8)
		if err != nil {
			return "", err
		}
		taken := false
		for _, u := range users {
			if u.ReferralCode == code {
				taken = true
				break
			}
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("failed to generate a unique referral code")
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := r.users.Find(id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := r.users.FindBy(func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

// GetUserByReferralCode retrieves the owner of a referral code
func (r *UserRepository) GetUserByReferralCode(ctx context.Context, code string) (*models.User, error) {
	user, err := r.users.FindBy(func(u models.User) bool {
		return strings.EqualFold(u.ReferralCode, code)
	})
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

// UpdateUser applies mutate to the stored user and stamps UpdatedAt
func (r *UserRepository) UpdateUser(ctx context.Context, id string, mutate func(*models.User) error) (*models.User, error) {
	updated, err := r.users.Update(id, func(u *models.User) error {
		if err := mutate(u); err != nil {
			return err
		}
		u.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return &updated, nil
}

// DeleteUser removes a user record
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	if err := r.users.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

// ListUsers returns every user record
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	return r.users.All(), nil
}
