package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
)

type UserRepository struct {
	store *Store
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

// NewUserRepository returns a user repository on its own empty store.
func NewUserRepository() *UserRepository {
	return &UserRepository{store: NewStore()}
}

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.UserID]; ok {
		return fmt.Errorf("user id %s already exists: %w", user.UserID, apperrors.ErrDuplicate)
	}
	if err := s.checkUniqueLocked(user); err != nil {
		return err
	}
	s.users[user.UserID] = user
	return nil
}

func (r *UserRepository) UpdateUser(_ context.Context, user domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.UserID]; !ok {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	if err := s.checkUniqueLocked(user); err != nil {
		return err
	}
	s.users[user.UserID] = user
	return nil
}

// checkUniqueLocked mirrors the unique indexes of the users table.
func (s *Store) checkUniqueLocked(user domain.User) error {
	for id, other := range s.users {
		if id == user.UserID {
			continue
		}
		if other.Username == user.Username {
			return fmt.Errorf("username %s taken: %w", user.Username, apperrors.ErrDuplicate)
		}
		if user.Email != "" && other.Email == user.Email {
			return fmt.Errorf("email %s taken: %w", user.Email, apperrors.ErrDuplicate)
		}
		if user.GoogleID != nil && other.GoogleID != nil && *other.GoogleID == *user.GoogleID {
			return fmt.Errorf("google account already linked: %w", apperrors.ErrDuplicate)
		}
	}
	return nil
}

func (r *UserRepository) findFirst(match func(domain.User) bool) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findFirst(func(u domain.User) bool { return u.Username == username })
}

func (r *UserRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.ErrNotFound
	}
	return r.findFirst(func(u domain.User) bool { return u.Email == email })
}

func (r *UserRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	if u, err := r.FindUserByUsername(ctx, identifier); err == nil {
		return u, nil
	}
	return r.FindUserByEmail(ctx, identifier)
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.FindUserByUsername(ctx, username)
	return err == nil, nil
}

// sortedLocked returns users newest first, matching the SQL ordering.
func (s *Store) sortedLocked(match func(domain.User) bool) []domain.User {
	out := []domain.User{}
	for _, u := range s.users {
		if match == nil || match(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *UserRepository) FindUsers(_ context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sortedLocked(nil)
	if offset >= len(all) {
		return []domain.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *UserRepository) FindUsersByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedLocked(func(u domain.User) bool { return u.Role == role }), nil
}

func (r *UserRepository) CountUsers(_ context.Context) (int, int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	verified := 0
	for _, u := range s.users {
		if u.IsVerified {
			verified++
		}
	}
	return len(s.users), verified, nil
}

func (r *UserRepository) FindUserByVerificationCode(_ context.Context, code string, now time.Time) (*domain.User, error) {
	return r.findFirst(func(u domain.User) bool {
		return u.VerificationCode != nil && *u.VerificationCode == code && u.HasVerificationCode(now)
	})
}

func (r *UserRepository) FindUserByResetToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	return r.findFirst(func(u domain.User) bool {
		return u.ResetPasswordToken != nil && *u.ResetPasswordToken == token &&
			u.ResetPasswordExpiresAt != nil && u.ResetPasswordExpiresAt.After(now)
	})
}

func (r *UserRepository) UpdateSessionToken(_ context.Context, userID string, token string, lastLogin time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	u.SessionToken = token
	u.LastLogin = &lastLogin
	u.UpdatedAt = lastLogin
	s.users[userID] = u
	return nil
}

func (r *UserRepository) ClearSessionToken(_ context.Context, userID string, token string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok || u.SessionToken != token {
		return nil
	}
	u.SessionToken = ""
	s.users[userID] = u
	return nil
}

func (r *UserRepository) DeleteUser(_ context.Context, userID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	delete(s.users, userID)
	return nil
}
