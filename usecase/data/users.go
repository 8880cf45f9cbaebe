package data

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/usecase"
)

// UserStats summarizes the directory by role and activity.
type UserStats struct {
	Total  int `json:"total"`
	Admins int `json:"admins"`
	Users  int `json:"users"`
	Active int `json:"active"`
}

func (uc *UseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.users.List(ctx)
}

func (uc *UseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.users.GetByID(ctx, id)
}

// AddUser assigns an id and appends the user to the directory.
func (uc *UseCase) AddUser(ctx context.Context, user domain.User) (*domain.User, error) {
	uc.mu.Lock()
	user.ID = uc.idGenerator()
	if user.JoinDate.IsZero() {
		user.JoinDate = domain.DateOf(uc.now())
	}
	err := uc.users.Create(ctx, &user)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("user added", zap.String("user_id", user.ID))
	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityUser, domain.OperationCreate, user.ID, user)
	return &user, nil
}

// UpdateUser merges patch into the user; nil without error for unknown ids.
func (uc *UseCase) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	uc.mu.Lock()
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		uc.mu.Unlock()
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	patch.Apply(user)
	err = uc.users.Update(ctx, user)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityUser, domain.OperationUpdate, user.ID, user)
	return user, nil
}

// ToggleUserActive flips the active flag; nil without error for unknown ids.
func (uc *UseCase) ToggleUserActive(ctx context.Context, id string) (*domain.User, error) {
	uc.mu.Lock()
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		uc.mu.Unlock()
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	user.IsActive = !user.IsActive
	err = uc.users.Update(ctx, user)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityUser, domain.OperationUpdate, user.ID, user)
	return user, nil
}

func (uc *UseCase) DeleteUser(ctx context.Context, id string) (bool, error) {
	uc.mu.Lock()
	err := uc.users.Delete(ctx, id)
	uc.mu.Unlock()
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityUser, domain.OperationDelete, id, nil)
	return true, nil
}

// SearchUsers matches name, email or department, case-insensitively.
func (uc *UseCase) SearchUsers(ctx context.Context, term string) ([]domain.User, error) {
	users, err := uc.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	if term == "" {
		return users, nil
	}
	out := make([]domain.User, 0, len(users))
	for _, user := range users {
		if strings.Contains(strings.ToLower(user.Name), term) ||
			strings.Contains(strings.ToLower(user.Email), term) ||
			strings.Contains(strings.ToLower(user.Department), term) {
			out = append(out, user)
		}
	}
	return out, nil
}

func (uc *UseCase) UserStats(ctx context.Context) (UserStats, error) {
	users, err := uc.ListUsers(ctx)
	if err != nil {
		return UserStats{}, err
	}
	stats := UserStats{Total: len(users)}
	for _, user := range users {
		switch user.Role {
		case domain.RoleAdmin:
			stats.Admins++
		case domain.RoleUser:
			stats.Users++
		}
		if user.IsActive {
			stats.Active++
		}
	}
	return stats, nil
}

// ResolveUsers returns the directory entries for ids, in the order given,
// silently skipping unknown ids.
func (uc *UseCase) ResolveUsers(ctx context.Context, ids []string) ([]domain.User, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := uc.users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *user)
	}
	return out, nil
}
