package auth

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
	"github.com/fastygo/planner/usecase"
)

// LegacyAdminEmail logs in with any non-empty password.
const LegacyAdminEmail = "admin@tf-planner.com"

const minPasswordLength = 6

// Signup validation errors. The message is shown to the user as is.
var (
	ErrNameRequired     = domain.NewKeyedError(domain.ErrCodeInvalid, "name is required", "auth.error.nameRequired")
	ErrEmailRequired    = domain.NewKeyedError(domain.ErrCodeInvalid, "email is required", "auth.error.emailRequired")
	ErrPasswordTooShort = domain.NewKeyedError(domain.ErrCodeInvalid, "password must be at least 6 characters", "auth.error.passwordTooShort")
	ErrEmailTaken       = domain.NewKeyedError(domain.ErrCodeInvalid, "email is already in use", "auth.error.emailTaken")
	ErrUnknownDemoRole  = domain.NewError(domain.ErrCodeInvalid, "demo role must be admin or user")
)

var (
	legacyAdmin = domain.SessionUser{ID: "1", Name: "김철수", Email: LegacyAdminEmail, Role: domain.RoleAdmin}
	demoAdmin   = domain.SessionUser{ID: "1", Name: "김철수 (관리자)", Email: LegacyAdminEmail, Role: domain.RoleAdmin}
	demoUser    = domain.SessionUser{ID: "2", Name: "박영희 (일반 사용자)", Email: "user@tf-planner.com", Role: domain.RoleUser}
)

// Option customizes the session store.
type Option func(*UseCase)

// WithBuffer hands failed storage writes to buf.
func WithBuffer(buf usecase.OperationBuffer) Option {
	return func(uc *UseCase) { uc.buffer = buf }
}

func WithPublisher(p usecase.ChangePublisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

func WithIDGenerator(fn func() string) Option {
	return func(uc *UseCase) {
		if fn != nil {
			uc.idGenerator = fn
		}
	}
}

// UseCase is the session store: it owns the current identity and the
// locally registered accounts.
type UseCase struct {
	storage     repository.LocalStorage
	buffer      usecase.OperationBuffer
	publisher   usecase.ChangePublisher
	logger      *zap.Logger
	idGenerator func() string

	mu      sync.RWMutex
	current *domain.SessionUser
}

// New builds the session store and restores a persisted session, if any.
func New(ctx context.Context, storage repository.LocalStorage, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		storage:     storage,
		logger:      logger,
		idGenerator: uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.restore(ctx)
	return uc
}

func (uc *UseCase) restore(ctx context.Context) {
	var saved domain.SessionUser
	found, err := repository.LoadJSON(ctx, uc.storage, repository.KeyUser, &saved)
	if err != nil {
		uc.logger.Warn("ignoring persisted session", zap.Error(err))
		return
	}
	if !found || saved.ID == "" {
		return
	}
	uc.current = &saved
	uc.logger.Info("session restored", zap.String("user_id", saved.ID))
}

// Login adopts the registered account matching email and password. The
// error return is reserved for storage failures.
func (uc *UseCase) Login(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	user, ok, err := uc.login(ctx, email, password)
	if err != nil || !ok {
		return false, err
	}
	uc.announce(ctx, domain.OperationCreate, user)
	return true, nil
}

func (uc *UseCase) login(ctx context.Context, email, password string) (domain.SessionUser, bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	registered, err := uc.registeredUsers(ctx)
	if err != nil {
		return domain.SessionUser{}, false, err
	}
	for _, account := range registered {
		if account.Email == email && account.Password == password {
			session := account.Session()
			if err := uc.adopt(ctx, session); err != nil {
				return domain.SessionUser{}, false, err
			}
			return session, true, nil
		}
	}

	if email == LegacyAdminEmail {
		if err := uc.adopt(ctx, legacyAdmin); err != nil {
			return domain.SessionUser{}, false, err
		}
		return legacyAdmin, true, nil
	}

	uc.logger.Debug("login rejected")
	return domain.SessionUser{}, false, nil
}

// Signup registers a new account and logs it in. The first failed rule is reported.
func (uc *UseCase) Signup(ctx context.Context, name, email, password string) (domain.SessionUser, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	switch {
	case name == "":
		return domain.SessionUser{}, ErrNameRequired
	case email == "":
		return domain.SessionUser{}, ErrEmailRequired
	case utf8.RuneCountInString(password) < minPasswordLength:
		return domain.SessionUser{}, ErrPasswordTooShort
	}

	session, err := uc.register(ctx, name, email, password)
	if err != nil {
		return domain.SessionUser{}, err
	}
	uc.logger.Info("account registered", zap.String("user_id", session.ID))
	uc.announce(ctx, domain.OperationCreate, session)
	return session, nil
}

func (uc *UseCase) register(ctx context.Context, name, email, password string) (domain.SessionUser, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	registered, err := uc.registeredUsers(ctx)
	if err != nil {
		return domain.SessionUser{}, err
	}
	for _, account := range registered {
		if account.Email == email {
			return domain.SessionUser{}, ErrEmailTaken
		}
	}

	account := domain.RegisteredUser{
		ID:       uc.idGenerator(),
		Name:     name,
		Email:    email,
		Role:     domain.RoleUser,
		Password: password,
	}
	registered = append(registered, account)
	payload, err := json.Marshal(registered)
	if err != nil {
		return domain.SessionUser{}, err
	}
	if err := uc.write(ctx, usecase.OperationSet, repository.KeyRegisteredUsers, payload); err != nil {
		return domain.SessionUser{}, err
	}

	session := account.Session()
	if err := uc.adopt(ctx, session); err != nil {
		return domain.SessionUser{}, err
	}
	return session, nil
}

// LoginAsDemo adopts one of the fixed demo identities without a credential check.
func (uc *UseCase) LoginAsDemo(ctx context.Context, role string) (domain.SessionUser, error) {
	var identity domain.SessionUser
	switch role {
	case domain.RoleAdmin:
		identity = demoAdmin
	case domain.RoleUser:
		identity = demoUser
	default:
		return domain.SessionUser{}, ErrUnknownDemoRole
	}

	uc.mu.Lock()
	err := uc.adopt(ctx, identity)
	uc.mu.Unlock()
	if err != nil {
		return domain.SessionUser{}, err
	}
	uc.announce(ctx, domain.OperationCreate, identity)
	return identity, nil
}

// Logout clears the session and its persisted copy.
func (uc *UseCase) Logout(ctx context.Context) error {
	uc.mu.Lock()
	if err := uc.write(ctx, usecase.OperationRemove, repository.KeyUser, nil); err != nil {
		uc.mu.Unlock()
		return err
	}
	var previous domain.SessionUser
	if uc.current != nil {
		previous = *uc.current
	}
	uc.current = nil
	uc.mu.Unlock()

	uc.announce(ctx, domain.OperationDelete, previous)
	return nil
}

// CurrentUser returns a copy of the session identity, or nil.
func (uc *UseCase) CurrentUser() *domain.SessionUser {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.current == nil {
		return nil
	}
	user := *uc.current
	return &user
}

func (uc *UseCase) IsAuthenticated() bool {
	return uc.CurrentUser() != nil
}

func (uc *UseCase) IsAdmin() bool {
	return uc.CurrentUser().IsAdmin()
}

// RegisteredUsers lists the accounts created through signup, passwords stripped.
func (uc *UseCase) RegisteredUsers(ctx context.Context) ([]domain.SessionUser, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	registered, err := uc.registeredUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SessionUser, 0, len(registered))
	for _, account := range registered {
		out = append(out, account.Session())
	}
	return out, nil
}

func (uc *UseCase) registeredUsers(ctx context.Context) ([]domain.RegisteredUser, error) {
	var registered []domain.RegisteredUser
	if _, err := repository.LoadJSON(ctx, uc.storage, repository.KeyRegisteredUsers, &registered); err != nil {
		return nil, err
	}
	return registered, nil
}

// adopt must be called with uc.mu held.
func (uc *UseCase) adopt(ctx context.Context, user domain.SessionUser) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := uc.write(ctx, usecase.OperationSet, repository.KeyUser, payload); err != nil {
		return err
	}
	uc.current = &user
	uc.logger.Debug("session adopted", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return nil
}

func (uc *UseCase) announce(ctx context.Context, operation string, user domain.SessionUser) {
	var payload interface{}
	if operation != domain.OperationDelete {
		payload = user
	}
	usecase.Publish(ctx, uc.publisher, domain.StoreSession, domain.EntitySession, operation, user.ID, payload)
}

func (uc *UseCase) write(ctx context.Context, operation, key string, value []byte) error {
	var err error
	switch operation {
	case usecase.OperationRemove:
		err = uc.storage.Remove(ctx, key)
	default:
		err = uc.storage.Set(ctx, key, value)
	}
	if err == nil {
		return nil
	}
	if uc.shouldBuffer(ctx, operation, key, value) {
		return nil
	}
	return domain.WrapError(domain.ErrCodeUnavailable, "persist "+key, err)
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation, key string, value []byte) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferWrite(ctx, operation, key, value); err != nil {
		uc.logger.Error("failed to buffer storage write", zap.String("operation", operation), zap.String("key", key), zap.Error(err))
		return false
	}
	uc.logger.Warn("storage write buffered", zap.String("operation", operation), zap.String("key", key))
	return true
}
