package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
	"github.com/fastygo/planner/repository/memory"
	"github.com/fastygo/planner/usecase"
)

type failingStorage struct {
	repository.LocalStorage
	err error
}

func (s failingStorage) Set(context.Context, string, []byte) error { return s.err }
func (s failingStorage) Remove(context.Context, string) error      { return s.err }

type recordedWrite struct {
	operation string
	key       string
	value     []byte
}

type recordingBuffer struct {
	writes []recordedWrite
	err    error
}

func (b *recordingBuffer) BufferWrite(_ context.Context, operation, key string, value []byte) error {
	if b.err != nil {
		return b.err
	}
	b.writes = append(b.writes, recordedWrite{operation: operation, key: key, value: value})
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "u" + string(rune('0'+n))
	}
}

func newStore(t *testing.T, storage repository.LocalStorage, opts ...Option) *UseCase {
	t.Helper()
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	return New(context.Background(), storage, nil, opts...)
}

func TestSignupThenLogin(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewLocalStorage()
	store := newStore(t, storage)

	user, err := store.Signup(ctx, "  Lee  ", " lee@x.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionUser{ID: "u1", Name: "Lee", Email: "lee@x.com", Role: domain.RoleUser}, user)
	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.IsAdmin())

	var registered []domain.RegisteredUser
	found, err := repository.LoadJSON(ctx, storage, repository.KeyRegisteredUsers, &registered)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, registered, 1)
	assert.Equal(t, "secret1", registered[0].Password)

	require.NoError(t, store.Logout(ctx))
	assert.Nil(t, store.CurrentUser())

	ok, err := store.Login(ctx, "lee@x.com", "secret1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u1", store.CurrentUser().ID)

	raw, err := storage.Get(ctx, repository.KeyUser)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

func TestLoginRejections(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, memory.NewLocalStorage())
	_, err := store.Signup(ctx, "Lee", "lee@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, store.Logout(ctx))

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "secret1"},
		{name: "empty password", email: "lee@x.com", password: ""},
		{name: "wrong password", email: "lee@x.com", password: "secret2"},
		{name: "unknown email", email: "nobody@x.com", password: "secret1"},
		{name: "legacy admin without password", email: LegacyAdminEmail, password: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := store.Login(ctx, tc.email, tc.password)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, store.CurrentUser())
		})
	}
}

func TestLegacyAdminBypass(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, memory.NewLocalStorage())

	ok, err := store.Login(ctx, LegacyAdminEmail, "anything")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, store.IsAdmin())
	assert.Equal(t, "1", store.CurrentUser().ID)
}

func TestSignupValidationOrder(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, memory.NewLocalStorage())
	_, err := store.Signup(ctx, "Lee", "lee@x.com", "secret1")
	require.NoError(t, err)

	cases := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{name: "all blank", username: " ", email: " ", password: "", want: ErrNameRequired},
		{name: "blank email and short password", username: "Kim", email: "", password: "123", want: ErrEmailRequired},
		{name: "short password on taken email", username: "Kim", email: "lee@x.com", password: "12345", want: ErrPasswordTooShort},
		{name: "taken email", username: "Kim", email: "lee@x.com", password: "123456", want: ErrEmailTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Signup(ctx, tc.username, tc.email, tc.password)
			require.ErrorIs(t, err, tc.want)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
			assert.NotEmpty(t, domain.TranslationKey(err))
		})
	}

	users, err := store.RegisteredUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoginAsDemo(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, memory.NewLocalStorage())

	admin, err := store.LoginAsDemo(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, store.IsAdmin())
	assert.Equal(t, LegacyAdminEmail, admin.Email)

	user, err := store.LoginAsDemo(ctx, domain.RoleUser)
	require.NoError(t, err)
	assert.False(t, store.IsAdmin())
	assert.Equal(t, "2", user.ID)

	_, err = store.LoginAsDemo(ctx, "guest")
	assert.ErrorIs(t, err, ErrUnknownDemoRole)
	assert.Equal(t, "2", store.CurrentUser().ID)
}

func TestSessionRestoredOnConstruction(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewLocalStorage()

	first := newStore(t, storage)
	_, err := first.LoginAsDemo(ctx, domain.RoleUser)
	require.NoError(t, err)

	second := newStore(t, storage)
	require.NotNil(t, second.CurrentUser())
	assert.Equal(t, "2", second.CurrentUser().ID)

	require.NoError(t, second.Logout(ctx))
	third := newStore(t, storage)
	assert.False(t, third.IsAuthenticated())
}

func TestCorruptPersistedSessionIsIgnored(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewLocalStorage()
	require.NoError(t, storage.Set(ctx, repository.KeyUser, []byte(`{broken`)))

	store := newStore(t, storage)
	assert.Nil(t, store.CurrentUser())
}

func TestFailedWritesAreBuffered(t *testing.T) {
	ctx := context.Background()
	storage := failingStorage{LocalStorage: memory.NewLocalStorage(), err: errors.New("connection refused")}
	buf := &recordingBuffer{}
	store := newStore(t, storage, WithBuffer(buf))

	_, err := store.LoginAsDemo(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, store.IsAdmin())

	require.NoError(t, store.Logout(ctx))
	assert.False(t, store.IsAuthenticated())

	require.Len(t, buf.writes, 2)
	assert.Equal(t, usecase.OperationSet, buf.writes[0].operation)
	assert.Equal(t, repository.KeyUser, buf.writes[0].key)
	var persisted domain.SessionUser
	require.NoError(t, json.Unmarshal(buf.writes[0].value, &persisted))
	assert.Equal(t, "1", persisted.ID)
	assert.Equal(t, usecase.OperationRemove, buf.writes[1].operation)
}

func TestFailedWriteWithoutBuffer(t *testing.T) {
	ctx := context.Background()
	storage := failingStorage{LocalStorage: memory.NewLocalStorage(), err: errors.New("connection refused")}
	store := newStore(t, storage)

	_, err := store.LoginAsDemo(ctx, domain.RoleAdmin)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
	assert.False(t, store.IsAuthenticated())
}

func TestSessionChangesArePublished(t *testing.T) {
	ctx := context.Background()
	notifier := usecase.NewNotifier(10, nil)
	store := newStore(t, memory.NewLocalStorage(), WithPublisher(notifier))

	var seen []string
	notifier.Subscribe("test", func(_ context.Context, c domain.Change) {
		seen = append(seen, c.Operation+":"+c.EntityID)
		// subscribers may read the store while being notified
		_ = store.CurrentUser()
	})

	_, err := store.LoginAsDemo(ctx, domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, store.Logout(ctx))

	assert.Equal(t, []string{"create:2", "delete:2"}, seen)
}

func TestSignupNormalizesEmailAndCountsCharacters(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, memory.NewLocalStorage())
	_, err := store.Signup(ctx, "Lee", "lee@x.com", "secret1")
	require.NoError(t, err)

	_, err = store.Signup(ctx, "Lee again", "  lee@x.com ", "secret1")
	assert.ErrorIs(t, err, ErrEmailTaken)

	user, err := store.Signup(ctx, "Kim", "kim@x.com", "비밀번호입니")
	require.NoError(t, err)
	assert.Equal(t, "kim@x.com", user.Email)

	_, err = store.Signup(ctx, "Park", "park@x.com", "😀😀😀")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
