package preferences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/i18n"
	"github.com/fastygo/planner/usecase"
)

func TestDefaults(t *testing.T) {
	uc := New(i18n.MustLoad(), "ko", nil)
	assert.Equal(t, "ko", uc.Language())
	assert.False(t, uc.DarkMode())
	assert.Equal(t, "대시보드", uc.T("nav.dashboard"))

	fallback := New(i18n.MustLoad(), "de", nil)
	assert.Equal(t, "ko", fallback.Language())
}

func TestSetLanguage(t *testing.T) {
	ctx := context.Background()
	uc := New(i18n.MustLoad(), "ko", nil)

	require.NoError(t, uc.SetLanguage(ctx, "en"))
	assert.Equal(t, "Dashboard", uc.T("nav.dashboard"))
	assert.Equal(t, "no.such.key", uc.T("no.such.key"))

	err := uc.SetLanguage(ctx, "ja")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Equal(t, "en", uc.Language())
}

func TestToggleDarkMode(t *testing.T) {
	ctx := context.Background()
	uc := New(i18n.MustLoad(), "en", nil, WithDarkMode(true))

	assert.False(t, uc.ToggleDarkMode(ctx))
	assert.True(t, uc.ToggleDarkMode(ctx))
	assert.Equal(t, Snapshot{Language: "en", DarkMode: true}, uc.Snapshot())
}

func TestTranslations(t *testing.T) {
	uc := New(i18n.MustLoad(), "en", nil)

	current, err := uc.Translations("")
	require.NoError(t, err)
	assert.Equal(t, "Dashboard", current["nav.dashboard"])

	korean, err := uc.Translations("ko")
	require.NoError(t, err)
	assert.Equal(t, "대시보드", korean["nav.dashboard"])

	_, err = uc.Translations("xx")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestChangesArePublished(t *testing.T) {
	ctx := context.Background()
	notifier := usecase.NewNotifier(0, nil)
	uc := New(i18n.MustLoad(), "ko", nil, WithPublisher(notifier))

	require.NoError(t, uc.SetLanguage(ctx, "en"))
	uc.ToggleDarkMode(ctx)
	_ = uc.SetLanguage(ctx, "xx")

	changes := notifier.Since(0)
	require.Len(t, changes, 2)
	assert.Equal(t, domain.StorePrefs, changes[0].Store)
	assert.JSONEq(t, `{"language":"en","darkMode":true}`, string(changes[1].Payload))
}
