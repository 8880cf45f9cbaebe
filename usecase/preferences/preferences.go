// Package preferences keeps the display language and theme of the workspace.
package preferences

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/usecase"
)

var ErrUnsupportedLanguage = domain.NewKeyedError(domain.ErrCodeInvalid, "language must be ko or en", "common.unsupportedLanguage")

// Translator resolves catalog messages.
type Translator interface {
	Supports(lang string) bool
	T(lang, key string) string
	Messages(lang string) map[string]string
}

// Snapshot is the serialized preference state.
type Snapshot struct {
	Language string `json:"language"`
	DarkMode bool   `json:"darkMode"`
}

type Option func(*UseCase)

func WithPublisher(p usecase.ChangePublisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

// WithDarkMode sets the initial theme.
func WithDarkMode(on bool) Option {
	return func(uc *UseCase) { uc.darkMode = on }
}

type UseCase struct {
	catalog   Translator
	publisher usecase.ChangePublisher
	logger    *zap.Logger

	mu       sync.RWMutex
	language string
	darkMode bool
}

// New starts in defaultLanguage with the light theme. An unsupported
// default falls back to Korean.
func New(catalog Translator, defaultLanguage string, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !catalog.Supports(defaultLanguage) {
		logger.Warn("unsupported default language, using ko", zap.String("language", defaultLanguage))
		defaultLanguage = "ko"
	}
	uc := &UseCase{
		catalog:  catalog,
		logger:   logger,
		language: defaultLanguage,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) Language() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.language
}

func (uc *UseCase) SetLanguage(ctx context.Context, lang string) error {
	if !uc.catalog.Supports(lang) {
		return ErrUnsupportedLanguage
	}
	uc.mu.Lock()
	uc.language = lang
	snapshot := uc.snapshot()
	uc.mu.Unlock()

	uc.logger.Debug("language changed", zap.String("language", lang))
	uc.announce(ctx, snapshot)
	return nil
}

func (uc *UseCase) DarkMode() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.darkMode
}

// ToggleDarkMode flips the theme and returns the new value.
func (uc *UseCase) ToggleDarkMode(ctx context.Context) bool {
	uc.mu.Lock()
	uc.darkMode = !uc.darkMode
	snapshot := uc.snapshot()
	uc.mu.Unlock()

	uc.announce(ctx, snapshot)
	return snapshot.DarkMode
}

func (uc *UseCase) Snapshot() Snapshot {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snapshot()
}

// T translates key in the current language, returning key when missing.
func (uc *UseCase) T(key string) string {
	return uc.catalog.T(uc.Language(), key)
}

// Translations returns the full catalog of lang, or of the current
// language when lang is empty.
func (uc *UseCase) Translations(lang string) (map[string]string, error) {
	if lang == "" {
		lang = uc.Language()
	}
	if !uc.catalog.Supports(lang) {
		return nil, ErrUnsupportedLanguage
	}
	return uc.catalog.Messages(lang), nil
}

func (uc *UseCase) snapshot() Snapshot {
	return Snapshot{Language: uc.language, DarkMode: uc.darkMode}
}

func (uc *UseCase) announce(ctx context.Context, snapshot Snapshot) {
	usecase.Publish(ctx, uc.publisher, domain.StorePrefs, domain.EntityPrefs, domain.OperationUpdate, "", snapshot)
}
