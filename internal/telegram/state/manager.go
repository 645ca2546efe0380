package state

import (
	"context"
	"time"

	"github.com/nilecare/advisory-backend/internal/entity"
)

// Manager reads and updates user preferences
type Manager struct {
	storage     Storage
	defaultLang entity.LanguageCode
	now         func() time.Time
}

func NewManager(storage Storage, defaultLang entity.LanguageCode) *Manager {
	if !defaultLang.IsValid() {
		defaultLang = entity.LangAuto
	}
	return &Manager{
		storage:     storage,
		defaultLang: defaultLang,
		now:         time.Now,
	}
}

// Get returns the user's preferences, falling back to defaults
func (m *Manager) Get(ctx context.Context, userID int64) *Preferences {
	if prefs, ok := m.storage.Get(ctx, userID); ok {
		return prefs
	}
	return &Preferences{UserID: userID, Lang: m.defaultLang}
}

func (m *Manager) SetLanguage(ctx context.Context, userID int64, lang entity.LanguageCode) {
	prefs := m.Get(ctx, userID)
	prefs.Lang = lang
	m.save(ctx, prefs)
}

func (m *Manager) SetLocation(ctx context.Context, userID int64, lat, lon float64) {
	prefs := m.Get(ctx, userID)
	prefs.Latitude = &lat
	prefs.Longitude = &lon
	m.save(ctx, prefs)
}

// ClearLocation forgets coordinates and keeps the language choice
func (m *Manager) ClearLocation(ctx context.Context, userID int64) {
	prefs := m.Get(ctx, userID)
	prefs.Latitude = nil
	prefs.Longitude = nil
	m.save(ctx, prefs)
}

func (m *Manager) save(ctx context.Context, prefs *Preferences) {
	prefs.UpdatedAt = m.now()
	m.storage.Set(ctx, prefs)
}
