package state

import (
	"context"
	"strconv"
	"time"

	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

// Preferences is what the bot remembers about a Telegram user between messages
type Preferences struct {
	UserID    int64               `json:"user_id"`
	Lang      entity.LanguageCode `json:"lang"`
	Latitude  *float64            `json:"latitude,omitempty"`
	Longitude *float64            `json:"longitude,omitempty"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// HasLocation reports whether the user shared a location
func (p *Preferences) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Storage defines the interface for preference persistence
type Storage interface {
	// Get returns the stored preferences or ok=false
	Get(ctx context.Context, userID int64) (*Preferences, bool)

	// Set saves preferences and resets their expiry
	Set(ctx context.Context, prefs *Preferences)

	// Delete removes preferences
	Delete(ctx context.Context, userID int64)
}

// CacheStorage keeps preferences in memory; entries expire after ttl of inactivity
type CacheStorage struct {
	cache *cache.Cache
}

func NewCacheStorage(ttl time.Duration) *CacheStorage {
	return &CacheStorage{
		cache: cache.New(ttl, ttl/2),
	}
}

func (s *CacheStorage) Get(ctx context.Context, userID int64) (*Preferences, bool) {
	v, ok := s.cache.Get(key(userID))
	if !ok {
		return nil, false
	}
	prefs := *v.(*Preferences)
	return &prefs, true
}

func (s *CacheStorage) Set(ctx context.Context, prefs *Preferences) {
	stored := *prefs
	s.cache.SetDefault(key(prefs.UserID), &stored)
}

func (s *CacheStorage) Delete(ctx context.Context, userID int64) {
	s.cache.Delete(key(userID))
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
