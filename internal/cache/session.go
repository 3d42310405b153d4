package cache

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// sessionKeyPrefix — пространство имен ключей сессий в Redis.
const sessionKeyPrefix = "profile-platform:session:"

// SessionStore хранит записи сессий (текущий пользователь и флаги предпочтений)
// с единой точкой загрузки и сохранения. Записи живут без ротации до выхода
// пользователя или истечения TTL.
type SessionStore struct {
	cache *Cache
	ttl   time.Duration
}

// NewSessionStore создает хранилище сессий поверх кеша.
func NewSessionStore(cache *Cache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cache, ttl: ttl}
}

func sessionKey(userUID string) string {
	return sessionKeyPrefix + userUID
}

// Save сохраняет запись сессии пользователя.
func (s *SessionStore) Save(userUID string, record models.SessionRecord) error {
	const op = "cache.SessionStore.Save"
	if err := s.cache.Set(sessionKey(userUID), record, s.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load возвращает запись сессии и признак её наличия.
func (s *SessionStore) Load(userUID string) (*models.SessionRecord, bool, error) {
	const op = "cache.SessionStore.Load"
	var record models.SessionRecord
	found, err := s.cache.Get(sessionKey(userUID), &record)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, false, nil
	}
	return &record, true, nil
}

// Drop удаляет запись сессии пользователя.
func (s *SessionStore) Drop(userUID string) error {
	const op = "cache.SessionStore.Drop"
	if err := s.cache.Invalidate(sessionKey(userUID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
