// Package session holds the process-wide authentication state of the
// console: the remote API token and the signed-in staff profile.
//
// The pair is persisted to local durable storage under two keys, mirroring
// the browser contract the console replaces ("token" and "user", the latter
// JSON-serialized), so a restart keeps the operator signed in. The in-memory
// snapshot is the single source of truth at runtime; login and logout are
// the only writers and both swap token and profile together, so readers can
// never observe one without the other.
package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshmart/admin-console/internal/domain"
	"github.com/freshmart/admin-console/internal/pkg"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// stateRow is one key/value pair of durable console state.
type stateRow struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

// TableName keeps the table name stable regardless of gorm's pluralization.
func (stateRow) TableName() string { return "console_state" }

// Store is the process-wide session store. It is safe for concurrent use:
// many readers, one logical writer path (Login/Logout).
type Store struct {
	db *gorm.DB

	mu      sync.RWMutex
	current domain.Session
	subs    map[chan domain.Session]struct{}
}

// NewStore creates a session store backed by the given database. Call
// Hydrate once at startup before the first guard check.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&stateRow{}); err != nil {
		return nil, err
	}
	return &Store{
		db:   db,
		subs: make(map[chan domain.Session]struct{}),
	}, nil
}

// Hydrate loads the persisted session into memory. Malformed or missing
// stored values are treated as "signed out"; a corrupted state file must
// never prevent the console from starting.
func (s *Store) Hydrate() {
	var rows []stateRow
	if err := s.db.Find(&rows).Error; err != nil {
		slog.Warn("session state unreadable, starting signed out", slog.Any("error", err))
		return
	}

	var token string
	var user *domain.Profile
	for _, row := range rows {
		switch row.Key {
		case keyToken:
			token = row.Value
		case keyUser:
			var p domain.Profile
			if err := json.Unmarshal([]byte(row.Value), &p); err != nil {
				slog.Warn("stored profile malformed, starting signed out", slog.Any("error", err))
				return
			}
			user = &p
		}
	}

	// Token and profile must arrive as a pair; a lone value is discarded.
	if token == "" || user == nil {
		return
	}

	s.mu.Lock()
	s.current = domain.Session{Token: token, User: user}
	s.mu.Unlock()
}

// Current returns the in-memory session snapshot.
func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Login persists the remote token and profile in one transaction, then
// swaps the in-memory snapshot. Consumers observing the store never see a
// token without its profile or vice versa.
func (s *Store) Login(token string, user *domain.Profile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to serialize profile", err)
	}

	err = pkg.WithTx(s.db, func(tx *gorm.DB) error {
		rows := []stateRow{
			{Key: keyToken, Value: token},
			{Key: keyUser, Value: string(raw)},
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
	})
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to persist session", err)
	}

	s.swap(domain.Session{Token: token, User: user})
	return nil
}

// Logout clears the persisted and in-memory session in one step.
func (s *Store) Logout() error {
	err := pkg.WithTx(s.db, func(tx *gorm.DB) error {
		return tx.Where("key IN ?", []string{keyToken, keyUser}).Delete(&stateRow{}).Error
	})
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to clear session", err)
	}

	s.swap(domain.Session{})
	return nil
}

// Subscribe returns a channel that receives the session snapshot after
// every login/logout. The channel is buffered; a slow consumer misses
// intermediate states but always eventually sees the latest one.
func (s *Store) Subscribe() (<-chan domain.Session, func()) {
	ch := make(chan domain.Session, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// swap atomically replaces the snapshot and notifies subscribers.
func (s *Store) swap(next domain.Session) {
	s.mu.Lock()
	s.current = next
	for ch := range s.subs {
		// Keep only the latest state in the buffer.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- next:
		default:
		}
	}
	s.mu.Unlock()
}
