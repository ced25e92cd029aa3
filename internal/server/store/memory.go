package store

import (
	"context"
	"math/big"
	"sync"

	"github.com/dmitrijs2005/zkpauth/internal/common"
)

type memoryEntry struct {
	rec    *UserRecord
	authID string
}

// MemoryStore keeps all state in process memory.
//
// Lock order: indexMu is always taken before usersMu. Critical sections only
// touch the maps.
type MemoryStore struct {
	indexMu sync.RWMutex
	index   map[string]string

	usersMu sync.RWMutex
	users   map[string]*memoryEntry
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]string),
		users: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStore) SaveUser(_ context.Context, userID string, y1, y2 *big.Int) error {
	rec := &UserRecord{
		UserID: userID,
		Y1:     cloneInt(y1),
		Y2:     cloneInt(y2),
		State:  StateRegistered,
	}

	s.usersMu.Lock()
	s.users[userID] = &memoryEntry{rec: rec}
	s.usersMu.Unlock()
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, userID string) (*UserRecord, error) {
	s.usersMu.RLock()
	e, ok := s.users[userID]
	var rec *UserRecord
	if ok {
		rec = e.rec.Clone()
	}
	s.usersMu.RUnlock()

	if !ok {
		return nil, common.NotFound("store.GetUser", "user %q not registered", userID)
	}
	return rec, nil
}

func (s *MemoryStore) SaveChallenge(_ context.Context, userID, authID string, r1, r2, c *big.Int) error {
	r1, r2, c = cloneInt(r1), cloneInt(r2), cloneInt(c)

	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	e, ok := s.users[userID]
	if !ok {
		return common.NotFound("store.SaveChallenge", "user %q not registered", userID)
	}
	if _, taken := s.index[authID]; taken {
		return common.Internal("store.SaveChallenge", "auth id collision")
	}

	s.index[authID] = userID
	e.rec.R1, e.rec.R2, e.rec.C = r1, r2, c
	e.rec.State = StateChallenged
	e.authID = authID
	return nil
}

func (s *MemoryStore) LookupChallenge(_ context.Context, authID string) (*UserRecord, error) {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()

	userID, ok := s.index[authID]
	if !ok {
		return nil, common.NotFound("store.LookupChallenge", "unknown auth id")
	}

	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	e, ok := s.users[userID]
	if !ok {
		return nil, common.NotFound("store.LookupChallenge", "user %q for auth id not found", userID)
	}
	return e.rec.Clone(), nil
}

func (s *MemoryStore) SaveSession(_ context.Context, userID, authID, sessionID string) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	e, ok := s.users[userID]
	if !ok {
		return common.NotFound("store.SaveSession", "user %q not registered", userID)
	}
	if e.authID == "" || e.authID != authID {
		return common.Unauthenticated("store.SaveSession", "challenge superseded")
	}

	e.rec.SessionID = sessionID
	e.rec.State = StateAuthenticated
	return nil
}

// Close is a no-op; state is dropped with the store.
func (s *MemoryStore) Close() error {
	return nil
}
