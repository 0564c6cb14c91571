// Package memory holds the in-process conversational session store.
// Sessions live in a TTL cache whose janitor sweeps idle entries out of
// band; operations on one session id are serialized by a per-session
// lock while different ids proceed independently.
package memory

import (
	"sync"
	"time"

	"algodraft-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

type sessionHolder struct {
	mu      sync.Mutex
	session *entity.ChatSession
	// deleted marks a holder removed by Delete so a concurrent append
	// cannot re-insert it. Guarded by mu; set only while the repository
	// lock is also held.
	deleted bool
}

type SessionRepository struct {
	cache      *cache.Cache
	historyCap int

	// guards cache membership: create-if-absent, the refresh re-Set
	// after an append, and Delete. Lock order is always mu before a
	// holder's mu, never the reverse.
	mu sync.Mutex
}

func NewSessionRepository(historyCap int, idleTTL, sweepInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache:      cache.New(idleTTL, sweepInterval),
		historyCap: historyCap,
	}
}

func (r *SessionRepository) holder(sessionID string, create bool) (*sessionHolder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.holderLocked(sessionID, create)
}

func (r *SessionRepository) holderLocked(sessionID string, create bool) (*sessionHolder, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*sessionHolder), true
	}
	if !create {
		return nil, false
	}

	now := time.Now()
	h := &sessionHolder{session: &entity.ChatSession{
		Id:         sessionID,
		CreatedAt:  now,
		LastActive: now,
	}}
	r.cache.Set(sessionID, h, cache.DefaultExpiration)
	return h, true
}

// History returns a snapshot copy of the session's turns, oldest first.
// An unknown id yields an empty history.
func (r *SessionRepository) History(sessionID string) []entity.ChatTurn {
	h, found := r.holder(sessionID, false)
	if !found {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	turns := make([]entity.ChatTurn, len(h.session.Turns))
	copy(turns, h.session.Turns)
	return turns
}

// Append adds one turn to the session, creating it on first reference.
func (r *SessionRepository) Append(sessionID, role, content string) {
	r.AppendTurns(sessionID, entity.ChatTurn{Role: role, Content: content, CreatedAt: time.Now()})
}

// AppendTurns adds a batch of turns under one session lock, so a
// user/assistant exchange lands atomically in per-session turn order.
// When the history cap would be exceeded the oldest turns are evicted
// first, never the most recent. An append racing a Delete resolves to
// one of the two serial orders: either the delete wins and the turns
// land in a fresh session, or the append wins and the delete clears it.
func (r *SessionRepository) AppendTurns(sessionID string, turns ...entity.ChatTurn) {
	r.mu.Lock()
	h, _ := r.holderLocked(sessionID, true)
	h.mu.Lock()
	r.mu.Unlock()

	h.session.Turns = append(h.session.Turns, turns...)
	if over := len(h.session.Turns) - r.historyCap; over > 0 {
		h.session.Turns = append(h.session.Turns[:0:0], h.session.Turns[over:]...)
	}
	h.session.LastActive = time.Now()
	h.mu.Unlock()

	// Re-set refreshes the idle TTL and re-inserts the session if the
	// janitor evicted it between lookup and mutation, so an in-flight
	// append never loses its turn to a sweep. A holder tombstoned by
	// Delete is never re-inserted: that would resurrect a conversation
	// whose deletion was already acknowledged.
	r.mu.Lock()
	h.mu.Lock()
	if !h.deleted {
		r.cache.Set(sessionID, h, cache.DefaultExpiration)
	}
	h.mu.Unlock()
	r.mu.Unlock()
}

// Delete removes a session. Deleting an unknown id is a no-op. The
// holder is tombstoned under both locks so an append that already
// fetched it cannot re-insert the removed history.
func (r *SessionRepository) Delete(sessionID string) {
	r.mu.Lock()
	if h, found := r.holderLocked(sessionID, false); found {
		h.mu.Lock()
		h.deleted = true
		h.mu.Unlock()
	}
	r.cache.Delete(sessionID)
	r.mu.Unlock()
}

// Count reports the number of live sessions (including not yet swept
// expired ones, which is fine for liveness metrics).
func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
