package characters

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionTTL is how long an idle session keeps its state.
const DefaultSessionTTL = 30 * time.Minute

// DefaultMaxSessions caps live sessions when no limit is configured.
const DefaultMaxSessions = 10000

// pageSnapshot is the last successfully fetched upstream page for a session.
type pageSnapshot struct {
	Page    int
	Search  string
	Count   int
	HasNext bool
	HasPrev bool
	Records []Character
}

// session is the per-browser state. Callers hold mu while reading or
// mutating any other field except lastSeen, which the store guards.
type session struct {
	mu        sync.Mutex
	id        string
	overrides *Overrides
	page      int
	search    string
	sort      Sort
	lastGood  *pageSnapshot
	lastSeen  time.Time
}

func newSession(id string, now time.Time) *session {
	return &session{
		id:        id,
		overrides: NewOverrides(),
		page:      1,
		sort:      DefaultSort,
		lastSeen:  now,
	}
}

// Store keeps session state in memory. Idle sessions are dropped lazily
// when the store is next accessed after their TTL.
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*session
	ttl       time.Duration
	max       int
	lastSweep time.Time
	now       func() time.Time
	newID     func() string
	logger    *zap.Logger
}

// NewStore returns an empty session store holding at most maxSessions live
// sessions. At capacity the least recently used session is evicted.
func NewStore(ttl time.Duration, maxSessions int, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions: map[string]*session{},
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

// TTL returns the idle expiry applied to sessions.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// open returns the live session for id, or a fresh session with a new id
// when id is unknown or expired. created reports the latter.
func (s *Store) open(id string) (sess *session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	if existing, ok := s.sessions[id]; ok && id != "" {
		if now.Sub(existing.lastSeen) < s.ttl {
			existing.lastSeen = now
			return existing, false
		}
		delete(s.sessions, id)
	}
	if len(s.sessions) >= s.max {
		s.evictOldestLocked()
	}
	sess = newSession(s.newID(), now)
	s.sessions[sess.id] = sess
	return sess, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) sweepLocked(now time.Time) {
	interval := min(s.ttl, time.Minute)
	if !s.lastSweep.IsZero() && now.Sub(s.lastSweep) < interval {
		return
	}
	s.lastSweep = now
	expired := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.sessions, id)
			expired++
		}
	}
	if expired > 0 {
		s.logger.Debug("sessions expired", zap.Int("count", expired), zap.Int("remaining", len(s.sessions)))
	}
}

// evictOldestLocked drops the least recently used session.
func (s *Store) evictOldestLocked() {
	var oldest *session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest == nil {
		return
	}
	delete(s.sessions, oldest.id)
	s.logger.Warn("session store full, evicted least recently used session",
		zap.Int("max_sessions", s.max),
		zap.Duration("idle", s.now().Sub(oldest.lastSeen)),
	)
}
