package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Iamhamptom/foodfriend/internal/entity"
)

// SessionRepository is a hot cache in front of the chat_sessions table.
// Entities are cloned on both sides so cache residents never alias the
// engine's working session.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func clone(e *entity.ChatSession) *entity.ChatSession {
	c := *e
	if e.Session != nil {
		c.Session = e.Session.Clone()
	}
	return &c
}

func (r *SessionRepository) Save(session *entity.ChatSession) {
	r.cache.Set(session.Id.String(), clone(session), cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*entity.ChatSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return clone(x.(*entity.ChatSession)), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
