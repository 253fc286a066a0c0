package memory

import (
	"ollama-chat-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository owns all conversation sessions. Pure in-memory state:
// no operation blocks or does I/O. The backing cache never expires entries,
// it is used for its concurrency-safe map semantics.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Create registers a new session bound to model. An empty id generates a
// fresh UUID. A caller-supplied id that already exists overwrites the old
// session (last-write-wins); there is no uniqueness check upstream, so the
// conflict policy is intentionally the simple one.
func (r *SessionRepository) Create(model, id, systemPrompt string) string {
	if id == "" {
		id = uuid.NewString()
	}
	r.cache.Set(id, store.NewSession(id, model, systemPrompt), cache.NoExpiration)
	return id
}

func (r *SessionRepository) Get(id string) (*store.Session, bool) {
	if x, found := r.cache.Get(id); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Exists(id string) bool {
	_, found := r.cache.Get(id)
	return found
}

// AppendMessage adds a message to the session's history. Returns false when
// the session does not exist.
func (r *SessionRepository) AppendMessage(id, role, content string) bool {
	session, found := r.Get(id)
	if !found {
		return false
	}
	session.Append(role, content)
	return true
}

// Messages returns a copy of the session's history, empty when absent.
func (r *SessionRepository) Messages(id string) []store.Message {
	session, found := r.Get(id)
	if !found {
		return []store.Message{}
	}
	return session.Snapshot()
}

// Clear empties the history but keeps the session shell.
func (r *SessionRepository) Clear(id string) bool {
	session, found := r.Get(id)
	if !found {
		return false
	}
	session.ClearMessages()
	return true
}

// Delete removes the session entirely.
func (r *SessionRepository) Delete(id string) bool {
	if !r.Exists(id) {
		return false
	}
	r.cache.Delete(id)
	return true
}

// List returns all live sessions in no particular order.
func (r *SessionRepository) List() []*store.Session {
	items := r.cache.Items()
	sessions := make([]*store.Session, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(*store.Session))
	}
	return sessions
}
