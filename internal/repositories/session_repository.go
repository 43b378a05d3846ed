package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/handsoff/console/internal/models"
)

// SessionRepository persists console sessions in SQLite.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

// Get retrieves a session by ID. An unknown ID yields an empty, signed-out
// session.
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := `SELECT id, token, user_json, created_at, updated_at FROM sessions WHERE id = ?`

	var session models.Session
	var userJSON string
	err := r.db.QueryRow(query, id).Scan(
		&session.ID,
		&session.Token,
		&userJSON,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Session{ID: id}, nil
	}
	if err != nil {
		return nil, err
	}

	if userJSON != "" {
		var user models.User
		if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
			return nil, err
		}
		session.User = &user
	}

	return &session, nil
}

// Save writes the whole session, replacing any stored state.
func (r *SessionRepository) Save(session *models.Session) error {
	userJSON := ""
	if session.User != nil {
		data, err := json.Marshal(session.User)
		if err != nil {
			return err
		}
		userJSON = string(data)
	}

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	query := `
		INSERT INTO sessions (id, token, user_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_json = excluded.user_json,
			updated_at = excluded.updated_at
	`
	_, err := r.db.Exec(query,
		session.ID,
		session.Token,
		userJSON,
		session.CreatedAt,
		session.UpdatedAt,
	)
	return err
}

// Clear resets the session to the signed-out state.
func (r *SessionRepository) Clear(id string) error {
	query := `UPDATE sessions SET token = '', user_json = '', updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, time.Now().UTC(), id)
	return err
}

// Touch marks the session as used now.
func (r *SessionRepository) Touch(id string) error {
	query := `UPDATE sessions SET updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, time.Now().UTC(), id)
	return err
}

// DeleteStale removes signed-out sessions and sessions idle since before
// cutoff. It returns the number of rows removed.
func (r *SessionRepository) DeleteStale(cutoff time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE token = '' OR updated_at < ?`
	result, err := r.db.Exec(query, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// MemorySessionRepository keeps sessions in process memory. It is used by
// tests and when no database is configured.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]models.Session),
	}
}

func (r *MemorySessionRepository) Get(id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return &models.Session{ID: id}, nil
	}
	if session.User != nil {
		user := *session.User
		session.User = &user
	}
	return &session, nil
}

func (r *MemorySessionRepository) Save(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	stored := *session
	if session.User != nil {
		user := *session.User
		stored.User = &user
	}
	r.sessions[session.ID] = stored
	return nil
}

func (r *MemorySessionRepository) Clear(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok {
		session.Token = ""
		session.User = nil
		session.UpdatedAt = time.Now().UTC()
		r.sessions[id] = session
	}
	return nil
}

func (r *MemorySessionRepository) Touch(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok {
		session.UpdatedAt = time.Now().UTC()
		r.sessions[id] = session
	}
	return nil
}

func (r *MemorySessionRepository) DeleteStale(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, session := range r.sessions {
		if session.Token == "" || session.UpdatedAt.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
