package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
)

// MemorySession keeps conversation sessions in process memory. Sessions are lost on restart.
type MemorySession struct {
	mu       sync.RWMutex
	sessions map[int64]model.Session
}

func NewMemorySession() *MemorySession {
	return &MemorySession{sessions: make(map[int64]model.Session)}
}

func (m *MemorySession) GetSession(ctx context.Context, userID int64) (model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return model.Session{}, ErrNotFound
	}
	return s, nil
}

func (m *MemorySession) SetSession(ctx context.Context, userID int64, s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = s
	return nil
}

func (m *MemorySession) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// ExpireSessions drops sessions not touched since olderThan and returns how many were removed.
func (m *MemorySession) ExpireSessions(ctx context.Context, olderThan time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for userID, s := range m.sessions {
		if s.UpdatedAt.Before(olderThan) {
			delete(m.sessions, userID)
			removed++
		}
	}

	if removed > 0 {
		slog.Info("expired sessions", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.Int("count", removed))
	}

	return removed
}
