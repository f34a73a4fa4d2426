package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	// DB is the history database; nil means history is kept in memory.
	DB *sql.DB
}

// NewService constructs a new health service.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status reports whether the process can serve analyses and where history
// is stored.
func (s *Service) Status(ctx context.Context) map[string]any {
	if s == nil || s.DB == nil {
		return map[string]any{"ok": true, "history": "memory"}
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return map[string]any{"ok": false, "history": "postgres", "error": err.Error()}
	}
	return map[string]any{"ok": true, "history": "postgres"}
}
