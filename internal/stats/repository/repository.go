package repository

import (
	"path/filepath"
	"time"

	"villagehub-backend/internal/stats/domain"
	"villagehub-backend/pkg/storage"
)

// StatsRepository defines the interface for entry-stat persistence
type StatsRepository interface {
	Get() (domain.EntryStats, error)
	Increment() (domain.EntryStats, error)
}

type statsRepository struct {
	doc *storage.Document[domain.EntryStats]
}

// NewStatsRepository creates a new instance of statsRepository
func NewStatsRepository(dataDir string) StatsRepository {
	return &statsRepository{
		doc: storage.NewDocument[domain.EntryStats](filepath.Join(dataDir, "entry_stats.json")),
	}
}

func (r *statsRepository) Get() (domain.EntryStats, error) {
	return r.doc.Get()
}

// Increment bumps the counter and persists it. The document reverts the
// in-memory value when the write fails, so a failed increment is not
// observable on the next read.
func (r *statsRepository) Increment() (domain.EntryStats, error) {
	return r.doc.Mutate(func(s *domain.EntryStats) {
		s.Count++
		s.UpdatedAt = time.Now()
	})
}
