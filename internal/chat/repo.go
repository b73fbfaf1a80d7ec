package chat

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// InsertTurns writes turns in one statement.
func (r *Repo) InsertTurns(ctx context.Context, turns []Turn) error {
	if len(turns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&turns).Error
}

// RecentTurns returns the newest limit turns of a session in ASC order
// (oldest -> newest).
func (r *Repo) RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 20
	}
	var desc []Turn
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&desc).Error; err != nil {
		return nil, err
	}

	out := make([]Turn, 0, len(desc))
	for i := len(desc) - 1; i >= 0; i-- {
		out = append(out, desc[i])
	}
	return out, nil
}
