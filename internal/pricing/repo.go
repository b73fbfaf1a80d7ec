package pricing

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, q *Quote) error {
	return r.db.WithContext(ctx).Create(q).Error
}

// Latest returns the newest quote by timestamp, or nil when history is empty.
func (r *Repo) Latest(ctx context.Context) (*Quote, error) {
	var q Quote
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns quotes newest first.
func (r *Repo) List(ctx context.Context, limit int) ([]Quote, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []Quote
	if err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
