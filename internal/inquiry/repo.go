package inquiry

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("inquiry: not found")

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateOrderIntent(ctx context.Context, o *OrderIntent) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *Repo) GetOrderIntent(ctx context.Context, orderID string) (*OrderIntent, error) {
	var o OrderIntent
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) CreateContact(ctx context.Context, c *ContactInquiry) error {
	return r.db.WithContext(ctx).Create(c).Error
}
