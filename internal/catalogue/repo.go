package catalogue

import (
	"context"
	"errors"
	"time"

	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
	"gorm.io/gorm"
)

// MaxList caps every List result.
const MaxList = 100

var ErrNotFound = errors.New("catalogue: item not found")

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// List returns items matching every set filter field, in insertion order.
func (r *Repo) List(ctx context.Context, f Filter) ([]Item, error) {
	q := r.db.WithContext(ctx).Model(&Item{})

	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Occasion != nil {
		q = q.Where("occasion = ?", *f.Occasion)
	}
	if f.Gender != nil {
		q = q.Where("gender = ?", *f.Gender)
	}
	if f.Purity != nil {
		q = q.Where("purity = ?", *f.Purity)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if f.MinWeight != nil {
		q = q.Where("weight_max >= ?", *f.MinWeight)
	}
	if f.MaxWeight != nil {
		q = q.Where("weight_min <= ?", *f.MaxWeight)
	}

	items := make([]Item, 0)
	if err := q.Order("id ASC").Limit(MaxList).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns the first item stored under itemID.
func (r *Repo) Get(ctx context.Context, itemID string) (*Item, error) {
	var it Item
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("id ASC").
		First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create stores it, generating an 8-character ItemID when empty. Existing
// items with the same ItemID are left alone.
func (r *Repo) Create(ctx context.Context, it *Item) error {
	if it.ItemID == "" {
		it.ItemID = common.NewShortID()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}
	if it.Images == nil {
		it.Images = []string{}
	}
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Item{}).Count(&n).Error
	return n, err
}

// First returns up to n items in insertion order.
func (r *Repo) First(ctx context.Context, n int) ([]Item, error) {
	if n <= 0 || n > MaxList {
		n = MaxList
	}
	items := make([]Item, 0, n)
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(n).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
