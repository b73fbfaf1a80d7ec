package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("profile: not found")

// maxArticles bounds the stored article read.
const maxArticles = 20

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Put replaces the singleton wholesale, inserting it when absent.
func (r *Repo) Put(ctx context.Context, p *Profile) error {
	p.ID = SingletonID
	if p.Specializations == nil {
		p.Specializations = []string{}
	}
	if p.Certifications == nil {
		p.Certifications = []string{}
	}
	if p.GalleryImages == nil {
		p.GalleryImages = []string{}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(p).Error
}

func (r *Repo) Exists(ctx context.Context) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", SingletonID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repo) ListArticles(ctx context.Context) ([]Article, error) {
	var out []Article
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(maxArticles).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) PutArticle(ctx context.Context, a *Article) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(a).Error
}
