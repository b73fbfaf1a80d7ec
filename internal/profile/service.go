package profile

import (
	"context"

	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"go.uber.org/zap"
)

type Service struct {
	repo *Repo
	log  *zap.Logger
}

func NewService(repo *Repo, log *zap.Logger) *Service {
	return &Service{repo: repo, log: logging.OrNop(log)}
}

// Get returns the stored profile or ErrNotFound. It never synthesises one.
func (s *Service) Get(ctx context.Context) (*Profile, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, p Profile) error {
	if err := s.repo.Put(ctx, &p); err != nil {
		return err
	}
	s.log.Info("goldsmith profile updated", zap.String("name", p.Name))
	return nil
}

// Articles returns stored articles, or the built-in set when none are stored
// or the read fails.
func (s *Service) Articles(ctx context.Context) []Article {
	stored, err := s.repo.ListArticles(ctx)
	if err != nil {
		s.log.Warn("read education articles failed", zap.Error(err))
	}
	if len(stored) > 0 {
		return stored
	}
	return DefaultArticles()
}
