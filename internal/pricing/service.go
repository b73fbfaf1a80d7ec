package pricing

import (
	"context"
	"time"

	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"go.uber.org/zap"
)

type Service struct {
	repo   *Repo
	source Source
	log    *zap.Logger
	now    func() time.Time
}

// NewService wires the quote history and an optional live source; a nil
// source skips straight to the stored/default tiers.
func NewService(repo *Repo, source Source, log *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		source: source,
		log:    logging.OrNop(log),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Current resolves the quote through live -> newest stored -> default.
// Each tier is consulted only when the previous one yields nothing.
func (s *Service) Current(ctx context.Context) Quote {
	if s.source != nil {
		if price, ok := s.source.FetchLive(ctx); ok && price > 0 {
			q := DeriveQuote(price, s.now())
			if err := s.repo.Insert(ctx, &q); err != nil {
				s.log.Warn("persist live quote failed", zap.Error(err))
			}
			return q
		}
	}

	stored, err := s.repo.Latest(ctx)
	if err != nil {
		s.log.Warn("read stored quote failed", zap.Error(err))
	}
	if stored != nil {
		return *stored
	}

	return DefaultQuote(s.now())
}

// UpdateManually appends an operator quote as given, without ratio checks.
func (s *Service) UpdateManually(ctx context.Context, in ManualQuote) (*Quote, error) {
	q := &Quote{
		Gold24K:   in.Gold24K,
		Gold22K:   in.Gold22K,
		Gold18K:   in.Gold18K,
		Silver:    in.Silver,
		Timestamp: s.now(),
		Source:    SourceManual,
	}
	if err := s.repo.Insert(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info("manual quote stored", zap.Float64("gold_24k", q.Gold24K))
	return q, nil
}

func (s *Service) History(ctx context.Context, limit int) ([]Quote, error) {
	return s.repo.List(ctx, limit)
}

// Calculate prices an item against the current quote.
func (s *Service) Calculate(ctx context.Context, weight float64, purity string, labourPerGram float64, includeTax bool) Calculation {
	return Calculate(s.Current(ctx), weight, purity, labourPerGram, includeTax)
}
