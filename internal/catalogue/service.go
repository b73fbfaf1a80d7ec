package catalogue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"go.uber.org/zap"
)

// ValidationError reports a create payload rejected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type Service struct {
	repo *Repo
	log  *zap.Logger
}

func NewService(repo *Repo, log *zap.Logger) *Service {
	return &Service{repo: repo, log: logging.OrNop(log)}
}

func (s *Service) List(ctx context.Context, f Filter) ([]Item, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, itemID string) (*Item, error) {
	return s.repo.Get(ctx, itemID)
}

// Create validates and stores a new item, returning its item_id.
func (s *Service) Create(ctx context.Context, in NewItem) (string, error) {
	if err := validate(in); err != nil {
		return "", err
	}
	it := in.toItem()
	if err := s.repo.Create(ctx, it); err != nil {
		return "", fmt.Errorf("create item: %w", err)
	}
	s.log.Info("catalogue item created", zap.String("item_id", it.ItemID), zap.String("type", it.Type))
	return it.ItemID, nil
}

// Summary returns the first n items for prompt context.
func (s *Service) Summary(ctx context.Context, n int) ([]Item, error) {
	return s.repo.First(ctx, n)
}

func validate(in NewItem) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(in.Type) == "" {
		return &ValidationError{Field: "type", Reason: "required"}
	}
	if strings.TrimSpace(in.Purity) == "" {
		return &ValidationError{Field: "purity", Reason: "required"}
	}
	if in.WeightMin < 0 || in.WeightMax < 0 {
		return &ValidationError{Field: "weight", Reason: "must not be negative"}
	}
	if in.WeightMin > in.WeightMax {
		return &ValidationError{Field: "weight_min", Reason: "must not exceed weight_max"}
	}
	if in.LabourCostPerGram < 0 {
		return &ValidationError{Field: "labour_cost_per_gram", Reason: "must not be negative"}
	}
	return nil
}
