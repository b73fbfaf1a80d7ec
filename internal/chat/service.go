package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/suPer8Hu/goldsmith-storefront/internal/ai"
	"github.com/suPer8Hu/goldsmith-storefront/internal/catalogue"
	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"github.com/suPer8Hu/goldsmith-storefront/internal/pricing"
	"go.uber.org/zap"
)

type PriceSource interface {
	Current(ctx context.Context) pricing.Quote
}

type CatalogueSource interface {
	Summary(ctx context.Context, n int) ([]catalogue.Item, error)
}

type Options struct {
	Provider string
	Model    string

	HistoryFetch   int // stored turns loaded per request
	ContextWindow  int // turns replayed to the provider
	CatalogueLimit int // items embedded in the system prompt
}

func (o *Options) normalize() {
	if o.Provider == "" {
		o.Provider = "openai"
	}
	if o.HistoryFetch <= 0 {
		o.HistoryFetch = 20
	}
	if o.ContextWindow <= 0 || o.ContextWindow > o.HistoryFetch {
		o.ContextWindow = min(10, o.HistoryFetch)
	}
	if o.CatalogueLimit <= 0 {
		o.CatalogueLimit = 20
	}
}

type Service struct {
	repo      *Repo
	registry  *ai.Registry
	prices    PriceSource
	catalogue CatalogueSource
	opts      Options
	log       *zap.Logger
	now       func() time.Time
}

func NewService(repo *Repo, registry *ai.Registry, prices PriceSource, cat CatalogueSource, opts Options, log *zap.Logger) *Service {
	opts.normalize()
	return &Service{
		repo:      repo,
		registry:  registry,
		prices:    prices,
		catalogue: cat,
		opts:      opts,
		log:       logging.OrNop(log),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Respond never fails: any error on the way yields Apology and nothing is
// stored.
func (s *Service) Respond(ctx context.Context, sessionID, message string) Reply {
	reply, err := s.respond(ctx, sessionID, message)
	if err != nil {
		s.log.Warn("assistant unavailable", zap.String("session_id", sessionID), zap.Error(err))
		return Reply{Response: Apology, SessionID: sessionID}
	}
	return Reply{Response: reply, SessionID: sessionID}
}

func (s *Service) respond(ctx context.Context, sessionID, message string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("assistant panicked", zap.Any("panic", r))
			err = errors.New("assistant panicked")
		}
	}()

	if s.registry == nil {
		return "", errors.New("no ai registry")
	}
	provider, err := s.registry.Get(ctx, s.opts.Provider, s.opts.Model)
	if err != nil {
		return "", err
	}

	var items []catalogue.Item
	if s.catalogue != nil {
		items, err = s.catalogue.Summary(ctx, s.opts.CatalogueLimit)
		if err != nil {
			return "", err
		}
	}
	var quote pricing.Quote
	if s.prices != nil {
		quote = s.prices.Current(ctx)
	} else {
		quote = pricing.DefaultQuote(s.now())
	}

	history, err := s.repo.RecentTurns(ctx, sessionID, s.opts.HistoryFetch)
	if err != nil {
		return "", err
	}
	if len(history) > s.opts.ContextWindow {
		history = history[len(history)-s.opts.ContextWindow:]
	}

	msgs := make([]ai.Message, 0, len(history)+2)
	msgs = append(msgs, ai.Message{Role: ai.RoleSystem, Content: SystemPrompt(quote, items)})
	for _, t := range history {
		role := ai.RoleAssistant
		if t.Role == RoleUser {
			role = ai.RoleUser
		}
		msgs = append(msgs, ai.Message{Role: role, Content: t.Content})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: message})

	reply, err = provider.Chat(ctx, msgs)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", ai.ErrEmptyReply
	}

	ts := s.now()
	if err := s.repo.InsertTurns(ctx, []Turn{
		{SessionID: sessionID, Role: RoleUser, Content: message, Timestamp: ts},
		{SessionID: sessionID, Role: RoleAssistant, Content: reply, Timestamp: ts},
	}); err != nil {
		return "", err
	}
	return reply, nil
}

// History returns up to limit of the session's newest turns, oldest first.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.RecentTurns(ctx, sessionID, limit)
}
