package pricing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"go.uber.org/zap"
)

// Source yields a live 24K price per gram. ok is false when no usable price
// was obtained; implementations never return errors to the caller.
type Source interface {
	FetchLive(ctx context.Context) (price float64, ok bool)
}

const DefaultFetchTimeout = 10 * time.Second

// GoldAPISource queries a goldapi.io-style endpoint once per call.
type GoldAPISource struct {
	URL    string
	APIKey string
	Client *http.Client
	log    *zap.Logger
}

type goldAPIResp struct {
	PriceGram24K *float64 `json:"price_gram_24k"`
}

func NewGoldAPISource(url, apiKey string, timeout time.Duration, log *zap.Logger) *GoldAPISource {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &GoldAPISource{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: timeout},
		log:    logging.OrNop(log),
	}
}

func (s *GoldAPISource) FetchLive(ctx context.Context) (float64, bool) {
	if strings.TrimSpace(s.URL) == "" {
		return 0, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		s.log.Warn("gold quote request build failed", zap.Error(err))
		return 0, false
	}
	if s.APIKey != "" {
		req.Header.Set("x-access-token", s.APIKey)
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		s.log.Warn("gold quote fetch failed", zap.Error(err))
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4*1024))
		s.log.Warn("gold quote fetch non-200", zap.Int("status", resp.StatusCode))
		return 0, false
	}

	var decoded goldAPIResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		s.log.Warn("gold quote decode failed", zap.Error(err))
		return 0, false
	}
	if decoded.PriceGram24K == nil || *decoded.PriceGram24K <= 0 {
		s.log.Warn("gold quote missing price_gram_24k")
		return 0, false
	}
	return *decoded.PriceGram24K, true
}

// QuoteCache stores the last live 24K price for a short time.
type QuoteCache interface {
	GetLivePrice(ctx context.Context) (price float64, ok bool, err error)
	SetLivePrice(ctx context.Context, price float64, ttl time.Duration) error
}

// CachedSource serves a recent live price from cache before asking the
// wrapped source. Cache failures fall through to the wrapped source.
type CachedSource struct {
	Inner Source
	Cache QuoteCache
	TTL   time.Duration
	log   *zap.Logger
}

func NewCachedSource(inner Source, cache QuoteCache, ttl time.Duration, log *zap.Logger) *CachedSource {
	return &CachedSource{Inner: inner, Cache: cache, TTL: ttl, log: logging.OrNop(log)}
}

func (s *CachedSource) FetchLive(ctx context.Context) (float64, bool) {
	if s.Cache != nil && s.TTL > 0 {
		price, ok, err := s.Cache.GetLivePrice(ctx)
		if err != nil {
			s.log.Debug("quote cache read failed", zap.Error(err))
		} else if ok && price > 0 {
			return price, true
		}
	}

	price, ok := s.Inner.FetchLive(ctx)
	if !ok {
		return 0, false
	}

	if s.Cache != nil && s.TTL > 0 {
		if err := s.Cache.SetLivePrice(ctx, price, s.TTL); err != nil {
			s.log.Debug("quote cache write failed", zap.Error(err))
		}
	}
	return price, true
}
