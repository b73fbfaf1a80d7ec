// Package app builds the shared service graph from configuration for the
// API server, the notification worker and goldctl.
package app

import (
	"context"
	"strings"

	"github.com/suPer8Hu/goldsmith-storefront/internal/ai"
	"github.com/suPer8Hu/goldsmith-storefront/internal/catalogue"
	"github.com/suPer8Hu/goldsmith-storefront/internal/chat"
	"github.com/suPer8Hu/goldsmith-storefront/internal/config"
	"github.com/suPer8Hu/goldsmith-storefront/internal/inquiry"
	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"github.com/suPer8Hu/goldsmith-storefront/internal/media"
	"github.com/suPer8Hu/goldsmith-storefront/internal/notify"
	"github.com/suPer8Hu/goldsmith-storefront/internal/pricing"
	"github.com/suPer8Hu/goldsmith-storefront/internal/profile"
	"github.com/suPer8Hu/goldsmith-storefront/internal/store/redisstore"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services is everything a request handler may call.
type Services struct {
	Prices     *pricing.Service
	Catalogue  *catalogue.Service
	Profiles   *profile.Service
	Inquiries  *inquiry.Service
	Chat       *chat.Service
	Media      *media.Signer
	Dispatcher *notify.Dispatcher
}

// Senders returns the chat-ops and email channels. EMAIL_PROVIDER selects
// resend (default) or smtp.
func Senders(cfg config.Config) (chatOps, email notify.Sender) {
	chatOps = notify.NewTelegramSender(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID)

	switch strings.ToLower(cfg.EmailProvider) {
	case "smtp":
		email = notify.NewSMTPSender(notify.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SenderEmail,
		})
	default:
		email = notify.NewResendSender(cfg.ResendAPIURL, cfg.ResendAPIKey, cfg.SenderEmail)
	}
	return chatOps, email
}

// PriceSource wraps the quote provider with the redis cache when one is given.
func PriceSource(cfg config.Config, cache *redisstore.Store, log *zap.Logger) pricing.Source {
	var src pricing.Source = pricing.NewGoldAPISource(cfg.GoldAPIURL, cfg.GoldAPIKey, cfg.GoldAPITimeout, log)
	if cache != nil && cfg.PriceCacheTTL > 0 {
		src = pricing.NewCachedSource(src, cache, cfg.PriceCacheTTL, log)
	}
	return src
}

func Registry(cfg config.Config) *ai.Registry {
	return ai.NewDefaultRegistry(ai.Settings{
		OpenAIBaseURL:     cfg.OpenAIBaseURL,
		OpenAIAPIKey:      cfg.OpenAIAPIKey,
		OpenRouterBaseURL: cfg.OpenRouterBaseURL,
		OpenRouterAPIKey:  cfg.OpenRouterAPIKey,
		OpenRouterSiteURL: cfg.OpenRouterSiteURL,
		OpenRouterAppName: cfg.OpenRouterAppName,
		OllamaBaseURL:     cfg.OllamaBaseURL,
		GeminiAPIKey:      cfg.GeminiAPIKey,
	})
}

// Signer is nil until a Cloudinary secret is configured.
func Signer(cfg config.Config) *media.Signer {
	if cfg.CloudinaryAPISecret == "" {
		return nil
	}
	return media.NewSigner(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
}

// Build wires the services over gdb. cache and queue are optional.
func Build(_ context.Context, cfg config.Config, gdb *gorm.DB, cache *redisstore.Store, queue notify.Enqueuer, log *zap.Logger) *Services {
	log = logging.OrNop(log)
	chatOps, email := Senders(cfg)
	var opts []notify.Option
	if queue != nil {
		opts = append(opts, notify.WithQueue(queue))
	}
	dispatcher := notify.NewDispatcher(chatOps, email, log.Named("notify"), opts...)

	prices := pricing.NewService(pricing.NewRepo(gdb), PriceSource(cfg, cache, log), log.Named("pricing"))
	items := catalogue.NewService(catalogue.NewRepo(gdb), log.Named("catalogue"))

	return &Services{
		Prices:    prices,
		Catalogue: items,
		Profiles:  profile.NewService(profile.NewRepo(gdb), log.Named("profile")),
		Inquiries: inquiry.NewService(inquiry.NewRepo(gdb), dispatcher, cfg.OwnerEmail, log.Named("inquiry")),
		Chat: chat.NewService(chat.NewRepo(gdb), Registry(cfg), prices, items, chat.Options{
			Provider:       cfg.AIProvider,
			Model:          cfg.AIModel,
			HistoryFetch:   cfg.ChatHistoryFetch,
			ContextWindow:  cfg.ChatContextWindow,
			CatalogueLimit: cfg.ChatCatalogueLimit,
		}, log.Named("chat")),
		Media:      Signer(cfg),
		Dispatcher: dispatcher,
	}
}
