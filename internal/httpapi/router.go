package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
	"github.com/suPer8Hu/goldsmith-storefront/internal/httpapi/handlers"
	"github.com/suPer8Hu/goldsmith-storefront/internal/httpapi/middleware"
	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"go.uber.org/zap"
)

type Options struct {
	CORSOrigins []string

	// Limiter throttles form submissions; nil disables throttling.
	Limiter      middleware.Limiter
	SubmitLimit  int
	SubmitWindow time.Duration

	Log *zap.Logger
}

func NewRouter(h *handlers.Handler, opts Options) *gin.Engine {
	log := logging.OrNop(opts.Log)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, common.CodeRouteNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, common.CodeMethodNotAllowed, "method not allowed")
	})

	throttle := func(route string) gin.HandlerFunc {
		return middleware.Throttle(opts.Limiter, route, opts.SubmitLimit, opts.SubmitWindow, log)
	}

	api := r.Group("/api")
	api.GET("/health", h.Health)

	// gold price
	api.GET("/gold-price", h.GetGoldPrice)
	api.POST("/gold-price", h.UpdateGoldPrice)
	api.GET("/gold-price/history", h.GoldPriceHistory)
	api.GET("/calculate-price", h.CalculatePrice)
	api.POST("/calculate-price", h.CalculatePrice)

	// goldsmith profile + education
	api.GET("/goldsmith", h.GetProfile)
	api.POST("/goldsmith", h.UpdateProfile)
	api.GET("/education", h.Education)

	// catalogue
	api.GET("/jewellery", h.ListJewellery)
	api.GET("/jewellery/:item_id", h.GetJewellery)
	api.POST("/jewellery", h.CreateJewellery)

	// inquiries
	api.POST("/contact", throttle("contact"), h.SubmitContact)
	api.POST("/order-intent", throttle("order-intent"), h.SubmitOrderIntent)
	api.GET("/order-intent/:order_id", h.GetOrderIntent)

	// assistant
	api.POST("/chat", h.SendChatMessage)
	api.GET("/chat/:session_id/messages", h.ListChatMessages)

	api.GET("/cloudinary/signature", h.UploadSignature)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
