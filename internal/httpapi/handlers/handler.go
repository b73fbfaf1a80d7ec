package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/suPer8Hu/goldsmith-storefront/internal/catalogue"
	"github.com/suPer8Hu/goldsmith-storefront/internal/chat"
	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
	"github.com/suPer8Hu/goldsmith-storefront/internal/inquiry"
	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"github.com/suPer8Hu/goldsmith-storefront/internal/media"
	"github.com/suPer8Hu/goldsmith-storefront/internal/pricing"
	"github.com/suPer8Hu/goldsmith-storefront/internal/profile"
	"go.uber.org/zap"
)

// Deps are the services behind the HTTP surface. All are required except
// Media, whose absence reads as unconfigured.
type Deps struct {
	Prices    *pricing.Service
	Catalogue *catalogue.Service
	Profiles  *profile.Service
	Inquiries *inquiry.Service
	Chat      *chat.Service
	Media     *media.Signer
	Log       *zap.Logger
}

type Handler struct {
	Prices    *pricing.Service
	Catalogue *catalogue.Service
	Profiles  *profile.Service
	Inquiries *inquiry.Service
	ChatSvc   *chat.Service
	Media     *media.Signer

	log *zap.Logger
	now func() time.Time
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		Prices:    d.Prices,
		Catalogue: d.Catalogue,
		Profiles:  d.Profiles,
		Inquiries: d.Inquiries,
		ChatSvc:   d.Chat,
		Media:     d.Media,
		log:       logging.OrNop(d.Log),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) Health(c *gin.Context) {
	common.OK(c, gin.H{
		"status":    "healthy",
		"timestamp": h.now(),
	})
}

// bindJSON decodes the body into dst and writes the 400 itself on failure.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		common.Fail(c, http.StatusBadRequest, common.CodeInvalidParams, ve.Error())
		return false
	}
	common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON, "invalid json")
	return false
}

func (h *Handler) storeError(c *gin.Context, op string, err error) {
	h.log.Error("store operation failed", zap.String("op", op), zap.Error(err))
	common.Fail(c, http.StatusInternalServerError, common.CodeStoreError, "failed to "+op)
}
