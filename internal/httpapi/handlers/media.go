package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
	"github.com/suPer8Hu/goldsmith-storefront/internal/media"
)

func (h *Handler) UploadSignature(c *gin.Context) {
	if h.Media == nil {
		common.Fail(c, http.StatusInternalServerError, common.CodeNotConfigured, "Cloudinary not configured")
		return
	}

	creds, err := h.Media.Sign(c.Query("resource_type"), c.Query("folder"), h.now())
	switch {
	case err == nil:
		common.OK(c, creds)
	case errors.Is(err, media.ErrInvalidResourceType):
		common.Fail(c, http.StatusBadRequest, common.CodeInvalidQuery, "resource_type must be image or video")
	case errors.Is(err, media.ErrNotConfigured):
		common.Fail(c, http.StatusInternalServerError, common.CodeNotConfigured, "Cloudinary not configured")
	default:
		common.Fail(c, http.StatusInternalServerError, common.CodeInternal, "failed to sign upload")
	}
}
