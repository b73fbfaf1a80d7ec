package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
	"github.com/suPer8Hu/goldsmith-storefront/internal/profile"
)

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.Profiles.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, common.CodeProfileNotFound, "Profile not found")
			return
		}
		h.storeError(c, "get profile", err)
		return
	}
	common.OK(c, p)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profile.Profile
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Profiles.Update(c.Request.Context(), req); err != nil {
		h.storeError(c, "update profile", err)
		return
	}
	common.OK(c, gin.H{
		"status":  "success",
		"message": "Profile updated",
	})
}

func (h *Handler) Education(c *gin.Context) {
	common.OK(c, gin.H{"articles": h.Profiles.Articles(c.Request.Context())})
}
