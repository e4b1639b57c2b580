package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/domain"
)

type homepageRequest struct {
	BannerTitle       *string `json:"banner_title"`
	BannerSubtitle    *string `json:"banner_subtitle"`
	BannerDescription *string `json:"banner_description"`
}

func (h *Handler) getHomepage(c *gin.Context) {
	settings, err := h.cfg.Homepage.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Homepage settings not found")
		return
	}
	c.JSON(http.StatusOK, homepageToResponse(*settings))
}

func (h *Handler) upsertHomepage(c *gin.Context) {
	var req homepageRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.cfg.Homepage.Upsert(c.Request.Context(), domain.HomepagePatch{
		BannerTitle:       req.BannerTitle,
		BannerSubtitle:    req.BannerSubtitle,
		BannerDescription: req.BannerDescription,
	})
	if err != nil {
		h.fail(c, err, "Homepage settings not found")
		return
	}
	c.JSON(http.StatusOK, homepageToResponse(*settings))
}

func (h *Handler) uploadCV(c *gin.Context) {
	header, err := c.FormFile("cv")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "CV file is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No CV file uploaded"})
		return
	}
	if header.Size > maxCVSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "CV file is too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.internalError(c, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	settings, url, err := h.cfg.Homepage.UploadCV(c.Request.Context(), file, header.Size, contentType)
	if err != nil {
		h.fail(c, err, "Homepage settings not found")
		return
	}
	c.JSON(http.StatusOK, UploadCVResponse{
		Message:          "CV uploaded successfully",
		CVURL:            url,
		HomepageResponse: homepageToResponse(*settings),
	})
}

func (h *Handler) deleteCV(c *gin.Context) {
	settings, err := h.cfg.Homepage.DeleteCV(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Homepage settings not found")
		return
	}
	c.JSON(http.StatusOK, homepageToResponse(*settings))
}
