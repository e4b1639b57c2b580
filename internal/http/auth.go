package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	identity, err := h.cfg.Verifier.Verify(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := auth.StatusOf(err)
		if status == http.StatusInternalServerError {
			h.observeLogin("error")
			h.internalError(c, err)
			return
		}
		h.observeLogin("invalid")
		h.logger.WithField("client_ip", c.ClientIP()).Debug("login rejected")
		c.JSON(status, gin.H{"error": msg})
		return
	}

	token, err := h.cfg.Tokens.Issue(identity)
	if err != nil {
		h.observeLogin("error")
		h.internalError(c, err)
		return
	}
	h.observeLogin("success")

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    userToResponse(identity),
	})
}

func (h *Handler) verify(c *gin.Context) {
	identity, ok := auth.IdentityFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  userToResponse(identity),
	})
}

func (h *Handler) observeLogin(result string) {
	if h.cfg.Metrics != nil {
		h.cfg.Metrics.ObserveLogin(result)
	}
}
