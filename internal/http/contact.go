package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/domain"
)

type contactInfoRequest struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Github   *string `json:"github"`
	Linkedin *string `json:"linkedin"`
	Address  *string `json:"address"`
}

type submissionRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Message string  `json:"message"`
}

func (h *Handler) getContactInfo(c *gin.Context) {
	info, err := h.cfg.Contact.GetInfo(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Contact information not found")
		return
	}
	c.JSON(http.StatusOK, contactInfoToResponse(*info))
}

func (h *Handler) upsertContactInfo(c *gin.Context) {
	var req contactInfoRequest
	if !bindJSON(c, &req) {
		return
	}
	info, err := h.cfg.Contact.UpsertInfo(c.Request.Context(), domain.ContactInfoPatch{
		Email:    req.Email,
		Phone:    req.Phone,
		Github:   req.Github,
		Linkedin: req.Linkedin,
		Address:  req.Address,
	})
	if err != nil {
		h.fail(c, err, "Contact information not found")
		return
	}
	c.JSON(http.StatusOK, contactInfoToResponse(*info))
}

func (h *Handler) submitContact(c *gin.Context) {
	var req submissionRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, err := h.cfg.Contact.Submit(c.Request.Context(), domain.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		h.fail(c, err, "Contact submission not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Contact form submitted successfully",
		"submission": submissionToResponse(*sub),
	})
}

func (h *Handler) listSubmissions(c *gin.Context) {
	subs, err := h.cfg.Contact.ListSubmissions(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	resp := make([]SubmissionResponse, len(subs))
	for i := range subs {
		resp[i] = submissionToResponse(subs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getSubmission(c *gin.Context) {
	id, ok := parseID(c, "submission")
	if !ok {
		return
	}
	sub, err := h.cfg.Contact.GetSubmission(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Contact submission not found")
		return
	}
	c.JSON(http.StatusOK, submissionToResponse(*sub))
}

func (h *Handler) deleteSubmission(c *gin.Context) {
	id, ok := parseID(c, "submission")
	if !ok {
		return
	}
	if err := h.cfg.Contact.DeleteSubmission(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Contact submission not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact submission deleted successfully"})
}
