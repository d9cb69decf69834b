package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/contact"
)

// ContactHandler accepts contact form submissions
type ContactHandler struct {
	deps *Dependencies
	log  zerolog.Logger
}

// NewContactHandler creates a handler for the contact form
func NewContactHandler(deps *Dependencies, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{deps: deps, log: log}
}

// Submit validates and delivers one contact message
func (h *ContactHandler) Submit(c *gin.Context) {
	if !h.deps.ContactLimiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many messages, try again later"})
		return
	}

	var msg contact.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, a valid email and a message are required"})
		return
	}

	if err := h.deps.Contact.Send(c.Request.Context(), msg); err != nil {
		h.log.Error().Err(err).Str("provider", h.deps.Contact.Name()).Msg("Contact delivery failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent"})
}
