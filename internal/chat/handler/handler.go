package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/internal/chat"
	"github.com/meridiantrade/catalog-services/pkg/logger"
)

// FAQLister is satisfied by *faq.Service.
type FAQLister interface {
	GetAllFAQs(ctx context.Context) ([]*catalog.FAQ, error)
}

type messageRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

type suggestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Category string `json:"category,omitempty"`
}

// RegisterChatRoutes mounts the chat widget API. mw guards the message
// endpoint only.
func RegisterChatRoutes(r gin.IRouter, responder *chat.Responder, faqs FAQLister, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), func(c *gin.Context) {
		var req messageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, responder.Respond(c.Request.Context(), req.Message))
	})
	r.POST("/api/chat/message", handlers...)

	r.GET("/api/chat/faqs", func(c *gin.Context) {
		list, err := faqs.GetAllFAQs(c.Request.Context())
		if err != nil {
			// the widget simply shows no suggestions
			logger.Warnf("chat suggestions: %v", err)
			c.JSON(http.StatusOK, []suggestion{})
			return
		}
		out := make([]suggestion, 0, len(list))
		for _, f := range list {
			out = append(out, suggestion{ID: f.ID, Question: f.Question, Category: f.Category})
		}
		c.JSON(http.StatusOK, out)
	})
}
