package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridiantrade/catalog-services/internal/contact"
	"github.com/meridiantrade/catalog-services/internal/contact/service"
)

// RegisterContactRoutes mounts POST /api/contact. mw runs before the
// handler, typically a rate limiter.
func RegisterContactRoutes(r gin.IRouter, svc *service.Service, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), func(c *gin.Context) {
		var req contact.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		m, err := svc.Submit(c.Request.Context(), req)
		switch {
		case errors.Is(err, service.ErrDelivery):
			c.JSON(http.StatusBadGateway, gin.H{"error": "message saved but email delivery failed", "id": m.ID})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		default:
			c.JSON(http.StatusCreated, gin.H{"id": m.ID, "emailed": m.Emailed})
		}
	})
	r.POST("/api/contact", handlers...)
}
