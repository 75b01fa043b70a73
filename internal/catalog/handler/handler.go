package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/internal/catalog/service"
)

// RespondError maps catalog errors to a JSON error response.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, catalog.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrStoreUnavailable), errors.Is(err, catalog.ErrStoreQuery):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// RegisterCatalogRoutes mounts the public, read-only catalog API.
func RegisterCatalogRoutes(r gin.IRouter, svc *service.Service) {
	r.GET("/api/categories", func(c *gin.Context) {
		list, err := svc.Categories(c.Request.Context())
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/api/categories/:slug/products", func(c *gin.Context) {
		ctx := c.Request.Context()
		cat, err := svc.CategoryBySlug(ctx, c.Param("slug"))
		if err != nil {
			RespondError(c, err)
			return
		}
		products, err := svc.ListProducts(ctx, service.ProductFilter{Category: cat.Name})
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": cat, "products": products})
	})

	r.GET("/api/products", func(c *gin.Context) {
		list, err := svc.ListProducts(c.Request.Context(), service.ProductFilter{
			Query:        c.Query("q"),
			Category:     c.Query("category"),
			FeaturedOnly: c.Query("featured") == "true",
		})
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/api/products/:id", func(c *gin.Context) {
		p, err := svc.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.GET("/api/static-paths", func(c *gin.Context) {
		paths, err := svc.StaticPaths(c.Request.Context())
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"paths": paths})
	})
}
