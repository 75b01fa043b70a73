package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	cataloghandler "github.com/meridiantrade/catalog-services/internal/catalog/handler"
	"github.com/meridiantrade/catalog-services/internal/catalog/service"
	contactservice "github.com/meridiantrade/catalog-services/internal/contact/service"
	"github.com/meridiantrade/catalog-services/internal/faq"
	"github.com/meridiantrade/catalog-services/internal/storage"
	"github.com/meridiantrade/catalog-services/pkg/logger"
)

// MaxImageBytes caps product image uploads.
const MaxImageBytes = 5 << 20

// AdminHandler serves the catalog management endpoints of the admin panel.
// images and contacts may be nil; their endpoints then answer 503.
type AdminHandler struct {
	catalog  *service.Service
	faqs     *faq.Service
	images   storage.ImageStore
	contacts *contactservice.Service
}

func NewAdminHandler(cat *service.Service, faqs *faq.Service, images storage.ImageStore, contacts *contactservice.Service) *AdminHandler {
	return &AdminHandler{catalog: cat, faqs: faqs, images: images, contacts: contacts}
}

// Register mounts the admin routes on rg, which must already carry the
// auth middleware.
func (h *AdminHandler) Register(rg gin.IRouter) {
	rg.GET("/products", h.ListProducts)
	rg.POST("/products", h.CreateProduct)
	rg.PUT("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.DeleteProduct)
	rg.PATCH("/products/:id/featured", h.SetFeatured)
	rg.PATCH("/products/:id/stock", h.SetStock)
	rg.POST("/products/:id/image", h.UploadImage)

	rg.POST("/categories", h.CreateCategory)
	rg.PUT("/categories/:id", h.UpdateCategory)
	rg.DELETE("/categories/:id", h.DeleteCategory)

	rg.GET("/faqs", h.ListFAQs)
	rg.POST("/faqs", h.AddFAQ)
	rg.POST("/faqs/seed", h.SeedFAQs)

	rg.GET("/contact-messages", h.ListContactMessages)
}

func (h *AdminHandler) ListProducts(c *gin.Context) {
	list, err := h.catalog.ListProducts(c.Request.Context(), service.ProductFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	})
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var p catalog.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = ""
	id, err := h.catalog.CreateProduct(c.Request.Context(), &p)
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var patch catalog.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type flagRequest struct {
	Featured *bool `json:"featured"`
	InStock  *bool `json:"inStock"`
}

func (h *AdminHandler) SetFeatured(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Featured == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "featured is required"})
		return
	}
	p, err := h.catalog.SetFeatured(c.Request.Context(), c.Param("id"), *req.Featured)
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) SetStock(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.InStock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inStock is required"})
		return
	}
	p, err := h.catalog.SetInStock(c.Request.Context(), c.Param("id"), *req.InStock)
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UploadImage stores the multipart "image" field and points the product's
// imageUrl at it.
func (h *AdminHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": storage.ErrNotConfigured.Error()})
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.catalog.GetProduct(ctx, id); err != nil {
		cataloghandler.RespondError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes+1<<10)
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fh.Size > MaxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	url, err := h.images.PutImage(ctx, id, fh.Filename, f, fh.Size, contentType)
	if err != nil {
		logger.Errorf("image upload for product %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
		return
	}
	p, err := h.catalog.SetProductImage(ctx, id, url)
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var cat catalog.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat.ID = ""
	id, err := h.catalog.CreateCategory(c.Request.Context(), &cat)
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	var patch catalog.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := h.catalog.UpdateCategory(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListFAQs(c *gin.Context) {
	list, err := h.faqs.GetAllFAQs(c.Request.Context())
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) AddFAQ(c *gin.Context) {
	var f catalog.FAQ
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f.ID = ""
	id, err := h.faqs.AddFAQ(c.Request.Context(), &f)
	if err != nil {
		cataloghandler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *AdminHandler) SeedFAQs(c *gin.Context) {
	if !h.faqs.EnsureSeeded(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "faq seeding failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"seeded": true})
}

func (h *AdminHandler) ListContactMessages(c *gin.Context) {
	if h.contacts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contact inbox is not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	list, err := h.contacts.List(c.Request.Context(), limit)
	if err != nil {
		logger.Errorf("list contact messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, list)
}
