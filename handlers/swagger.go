package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>catalog-services Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "catalog-services", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } }
  },
  "paths": {
    "/api/categories": { "get": { "summary": "List categories by name", "responses": { "200": { "description": "categories" } } } },
    "/api/categories/{slug}/products": { "get": { "summary": "Category and its products", "parameters": [{"name":"slug","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "category with products" }, "404": { "description": "unknown category" } } } },
    "/api/products": { "get": { "summary": "List products", "parameters": [{"name":"q","in":"query","schema":{"type":"string"}},{"name":"category","in":"query","schema":{"type":"string"}},{"name":"featured","in":"query","schema":{"type":"boolean"}}], "responses": { "200": { "description": "products" } } } },
    "/api/products/{id}": { "get": { "summary": "Get a product", "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "product" }, "404": { "description": "not found" } } } },
    "/api/static-paths": { "get": { "summary": "Static export routes", "responses": { "200": { "description": "paths" } } } },
    "/api/chat/message": {
      "post": {
        "summary": "Answer a chat message from FAQs or the catalog",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["message"],"properties":{"message":{"type":"string"}}}}}},
        "responses": { "200": { "description": "reply and source (faq, product, fallback)" }, "429": { "description": "rate limited" } }
      }
    },
    "/api/chat/faqs": { "get": { "summary": "FAQ suggestions", "responses": { "200": { "description": "faqs" } } } },
    "/api/contact": {
      "post": {
        "summary": "Submit the contact form",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email","message"],"properties":{"name":{"type":"string"},"email":{"type":"string"},"company":{"type":"string"},"phone":{"type":"string"},"subject":{"type":"string"},"message":{"type":"string"}}}}}},
        "responses": { "201": { "description": "stored" }, "400": { "description": "invalid" }, "502": { "description": "stored but not emailed" } }
      }
    },
    "/api/admin/login": {
      "post": {
        "summary": "Admin login",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/admin/refresh": {
      "post": { "summary": "Rotate refresh token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refreshToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "new tokens" }, "401": { "description": "invalid refresh" } } }
    },
    "/api/admin/logout": {
      "post": { "summary": "Logout and revoke tokens", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refreshToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "logged out" } } }
    },
    "/api/admin/me": { "get": { "summary": "Current admin claims", "security": [{"bearer":[]}], "responses": { "200": { "description": "claims" } } } },
    "/api/admin/products": {
      "get": { "summary": "List products", "security": [{"bearer":[]}], "responses": { "200": { "description": "products" } } },
      "post": { "summary": "Create product", "security": [{"bearer":[]}], "responses": { "201": { "description": "created" } } }
    },
    "/api/admin/products/{id}": {
      "put": { "summary": "Update product", "security": [{"bearer":[]}], "responses": { "200": { "description": "updated" } } },
      "delete": { "summary": "Delete product", "security": [{"bearer":[]}], "responses": { "204": { "description": "deleted" } } }
    },
    "/api/admin/products/{id}/featured": { "patch": { "summary": "Set featured flag", "security": [{"bearer":[]}], "responses": { "200": { "description": "updated" } } } },
    "/api/admin/products/{id}/stock": { "patch": { "summary": "Set stock flag", "security": [{"bearer":[]}], "responses": { "200": { "description": "updated" } } } },
    "/api/admin/products/{id}/image": { "post": { "summary": "Upload product image", "security": [{"bearer":[]}], "responses": { "200": { "description": "updated" }, "503": { "description": "storage not configured" } } } },
    "/api/admin/categories": { "post": { "summary": "Create category", "security": [{"bearer":[]}], "responses": { "201": { "description": "created" } } } },
    "/api/admin/categories/{id}": {
      "put": { "summary": "Update category", "security": [{"bearer":[]}], "responses": { "200": { "description": "updated" } } },
      "delete": { "summary": "Delete category", "security": [{"bearer":[]}], "responses": { "204": { "description": "deleted" } } }
    },
    "/api/admin/faqs": {
      "get": { "summary": "List FAQs", "security": [{"bearer":[]}], "responses": { "200": { "description": "faqs" } } },
      "post": { "summary": "Add FAQ", "security": [{"bearer":[]}], "responses": { "201": { "description": "created" } } }
    },
    "/api/admin/faqs/seed": { "post": { "summary": "Seed default FAQs", "security": [{"bearer":[]}], "responses": { "200": { "description": "seeded" }, "503": { "description": "store unavailable" } } } },
    "/api/admin/contact-messages": { "get": { "summary": "Recent contact messages", "security": [{"bearer":[]}], "responses": { "200": { "description": "messages" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
