package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterDocs registers minimal Swagger/OpenAPI endpoints for the listing API.
// - GET /api/docs          -> a small HTML page that loads the OpenAPI JSON
// - GET /api/docs/doc.json -> machine-readable OpenAPI JSON
func RegisterDocs(rg *gin.Engine) {
	rg.GET("/api/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, docsHTML)
	})

	rg.GET("/api/docs/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(docsJSON))
	})
}

const docsHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>estately API — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/api/docs/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const docsJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "estately-api", "version": "v0.1.0" },
  "paths": {
    "/api/listings": {
      "get": {
        "summary": "Page of listings with optional filters",
        "parameters": [
          {"name":"page","in":"query","schema":{"type":"integer","minimum":1}},
          {"name":"limit","in":"query","schema":{"type":"integer","minimum":1,"maximum":100}},
          {"name":"propertyType","in":"query","schema":{"type":"string","enum":["house","apartment","condo","townhouse"]}},
          {"name":"city","in":"query","schema":{"type":"string"}},
          {"name":"bedrooms","in":"query","schema":{"type":"number"}},
          {"name":"minPrice","in":"query","schema":{"type":"number"}},
          {"name":"maxPrice","in":"query","schema":{"type":"number"}}
        ],
        "responses": { "200": { "description": "page of listings" }, "400": { "description": "invalid filter" } }
      },
      "post": { "summary": "Create listing (approved users)", "responses": { "201": { "description": "created" }, "401": { "description": "unauthenticated" }, "403": { "description": "not approved" } } }
    },
    "/api/listings/{id}": {
      "get": { "summary": "One listing", "responses": { "200": { "description": "listing" }, "404": { "description": "not found" } } },
      "put": { "summary": "Partial update (owner or admin)", "responses": { "200": { "description": "updated" }, "403": { "description": "not owner/admin" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Remove listing (owner or admin)", "responses": { "200": { "description": "removed" }, "403": { "description": "not owner/admin" }, "404": { "description": "not found" } } }
    },
    "/api/listings/{id}/images/upload-url": {
      "post": { "summary": "Presigned image upload URL (owner or admin)", "responses": { "200": { "description": "upload + object URLs" }, "403": { "description": "not owner/admin" }, "404": { "description": "not found" }, "503": { "description": "image storage not configured" } } }
    },
    "/api/users/sync": {
      "post": { "summary": "Identity-provider user webhook", "responses": { "200": { "description": "synced user" } } }
    },
    "/api/users/profile": {
      "get": { "summary": "Caller's directory record", "responses": { "200": { "description": "user" } } }
    },
    "/api/users": {
      "get": { "summary": "All users (admin)", "responses": { "200": { "description": "users" }, "403": { "description": "not admin" } } }
    },
    "/api/users/{id}/status": {
      "patch": { "summary": "Set admission status (admin)", "responses": { "200": { "description": "updated user" }, "404": { "description": "unknown user" } } }
    },
    "/api/users/{id}/role": {
      "patch": { "summary": "Set role (admin)", "responses": { "200": { "description": "updated user" }, "404": { "description": "unknown user" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
