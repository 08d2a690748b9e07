package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the donation API.
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
    <title>Paws &amp; Hearts API - Swagger</title>
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
  "info": { "title": "Paws & Hearts API", "description": "Donation backend for animal welfare", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Donation": {
        "type": "object",
        "required": ["name", "email", "amount"],
        "properties": {
          "name": { "type": "string", "minLength": 1 },
          "email": { "type": "string", "format": "email" },
          "amount": { "type": "number", "exclusiveMinimum": true, "minimum": 0 },
          "animal": { "type": "string", "default": "all" },
          "message": { "type": "string", "nullable": true },
          "recurring": { "type": "boolean", "default": false }
        }
      },
      "DonationOut": {
        "type": "object",
        "properties": {
          "id": { "type": "string" },
          "name": { "type": "string" },
          "email": { "type": "string" },
          "amount": { "type": "number" },
          "animal": { "type": "string" },
          "message": { "type": "string", "nullable": true },
          "recurring": { "type": "boolean" }
        }
      }
    }
  },
  "paths": {
    "/": { "get": { "summary": "Liveness message", "responses": { "200": { "description": "running" } } } },
    "/test": { "get": { "summary": "Database connectivity report", "responses": { "200": { "description": "report" } } } },
    "/api/donations": {
      "post": {
        "summary": "Record a donation",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Donation" } } } },
        "responses": { "200": { "description": "id of the stored donation" }, "422": { "description": "validation error" }, "500": { "description": "store error" } }
      },
      "get": {
        "summary": "List donations",
        "parameters": [ { "name": "limit", "in": "query", "schema": { "type": "integer", "minimum": 0, "default": 10 } } ],
        "responses": { "200": { "description": "donations", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/DonationOut" } } } } }, "500": { "description": "store error" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
