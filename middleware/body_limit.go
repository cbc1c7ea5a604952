package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresouza/portfolio/config"
)

// BodyLimit caps request bodies, protecting the upload endpoints from
// oversized payloads. Reads past the cap fail with a request-too-large
// error from the http layer.
func BodyLimit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, config.MaxRequestBody)
		ctx.Next()
	}
}
