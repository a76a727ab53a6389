package middleware

import (
	"github.com/labstack/echo/v4"
)

// ContentSecurityPolicy is the fixed allowlist sent with every response.
const ContentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://cdn.jsdelivr.net https://cdnjs.cloudflare.com https://code.jquery.com; " +
	"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net https://cdnjs.cloudflare.com https://fonts.googleapis.com; " +
	"font-src 'self' https://fonts.gstatic.com https://cdnjs.cloudflare.com; " +
	"img-src 'self' data: https:; " +
	"connect-src 'self' https://api.unsplash.com"

// SecurityHeaders lists the headers and literal values added to every response.
var SecurityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"X-XSS-Protection", "1; mode=block"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Permissions-Policy", "geolocation=(), microphone=(), camera=()"},
	{"Content-Security-Policy", ContentSecurityPolicy},
}

// SecurityHeadersMiddleware adds the fixed security headers before any later stage runs,
// so rejections and error responses carry them too.
type SecurityHeadersMiddleware struct{}

// NewSecurityHeadersMiddleware creates the security headers middleware
func NewSecurityHeadersMiddleware() *SecurityHeadersMiddleware {
	return &SecurityHeadersMiddleware{}
}

// Handle sets the headers and continues the chain
func (m *SecurityHeadersMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Response().Header()
		for _, h := range SecurityHeaders {
			header.Set(h[0], h[1])
		}

		return next(c)
	}
}
