package http

import (
	"garage_portal_backend/internal/session"
	"garage_portal_backend/platform/config"
	"garage_portal_backend/platform/logger"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP server configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Cookies resolves the signed session cookie on every request.
	Cookies *session.CookieManager
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
