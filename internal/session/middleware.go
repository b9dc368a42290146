package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"garage_portal_backend/platform/config"
	"garage_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ContextSessionIDKey is the gin context key for the wizard session ID.
const ContextSessionIDKey = "wizardSessionID"

// CookieManager issues and verifies the signed session cookie. The cookie
// only carries a random session ID; all state stays server-side. Signing the
// ID stops clients from walking other sessions by editing the cookie.
type CookieManager struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
	log    *logger.Logger
}

// NewCookieManager creates a cookie manager from session config.
func NewCookieManager(cfg config.SessionConfig, log *logger.Logger) *CookieManager {
	return &CookieManager{
		name:   cfg.GetSessionCookieName(),
		secret: []byte(cfg.GetSessionSecret()),
		ttl:    cfg.GetSessionTTL(),
		secure: cfg.GetSessionCookieSecure(),
		log:    log,
	}
}

// Middleware resolves the session ID for every request. A missing, expired,
// or tampered cookie silently gets a fresh session; the wizard's step guards
// handle the resulting empty state.
func (m *CookieManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string

		if raw, err := c.Cookie(m.name); err == nil {
			if id, err := m.verify(raw); err == nil {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			token, err := m.sign(sessionID)
			if err != nil {
				m.log.SessionError("sign_cookie", err)
			} else {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(m.name, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
			}
		}

		c.Set(ContextSessionIDKey, sessionID)
		// Also carried on the request context so downstream log lines can
		// attach the session ID without threading it explicitly.
		ctx := context.WithValue(c.Request.Context(), logger.SessionIDKey, sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ID returns the session ID resolved by the middleware.
func ID(c *gin.Context) string {
	id, _ := c.Get(ContextSessionIDKey)
	s, _ := id.(string)
	return s
}

func (m *CookieManager) sign(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *CookieManager) verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("missing session id claim")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("malformed session id: %w", err)
	}
	return claims.Subject, nil
}
