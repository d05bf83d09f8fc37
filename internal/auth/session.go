// File: internal/auth/session.go
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"kudos_web/internal/config"
	"kudos_web/internal/platform/crypto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const loginPath = "/login"

// SessionClaims is the payload of the sealed session cookie.
type SessionClaims struct {
	UserID uuid.UUID `json:"userId"`
	jwt.RegisteredClaims
}

// SessionOptions configures the session cookie.
type SessionOptions struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
	// Secrets[0] seals new cookies; every entry is accepted when reading.
	Secrets []string
}

// NewSessionOptions reads the session settings from cfg.
func NewSessionOptions(cfg *config.Config) SessionOptions {
	return SessionOptions{
		CookieName: cfg.SessionCookieName,
		MaxAge:     cfg.SessionMaxAge,
		Secure:     cfg.IsProduction(),
		Secrets:    append([]string{cfg.SessionSecret}, cfg.SessionPreviousSecrets...),
	}
}

// SessionManager issues, reads and destroys the session cookie. The cookie carries an
// HS256 JWT sealed with AES-GCM, so it is both tamper-proof and opaque to the client.
type SessionManager struct {
	opts        SessionOptions
	sealer      *crypto.Sealer
	signingKeys [][]byte
	blocklist   Blocklist
	logger      *zap.Logger
	now         func() time.Time
}

// NewSessionManager derives the sealing and signing keys for every configured secret.
func NewSessionManager(opts SessionOptions, blocklist Blocklist, logger *zap.Logger) (*SessionManager, error) {
	if len(opts.Secrets) == 0 || opts.Secrets[0] == "" {
		return nil, errors.New("session: a secret is required")
	}
	if opts.CookieName == "" {
		return nil, errors.New("session: cookie name is required")
	}

	sealer, err := crypto.NewSealer(opts.Secrets...)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	keys := make([][]byte, 0, len(opts.Secrets))
	for _, secret := range opts.Secrets {
		key, err := crypto.DeriveKey(secret, crypto.InfoSessionSigning, 32)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		keys = append(keys, key)
	}

	return &SessionManager{
		opts:        opts,
		sealer:      sealer,
		signingKeys: keys,
		blocklist:   blocklist,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Create stores userID in a fresh session cookie and redirects to redirectTo.
func (m *SessionManager) Create(c *gin.Context, userID uuid.UUID, redirectTo string) error {
	cookie, err := m.NewCookie(userID)
	if err != nil {
		m.logger.Error("Failed to issue session cookie", zap.Error(err), zap.String("userID", userID.String()))
		return err
	}
	http.SetCookie(c.Writer, cookie)
	c.Redirect(http.StatusSeeOther, redirectTo)
	return nil
}

// NewCookie issues a session cookie for userID without writing it anywhere.
func (m *SessionManager) NewCookie(userID uuid.UUID) (*http.Cookie, error) {
	tokenID, err := crypto.GenerateSecureRandomString(16)
	if err != nil {
		return nil, fmt.Errorf("could not generate session token id: %w", err)
	}
	now := m.now()
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.opts.MaxAge)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKeys[0])
	if err != nil {
		return nil, fmt.Errorf("could not sign session token: %w", err)
	}
	sealed, err := m.sealer.Seal([]byte(signed))
	if err != nil {
		return nil, fmt.Errorf("could not seal session token: %w", err)
	}
	return m.cookie(sealed, int(m.opts.MaxAge/time.Second)), nil
}

// ReadUserID returns the user id of a valid, unrevoked session cookie.
func (m *SessionManager) ReadUserID(r *http.Request) (uuid.UUID, bool) {
	claims, ok := m.readClaims(r)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// RequireUserID returns the session user id. Without one it redirects to the login
// page, remembering the requested path, and aborts the chain.
func (m *SessionManager) RequireUserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := m.RequireSession(c)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// RequireSession is RequireUserID returning the full claims, token id included.
func (m *SessionManager) RequireSession(c *gin.Context) (*SessionClaims, bool) {
	if claims, ok := m.readClaims(c.Request); ok {
		return claims, true
	}
	q := url.Values{"redirectTo": {c.Request.URL.Path}}
	c.Redirect(http.StatusFound, loginPath+"?"+q.Encode())
	c.Abort()
	return nil, false
}

// Destroy revokes the current token, expires the cookie and redirects to redirectTo.
func (m *SessionManager) Destroy(c *gin.Context, redirectTo string) {
	if claims, ok := m.readClaims(c.Request); ok && claims.ExpiresAt != nil {
		if err := m.blocklist.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			m.logger.Error("Failed to revoke session token", zap.Error(err))
		}
	}
	http.SetCookie(c.Writer, m.cookie("", -1))
	if redirectTo == "" {
		redirectTo = loginPath
	}
	c.Redirect(http.StatusSeeOther, redirectTo)
	c.Abort()
}

// ClearCookie expires the cookie without redirecting.
func (m *SessionManager) ClearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, m.cookie("", -1))
}

func (m *SessionManager) readClaims(r *http.Request) (*SessionClaims, bool) {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := m.parse(cookie.Value)
	if err != nil {
		m.logger.Debug("Rejected session cookie", zap.Error(err))
		return nil, false
	}
	revoked, err := m.blocklist.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		m.logger.Error("Failed to check session blocklist", zap.Error(err))
		return nil, false
	}
	if revoked || claims.UserID == uuid.Nil {
		return nil, false
	}
	return claims, true
}

func (m *SessionManager) parse(value string) (*SessionClaims, error) {
	raw, err := m.sealer.Open(value)
	if err != nil {
		return nil, err
	}
	var lastErr error
	for _, key := range m.signingKeys {
		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(string(raw), claims,
			func(*jwt.Token) (interface{}, error) { return key, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(m.now),
		)
		if err == nil && token.Valid {
			return claims, nil
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("invalid session token: %w", lastErr)
}

func (m *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   m.opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
