package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie holding the signed token.
const CookieName = "session_token"

// Principal is the authenticated identity bound to a session.
type Principal struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Claims struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

// Manager issues and validates session tokens and moves them in and
// out of the session cookie.
type Manager struct {
	secret       []byte
	ttl          time.Duration
	cookieDomain string
	cookieSecure bool
}

func NewManager(secret string, ttl time.Duration, cookieDomain string, cookieSecure bool) *Manager {
	return &Manager{
		secret:       []byte(secret),
		ttl:          ttl,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

// Issue signs a token for the principal and sets it as an HttpOnly
// session cookie on the response.
func (m *Manager) Issue(c *gin.Context, p Principal) (string, error) {
	exp := time.Now().Add(m.ttl)
	claims := &Claims{
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", err
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, token, int(time.Until(exp).Seconds()), "/", m.cookieDomain, m.cookieSecure, true)
	return token, nil
}

// Parse validates a token string and returns the principal it carries.
func (m *Manager) Parse(tokenStr string) (Principal, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return Principal{}, err
	}
	if !tkn.Valid {
		return Principal{}, errors.New("invalid token")
	}

	return Principal{
		ID:        claims.Subject,
		Username:  claims.Username,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, "", -1, "/", m.cookieDomain, m.cookieSecure, true)
}
