package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/blog-comment-section/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoAuthorizationHeader = errors.New("no authorization header")
	ErrMalformedAuthHeader   = errors.New("malformed authorization header")
	ErrNoTokenInAuthHeader   = errors.New("no token in authorization header")
	ErrTokenSigningMethod    = errors.New("unexpected token signing method")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenWithNoSubject    = errors.New("token has no subject")
)

const issuer = "blog"

// Viewer is the authentication context handed to a comment section.
type Viewer struct {
	User          *models.User
	Authenticated bool
}

// Anonymous returns a viewer with no signed-in user
func Anonymous() Viewer {
	return Viewer{}
}

// NewViewer returns an authenticated viewer for user
func NewViewer(user *models.User) Viewer {
	if user == nil {
		return Anonymous()
	}
	return Viewer{User: user, Authenticated: true}
}

// UserID returns the signed-in user's id, or "" for anonymous viewers
func (v Viewer) UserID() string {
	if v.User == nil {
		return ""
	}
	return v.User.ID
}

// Claims carried by a visitor's access token
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// MakeToken signs an access token for user
func MakeToken(user *models.User, secret string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates an access token and returns the user it describes
func ParseToken(tokenString, secret string) (*models.User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenSigningMethod
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrTokenWithNoSubject
	}

	return &models.User{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// GetBearerToken extracts the token from an Authorization header
func GetBearerToken(headers http.Header) (string, error) {
	bearerToken := headers.Get("Authorization")
	if bearerToken == "" {
		return "", ErrNoAuthorizationHeader
	}

	if !strings.HasPrefix(bearerToken, "Bearer ") {
		return "", ErrMalformedAuthHeader
	}

	token := strings.TrimSpace(strings.TrimPrefix(bearerToken, "Bearer "))
	if token == "" {
		return "", ErrNoTokenInAuthHeader
	}

	return token, nil
}

type contextKey string

const tokenKey contextKey = "token"

// WithToken stores the visitor's raw token so API calls can forward it
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the token stored by WithToken
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}
