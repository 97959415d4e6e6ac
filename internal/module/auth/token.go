package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freshmart/admin-console/internal/domain"
)

// consoleClaims is the payload of a console access token. The token is
// minted locally at sign-in and only proves the browser went through the
// sign-in flow; the remote API token stays inside the process.
type consoleClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies the console's own HS256 access tokens.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a TokenService signing with secret. Tokens
// expire after expiry.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry}
}

// Issue mints a token for the given operator and returns it with its
// expiry time.
func (s *TokenService) Issue(username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := consoleClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, domain.NewAppError(domain.CodeInternal, "failed to sign access token", err)
	}
	return token, expiresAt, nil
}

// Verify parses and validates a token and returns the operator username.
func (s *TokenService) Verify(raw string) (string, error) {
	var claims consoleClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.NewAppError(domain.CodeUnauthorized, "invalid or expired access token", err)
	}
	return claims.Username, nil
}
