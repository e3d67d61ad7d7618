package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that cannot be accepted:
// malformed, forged, expired or carrying unexpected claims. Callers never see
// the underlying parse error.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the claims carried by a bearer token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTAuthenticator issues and verifies HS256 bearer tokens.
type JWTAuthenticator struct {
	secret    string
	issuer    string
	expiresIn time.Duration
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(secret, issuer string, expiresIn time.Duration) JWTAuthenticator {
	return JWTAuthenticator{
		secret:    secret,
		issuer:    issuer,
		expiresIn: expiresIn,
	}
}

// IssueToken signs a token for the given user identity.
func (a *JWTAuthenticator) IssueToken(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.issuer},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString([]byte(a.secret))
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// VerifyToken validates a bearer token and returns its claims. It fails
// closed: any malformed, expired or forged token yields ErrInvalidToken.
func (a *JWTAuthenticator) VerifyToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(a.secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
