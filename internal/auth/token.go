package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long a session credential stays valid after issuance.
const TokenTTL = time.Hour

// ErrInvalidToken is returned when a credential fails signature or expiry
// validation.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims are the claims carried by a session credential. The token is
// opaque to the client; it only proves the connection followed a legitimate
// page load.
type SessionClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// Issuer signs and validates session credentials.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an issuer signing with the given secret.
func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret, ttl: TokenTTL}
}

// Generate issues a fresh signed credential.
func (i *Issuer) Generate() (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Nonce: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate checks a credential's signature and expiry.
func (i *Issuer) Validate(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
