package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed means the input was not a parseable token at all.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenExpired means the token parsed and verified but is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers signature mismatch, wrong algorithm and bad claims.
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID string `json:"user_id"`
	jwtlib.RegisteredClaims
}

func GenerateToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(token *jwtlib.Token) (interface{}, error) {
		if token.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwtlib.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
