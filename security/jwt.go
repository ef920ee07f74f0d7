package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

var ErrTokenInvalid = errors.New("token invalid")

// SignToken wraps an issued token id in a signed JWT. The id points at
// an auth_tokens row, so a token stays revocable even though the JWT
// itself is stateless
func SignToken(tokenID, userID string, expiresAt time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":     tokenID,
		"user_id": userID,
		"iat":     time.Now().Unix(),
		"exp":     expiresAt.Unix(),
	})

	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}

// ParseToken validates the signature and expiry of a bearer token and
// returns the embedded token and user ids
func ParseToken(raw string) (tokenID, userID string, err error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrTokenInvalid
	}

	tokenID, ok = claims["jti"].(string)
	if !ok || tokenID == "" {
		return "", "", ErrTokenInvalid
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", ErrTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Now().Unix() >= int64(exp) {
		return "", "", ErrTokenInvalid
	}

	return tokenID, userID, nil
}
