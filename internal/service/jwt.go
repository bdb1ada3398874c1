package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

var jwtSecret []byte

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// GenerateJWT issues a 24h user session token.
func GenerateJWT(userID int64) (string, error) {
	return signToken(jwt.MapClaims{"user_id": userID})
}

// GenerateAdminJWT issues an admin token. Admin identity is independent
// from user identity; the token carries a role claim and no user_id.
func GenerateAdminJWT() (string, error) {
	return signToken(jwt.MapClaims{"role": adminRole})
}

func signToken(claims jwt.MapClaims) (string, error) {
	now := time.Now().Unix()
	claims["exp"] = time.Now().Add(24 * time.Hour).Unix()
	claims["iat"] = now
	claims["nbf"] = now

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok {
		if int64(exp) < now {
			return nil, errors.New("token expired")
		}
	}
	if nbf, ok := claims["nbf"].(float64); ok {
		if int64(nbf) > now {
			return nil, errors.New("token not valid yet")
		}
	}

	return claims, nil
}

// ParseJWT validates a user token and returns the user id.
func ParseJWT(tokenString string) (int64, error) {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return 0, err
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("user_id not found")
	}

	return int64(userID), nil
}

// ParseAdminJWT validates an admin token.
func ParseAdminJWT(tokenString string) error {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return err
	}

	if role, ok := claims["role"].(string); !ok || role != adminRole {
		return errors.New("not an admin token")
	}
	return nil
}
