package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gatewatch/vpms-backend/internal/workflow"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the identity payload carried in every issued token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   workflow.Role
}

// GenerateToken signs an HS256 token embedding the claims with the given
// validity window.
func GenerateToken(claims Claims, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID.String(),
		"email": claims.Email,
		"role":  string(claims.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(validity).Unix(),
	})
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the embedded claims.
// Expired tokens are reported as ErrTokenExpired, everything else that fails
// verification as ErrTokenInvalid.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	return ClaimsFromToken(token)
}

// ClaimsFromToken extracts identity claims from an already verified token,
// e.g. the one the JWT middleware stores in the request context.
func ClaimsFromToken(token *jwt.Token) (*Claims, error) {
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	email, _ := mapClaims["email"].(string)
	roleStr, _ := mapClaims["role"].(string)
	role := workflow.Role(roleStr)
	if !workflow.ValidRole(role) {
		return nil, ErrTokenInvalid
	}

	return &Claims{UserID: userID, Email: email, Role: role}, nil
}
