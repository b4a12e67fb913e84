package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// TokenStage distinguishes full access tokens from MFA-pending tokens.
type TokenStage string

const (
	StageAccess     TokenStage = "access"
	StageMFAPending TokenStage = "mfa_pending"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	pendingTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTLMinutes, pendingTTLMinutes int) *TokenManager {
	if accessTTLMinutes <= 0 {
		accessTTLMinutes = 60
	}
	if pendingTTLMinutes <= 0 {
		pendingTTLMinutes = 5
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLMinutes) * time.Minute,
		pendingTTL: time.Duration(pendingTTLMinutes) * time.Minute,
	}
}

// Claims describes JWT payload.
type Claims struct {
	UserID string      `json:"sub"`
	Role   domain.Role `json:"role"`
	Stage  TokenStage  `json:"stage"`
	jwt.RegisteredClaims
}

// GenerateAccessToken builds and signs a full-access JWT.
func (tm *TokenManager) GenerateAccessToken(userID string, role domain.Role) (string, time.Time, error) {
	return tm.generate(userID, role, StageAccess, tm.accessTTL)
}

// GeneratePendingToken builds a short-lived token that only authorizes MFA verification.
func (tm *TokenManager) GeneratePendingToken(userID string, role domain.Role) (string, time.Time, error) {
	return tm.generate(userID, role, StageMFAPending, tm.pendingTTL)
}

func (tm *TokenManager) generate(userID string, role domain.Role, stage TokenStage, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Stage:  stage,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
