package authsvc

import (
	"fmt"
	"time"

	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"

	"github.com/dgrijalva/jwt-go"
)

// TokenIssuer ký và kiểm tra JWT phiên đăng nhập (HS256)
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer tạo TokenIssuer, ttl <= 0 thì dùng 24h
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue ký token chứa {userId, role, exp}
func (t *TokenIssuer) Issue(identity *models.Identity) (string, error) {
	now := t.now()
	claims := models.SessionClaims{
		UserID: identity.ID.Hex(),
		Role:   identity.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Cannot sign session token", common.StatusInternalServerError, err.Error())
	}
	return signed, nil
}

// Parse kiểm tra chữ ký, thuật toán và hạn của token
func (t *TokenIssuer) Parse(raw string) (*models.SessionClaims, error) {
	if raw == "" {
		return nil, common.ErrTokenMissing
	}
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}
