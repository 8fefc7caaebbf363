package models

import "github.com/dgrijalva/jwt-go"

// SessionClaims chứa data được mã hóa trong JWT phiên đăng nhập.
type SessionClaims struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	jwt.StandardClaims
}
