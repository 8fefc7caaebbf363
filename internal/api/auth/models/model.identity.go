// Package models - tài khoản (Identity), hồ sơ HR và ngữ cảnh người gọi thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role vai trò của tài khoản
type Role string

const (
	RoleHR        Role = "hr"
	RoleCandidate Role = "candidate"
	RoleAdmin     Role = "admin"
)

// Valid true khi role thuộc tập vai trò hệ thống hỗ trợ
func (r Role) Valid() bool {
	switch r {
	case RoleHR, RoleCandidate, RoleAdmin:
		return true
	}
	return false
}

// Identity định nghĩa mô hình tài khoản người dùng
// PasswordHash không bao giờ được trả ra ngoài (json:"-")
type Identity struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Role         Role               `json:"role" bson:"role" index:"single:1"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// CallerContext là danh tính đã xác thực của người gọi, được handler truyền tường minh xuống service
type CallerContext struct {
	IdentityID primitive.ObjectID
	Role       Role
}
