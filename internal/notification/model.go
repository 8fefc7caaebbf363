package notification

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailType loại thông báo gửi ứng viên
type EmailType string

const (
	EmailTestSchedule EmailType = "test-schedule"
	EmailHRDecision   EmailType = "hr-decision"
	EmailGeneral      EmailType = "general"
)

// EmailAuditRecord nhật ký một lần thông báo, ghi cả khi gửi mail thất bại hoặc SMTP bị tắt
type EmailAuditRecord struct {
	ID                     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CandidateApplicationID primitive.ObjectID `json:"candidateApplicationId" bson:"candidateApplicationId" index:"single:1"`
	Recipient              string             `json:"recipient" bson:"recipient"`
	Subject                string             `json:"subject" bson:"subject"`
	Message                string             `json:"message" bson:"message"`
	Type                   EmailType          `json:"type" bson:"type"`
	Delivered              bool               `json:"delivered" bson:"delivered"`
	Error                  string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt              int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt              int64              `json:"updatedAt" bson:"updatedAt"`
}

// Message nội dung cần thông báo
type Message struct {
	ApplicationID primitive.ObjectID
	Recipient     string
	Type          EmailType
	Subject       string
	Body          string
}
