package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestReport kết quả chấm một bài test. Mỗi TestInstance có nhiều nhất một report.
type TestReport struct {
	ID                     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CandidateApplicationID primitive.ObjectID `json:"candidateApplicationId" bson:"candidateApplicationId" index:"single:1"`
	TestInstanceID         primitive.ObjectID `json:"testInstanceId" bson:"testInstanceId" index:"unique"`
	IdentityID             primitive.ObjectID `json:"identityId" bson:"identityId"`
	JobPostingID           primitive.ObjectID `json:"jobPostingId" bson:"jobPostingId"`
	ReportText             string             `json:"reportText" bson:"reportText"`
	ReportDocument         []byte             `json:"-" bson:"reportDocument"`
	Score                  float64            `json:"score" bson:"score"`
	CreatedAt              int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt              int64              `json:"updatedAt" bson:"updatedAt"`
}
