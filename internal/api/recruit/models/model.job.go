// Package models - tin tuyển dụng, hồ sơ ứng tuyển, bài test và kết quả thuộc domain recruit.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobPosting tin tuyển dụng do một HR tạo
type JobPosting struct {
	ID                  primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title               string               `json:"title" bson:"title"`
	CompanyName         string               `json:"companyName" bson:"companyName"`
	Details             string               `json:"details" bson:"details"`
	HRProfileID         primitive.ObjectID   `json:"hrProfileId" bson:"hrProfileId" index:"single:1"`
	AppliedCandidateIDs []primitive.ObjectID `json:"appliedCandidateIds,omitempty" bson:"appliedCandidateIds"`
	CreatedAt           int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64                `json:"updatedAt" bson:"updatedAt"`
}

// Description nội dung gửi cho dịch vụ AI làm mô tả công việc
func (j *JobPosting) Description() string {
	if j.Details == "" {
		return j.Title
	}
	return j.Details
}
