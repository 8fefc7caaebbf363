package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HRList tên các danh sách id trên HRProfile, chỉ được sửa bằng $addToSet / $pull
type HRList string

const (
	HRListCreatedJobs       HRList = "createdJobIds"
	HRListTestSelected      HRList = "testSelectedCandidateIds"
	HRListInterviewSelected HRList = "interviewSelectedCandidateIds"
)

// HRProfile hồ sơ HR, 1-1 với Identity có role hr
type HRProfile struct {
	ID                            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	IdentityID                    primitive.ObjectID   `json:"identityId" bson:"identityId" index:"unique"`
	CreatedJobIDs                 []primitive.ObjectID `json:"createdJobIds" bson:"createdJobIds"`
	TestSelectedCandidateIDs      []primitive.ObjectID `json:"testSelectedCandidateIds" bson:"testSelectedCandidateIds"`
	InterviewSelectedCandidateIDs []primitive.ObjectID `json:"interviewSelectedCandidateIds" bson:"interviewSelectedCandidateIds"`
	CreatedAt                     int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt                     int64                `json:"updatedAt" bson:"updatedAt"`
}

// List trả về danh sách id tương ứng
func (p *HRProfile) List(list HRList) []primitive.ObjectID {
	switch list {
	case HRListCreatedJobs:
		return p.CreatedJobIDs
	case HRListTestSelected:
		return p.TestSelectedCandidateIDs
	case HRListInterviewSelected:
		return p.InterviewSelectedCandidateIDs
	}
	return nil
}
