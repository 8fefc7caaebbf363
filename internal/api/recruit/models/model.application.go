package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResumeFile file CV gốc lưu kèm hồ sơ
type ResumeFile struct {
	Data        []byte `json:"-" bson:"data"`
	ContentType string `json:"contentType" bson:"contentType"`
	FileName    string `json:"fileName" bson:"fileName"`
}

// StageRecord một lần chuyển giai đoạn
type StageRecord struct {
	From  Stage `json:"from" bson:"from"`
	To    Stage `json:"to" bson:"to"`
	Event Event `json:"event" bson:"event"`
	At    int64 `json:"at" bson:"at"`
}

// CandidateApplication hồ sơ ứng tuyển của một ứng viên cho một job.
// Mỗi cặp (identityId, jobPostingId) chỉ có một hồ sơ.
type CandidateApplication struct {
	ID                     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	IdentityID             primitive.ObjectID `json:"identityId" bson:"identityId" index:"compound:identity_job_unique"`
	JobPostingID           primitive.ObjectID `json:"jobPostingId" bson:"jobPostingId" index:"compound:identity_job_unique;single:1"`
	Resume                 ResumeFile         `json:"resume" bson:"resume"`
	CoverLetter            string             `json:"coverLetter,omitempty" bson:"coverLetter,omitempty"`
	ResumeMatchScore       *float64           `json:"resumeMatchScore" bson:"resumeMatchScore"`
	ResumeText             string             `json:"resumeText" bson:"resumeText"`
	IsEligibleForTest      bool               `json:"isEligibleForTest" bson:"isEligibleForTest"`
	IsEligibleForInterview bool               `json:"isEligibleForInterview" bson:"isEligibleForInterview"`
	TestScore              *float64           `json:"testScore" bson:"testScore"`
	TestReportText         string             `json:"testReportText,omitempty" bson:"testReportText,omitempty"`
	Stage                  Stage              `json:"stage" bson:"stage"`
	StageHistory           []StageRecord      `json:"stageHistory" bson:"stageHistory"`
	CreatedAt              int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt              int64              `json:"updatedAt" bson:"updatedAt"`
}
