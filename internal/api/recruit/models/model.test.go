package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestState trạng thái bài test: created -> answers_submitted -> evaluated
type TestState string

const (
	TestStateCreated          TestState = "created"
	TestStateAnswersSubmitted TestState = "answers_submitted"
	TestStateEvaluated        TestState = "evaluated"
)

// MCQ câu trắc nghiệm. Answer không bao giờ được trả cho ứng viên.
type MCQ struct {
	Question string   `json:"question" bson:"question"`
	Options  []string `json:"options" bson:"options"`
	Answer   string   `json:"answer,omitempty" bson:"answer"`
}

// QuestionSet bộ câu hỏi do dịch vụ AI sinh
type QuestionSet struct {
	MCQs       []MCQ    `json:"mcqs" bson:"mcqs"`
	Pseudocode []string `json:"pseudocode" bson:"pseudocode"`
	Theory     []string `json:"theory" bson:"theory"`
}

// WithoutAnswers bản sao bộ câu hỏi đã bỏ đáp án trắc nghiệm
func (q QuestionSet) WithoutAnswers() QuestionSet {
	mcqs := make([]MCQ, len(q.MCQs))
	for i, m := range q.MCQs {
		mcqs[i] = MCQ{Question: m.Question, Options: append([]string(nil), m.Options...)}
	}
	return QuestionSet{
		MCQs:       mcqs,
		Pseudocode: append([]string{}, q.Pseudocode...),
		Theory:     append([]string{}, q.Theory...),
	}
}

// Answers câu trả lời của ứng viên, theo thứ tự câu hỏi
type Answers struct {
	MCQs       []string `json:"mcqs" bson:"mcqs"`
	Pseudocode []string `json:"pseudocode" bson:"pseudocode"`
	Theory     []string `json:"theory" bson:"theory"`
}

// IsEmpty true khi cả ba nhóm câu trả lời đều rỗng
func (a Answers) IsEmpty() bool {
	return len(a.MCQs) == 0 && len(a.Pseudocode) == 0 && len(a.Theory) == 0
}

// TestInstance bài test sinh riêng cho một hồ sơ
type TestInstance struct {
	ID                     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CandidateApplicationID primitive.ObjectID `json:"candidateApplicationId" bson:"candidateApplicationId" index:"unique"`
	IdentityID             primitive.ObjectID `json:"identityId" bson:"identityId" index:"compound:identity_job"`
	JobPostingID           primitive.ObjectID `json:"jobPostingId" bson:"jobPostingId" index:"compound:identity_job"`
	Questions              QuestionSet        `json:"questions" bson:"questions"`
	Answers                Answers            `json:"answers" bson:"answers"`
	State                  TestState          `json:"state" bson:"state" index:"compound:state_submitted"`
	AccessDeadline         int64              `json:"accessDeadline" bson:"accessDeadline"`
	SubmittedAt            int64              `json:"submittedAt,omitempty" bson:"submittedAt,omitempty" index:"compound:state_submitted"`
	CreatedAt              int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt              int64              `json:"updatedAt" bson:"updatedAt"`
}
