package recruitdto

import (
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
)

// TestHandle thông tin bài test trả cho HR sau khi chọn (không kèm câu hỏi)
type TestHandle struct {
	ID             string `json:"id"`
	AccessDeadline int64  `json:"accessDeadline"`
}

// SelectionOutput kết quả chọn ứng viên làm bài test
type SelectionOutput struct {
	Application    *models.CandidateApplication `json:"application"`
	Test           TestHandle                   `json:"test"`
	InvitationLink string                       `json:"invitationLink"`
	BareLink       string                       `json:"bareLink,omitempty"`
}

// ShowTestOutput bài test trả cho ứng viên, đã bỏ đáp án
type ShowTestOutput struct {
	TestID         string             `json:"testId"`
	JobID          string             `json:"jobId"`
	Questions      models.QuestionSet `json:"questions"`
	AccessDeadline int64              `json:"accessDeadline"`
	State          models.TestState   `json:"state"`
}

// SubmitInput câu trả lời. Cả ba key phải có mặt, mảng rỗng vẫn hợp lệ.
type SubmitInput struct {
	MCQs       []string `json:"mcqs" validate:"required"`
	Pseudocode []string `json:"pseudocode" validate:"required"`
	Theory     []string `json:"theory" validate:"required"`
}

// SubmitOutput kết quả nộp bài và chấm
type SubmitOutput struct {
	Message    string  `json:"message"`
	FinalScore float64 `json:"finalScore"`
	Evaluation string  `json:"evaluation"`
}

// ReportOutput kết quả chấm trả cho ứng viên hoặc HR
type ReportOutput struct {
	ReportText      string  `json:"reportText"`
	ReportPDFBase64 string  `json:"reportPdfBase64"`
	GeneratedAt     int64   `json:"generatedAt"`
	TestScore       float64 `json:"testScore"`
}
